// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package quant

const (
	// RiskFreeRate is the annualized return of a riskless asset (approximate T-bill rate)
	RiskFreeRate = 0.05

	// TradingDaysPerYear is the annualization factor for daily statistics
	TradingDaysPerYear = 252

	// DefaultIterations is the number of random allocations sampled by Optimize
	DefaultIterations = 5000

	// DefaultMockDays is the length of a generated mock price history
	DefaultMockDays = 252
)

// RandomSource produces uniformly distributed values in [0, 1). Both *rand.Rand
// from math/rand and golang.org/x/exp/rand satisfy it.
type RandomSource interface {
	Float64() float64
}

// Params holds the market constants used to annualize daily statistics and to
// compute the Sharpe ratio.
type Params struct {
	RiskFreeRate   float64 `json:"riskFreeRate" toml:"risk_free_rate"`
	PeriodsPerYear float64 `json:"periodsPerYear" toml:"periods_per_year"`
}

// DefaultParams returns a 5% risk-free rate and 252 trading periods per year
func DefaultParams() Params {
	return Params{
		RiskFreeRate:   RiskFreeRate,
		PeriodsPerYear: TradingDaysPerYear,
	}
}

// WithDefaults fills in unset market constants. The zero Params is replaced by
// DefaultParams. Otherwise only a PeriodsPerYear <= 0 is replaced, so an explicit
// RiskFreeRate is kept.
func (p Params) WithDefaults() Params {
	if p == (Params{}) {
		return DefaultParams()
	}

	if !(p.PeriodsPerYear > 0) {
		p.PeriodsPerYear = TradingDaysPerYear
	}
	return p
}

// AssetSeries pairs an asset symbol with its ordered periodic returns
type AssetSeries struct {
	Symbol  string    `json:"symbol"`
	Returns []float64 `json:"returns"`
}

// SymbolWeight is the weight allocated to a single symbol
type SymbolWeight struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

// PortfolioMetrics summarizes the annualized risk and return of an allocation
type PortfolioMetrics struct {
	ExpectedReturn float64        `json:"expectedReturn"`
	Variance       float64        `json:"variance"`
	Volatility     float64        `json:"volatility"`
	SharpeRatio    float64        `json:"sharpeRatio"`
	Weights        []SymbolWeight `json:"weights"`
}

// WeightVector returns the weights in symbol order
func (metrics *PortfolioMetrics) WeightVector() []float64 {
	w := make([]float64, len(metrics.Weights))
	for idx, sw := range metrics.Weights {
		w[idx] = sw.Weight
	}
	return w
}

// SplitSeries breaks a list of AssetSeries into the parallel symbol and return
// slices expected by ComputeMetrics and Optimize
func SplitSeries(series []*AssetSeries) ([]string, [][]float64) {
	symbols := make([]string, len(series))
	returns := make([][]float64, len(series))
	for idx, s := range series {
		symbols[idx] = s.Symbol
		returns[idx] = s.Returns
	}
	return symbols, returns
}
