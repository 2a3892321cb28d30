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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Evaluator computes PortfolioMetrics for many weight vectors over the same set
// of assets. The annualized mean returns and covariance matrix do not depend on
// the weights and are computed once in NewEvaluator.
type Evaluator struct {
	symbols     []string
	params      Params
	annualMeans []float64
	annualCov   *mat.Dense
}

// NewEvaluator validates the inputs and pre-computes the annualized statistics
// of each asset. returns[i] holds the daily returns of symbols[i]. Unset fields
// of params are filled in by Params.WithDefaults.
func NewEvaluator(symbols []string, returns [][]float64, params Params) (*Evaluator, error) {
	if len(symbols) != len(returns) {
		return nil, fmt.Errorf("%w: %d symbols but %d return series", ErrDimensionMismatch, len(symbols), len(returns))
	}

	params = params.WithDefaults()

	annualCov, err := AnnualizedCovariance(returns, params.PeriodsPerYear)
	if err != nil {
		return nil, err
	}

	annualMeans := make([]float64, len(returns))
	for idx, r := range returns {
		annualMeans[idx] = stat.Mean(r, nil) * params.PeriodsPerYear
	}

	return &Evaluator{
		symbols:     append([]string(nil), symbols...),
		params:      params,
		annualMeans: annualMeans,
		annualCov:   annualCov,
	}, nil
}

// Len returns the number of assets
func (ev *Evaluator) Len() int {
	return len(ev.symbols)
}

// Symbols returns a copy of the asset symbols in evaluation order
func (ev *Evaluator) Symbols() []string {
	return append([]string(nil), ev.symbols...)
}

// Params returns the market constants used by the evaluator after defaults
// have been applied
func (ev *Evaluator) Params() Params {
	return ev.params
}

// AnnualizedReturns returns a copy of the annualized mean return of each asset
func (ev *Evaluator) AnnualizedReturns() []float64 {
	return append([]float64(nil), ev.annualMeans...)
}

// AnnualizedCovariance returns a copy of the annualized covariance matrix
func (ev *Evaluator) AnnualizedCovariance() mat.Matrix {
	return mat.DenseCopyOf(ev.annualCov)
}

// Evaluate computes the expected return, variance, volatility and Sharpe ratio
// of the allocation. Weights are used as given; they are not re-normalized.
//
//	E[Rp]  = w · μ
//	σp²    = wᵀ Σ w
//	Sharpe = (E[Rp] - Rf) / σp
//
// The Sharpe ratio is 0 when the volatility is 0.
func (ev *Evaluator) Evaluate(weights []float64) (*PortfolioMetrics, error) {
	if len(weights) != len(ev.symbols) {
		return nil, fmt.Errorf("%w: %d weights for %d symbols", ErrDimensionMismatch, len(weights), len(ev.symbols))
	}

	expectedReturn := floats.Dot(weights, ev.annualMeans)

	w := mat.NewVecDense(len(weights), weights)
	variance := math.Max(mat.Inner(w, ev.annualCov, w), 0)
	volatility := math.Sqrt(variance)

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (expectedReturn - ev.params.RiskFreeRate) / volatility
	}

	paired := make([]SymbolWeight, len(ev.symbols))
	for idx, symbol := range ev.symbols {
		paired[idx] = SymbolWeight{
			Symbol: symbol,
			Weight: weights[idx],
		}
	}

	return &PortfolioMetrics{
		ExpectedReturn: expectedReturn,
		Variance:       variance,
		Volatility:     volatility,
		SharpeRatio:    sharpe,
		Weights:        paired,
	}, nil
}

// ComputeMetrics evaluates a single allocation. It is equivalent to calling
// NewEvaluator followed by Evaluate.
func ComputeMetrics(symbols []string, weights []float64, returns [][]float64, params Params) (*PortfolioMetrics, error) {
	if len(weights) != len(symbols) {
		return nil, fmt.Errorf("%w: %d weights for %d symbols", ErrDimensionMismatch, len(weights), len(symbols))
	}

	ev, err := NewEvaluator(symbols, returns, params)
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(weights)
}
