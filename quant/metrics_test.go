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
package quant_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/penny-vault/pvquant/quant"
)

var _ = Describe("Metrics", func() {
	var (
		params quant.Params
	)

	BeforeEach(func() {
		params = quant.DefaultParams()
	})

	It("uses a 5% risk free rate and 252 periods by default", func() {
		Expect(params.RiskFreeRate).To(Equal(0.05))
		Expect(params.PeriodsPerYear).To(Equal(252.0))
	})

	DescribeTable("fills in unset parameters", func(in quant.Params, expected quant.Params) {
		Expect(in.WithDefaults()).To(Equal(expected))
	},
		Entry("zero value", quant.Params{}, quant.DefaultParams()),
		Entry("explicit risk free rate", quant.Params{RiskFreeRate: 0.03}, quant.Params{RiskFreeRate: 0.03, PeriodsPerYear: 252}),
		Entry("negative periods", quant.Params{RiskFreeRate: 0.05, PeriodsPerYear: -12}, quant.DefaultParams()),
		Entry("explicit values", quant.Params{RiskFreeRate: 0.01, PeriodsPerYear: 12}, quant.Params{RiskFreeRate: 0.01, PeriodsPerYear: 12}),
	)

	Context("with a single asset", func() {
		var (
			daily []float64
		)

		BeforeEach(func() {
			daily = []float64{0.01, -0.005, 0.02, 0.003, -0.012, 0.007}
		})

		It("annualizes the mean and variance of the asset", func() {
			metrics, err := quant.ComputeMetrics([]string{"VFINX"}, []float64{1.0}, [][]float64{daily}, params)
			Expect(err).To(BeNil())

			expectedReturn := stat.Mean(daily, nil) * 252
			variance := stat.Variance(daily, nil) * 252

			Expect(metrics.ExpectedReturn).Should(BeNumerically("~", expectedReturn, 1e-12))
			Expect(metrics.Variance).Should(BeNumerically("~", variance, 1e-12))
			Expect(metrics.Volatility).Should(BeNumerically("~", math.Sqrt(variance), 1e-12))
			Expect(metrics.SharpeRatio).Should(BeNumerically("~", (expectedReturn-0.05)/math.Sqrt(variance), 1e-9))
		})

		It("honors an alternative risk free rate and period", func() {
			monthly := quant.Params{RiskFreeRate: 0.0, PeriodsPerYear: 12}
			metrics, err := quant.ComputeMetrics([]string{"VFINX"}, []float64{1.0}, [][]float64{daily}, monthly)
			Expect(err).To(BeNil())

			expectedReturn := stat.Mean(daily, nil) * 12
			volatility := math.Sqrt(stat.Variance(daily, nil) * 12)
			Expect(metrics.ExpectedReturn).Should(BeNumerically("~", expectedReturn, 1e-12))
			Expect(metrics.SharpeRatio).Should(BeNumerically("~", expectedReturn/volatility, 1e-9))
		})

		It("pairs the weights with the symbols", func() {
			metrics, err := quant.ComputeMetrics([]string{"VFINX"}, []float64{1.0}, [][]float64{daily}, params)
			Expect(err).To(BeNil())
			Expect(metrics.Weights).To(Equal([]quant.SymbolWeight{{Symbol: "VFINX", Weight: 1.0}}))
			Expect(metrics.WeightVector()).To(Equal([]float64{1.0}))
		})
	})

	Context("with several random assets", func() {
		var (
			symbols []string
			rets    [][]float64
		)

		BeforeEach(func() {
			rnd := rand.New(rand.NewSource(1234))
			symbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN"}
			rets = randomReturns(rnd, len(symbols), 252)
		})

		DescribeTable("matches the sample variance of the combined return series",
			func(weights []float64) {
				metrics, err := quant.ComputeMetrics(symbols, weights, rets, params)
				Expect(err).To(BeNil())

				combined := make([]float64, len(rets[0]))
				for ii := range rets {
					for tt := range combined {
						combined[tt] += weights[ii] * rets[ii][tt]
					}
				}

				Expect(metrics.Variance).Should(BeNumerically("~", stat.Variance(combined, nil)*252, 1e-12))
				Expect(metrics.ExpectedReturn).Should(BeNumerically("~", stat.Mean(combined, nil)*252, 1e-12))
			},
			Entry("equal weight", []float64{0.25, 0.25, 0.25, 0.25}),
			Entry("concentrated", []float64{0.7, 0.1, 0.1, 0.1}),
			Entry("single holding", []float64{0, 0, 1, 0}),
			Entry("uneven", []float64{0.05, 0.4, 0.15, 0.4}),
		)

		It("preserves the caller's symbol order", func() {
			weights := []float64{0.1, 0.2, 0.3, 0.4}
			metrics, err := quant.ComputeMetrics(symbols, weights, rets, params)
			Expect(err).To(BeNil())
			for idx, sw := range metrics.Weights {
				Expect(sw.Symbol).To(Equal(symbols[idx]))
				Expect(sw.Weight).To(Equal(weights[idx]))
			}
		})

		It("does not re-normalize weights", func() {
			metrics, err := quant.ComputeMetrics(symbols, []float64{0.5, 0.5, 0.5, 0.5}, rets, params)
			Expect(err).To(BeNil())
			half, err := quant.ComputeMetrics(symbols, []float64{0.25, 0.25, 0.25, 0.25}, rets, params)
			Expect(err).To(BeNil())
			Expect(metrics.ExpectedReturn).Should(BeNumerically("~", 2*half.ExpectedReturn, 1e-12))
			Expect(metrics.Variance).Should(BeNumerically("~", 4*half.Variance, 1e-12))
		})

		It("gives the same results through a reusable evaluator", func() {
			weights := []float64{0.4, 0.3, 0.2, 0.1}
			direct, err := quant.ComputeMetrics(symbols, weights, rets, params)
			Expect(err).To(BeNil())

			ev, err := quant.NewEvaluator(symbols, rets, params)
			Expect(err).To(BeNil())
			Expect(ev.Len()).To(Equal(4))
			Expect(ev.Symbols()).To(Equal(symbols))
			Expect(ev.AnnualizedReturns()).To(HaveLen(4))

			viaEvaluator, err := ev.Evaluate(weights)
			Expect(err).To(BeNil())
			Expect(viaEvaluator).To(Equal(direct))
		})

		It("is deterministic", func() {
			weights := []float64{0.4, 0.3, 0.2, 0.1}
			a, err := quant.ComputeMetrics(symbols, weights, rets, params)
			Expect(err).To(BeNil())
			b, err := quant.ComputeMetrics(symbols, weights, rets, params)
			Expect(err).To(BeNil())
			Expect(a).To(Equal(b))
		})

		It("is not affected by callers changing its inputs or outputs", func() {
			weights := []float64{0.4, 0.3, 0.2, 0.1}
			input := append([]string(nil), symbols...)
			ev, err := quant.NewEvaluator(input, rets, params)
			Expect(err).To(BeNil())
			before, err := ev.Evaluate(weights)
			Expect(err).To(BeNil())

			ev.AnnualizedReturns()[0] = 100
			ev.Symbols()[1] = "CHANGED"
			input[0] = "CHANGED"

			after, err := ev.Evaluate(weights)
			Expect(err).To(BeNil())
			Expect(after).To(Equal(before))
			Expect(after.Weights[0].Symbol).To(Equal(symbols[0]))
		})

		It("uses the default parameters when none are given", func() {
			weights := []float64{0.4, 0.3, 0.2, 0.1}
			unset, err := quant.ComputeMetrics(symbols, weights, rets, quant.Params{})
			Expect(err).To(BeNil())
			defaults, err := quant.ComputeMetrics(symbols, weights, rets, quant.DefaultParams())
			Expect(err).To(BeNil())
			Expect(unset).To(Equal(defaults))
			Expect(unset.Volatility).To(BeNumerically(">", 0))
		})

		It("keeps an explicit risk free rate when periods per year is unset", func() {
			ev, err := quant.NewEvaluator(symbols, rets, quant.Params{RiskFreeRate: 0.02})
			Expect(err).To(BeNil())
			Expect(ev.Params()).To(Equal(quant.Params{RiskFreeRate: 0.02, PeriodsPerYear: quant.TradingDaysPerYear}))
		})
	})

	Context("with two identical assets", func() {
		It("is invariant to the weight split", func() {
			daily := []float64{0.01, -0.02, 0.015, 0.004, -0.003, 0.02, -0.011}
			rets := [][]float64{daily, daily}
			symbols := []string{"SPY", "VOO"}

			a, err := quant.ComputeMetrics(symbols, []float64{0.5, 0.5}, rets, params)
			Expect(err).To(BeNil())
			b, err := quant.ComputeMetrics(symbols, []float64{0.9, 0.1}, rets, params)
			Expect(err).To(BeNil())

			Expect(a.ExpectedReturn).Should(BeNumerically("~", b.ExpectedReturn, 1e-12))
			Expect(a.Variance).Should(BeNumerically("~", b.Variance, 1e-12))
			Expect(a.SharpeRatio).Should(BeNumerically("~", b.SharpeRatio, 1e-9))
		})
	})

	Context("when volatility is zero", func() {
		It("reports a Sharpe ratio of zero", func() {
			flat := []float64{0, 0, 0, 0}
			metrics, err := quant.ComputeMetrics([]string{"CASH"}, []float64{1}, [][]float64{flat}, params)
			Expect(err).To(BeNil())
			Expect(metrics.Variance).To(Equal(0.0))
			Expect(metrics.Volatility).To(Equal(0.0))
			Expect(metrics.SharpeRatio).To(Equal(0.0))
		})
	})

	Context("with mismatched dimensions", func() {
		rets := [][]float64{{0.01, 0.02}, {0.03, -0.01}}

		It("fails when there are fewer weights than symbols", func() {
			_, err := quant.ComputeMetrics([]string{"A", "B"}, []float64{1}, rets, params)
			Expect(errors.Is(err, quant.ErrDimensionMismatch)).To(BeTrue())
		})

		It("fails when there are more return series than symbols", func() {
			_, err := quant.ComputeMetrics([]string{"A"}, []float64{1}, rets, params)
			Expect(errors.Is(err, quant.ErrDimensionMismatch)).To(BeTrue())
		})

		It("fails when an evaluator receives the wrong number of weights", func() {
			ev, err := quant.NewEvaluator([]string{"A", "B"}, rets, params)
			Expect(err).To(BeNil())
			_, err = ev.Evaluate([]float64{0.2, 0.3, 0.5})
			Expect(errors.Is(err, quant.ErrDimensionMismatch)).To(BeTrue())
		})

		It("fails with insufficient data for a single observation", func() {
			_, err := quant.ComputeMetrics([]string{"A"}, []float64{1}, [][]float64{{0.01}}, params)
			Expect(errors.Is(err, quant.ErrInsufficientData)).To(BeTrue())
		})
	})
})
