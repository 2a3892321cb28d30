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

package portfolio_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvquant/dataframe"
	"github.com/penny-vault/pvquant/portfolio"
	"github.com/penny-vault/pvquant/quant"
	"golang.org/x/exp/rand"
)

func mockFrame(seed uint64, days int, symbols ...string) *dataframe.DataFrame[time.Time] {
	rnd := rand.New(rand.NewSource(seed))
	df := &dataframe.DataFrame[time.Time]{}
	dt := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for ii := 0; ii < days; ii++ {
		df.Index = append(df.Index, dt.AddDate(0, 0, ii))
	}

	for _, symbol := range symbols {
		prices, err := quant.MockPriceHistory(100, days, rnd)
		Expect(err).To(BeNil())
		df.Insert(symbol, prices)
	}
	return df
}

var _ = Describe("Analysis", func() {
	var (
		ctx    context.Context
		p      *portfolio.Portfolio
		prices *dataframe.DataFrame[time.Time]
		opts   portfolio.AnalysisOptions
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		p, err = portfolio.New("balanced", []string{"SPY", "TLT"}, []float64{40, 60})
		Expect(err).To(BeNil())
		prices = mockFrame(11, 120, "SPY", "TLT", "GLD")
		opts = portfolio.AnalysisOptions{
			Params:     quant.DefaultParams(),
			Iterations: 5000,
			Random:     rand.New(rand.NewSource(3)),
			Source:     "mock",
		}
	})

	Context("when evaluating the user allocation", func() {
		It("matches ComputeMetrics", func() {
			analysis, err := portfolio.Evaluate(ctx, p, prices, opts)
			Expect(err).To(BeNil())

			spy, _ := quant.Returns(prices.Vals[0])
			tlt, _ := quant.Returns(prices.Vals[1])
			expected, err := quant.ComputeMetrics([]string{"SPY", "TLT"}, []float64{0.4, 0.6}, [][]float64{spy, tlt}, quant.DefaultParams())
			Expect(err).To(BeNil())

			Expect(analysis.User.ExpectedReturn).To(BeNumerically("~", expected.ExpectedReturn, 1e-12))
			Expect(analysis.User.Volatility).To(BeNumerically("~", expected.Volatility, 1e-12))
			Expect(analysis.User.SharpeRatio).To(BeNumerically("~", expected.SharpeRatio, 1e-12))
			Expect(analysis.Optimized).To(BeNil())
		})

		It("records where the prices came from", func() {
			analysis, err := portfolio.Evaluate(ctx, p, prices, opts)
			Expect(err).To(BeNil())
			Expect(analysis.ID).ToNot(Equal(uuid.Nil))
			Expect(analysis.Name).To(Equal("balanced"))
			Expect(analysis.Symbols).To(Equal([]string{"SPY", "TLT"}))
			Expect(analysis.Source).To(Equal("mock"))
			Expect(analysis.Observations).To(Equal(120))
			Expect(analysis.Start).To(Equal(prices.Start()))
			Expect(analysis.End).To(Equal(prices.End()))
		})

		It("uses the default parameters when none are given", func() {
			opts.Params = quant.Params{}
			analysis, err := portfolio.Evaluate(ctx, p, prices, opts)
			Expect(err).To(BeNil())
			Expect(analysis.Params).To(Equal(quant.DefaultParams()))
		})

		It("keeps an explicit risk free rate", func() {
			opts.Params = quant.Params{RiskFreeRate: 0.02}
			analysis, err := portfolio.Evaluate(ctx, p, prices, opts)
			Expect(err).To(BeNil())
			Expect(analysis.Params).To(Equal(quant.Params{RiskFreeRate: 0.02, PeriodsPerYear: quant.TradingDaysPerYear}))
		})
	})

	Context("when analyzing", func() {
		It("fills every allocation", func() {
			analysis, err := portfolio.Analyze(ctx, p, prices, opts)
			Expect(err).To(BeNil())
			Expect(analysis.User).ToNot(BeNil())
			Expect(analysis.Optimized).ToNot(BeNil())
			Expect(analysis.EqualWeight).ToNot(BeNil())
			Expect(analysis.MinVariance).ToNot(BeNil())
			Expect(analysis.Iterations).To(Equal(5000))
			Expect(quant.ValidateWeights(analysis.Optimized.WeightVector(), 1e-9)).To(BeTrue())
			Expect(quant.ValidateWeights(analysis.MinVariance.WeightVector(), 1e-9)).To(BeTrue())
			Expect(analysis.EqualWeight.WeightVector()).To(Equal([]float64{0.5, 0.5}))
		})

		It("finds an allocation at least as good as the user allocation", func() {
			analysis, err := portfolio.Analyze(ctx, p, prices, opts)
			Expect(err).To(BeNil())
			Expect(analysis.Optimized.SharpeRatio).To(BeNumerically(">=", analysis.User.SharpeRatio-0.05))
			Expect(analysis.Optimized.SharpeRatio).To(BeNumerically(">=", analysis.EqualWeight.SharpeRatio-0.05))
			Expect(analysis.SharpeImprovement()).To(BeNumerically("~", analysis.Optimized.SharpeRatio-analysis.User.SharpeRatio, 1e-12))
		})

		It("is reproducible with the same seed", func() {
			first, err := portfolio.Analyze(ctx, p, prices, opts)
			Expect(err).To(BeNil())

			opts.Random = rand.New(rand.NewSource(3))
			second, err := portfolio.Analyze(ctx, p, prices, opts)
			Expect(err).To(BeNil())
			Expect(second.Optimized).To(Equal(first.Optimized))
			Expect(second.ID).ToNot(Equal(first.ID))
		})

		It("errors without a random source", func() {
			opts.Random = nil
			_, err := portfolio.Analyze(ctx, p, prices, opts)
			Expect(errors.Is(err, quant.ErrNoRandomSource)).To(BeTrue())
		})
	})

	Context("with unusable prices", func() {
		It("errors without a price history", func() {
			_, err := portfolio.Analyze(ctx, p, nil, opts)
			Expect(errors.Is(err, portfolio.ErrNoPrices)).To(BeTrue())
		})

		It("errors when a symbol has no prices", func() {
			prices = mockFrame(11, 120, "SPY", "GLD")
			_, err := portfolio.Analyze(ctx, p, prices, opts)
			Expect(errors.Is(err, dataframe.ErrColumnNotFound)).To(BeTrue())
		})

		It("errors when there is a single price", func() {
			prices = mockFrame(11, 1, "SPY", "TLT")
			_, err := portfolio.Evaluate(ctx, p, prices, opts)
			Expect(errors.Is(err, quant.ErrInsufficientData)).To(BeTrue())
		})

		It("errors on a non-positive price", func() {
			prices.Vals[1][10] = 0
			_, err := portfolio.Evaluate(ctx, p, prices, opts)
			Expect(errors.Is(err, quant.ErrInvalidPrice)).To(BeTrue())
		})
	})

	DescribeTable("rates Sharpe ratios", func(sharpe float64, expected string) {
		Expect(portfolio.Rating(sharpe)).To(Equal(expected))
	},
		Entry("above 1", 1.2, portfolio.RatingExcellent),
		Entry("exactly 1", 1.0, portfolio.RatingPositive),
		Entry("between 0 and 1", 0.4, portfolio.RatingPositive),
		Entry("exactly 0", 0.0, portfolio.RatingNegative),
		Entry("below 0", -0.3, portfolio.RatingNegative),
	)
})
