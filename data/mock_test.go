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

package data_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pvquant/data"
	"github.com/penny-vault/pvquant/quant"
	"golang.org/x/exp/rand"
)

var _ = Describe("Mock", func() {
	var (
		ctx      context.Context
		provider *data.MockProvider
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = &data.MockProvider{
			BasePrices: map[string]float64{"AAPL": 190.5},
			Days:       30,
			End:        date(2022, 7, 10),
			Random:     rand.New(rand.NewSource(42)),
		}
	})

	It("is a mock provider", func() {
		Expect(provider.DataType()).To(Equal(data.SourceMock))
	})

	It("generates one column per symbol", func() {
		df, err := provider.GetPrices(ctx, []string{"AAPL", "MSFT"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())
		Expect(df.ColNames).To(Equal([]string{"AAPL", "MSFT"}))
		Expect(df.Len()).To(Equal(30))
		Expect(df.Vals[0]).To(HaveLen(30))
		Expect(df.Vals[1]).To(HaveLen(30))
	})

	It("starts at the known price or the default base price", func() {
		df, err := provider.GetPrices(ctx, []string{"AAPL", "MSFT"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())
		Expect(df.Vals[0][0]).To(Equal(190.5))
		Expect(df.Vals[1][0]).To(Equal(data.DefaultBasePrice))
	})

	It("ends on the last weekday on or before End", func() {
		df, err := provider.GetPrices(ctx, []string{"AAPL"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())
		Expect(df.End()).To(Equal(date(2022, 7, 8)))
		for _, dt := range df.Index {
			Expect(dt.Weekday()).ToNot(BeElementOf(time.Saturday, time.Sunday))
		}
	})

	It("uses the default number of days", func() {
		provider.Days = 0
		df, err := provider.GetPrices(ctx, []string{"AAPL"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())
		Expect(df.Len()).To(Equal(quant.DefaultMockDays))
	})

	It("is reproducible with the same seed", func() {
		df1, err := provider.GetPrices(ctx, []string{"AAPL", "MSFT"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())

		provider.Random = rand.New(rand.NewSource(42))
		df2, err := provider.GetPrices(ctx, []string{"AAPL", "MSFT"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())
		Expect(df2.Vals).To(Equal(df1.Vals))
	})

	It("produces prices usable by the returns calculator", func() {
		df, err := provider.GetPrices(ctx, []string{"AAPL", "MSFT"}, time.Time{}, time.Time{})
		Expect(err).To(BeNil())
		for _, col := range df.Vals {
			rets, err := quant.Returns(col)
			Expect(err).To(BeNil())
			Expect(rets).To(HaveLen(29))
		}
	})

	It("errors without a random source", func() {
		provider.Random = nil
		_, err := provider.GetPrices(ctx, []string{"AAPL"}, time.Time{}, time.Time{})
		Expect(errors.Is(err, quant.ErrNoRandomSource)).To(BeTrue())
	})
})

var _ = Describe("TradingDays", func() {
	It("skips weekends", func() {
		Expect(data.TradingDays(date(2022, 7, 11), 3)).To(Equal([]time.Time{
			date(2022, 7, 7),
			date(2022, 7, 8),
			date(2022, 7, 11),
		}))
	})

	It("drops the time of day", func() {
		days := data.TradingDays(time.Date(2022, 7, 8, 15, 30, 0, 0, time.UTC), 1)
		Expect(days).To(Equal([]time.Time{date(2022, 7, 8)}))
	})

	It("returns nothing for n <= 0", func() {
		Expect(data.TradingDays(date(2022, 7, 8), 0)).To(BeEmpty())
	})
})
