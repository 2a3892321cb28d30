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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"

	"github.com/penny-vault/pvquant/quant"
)

type constantSource float64

func (c constantSource) Float64() float64 {
	return float64(c)
}

var _ = Describe("Mock price history", func() {
	It("starts at the base price and has the requested length", func() {
		prices, err := quant.MockPriceHistory(100, 252, rand.New(rand.NewSource(1)))
		Expect(err).To(BeNil())
		Expect(prices).To(HaveLen(252))
		Expect(prices[0]).To(Equal(100.0))
	})

	It("uses the default length when days is not positive", func() {
		prices, err := quant.MockPriceHistory(50, 0, rand.New(rand.NewSource(1)))
		Expect(err).To(BeNil())
		Expect(prices).To(HaveLen(quant.DefaultMockDays))
	})

	It("returns only the base price for a single day", func() {
		prices, err := quant.MockPriceHistory(42, 1, rand.New(rand.NewSource(1)))
		Expect(err).To(BeNil())
		Expect(prices).To(Equal([]float64{42}))
	})

	It("keeps each daily move within the step bounds", func() {
		prices, err := quant.MockPriceHistory(100, 1000, rand.New(rand.NewSource(99)))
		Expect(err).To(BeNil())
		for ii := 1; ii < len(prices); ii++ {
			r := prices[ii]/prices[ii-1] - 1
			Expect(r).Should(BeNumerically(">=", -0.0144-1e-12))
			Expect(r).Should(BeNumerically("<", 0.0156+1e-12))
		}
	})

	It("applies the drift formula to each draw", func() {
		prices, err := quant.MockPriceHistory(100, 3, constantSource(0.98))
		Expect(err).To(BeNil())
		Expect(prices[1]).Should(BeNumerically("~", 100*1.015, 1e-9))
		Expect(prices[2]).Should(BeNumerically("~", 100*1.015*1.015, 1e-9))
	})

	It("is reproducible with the same seed", func() {
		a, err := quant.MockPriceHistory(100, 252, rand.New(rand.NewSource(5)))
		Expect(err).To(BeNil())
		b, err := quant.MockPriceHistory(100, 252, rand.New(rand.NewSource(5)))
		Expect(err).To(BeNil())
		Expect(a).To(Equal(b))
	})

	It("is overwhelmingly positive across many runs", func() {
		rnd := rand.New(rand.NewSource(2023))
		for run := 0; run < 200; run++ {
			prices, err := quant.MockPriceHistory(100, 252, rnd)
			Expect(err).To(BeNil())
			for _, p := range prices {
				Expect(p).Should(BeNumerically(">", 0))
			}
		}
	})

	DescribeTable("rejects an invalid base price",
		func(base float64) {
			_, err := quant.MockPriceHistory(base, 10, rand.New(rand.NewSource(1)))
			Expect(errors.Is(err, quant.ErrInvalidPrice)).To(BeTrue())
		},
		Entry("zero", 0.0),
		Entry("negative", -10.0),
	)

	It("requires a random source", func() {
		_, err := quant.MockPriceHistory(100, 10, nil)
		Expect(errors.Is(err, quant.ErrNoRandomSource)).To(BeTrue())
	})
})
