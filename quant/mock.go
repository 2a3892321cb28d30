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
)

const (
	mockDriftCenter = 0.48
	mockStepScale   = 0.03
)

// MockPriceHistory generates a synthetic price path with a geometric random
// walk starting at base:
//
//	p[t] = p[t-1] * (1 + (U - 0.48) * 0.03)
//
// Each step lies in roughly [-1.44%, +1.56%] with an expected daily return of
// about 0.06%. The returned slice has days values; DefaultMockDays is used when
// days <= 0. No floor is applied so a long run of losses can drive the price
// towards zero.
func MockPriceHistory(base float64, days int, rnd RandomSource) ([]float64, error) {
	if !(base > 0) || math.IsInf(base, 0) {
		return nil, fmt.Errorf("%w: base = %g", ErrInvalidPrice, base)
	}

	if rnd == nil {
		return nil, ErrNoRandomSource
	}

	if days <= 0 {
		days = DefaultMockDays
	}

	prices := make([]float64, days)
	prices[0] = base
	for ii := 1; ii < days; ii++ {
		r := (rnd.Float64() - mockDriftCenter) * mockStepScale
		prices[ii] = prices[ii-1] * (1 + r)
	}

	return prices, nil
}
