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

// Returns converts a price history into simple periodic returns, i.e.
//
//	r[i] = (p[i+1] - p[i]) / p[i]
//
// The result has one less value than prices.
func Returns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInsufficientData, len(prices))
	}

	for idx, p := range prices {
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: prices[%d] = %g", ErrInvalidPrice, idx, p)
		}
	}

	rets := make([]float64, len(prices)-1)
	for ii := 1; ii < len(prices); ii++ {
		rets[ii-1] = (prices[ii] - prices[ii-1]) / prices[ii-1]
	}

	return rets, nil
}

// NewAssetSeries computes the returns of prices and pairs them with symbol
func NewAssetSeries(symbol string, prices []float64) (*AssetSeries, error) {
	rets, err := Returns(prices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}
	return &AssetSeries{
		Symbol:  symbol,
		Returns: rets,
	}, nil
}
