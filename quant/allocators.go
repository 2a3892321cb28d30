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
	"gonum.org/v1/gonum/stat"
)

// EqualWeight allocates 1/n to each of n assets
func EqualWeight(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	w := make([]float64, n)
	for idx := range w {
		w[idx] = 1.0 / float64(n)
	}
	return w
}

// MinVarianceApprox approximates the minimum variance portfolio with
// inverse-variance weighting:
//
//	σi = stdev(daily returns) * sqrt(periodsPerYear)
//	wi = (1 / σi²) / ∑ (1 / σj²)
//
// Unset fields of params are filled in by Params.WithDefaults.
// Cross-asset covariance is ignored so this is only the exact minimum variance
// solution when the assets are uncorrelated. Assets with zero volatility take
// the entire allocation, split equally between them.
func MinVarianceApprox(returns [][]float64, params Params) ([]float64, error) {
	if len(returns) == 0 {
		return nil, fmt.Errorf("%w: no return series", ErrInsufficientData)
	}

	params = params.WithDefaults()
	invVar := make([]float64, len(returns))
	riskless := make([]int, 0)
	for idx, r := range returns {
		if len(r) < 2 {
			return nil, fmt.Errorf("%w: return series %d has %d observations, need at least 2", ErrInsufficientData, idx, len(r))
		}

		vol := stat.StdDev(r, nil) * math.Sqrt(params.PeriodsPerYear)
		if vol == 0 {
			riskless = append(riskless, idx)
			continue
		}
		invVar[idx] = 1.0 / (vol * vol)
	}

	if len(riskless) > 0 {
		w := make([]float64, len(returns))
		for _, idx := range riskless {
			w[idx] = 1.0 / float64(len(riskless))
		}
		return w, nil
	}

	floats.Scale(1.0/floats.Sum(invVar), invVar)
	return invVar, nil
}

// ValidateWeights reports whether weights form a long-only allocation that sums
// to 1 within tol
func ValidateWeights(weights []float64, tol float64) bool {
	if len(weights) == 0 {
		return false
	}

	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return false
		}
	}

	return math.Abs(floats.Sum(weights)-1.0) <= tol
}
