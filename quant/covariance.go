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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Covariance computes the unbiased sample covariance matrix of the return
// series. Entry (i, j) is
//
//	∑ (r_i[t] - mean(r_i)) * (r_j[t] - mean(r_j)) / (M - 1)
//
// where M is the common length of the series. Every entry, including the mirror
// (j, i) of an off-diagonal entry, is computed from the series so the matrix is
// symmetric by construction.
func Covariance(returns [][]float64) (*mat.Dense, error) {
	m, err := sampleLength(returns)
	if err != nil {
		return nil, err
	}

	if m == 1 {
		// M - 1 == 0; this is both too little data and an undefined estimator
		return nil, fmt.Errorf("%w: %w", ErrDegenerateSample, ErrInsufficientData)
	}

	n := len(returns)
	cov := mat.NewDense(n, n, nil)
	for ii := 0; ii < n; ii++ {
		for jj := 0; jj < n; jj++ {
			cov.Set(ii, jj, stat.Covariance(returns[ii], returns[jj], nil))
		}
	}

	return cov, nil
}

// AnnualizedCovariance scales the sample covariance of daily returns by
// periodsPerYear
func AnnualizedCovariance(returns [][]float64, periodsPerYear float64) (*mat.Dense, error) {
	cov, err := Covariance(returns)
	if err != nil {
		return nil, err
	}
	cov.Scale(periodsPerYear, cov)
	return cov, nil
}

// sampleLength checks that every series has the same number of observations and
// returns it
func sampleLength(returns [][]float64) (int, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: no return series", ErrInsufficientData)
	}

	m := len(returns[0])
	for idx, r := range returns {
		if len(r) != m {
			return 0, fmt.Errorf("%w: return series %d has %d observations, expected %d", ErrDimensionMismatch, idx, len(r), m)
		}
	}

	if m == 0 {
		return 0, fmt.Errorf("%w: return series are empty", ErrInsufficientData)
	}

	return m, nil
}
