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
	"math"

	"gonum.org/v1/gonum/floats"
)

// OptimizeOptions configures the Monte Carlo search performed by Optimize
type OptimizeOptions struct {
	// Iterations is the number of random allocations to sample; DefaultIterations
	// is used when Iterations <= 0
	Iterations int

	// Random is the uniform [0, 1) source used to draw allocations
	Random RandomSource

	// Params are the market constants; unset fields are filled in by
	// Params.WithDefaults
	Params Params

	// OnSample, if set, is called with every evaluated candidate
	OnSample func(iteration int, metrics *PortfolioMetrics)
}

// Optimization is the result of a Monte Carlo search
type Optimization struct {
	Weights    []float64         `json:"weights"`
	Metrics    *PortfolioMetrics `json:"metrics"`
	Iterations int               `json:"iterations"`

	// Improved is false when no sampled allocation produced a Sharpe ratio and
	// the equal weight starting point was returned
	Improved bool `json:"improved"`
}

// Optimize searches for the allocation with the highest Sharpe ratio by
// sampling random points on the probability simplex. Each candidate is drawn
// as n independent uniforms normalized by their sum. A candidate replaces the
// current best only if its Sharpe ratio is strictly greater, so ties keep the
// earliest allocation found.
//
// The search starts from the equal weight allocation with a Sharpe ratio of
// -Inf; the first candidate with a finite Sharpe ratio always replaces it.
func Optimize(symbols []string, returns [][]float64, opts OptimizeOptions) (*Optimization, error) {
	if opts.Random == nil {
		return nil, ErrNoRandomSource
	}

	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	ev, err := NewEvaluator(symbols, returns, opts.Params)
	if err != nil {
		return nil, err
	}

	n := ev.Len()
	bestWeights := EqualWeight(n)
	bestSharpe := math.Inf(-1)
	var bestMetrics *PortfolioMetrics
	improved := false

	for ii := 0; ii < iterations; ii++ {
		weights := simplexSample(n, opts.Random)

		metrics, err := ev.Evaluate(weights)
		if err != nil {
			return nil, err
		}

		if opts.OnSample != nil {
			opts.OnSample(ii, metrics)
		}

		if metrics.SharpeRatio > bestSharpe {
			bestSharpe = metrics.SharpeRatio
			bestWeights = weights
			bestMetrics = metrics
			improved = true
		}
	}

	if bestMetrics == nil {
		bestMetrics, err = ev.Evaluate(bestWeights)
		if err != nil {
			return nil, err
		}
	}

	return &Optimization{
		Weights:    bestWeights,
		Metrics:    bestMetrics,
		Iterations: iterations,
		Improved:   improved,
	}, nil
}

// MaxSharpeWeights returns the weights of the highest Sharpe ratio allocation
// found in iterations random samples, using the default market parameters
func MaxSharpeWeights(symbols []string, returns [][]float64, iterations int, rnd RandomSource) ([]float64, error) {
	res, err := Optimize(symbols, returns, OptimizeOptions{
		Iterations: iterations,
		Random:     rnd,
		Params:     DefaultParams(),
	})
	if err != nil {
		return nil, err
	}
	return res.Weights, nil
}

// simplexSample draws n uniforms from rnd and normalizes them by their sum.
// Draws of exactly 0 are repeated so every weight is strictly positive.
func simplexSample(n int, rnd RandomSource) []float64 {
	draws := make([]float64, n)
	for idx := range draws {
		v := rnd.Float64()
		for v == 0 {
			v = rnd.Float64()
		}
		draws[idx] = v
	}

	total := floats.Sum(draws)
	for idx := range draws {
		draws[idx] /= total
	}
	return draws
}
