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

import "github.com/rs/zerolog"

func (sw SymbolWeight) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Symbol", sw.Symbol).Float64("Weight", sw.Weight)
}

type symbolWeights []SymbolWeight

func (arr symbolWeights) MarshalZerologArray(a *zerolog.Array) {
	for _, sw := range arr {
		a.Object(sw)
	}
}

func (metrics *PortfolioMetrics) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("ExpectedReturn", metrics.ExpectedReturn).
		Float64("Variance", metrics.Variance).
		Float64("Volatility", metrics.Volatility).
		Float64("SharpeRatio", metrics.SharpeRatio).
		Array("Weights", symbolWeights(metrics.Weights))
}

func (o *Optimization) MarshalZerologObject(e *zerolog.Event) {
	e.Int("Iterations", o.Iterations).Bool("Improved", o.Improved)
	if o.Metrics != nil {
		e.Object("Metrics", o.Metrics)
	}
}
