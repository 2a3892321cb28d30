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

package portfolio

import (
	"github.com/rs/zerolog"
)

func (h *Holding) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Symbol", h.Symbol).Float64("Weight", h.Weight)
	if h.Price > 0 {
		e.Float64("Price", h.Price)
	}
}

type holdings []*Holding

func (arr holdings) MarshalZerologArray(a *zerolog.Array) {
	for _, h := range arr {
		a.Object(h)
	}
}

func (p *Portfolio) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Name", p.Name).Array("Holdings", holdings(p.Holdings))
}

func (a *Analysis) MarshalZerologObject(e *zerolog.Event) {
	e.Str("AnalysisID", a.ID.String()).
		Str("Name", a.Name).
		Strs("Symbols", a.Symbols).
		Str("Source", a.Source).
		Time("Start", a.Start).
		Time("End", a.End).
		Int("Observations", a.Observations).
		Int("Iterations", a.Iterations)

	if a.User != nil {
		e.Object("User", a.User)
	}
	if a.Optimized != nil {
		e.Object("Optimized", a.Optimized).Float64("SharpeImprovement", a.SharpeImprovement())
	}
	if a.EqualWeight != nil {
		e.Object("EqualWeight", a.EqualWeight)
	}
	if a.MinVariance != nil {
		e.Object("MinVariance", a.MinVariance)
	}
}
