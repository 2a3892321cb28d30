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
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	MinAssets = 2
	MaxAssets = 8

	// weightTolerance is how far the total weight may be from 1 (or 100 when
	// given in percent) before the portfolio is rejected
	weightTolerance = 0.01
)

// Holding is a single asset of a portfolio and its target weight
type Holding struct {
	Symbol string  `toml:"symbol" json:"symbol"`
	Weight float64 `toml:"weight" json:"weight"`

	// Price is the latest known price; used as the start of mock history
	Price float64 `toml:"price,omitempty" json:"price,omitempty"`
}

// Portfolio is a named set of holdings
type Portfolio struct {
	Name     string     `toml:"name" json:"name"`
	Holdings []*Holding `toml:"holdings" json:"holdings"`
}

// Load reads a portfolio definition from a TOML file and normalizes it
func Load(fn string) (*Portfolio, error) {
	doc, err := os.ReadFile(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("could not read portfolio file")
		return nil, err
	}

	p, err := Parse(doc)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("invalid portfolio file")
		return nil, err
	}

	return p, nil
}

// Parse decodes a TOML portfolio definition and normalizes it
func Parse(doc []byte) (*Portfolio, error) {
	p := &Portfolio{}
	if err := toml.Unmarshal(doc, p); err != nil {
		return nil, err
	}

	if err := p.Normalize(); err != nil {
		return nil, err
	}

	return p, nil
}

// New creates a normalized portfolio from symbols and weights
func New(name string, symbols []string, weights []float64) (*Portfolio, error) {
	if len(symbols) != len(weights) {
		return nil, fmt.Errorf("%w: %d symbols but %d weights", ErrInvalidWeight, len(symbols), len(weights))
	}

	p := &Portfolio{
		Name:     name,
		Holdings: make([]*Holding, len(symbols)),
	}
	for idx, symbol := range symbols {
		p.Holdings[idx] = &Holding{
			Symbol: symbol,
			Weight: weights[idx],
		}
	}

	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// Normalize validates the portfolio and rewrites its weights as fractions that
// sum to 1. Symbols are trimmed and upper-cased.
//
// Weights may be given as fractions (summing to 1) or percentages (summing to
// 100). If every weight is 0 the portfolio is equal weighted.
func (p *Portfolio) Normalize() error {
	if len(p.Holdings) < MinAssets {
		return fmt.Errorf("%w: got %d", ErrTooFewAssets, len(p.Holdings))
	}

	if len(p.Holdings) > MaxAssets {
		return fmt.Errorf("%w: got %d", ErrTooManyAssets, len(p.Holdings))
	}

	seen := make(map[string]bool, len(p.Holdings))
	total := 0.0
	for _, holding := range p.Holdings {
		holding.Symbol = strings.ToUpper(strings.TrimSpace(holding.Symbol))
		if holding.Symbol == "" {
			return ErrEmptySymbol
		}

		if seen[holding.Symbol] {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, holding.Symbol)
		}
		seen[holding.Symbol] = true

		if holding.Weight < 0 || math.IsNaN(holding.Weight) || math.IsInf(holding.Weight, 0) {
			return fmt.Errorf("%w: %s has weight %g", ErrInvalidWeight, holding.Symbol, holding.Weight)
		}

		if holding.Price < 0 || math.IsNaN(holding.Price) || math.IsInf(holding.Price, 0) {
			return fmt.Errorf("%w: %s has price %g", ErrInvalidPrice, holding.Symbol, holding.Price)
		}

		total += holding.Weight
	}

	if total == 0 {
		for _, holding := range p.Holdings {
			holding.Weight = 1.0 / float64(len(p.Holdings))
		}
		return nil
	}

	scale := 1.0
	if total > 1+weightTolerance {
		scale = 100.0
	}

	if math.Abs(total/scale-1) > weightTolerance {
		if scale == 100.0 {
			return fmt.Errorf("%w: weights sum to %g%%, expected 100%%", ErrInvalidWeight, total)
		}
		return fmt.Errorf("%w: weights sum to %g, expected 1", ErrInvalidWeight, total)
	}

	for _, holding := range p.Holdings {
		holding.Weight /= total
	}

	return nil
}

// Symbols returns the holding symbols in portfolio order
func (p *Portfolio) Symbols() []string {
	symbols := make([]string, len(p.Holdings))
	for idx, holding := range p.Holdings {
		symbols[idx] = holding.Symbol
	}
	return symbols
}

// Weights returns the holding weights in portfolio order
func (p *Portfolio) Weights() []float64 {
	weights := make([]float64, len(p.Holdings))
	for idx, holding := range p.Holdings {
		weights[idx] = holding.Weight
	}
	return weights
}

// BasePrices returns the known price of each holding that has one
func (p *Portfolio) BasePrices() map[string]float64 {
	prices := make(map[string]float64, len(p.Holdings))
	for _, holding := range p.Holdings {
		if holding.Price > 0 {
			prices[holding.Symbol] = holding.Price
		}
	}
	return prices
}
