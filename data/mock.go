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

package data

import (
	"context"
	"fmt"
	"time"

	"github.com/penny-vault/pvquant/dataframe"
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/penny-vault/pvquant/quant"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MockProvider generates synthetic price histories with quant.MockPriceHistory.
// Each symbol starts at its entry in BasePrices or DefaultBasePrice.
type MockProvider struct {
	BasePrices map[string]float64
	Days       int
	End        time.Time
	Random     quant.RandomSource
}

// NewMock creates a mock provider ending today
func NewMock(basePrices map[string]float64, days int, rnd quant.RandomSource) *MockProvider {
	return &MockProvider{
		BasePrices: basePrices,
		Days:       days,
		End:        time.Now().UTC(),
		Random:     rnd,
	}
}

func (p *MockProvider) DataType() string {
	return SourceMock
}

// GetPrices draws a price path per symbol. Symbols are generated in request
// order from the shared random source so a seeded source reproduces the same
// history. The date range is ignored; the history always ends at p.End.
func (p *MockProvider) GetPrices(ctx context.Context, symbols []string, begin, end time.Time) (*dataframe.DataFrame[time.Time], error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "mock.GetPrices")
	defer span.End()

	days := p.Days
	if days <= 0 {
		days = quant.DefaultMockDays
	}
	span.SetAttributes(attribute.StringSlice("symbols", symbols), attribute.Int("days", days))

	if !begin.IsZero() || !end.IsZero() {
		log.Debug().Time("Begin", begin).Time("End", end).Msg("mock price history ignores the requested date range")
	}

	df := &dataframe.DataFrame[time.Time]{
		Index:    TradingDays(p.End, days),
		ColNames: []string{},
		Vals:     [][]float64{},
	}

	for _, symbol := range symbols {
		base, ok := p.BasePrices[symbol]
		if !ok || base <= 0 {
			base = DefaultBasePrice
		}

		prices, err := quant.MockPriceHistory(base, days, p.Random)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "mock price generation failed")
			return nil, fmt.Errorf("mock history for %s: %w", symbol, err)
		}

		df.Insert(symbol, prices)
	}

	log.Debug().Strs("Symbols", symbols).Int("Days", days).Time("End", df.End()).Msg("generated mock price history")
	return df, nil
}
