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
	"errors"
	"time"

	"github.com/penny-vault/pvquant/dataframe"
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Manager queries price providers in order and returns the first usable
// history. Register the mock provider last to fall back to synthetic prices.
type Manager struct {
	providers []Provider
}

// NewManager creates a manager that tries providers in the order given
func NewManager(providers ...Provider) *Manager {
	return &Manager{
		providers: providers,
	}
}

// RegisterDataProvider appends a provider to the end of the fallback chain
func (manager *Manager) RegisterDataProvider(p Provider) {
	manager.providers = append(manager.providers, p)
}

// Providers returns the data types of the registered providers in order
func (manager *Manager) Providers() []string {
	res := make([]string, len(manager.providers))
	for idx, p := range manager.providers {
		res[idx] = p.DataType()
	}
	return res
}

// GetPrices returns the price history for symbols along with the data type of
// the provider that produced it. Provider failures are logged and the next
// provider is tried; if every provider fails the errors are joined.
func (manager *Manager) GetPrices(ctx context.Context, symbols []string, begin, end time.Time) (*dataframe.DataFrame[time.Time], string, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "manager.GetPrices")
	defer span.End()

	if len(manager.providers) == 0 {
		span.SetStatus(codes.Error, "no providers")
		return nil, "", ErrNoProviders
	}

	subLog := log.With().Strs("Symbols", symbols).Logger()

	var errs []error
	for _, provider := range manager.providers {
		df, err := provider.GetPrices(ctx, symbols, begin, end)
		if err != nil {
			subLog.Warn().Err(err).Str("Provider", provider.DataType()).Msg("price provider failed, trying next provider")
			errs = append(errs, err)
			continue
		}

		span.SetAttributes(attribute.String("provider", provider.DataType()), attribute.Int("rows", df.Len()))
		subLog.Info().Str("Provider", provider.DataType()).Int("Rows", df.Len()).Int("Columns", df.ColCount()).Time("Start", df.Start()).Time("End", df.End()).Msg("loaded price history")
		return df, provider.DataType(), nil
	}

	err := errors.Join(errs...)
	span.RecordError(err)
	span.SetStatus(codes.Error, "all price providers failed")
	return nil, "", err
}
