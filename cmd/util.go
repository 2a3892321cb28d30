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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/penny-vault/pvquant/data"
	"github.com/penny-vault/pvquant/dataframe"
	"github.com/penny-vault/pvquant/portfolio"
	"github.com/penny-vault/pvquant/quant"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"
)

var (
	ErrInvalidSymbolPrice = errors.New("expected SYMBOL or SYMBOL=PRICE")
	ErrInvalidDate        = errors.New("invalid date")
)

// newRandom returns the random source for this run. A seed of 0 is replaced
// by the current time; the seed is logged so a run can be reproduced.
func newRandom() *rand.Rand {
	seed := viper.GetUint64("random.seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info().Uint64("Seed", seed).Msg("seeding random source")
	return rand.New(rand.NewSource(seed))
}

// marketParams reads the market assumptions from the configuration
func marketParams() quant.Params {
	params := quant.DefaultParams()
	if viper.IsSet("market.risk_free_rate") {
		params.RiskFreeRate = viper.GetFloat64("market.risk_free_rate")
	}
	if ppy := viper.GetFloat64("market.periods_per_year"); ppy > 0 {
		params.PeriodsPerYear = ppy
	}
	return params
}

// dateRange parses the begin and end dates of the price history; either may
// be blank
func dateRange() (time.Time, time.Time, error) {
	var begin, end time.Time
	var err error

	if s := viper.GetString("prices.begin"); s != "" {
		if begin, err = time.Parse(data.DateFormat, s); err != nil {
			return begin, end, fmt.Errorf("%w: begin %q: %w", ErrInvalidDate, s, err)
		}
	}

	if s := viper.GetString("prices.end"); s != "" {
		if end, err = time.Parse(data.DateFormat, s); err != nil {
			return begin, end, fmt.Errorf("%w: end %q: %w", ErrInvalidDate, s, err)
		}
	}

	return begin, end, nil
}

// newManager builds the price provider chain: the csv file when one is
// configured followed by mock prices
func newManager(p *portfolio.Portfolio, rnd quant.RandomSource, end time.Time) *data.Manager {
	manager := data.NewManager()
	if fn := viper.GetString("prices.file"); fn != "" {
		manager.RegisterDataProvider(data.NewCSV(fn))
	}

	mock := data.NewMock(p.BasePrices(), viper.GetInt("mock.days"), rnd)
	if !end.IsZero() {
		mock.End = end
	}
	manager.RegisterDataProvider(mock)

	return manager
}

// loadHistory returns the price history for the holdings of p and the data
// type of the provider it came from
func loadHistory(ctx context.Context, p *portfolio.Portfolio, rnd quant.RandomSource) (*dataframe.DataFrame[time.Time], string, error) {
	begin, end, err := dateRange()
	if err != nil {
		return nil, "", err
	}

	manager := newManager(p, rnd, end)
	return manager.GetPrices(ctx, p.Symbols(), begin, end)
}

// parseSymbolPrices parses SYMBOL or SYMBOL=PRICE arguments. Symbols without a
// price start at data.DefaultBasePrice.
func parseSymbolPrices(args []string) ([]string, map[string]float64, error) {
	symbols := make([]string, 0, len(args))
	prices := make(map[string]float64, len(args))

	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		symbol := strings.ToUpper(strings.TrimSpace(parts[0]))
		if symbol == "" {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidSymbolPrice, arg)
		}

		if _, ok := prices[symbol]; ok {
			return nil, nil, fmt.Errorf("%w: %s", portfolio.ErrDuplicateSymbol, symbol)
		}

		price := data.DefaultBasePrice
		if len(parts) == 2 {
			var err error
			price, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil || !(price > 0) || math.IsInf(price, 0) {
				return nil, nil, fmt.Errorf("%w: %q", ErrInvalidSymbolPrice, arg)
			}
		}

		symbols = append(symbols, symbol)
		prices[symbol] = price
	}

	return symbols, prices, nil
}
