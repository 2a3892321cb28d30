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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/penny-vault/pvquant/dataframe"
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	rdf "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CSVProvider reads price histories from a local csv file with a DATE column
// followed by one column of prices per symbol
type CSVProvider struct {
	Path string
}

// NewCSV creates a provider that reads prices from the csv file at path
func NewCSV(path string) *CSVProvider {
	return &CSVProvider{
		Path: path,
	}
}

func (p *CSVProvider) DataType() string {
	return SourceCSV
}

// GetPrices loads the csv file and returns the requested symbols restricted to
// [begin, end]. A zero begin or end leaves that side of the range open. Rows
// with a missing price for any requested symbol are dropped.
func (p *CSVProvider) GetPrices(ctx context.Context, symbols []string, begin, end time.Time) (*dataframe.DataFrame[time.Time], error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "csv.GetPrices")
	defer span.End()

	span.SetAttributes(attribute.String("path", p.Path), attribute.StringSlice("symbols", symbols))
	subLog := log.With().Str("Path", p.Path).Strs("Symbols", symbols).Logger()

	fh, err := os.Open(p.Path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not open price file")
		subLog.Error().Err(err).Msg("could not open price file")
		return nil, err
	}
	defer fh.Close()

	df, err := LoadCSV(ctx, fh)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not parse price file")
		subLog.Error().Err(err).Msg("could not parse price file")
		return nil, err
	}

	return prepareHistory(df, symbols, begin, end)
}

// LoadCSV parses a price csv. Column names other than DATE are upper-cased and
// become the symbols of the returned dataframe. Empty or unparseable prices are
// stored as NaN. Rows are sorted by date.
func LoadCSV(ctx context.Context, r io.Reader) (*dataframe.DataFrame[time.Time], error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	nilValue := ""
	res, err := imports.LoadFromCSV(ctx, bytes.NewReader(body), imports.CSVLoadOptions{
		TrimLeadingSpace: true,
		NilValue:         &nilValue,
		DictateDataType: map[string]interface{}{
			DateIdx: imports.Converter{
				ConcreteType: time.Time{},
				ConverterFunc: func(in interface{}) (interface{}, error) {
					return time.ParseInLocation(DateFormat, strings.TrimSpace(in.(string)), time.UTC)
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	return convertFrame(res)
}

// convertFrame turns a rocketlaunchr dataframe into a date indexed dataframe
func convertFrame(res *rdf.DataFrame) (*dataframe.DataFrame[time.Time], error) {
	var dateSeries rdf.Series
	valueSeries := make([]rdf.Series, 0, len(res.Series))
	for _, series := range res.Series {
		if series.Name() == DateIdx {
			dateSeries = series
			continue
		}
		valueSeries = append(valueSeries, series)
	}

	if dateSeries == nil {
		return nil, fmt.Errorf("%w: missing %s column", ErrInvalidCSV, DateIdx)
	}

	nrows := dateSeries.NRows()
	dates := make([]time.Time, nrows)
	for row := 0; row < nrows; row++ {
		switch v := dateSeries.Value(row).(type) {
		case time.Time:
			dates[row] = v
		case *time.Time:
			dates[row] = *v
		default:
			return nil, fmt.Errorf("%w: row %d has no date", ErrInvalidCSV, row+1)
		}
	}

	order := make([]int, nrows)
	for idx := range order {
		order[idx] = idx
	}
	sort.SliceStable(order, func(i, j int) bool {
		return dates[order[i]].Before(dates[order[j]])
	})

	df := &dataframe.DataFrame[time.Time]{
		Index:    make([]time.Time, nrows),
		ColNames: make([]string, 0, len(valueSeries)),
		Vals:     make([][]float64, 0, len(valueSeries)),
	}

	for idx, row := range order {
		df.Index[idx] = dates[row]
		if idx > 0 && !df.Index[idx-1].Before(df.Index[idx]) {
			return nil, fmt.Errorf("%w: duplicate date %s", ErrInvalidCSV, df.Index[idx].Format(DateFormat))
		}
	}

	for _, series := range valueSeries {
		symbol := strings.ToUpper(strings.TrimSpace(series.Name()))
		if df.ColIndex(symbol) != -1 {
			return nil, fmt.Errorf("%w: duplicate column %s", ErrInvalidCSV, symbol)
		}

		vals := make([]float64, nrows)
		for idx, row := range order {
			vals[idx] = toFloat(series.Value(row))
		}
		df.Insert(symbol, vals)
	}

	return df, nil
}

func toFloat(val interface{}) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case *float64:
		return *v
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case *string:
		if v == nil {
			return math.NaN()
		}
		return toFloat(*v)
	default:
		return math.NaN()
	}
}

// prepareHistory selects symbols from a loaded history, trims it to the
// requested range and drops incomplete rows
func prepareHistory(df *dataframe.DataFrame[time.Time], symbols []string, begin, end time.Time) (*dataframe.DataFrame[time.Time], error) {
	sel, err := df.Select(symbols...)
	if err != nil {
		if errors.Is(err, dataframe.ErrColumnNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrSymbolNotFound, err)
		}
		return nil, err
	}
	sel = sel.Copy()

	if !begin.IsZero() || !end.IsZero() {
		if end.IsZero() {
			end = sel.End()
		}
		sel = sel.Trim(begin, end)
	}

	sel = sel.Drop(math.NaN())
	if sel.Len() < 2 {
		return nil, fmt.Errorf("%w: %d complete rows for %s", ErrNoPriceData, sel.Len(), strings.Join(symbols, ","))
	}

	return sel, nil
}
