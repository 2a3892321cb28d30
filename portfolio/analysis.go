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
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/penny-vault/pvquant/dataframe"
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/penny-vault/pvquant/quant"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	RatingExcellent = "excellent"
	RatingPositive  = "positive"
	RatingNegative  = "negative"
)

// AnalysisOptions configures Analyze
type AnalysisOptions struct {
	Params     quant.Params
	Iterations int
	Random     quant.RandomSource

	// Source names where the price history came from, e.g. csv or mock
	Source string
}

// Analysis compares the user allocation of a portfolio with the allocation
// found by the optimizer and the equal weight and inverse-variance baselines
type Analysis struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Symbols      []string                `json:"symbols"`
	Source       string                  `json:"source"`
	Start        time.Time               `json:"start"`
	End          time.Time               `json:"end"`
	Observations int                     `json:"observations"`
	Iterations   int                     `json:"iterations"`
	Params       quant.Params            `json:"params"`
	User         *quant.PortfolioMetrics `json:"user"`
	Optimized    *quant.PortfolioMetrics `json:"optimized,omitempty"`
	EqualWeight  *quant.PortfolioMetrics `json:"equalWeight,omitempty"`
	MinVariance  *quant.PortfolioMetrics `json:"minVariance,omitempty"`
}

// Evaluate computes the metrics of the portfolio's own weights over prices
func Evaluate(ctx context.Context, p *Portfolio, prices *dataframe.DataFrame[time.Time], opts AnalysisOptions) (*Analysis, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "portfolio.Evaluate")
	defer span.End()

	analysis, ev, _, err := newAnalysis(p, prices, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not build evaluator")
		return nil, err
	}

	analysis.User, err = ev.Evaluate(p.Weights())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return nil, err
	}

	log.Debug().Object("Analysis", analysis).Msg("evaluated portfolio")
	return analysis, nil
}

// Analyze computes the metrics of the portfolio's weights, searches for the
// maximum Sharpe ratio allocation and evaluates both baseline allocations
func Analyze(ctx context.Context, p *Portfolio, prices *dataframe.DataFrame[time.Time], opts AnalysisOptions) (*Analysis, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "portfolio.Analyze")
	defer span.End()

	subLog := log.With().Str("Portfolio", p.Name).Logger()

	analysis, ev, returns, err := newAnalysis(p, prices, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not build evaluator")
		return nil, err
	}

	if analysis.User, err = ev.Evaluate(p.Weights()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return nil, err
	}

	optimization, err := quant.Optimize(analysis.Symbols, returns, quant.OptimizeOptions{
		Iterations: opts.Iterations,
		Random:     opts.Random,
		Params:     analysis.Params,
		OnSample: func(iteration int, metrics *quant.PortfolioMetrics) {
			if iteration%1000 == 0 {
				subLog.Trace().Int("Iteration", iteration).Float64("SharpeRatio", metrics.SharpeRatio).Msg("monte carlo sample")
			}
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "optimization failed")
		subLog.Error().Err(err).Msg("optimization failed")
		return nil, err
	}
	analysis.Optimized = optimization.Metrics
	analysis.Iterations = optimization.Iterations
	subLog.Debug().Object("Optimization", optimization).Msg("monte carlo search finished")

	if analysis.EqualWeight, err = ev.Evaluate(quant.EqualWeight(ev.Len())); err != nil {
		return nil, err
	}

	minVar, err := quant.MinVarianceApprox(returns, analysis.Params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "min variance allocation failed")
		return nil, err
	}
	if analysis.MinVariance, err = ev.Evaluate(minVar); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("user.sharpe", analysis.User.SharpeRatio),
		attribute.Float64("optimized.sharpe", analysis.Optimized.SharpeRatio),
	)
	subLog.Info().Object("Analysis", analysis).Msg("analyzed portfolio")

	return analysis, nil
}

// SharpeImprovement is how much the optimized allocation raises the Sharpe
// ratio over the user allocation
func (a *Analysis) SharpeImprovement() float64 {
	if a.User == nil || a.Optimized == nil {
		return 0
	}
	return a.Optimized.SharpeRatio - a.User.SharpeRatio
}

// Rating classifies a Sharpe ratio
func Rating(sharpe float64) string {
	switch {
	case sharpe > 1:
		return RatingExcellent
	case sharpe > 0:
		return RatingPositive
	default:
		return RatingNegative
	}
}

func newAnalysis(p *Portfolio, prices *dataframe.DataFrame[time.Time], opts AnalysisOptions) (*Analysis, *quant.Evaluator, [][]float64, error) {
	if prices == nil {
		return nil, nil, nil, ErrNoPrices
	}

	symbols, returns, err := returnSeries(prices, p.Symbols())
	if err != nil {
		log.Error().Err(err).Str("Portfolio", p.Name).Msg("could not compute returns")
		return nil, nil, nil, err
	}

	ev, err := quant.NewEvaluator(symbols, returns, opts.Params)
	if err != nil {
		return nil, nil, nil, err
	}

	analysis := &Analysis{
		ID:           uuid.New(),
		Name:         p.Name,
		Symbols:      symbols,
		Source:       opts.Source,
		Start:        prices.Start(),
		End:          prices.End(),
		Observations: prices.Len(),
		Params:       ev.Params(),
	}

	return analysis, ev, returns, nil
}

// returnSeries converts the price columns of symbols to daily returns
func returnSeries(prices *dataframe.DataFrame[time.Time], symbols []string) ([]string, [][]float64, error) {
	series := make([]*quant.AssetSeries, len(symbols))
	for idx, symbol := range symbols {
		col, err := prices.Column(symbol)
		if err != nil {
			return nil, nil, err
		}

		series[idx], err = quant.NewAssetSeries(symbol, col)
		if err != nil {
			return nil, nil, err
		}
	}

	names, returns := quant.SplitSeries(series)
	return names, returns, nil
}
