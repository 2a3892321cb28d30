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
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/penny-vault/pvquant/portfolio"
	"github.com/penny-vault/pvquant/quant"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func init() {
	viper.BindEnv("optimizer.iterations", "PVQ_ITERATIONS")
	optimizeCmd.Flags().Int("iterations", quant.DefaultIterations, "Number of random allocations to sample")
	viper.BindPFlag("optimizer.iterations", optimizeCmd.Flags().Lookup("iterations"))

	rootCmd.AddCommand(optimizeCmd)
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize <portfolio.toml>",
	Short: "Search for the allocation with the highest Sharpe ratio",
	Long: `Samples random long-only allocations of the portfolio's holdings and reports
the one with the highest Sharpe ratio next to the portfolio's own weights, an
equal weight allocation and an inverse-variance allocation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := otel.Tracer(opentelemetry.Name).Start(cmd.Context(), "cmd.optimize")
		defer span.End()
		span.SetAttributes(opentelemetry.SpanAttributesFromCommand(cmd, args)...)

		p, err := portfolio.Load(args[0])
		if err != nil {
			return err
		}
		log.Debug().Object("Portfolio", p).Msg("loaded portfolio")

		rnd := newRandom()
		prices, source, err := loadHistory(ctx, p, rnd)
		if err != nil {
			return err
		}

		iterations := viper.GetInt("optimizer.iterations")
		span.SetAttributes(attribute.Int("iterations", iterations))

		analysis, err := portfolio.Analyze(ctx, p, prices, portfolio.AnalysisOptions{
			Params:     marketParams(),
			Iterations: iterations,
			Random:     rnd,
			Source:     source,
		})
		if err != nil {
			return err
		}

		return writeAnalysis(cmd.OutOrStdout(), analysis, viper.GetString("output.format"))
	},
}
