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
	"io"
	"os"
	"time"

	"github.com/penny-vault/pvquant/data"
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

var mockOutput string

func init() {
	mockCmd.Flags().StringVarP(&mockOutput, "output", "o", "", "Write prices to file instead of stdout")
	rootCmd.AddCommand(mockCmd)
}

var mockCmd = &cobra.Command{
	Use:   "mock <SYMBOL[=PRICE]>...",
	Short: "Generate a synthetic daily price history",
	Long: `Generates a random walk of daily prices for each symbol and writes it as a
CSV file that can be passed to --prices. Each symbol starts at PRICE, or 150
when no price is given.`,
	Example: "  pvquant mock AAPL=190.5 MSFT=410 --mock-days 504 --seed 42 -o prices.csv",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := otel.Tracer(opentelemetry.Name).Start(cmd.Context(), "cmd.mock")
		defer span.End()
		span.SetAttributes(opentelemetry.SpanAttributesFromCommand(cmd, args)...)

		symbols, basePrices, err := parseSymbolPrices(args)
		if err != nil {
			return err
		}

		_, end, err := dateRange()
		if err != nil {
			return err
		}

		provider := data.NewMock(basePrices, viper.GetInt("mock.days"), newRandom())
		if !end.IsZero() {
			provider.End = end
		}

		df, err := provider.GetPrices(ctx, symbols, time.Time{}, time.Time{})
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if mockOutput != "" {
			fh, err := os.Create(mockOutput)
			if err != nil {
				return err
			}
			defer fh.Close()
			out = fh
		}

		if err := data.WriteCSV(out, df); err != nil {
			return err
		}

		log.Info().Strs("Symbols", symbols).Int("Days", df.Len()).Str("Output", mockOutput).Msg("wrote mock price history")
		return nil
	},
}
