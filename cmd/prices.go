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
	"fmt"
	"strings"

	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/penny-vault/pvquant/portfolio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

var pricesShowReturns bool

func init() {
	pricesCmd.Flags().BoolVar(&pricesShowReturns, "returns", false, "Show daily returns instead of prices")
	rootCmd.AddCommand(pricesCmd)
}

var pricesCmd = &cobra.Command{
	Use:   "prices <portfolio.toml>",
	Short: "Show the price history used for a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := otel.Tracer(opentelemetry.Name).Start(cmd.Context(), "cmd.prices")
		defer span.End()
		span.SetAttributes(opentelemetry.SpanAttributesFromCommand(cmd, args)...)

		p, err := portfolio.Load(args[0])
		if err != nil {
			return err
		}

		prices, source, err := loadHistory(ctx, p, newRandom())
		if err != nil {
			return err
		}

		if pricesShowReturns {
			prices = prices.PctChange()
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(viper.GetString("output.format")) {
		case FormatJSON:
			return writeJSON(out, map[string]interface{}{
				"source":  source,
				"dates":   prices.Index,
				"symbols": prices.ColNames,
				"values":  prices.Vals,
			})
		case FormatTable, "":
			fmt.Fprintf(out, "Source: %s\n\n", source)
			fmt.Fprint(out, prices.Table())
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrUnknownFormat, viper.GetString("output.format"))
		}
	},
}
