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
	"fmt"
	"io"
	"os"

	"github.com/penny-vault/pvquant/common"
	"github.com/penny-vault/pvquant/observability/opentelemetry"
	"github.com/penny-vault/pvquant/quant"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logCloser     io.Closer
	traceShutdown func(context.Context) error
)

func init() {
	// Logging configuration
	viper.BindEnv("log.level", "PVQ_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "PVQ_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "PVQ_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "PVQ_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "Pretty print log messages")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Tracing
	viper.BindEnv("otlp.endpoint", "PVQ_OTLP_ENDPOINT")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "OTLP collector to send traces to, if blank tracing is disabled")
	viper.BindPFlag("otlp.endpoint", rootCmd.PersistentFlags().Lookup("otlp-endpoint"))

	viper.BindEnv("otlp.http", "PVQ_OTLP_HTTP")
	rootCmd.PersistentFlags().Bool("otlp-http", false, "Use HTTP(s) instead of gRPC for the OTLP connection")
	viper.BindPFlag("otlp.http", rootCmd.PersistentFlags().Lookup("otlp-http"))

	// Market assumptions
	viper.BindEnv("market.risk_free_rate", "PVQ_RISK_FREE_RATE")
	rootCmd.PersistentFlags().Float64("risk-free-rate", quant.RiskFreeRate, "Annual risk free rate used in the Sharpe ratio")
	viper.BindPFlag("market.risk_free_rate", rootCmd.PersistentFlags().Lookup("risk-free-rate"))

	viper.BindEnv("market.periods_per_year", "PVQ_PERIODS_PER_YEAR")
	rootCmd.PersistentFlags().Float64("periods-per-year", quant.TradingDaysPerYear, "Number of return periods in a year")
	viper.BindPFlag("market.periods_per_year", rootCmd.PersistentFlags().Lookup("periods-per-year"))

	// Price history
	viper.BindEnv("prices.file", "PVQ_PRICES")
	rootCmd.PersistentFlags().String("prices", "", "CSV file of daily prices, if blank or unusable mock prices are generated")
	viper.BindPFlag("prices.file", rootCmd.PersistentFlags().Lookup("prices"))

	viper.BindEnv("prices.begin", "PVQ_BEGIN")
	rootCmd.PersistentFlags().String("begin", "", "First date of price history to use (YYYY-MM-DD)")
	viper.BindPFlag("prices.begin", rootCmd.PersistentFlags().Lookup("begin"))

	viper.BindEnv("prices.end", "PVQ_END")
	rootCmd.PersistentFlags().String("end", "", "Last date of price history to use (YYYY-MM-DD)")
	viper.BindPFlag("prices.end", rootCmd.PersistentFlags().Lookup("end"))

	viper.BindEnv("mock.days", "PVQ_MOCK_DAYS")
	rootCmd.PersistentFlags().Int("mock-days", quant.DefaultMockDays, "Number of days of mock price history")
	viper.BindPFlag("mock.days", rootCmd.PersistentFlags().Lookup("mock-days"))

	viper.BindEnv("random.seed", "PVQ_SEED")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed, 0 seeds from the current time")
	viper.BindPFlag("random.seed", rootCmd.PersistentFlags().Lookup("seed"))

	// Output
	viper.BindEnv("output.format", "PVQ_FORMAT")
	rootCmd.PersistentFlags().String("format", FormatTable, "Output format one of: `table` or `json`")
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
}

var rootCmd = &cobra.Command{
	Use:     "pvquant",
	Version: common.CurrentVersion.String(),
	Short:   "pvquant measures portfolio risk and searches for the best risk adjusted allocation",
	Long: `pvquant computes the expected return, volatility and Sharpe ratio of a
portfolio from daily prices and runs a Monte Carlo search for the allocation
with the highest Sharpe ratio. When no price history is available a synthetic
random walk is used instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logCloser, err = common.SetupLogging()
		if err != nil {
			return err
		}

		traceShutdown, err = opentelemetry.Setup(cmd.Context())
		if err != nil {
			log.Warn().Err(err).Msg("could not setup tracing, continuing without it")
		}
		return nil
	},
}

// Execute runs the root command. Traces are flushed and the log file closed
// whether or not the command succeeds.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())

	if traceShutdown != nil {
		if shutdownErr := traceShutdown(context.Background()); shutdownErr != nil {
			log.Warn().Err(shutdownErr).Msg("could not flush traces")
		}
	}

	if err != nil {
		log.Error().Err(err).Str("Command", rootCmd.Name()).Msg("command failed")
	}

	if logCloser != nil {
		logCloser.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
