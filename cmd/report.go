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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pvquant/portfolio"
	"github.com/penny-vault/pvquant/quant"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

var (
	ErrUnknownFormat = errors.New("unknown output format")
)

type allocation struct {
	label   string
	metrics *quant.PortfolioMetrics
}

// writeAnalysis renders an analysis as a table or as JSON
func writeAnalysis(w io.Writer, analysis *portfolio.Analysis, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, analysis)
	case FormatTable, "":
		return writeTable(w, analysis)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	doc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	doc = append(doc, '\n')
	_, err = w.Write(doc)
	return err
}

func writeTable(w io.Writer, analysis *portfolio.Analysis) error {
	fmt.Fprintf(w, "Portfolio: %s\n", analysis.Name)
	fmt.Fprintf(w, "Prices: %s, %d days from %s to %s\n",
		analysis.Source, analysis.Observations,
		analysis.Start.Format("2006-01-02"), analysis.End.Format("2006-01-02"))
	fmt.Fprintf(w, "Risk free rate: %.2f%%, %g periods per year\n\n",
		analysis.Params.RiskFreeRate*100, analysis.Params.PeriodsPerYear)

	allocations := []allocation{{"Your Portfolio", analysis.User}}
	if analysis.Optimized != nil {
		allocations = append(allocations, allocation{"Max Sharpe", analysis.Optimized})
	}
	if analysis.EqualWeight != nil {
		allocations = append(allocations, allocation{"Equal Weight", analysis.EqualWeight})
	}
	if analysis.MinVariance != nil {
		allocations = append(allocations, allocation{"Min Variance", analysis.MinVariance})
	}

	header := []string{"Allocation", "Expected Return", "Volatility", "Sharpe", "Rating"}
	header = append(header, analysis.Symbols...)

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, alloc := range allocations {
		if alloc.metrics == nil {
			continue
		}
		row := []string{
			alloc.label,
			percent(alloc.metrics.ExpectedReturn),
			percent(alloc.metrics.Volatility),
			fmt.Sprintf("%.3f", alloc.metrics.SharpeRatio),
			portfolio.Rating(alloc.metrics.SharpeRatio),
		}
		for _, sw := range alloc.metrics.Weights {
			row = append(row, percent(sw.Weight))
		}
		table.Append(row)
	}
	table.Render()

	if analysis.Optimized != nil {
		fmt.Fprintf(w, "\nSharpe improvement: %+.3f after %d iterations\n", analysis.SharpeImprovement(), analysis.Iterations)
	}

	return nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
