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

package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// ColIndex returns the index of the specified column; returns -1 if column doesn't exist
func (df *DataFrame[T]) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame[T]) ColCount() int {
	return len(df.ColNames)
}

// Column returns the values stored in the named column. The returned slice is
// shared with the dataframe.
func (df *DataFrame[T]) Column(colName string) ([]float64, error) {
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, colName)
	}
	return df.Vals[colIdx], nil
}

// Copy creates a copy of the dataframe
func (df *DataFrame[T]) Copy() *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: make([]string, len(df.ColNames)),
		Index:    make([]T, len(df.Index)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Index, df.Index)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// Drop removes rows that contain the value `val` in any column. NaN matches NaN.
func (df *DataFrame[T]) Drop(val float64) *DataFrame[T] {
	isNA := math.IsNaN(val)
	newVals := make([][]float64, len(df.Vals))
	newIndex := make([]T, 0, len(df.Index))

	for idx, rowIdx := range df.Index {
		keep := true
		for _, col := range df.Vals {
			rowVal := col[idx]
			if rowVal == val || (isNA && math.IsNaN(rowVal)) {
				keep = false
				break
			}
		}

		if keep {
			newIndex = append(newIndex, rowIdx)
			for colIdx, col := range df.Vals {
				newVals[colIdx] = append(newVals[colIdx], col[idx])
			}
		}
	}

	for colIdx := range newVals {
		if newVals[colIdx] == nil {
			newVals[colIdx] = []float64{}
		}
	}

	df.Vals = newVals
	df.Index = newIndex
	return df
}

// End returns the last time in the DataFrame
func (df *DataFrame[T]) End() time.Time {
	if len(df.Index) == 0 {
		return time.Time{}
	}

	if lastDate, ok := any(df.Index[len(df.Index)-1]).(time.Time); ok {
		return lastDate
	}

	return time.Time{}
}

// Insert a new column to the end of the dataframe
func (df *DataFrame[T]) Insert(name string, col []float64) *DataFrame[T] {
	if len(col) != len(df.Index) {
		log.Panic().Str("Column", name).Int("ColLen", len(col)).Int("IndexLen", len(df.Index)).Msg("column length must equal index length")
	}

	df.ColNames = append(df.ColNames, name)
	df.Vals = append(df.Vals, col)
	return df
}

// Len returns the number of rows in the dataframe
func (df *DataFrame[T]) Len() int {
	return len(df.Index)
}

// PctChange returns a new dataframe holding the period over period change of
// each column, (v[i] - v[i-1]) / v[i-1]. The first row has no predecessor and
// is removed so the result has one row less than df.
func (df *DataFrame[T]) PctChange() *DataFrame[T] {
	res := &DataFrame[T]{
		ColNames: make([]string, df.ColCount()),
		Index:    []T{},
		Vals:     make([][]float64, df.ColCount()),
	}
	copy(res.ColNames, df.ColNames)

	if df.Len() < 2 {
		for colIdx := range res.Vals {
			res.Vals[colIdx] = []float64{}
		}
		return res
	}

	res.Index = make([]T, df.Len()-1)
	copy(res.Index, df.Index[1:])

	for colIdx, col := range df.Vals {
		pct := make([]float64, len(col)-1)
		floats.SubTo(pct, col[1:], col[:len(col)-1])
		floats.Div(pct, col[:len(col)-1])
		res.Vals[colIdx] = pct
	}

	return res
}

// Select returns a new dataframe with only the requested columns in the
// requested order. Column data is shared with df.
func (df *DataFrame[T]) Select(columns ...string) (*DataFrame[T], error) {
	res := &DataFrame[T]{
		Index:    df.Index,
		ColNames: make([]string, 0, len(columns)),
		Vals:     make([][]float64, 0, len(columns)),
	}

	for _, col := range columns {
		colIdx := df.ColIndex(col)
		if colIdx == -1 {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, col)
		}
		res.ColNames = append(res.ColNames, col)
		res.Vals = append(res.Vals, df.Vals[colIdx])
	}

	return res, nil
}

// Start returns the first date of the dataframe
func (df *DataFrame[T]) Start() time.Time {
	if len(df.Index) == 0 {
		return time.Time{}
	}

	if firstDate, ok := any(df.Index[0]).(time.Time); ok {
		return firstDate
	}

	return time.Time{}
}

// Table renders the dataframe as an ASCII formatted table
func (df *DataFrame[T]) Table() string {
	if len(df.Index) == 0 {
		return "<NO DATA>"
	}

	tableCols := append([]string{"Index"}, df.ColNames...)

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false)

	for idx, rowIdx := range df.Index {
		row := make([]string, 0, df.ColCount()+1)

		if date, ok := any(rowIdx).(time.Time); ok {
			row = append(row, date.Format("2006-01-02"))
		} else {
			row = append(row, any(rowIdx).(string))
		}

		for _, col := range df.Vals {
			row = append(row, fmt.Sprintf("%.4f", col[idx]))
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}

// Trim returns the rows of the dataframe within the date range [begin, end].
// Index and column data is shared with df.
// NOTE: If T is not time.Time then the dataframe is returned unchanged
func (df *DataFrame[T]) Trim(begin, end time.Time) *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: df.ColNames,
		Index:    df.Index,
		Vals:     make([][]float64, len(df.Vals)),
	}
	copy(df2.Vals, df.Vals)

	if df.Len() == 0 {
		return df2
	}

	if _, ok := any(df.Index[0]).(time.Time); !ok {
		return df2
	}

	if end.Before(begin) {
		return df2.empty()
	}

	beginIdx := sort.Search(len(df.Index), func(i int) bool {
		idxVal := any(df.Index[i]).(time.Time)
		return !idxVal.Before(begin)
	})

	endIdx := sort.Search(len(df.Index), func(i int) bool {
		idxVal := any(df.Index[i]).(time.Time)
		return idxVal.After(end)
	})

	if beginIdx >= endIdx {
		return df2.empty()
	}

	df2.Index = df.Index[beginIdx:endIdx]
	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = col[beginIdx:endIdx]
	}

	return df2
}

func (df *DataFrame[T]) empty() *DataFrame[T] {
	df.Index = []T{}
	for colIdx := range df.Vals {
		df.Vals[colIdx] = []float64{}
	}
	return df
}
