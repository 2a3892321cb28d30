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
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/penny-vault/pvquant/dataframe"
)

// WriteCSV writes df in the format read by LoadCSV. Prices are written with
// the fewest digits that parse back to the same value.
func WriteCSV(w io.Writer, df *dataframe.DataFrame[time.Time]) error {
	out := csv.NewWriter(w)

	header := append([]string{DateIdx}, df.ColNames...)
	if err := out.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for rowIdx, dt := range df.Index {
		row[0] = dt.Format(DateFormat)
		for colIdx, col := range df.Vals {
			row[colIdx+1] = strconv.FormatFloat(col[rowIdx], 'f', -1, 64)
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
