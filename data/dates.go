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

import "time"

// TradingDays returns the n weekdays ending on or before end, oldest first.
// Market holidays are not skipped.
func TradingDays(end time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}

	dt := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, n)
	for idx := n - 1; idx >= 0; {
		if dt.Weekday() != time.Saturday && dt.Weekday() != time.Sunday {
			days[idx] = dt
			idx--
		}
		dt = dt.AddDate(0, 0, -1)
	}

	return days
}
