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

const (
	// DateIdx is the name of the date column in price files
	DateIdx = "DATE"

	// DateFormat is the layout of dates in price files
	DateFormat = "2006-01-02"

	// DefaultBasePrice seeds mock history for symbols without a known price
	DefaultBasePrice = 150.0
)

const (
	SourceCSV  = "csv"
	SourceMock = "mock"
)
