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

import "errors"

var (
	ErrTooFewAssets    = errors.New("portfolio must hold at least 2 assets")
	ErrTooManyAssets   = errors.New("portfolio may hold at most 8 assets")
	ErrInvalidWeight   = errors.New("invalid holding weight")
	ErrDuplicateSymbol = errors.New("duplicate symbol in portfolio")
	ErrInvalidPrice    = errors.New("invalid holding price")
	ErrEmptySymbol     = errors.New("holding symbol is empty")
	ErrNoPrices        = errors.New("price history is required")
)
