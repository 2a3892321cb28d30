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

// Package quant computes the risk and return statistics of a portfolio from the
// daily returns of its assets and searches for the allocation with the highest
// Sharpe ratio.
//
// Every function is pure: inputs are never modified, no state is shared between
// calls and randomness is always supplied by the caller through a RandomSource.
// The package does no I/O and no logging; errors are returned for the caller to
// handle, e.g. by falling back to MockPriceHistory when real prices are missing.
package quant
