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

package quant

import "errors"

var (
	ErrInsufficientData  = errors.New("insufficient data")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDegenerateSample  = errors.New("degenerate sample; covariance denominator is zero")
	ErrInvalidPrice      = errors.New("price must be a finite number greater than zero")
	ErrNoRandomSource    = errors.New("random source is required")
)
