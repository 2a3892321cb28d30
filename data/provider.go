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
	"context"
	"time"

	"github.com/penny-vault/pvquant/dataframe"
)

// Provider produces aligned daily price histories for a set of symbols. The
// returned dataframe has one column per requested symbol, in request order,
// and no missing values.
type Provider interface {
	DataType() string
	GetPrices(ctx context.Context, symbols []string, begin, end time.Time) (*dataframe.DataFrame[time.Time], error)
}
