// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Columns holds the two zero-based fill targets.
type Columns struct {
	Primary   int // application title
	Secondary int // application version
}

// 🏭 NewColumns converts 1-based column numbers from the command line.
func NewColumns(app, vers int) (Columns, error) {
	cols := Columns{Primary: app - 1, Secondary: vers - 1}
	if err := cols.Validate(); err != nil {
		return Columns{}, err
	}
	return cols, nil
}

// 🔍 Validate rejects negative and identical indices.
func (c Columns) Validate() error {
	if c.Primary < 0 {
		return errors.Errorf("%w: application title column must be 1 or greater, got %d", ErrConfiguration, c.Primary+1)
	}
	if c.Secondary < 0 {
		return errors.Errorf("%w: application version column must be 1 or greater, got %d", ErrConfiguration, c.Secondary+1)
	}
	if c.Primary == c.Secondary {
		return errors.Errorf("%w: the application title column and application version column cannot be the same column", ErrConfiguration)
	}
	return nil
}

// 📊 FillResult is the outcome of a fill pass.
type FillResult struct {
	Table  Table
	Filled int // number of cells that were blank and got a value

	// UnfilledHeader is set when row 0 has a blank designated field.
	// There is nothing above row 0 to carry down, so the blank stays.
	UnfilledHeader bool
}

// 🔄 Fill carries the last value of each designated column down over blanks.
// It makes a single forward pass and never looks ahead. The input is not modified.
func Fill(ctx context.Context, t Table, cols Columns) (*FillResult, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	res := &FillResult{Table: t.Clone()}

	for i, row := range res.Table {
		if len(row) < cols.Primary+1 {
			return nil, errors.WithStack(&OutOfRangeError{Role: "app", Index: cols.Primary, Row: i, Width: len(row)})
		}
		if len(row) < cols.Secondary+1 {
			return nil, errors.WithStack(&OutOfRangeError{Role: "version", Index: cols.Secondary, Row: i, Width: len(row)})
		}

		for _, idx := range []int{cols.Primary, cols.Secondary} {
			if row[idx] != "" {
				continue
			}
			if i == 0 {
				res.UnfilledHeader = true
				continue
			}
			row[idx] = res.Table[i-1][idx]
			if row[idx] != "" {
				res.Filled++
			}
		}
	}

	logger.Debug().
		Int("rows", len(res.Table)).
		Int("filled", res.Filled).
		Bool("unfilled_header", res.UnfilledHeader).
		Msg("filled report gaps")

	return res, nil
}
