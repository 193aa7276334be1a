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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrConfiguration marks invalid user-supplied arguments, detected before any mutation.
	ErrConfiguration = errors.Base("configuration error")
	// ErrIO marks unreadable sources and failed temp/remove/rename steps.
	ErrIO = errors.Base("io error")
	// ErrFormat marks content that is not a well formed CSV table.
	ErrFormat = errors.Base("format error")
)

// 🎯 OutOfRangeError is returned when a row is too narrow for a designated column.
type OutOfRangeError struct {
	Role  string // "app" or "version"
	Index int    // zero-based designated index
	Row   int    // zero-based row number
	Width int    // number of fields in the row
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you specified the %s column as %d, but row %d only has %d columns",
		e.Role, e.Index+1, e.Row+1, e.Width)
}
