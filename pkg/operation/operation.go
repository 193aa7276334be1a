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

package operation

import (
	"context"

	"github.com/walteh/munkikit/pkg/log"
	"github.com/walteh/munkikit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one unit of work a command runs
type Operation interface {
	// Name is used in logs
	Name() string
	// Execute does the work
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies shared by every operation
type Options struct {
	// Files performs every read and write
	Files status.FileManager
	// Logger prints progress for the user
	Logger *log.Logger
}

func (o Options) validate() error {
	if o.Files == nil {
		return errors.Errorf("file manager is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	return nil
}
