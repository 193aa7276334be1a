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

package munki

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 CommandRunner runs external programs
type CommandRunner interface {
	// Output runs name and returns what it wrote to stdout and stderr.
	Output(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
	// Run runs name and waits for it to exit.
	Run(ctx context.Context, name string, args ...string) error
}

// 🏃 ExecRunner runs commands with os/exec
type ExecRunner struct{}

var _ CommandRunner = ExecRunner{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	zerolog.Ctx(ctx).Debug().Str("cmd", name).Strs("args", args).Msg("running command")
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), stderr.Bytes(), errors.Errorf("running %s: %w", name, err)
	}
	return stdout.Bytes(), stderr.Bytes(), nil
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	zerolog.Ctx(ctx).Debug().Str("cmd", name).Strs("args", args).Msg("running command")
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Errorf("running %s: %w: %s", name, err, bytes.TrimSpace(out))
	}
	return nil
}
