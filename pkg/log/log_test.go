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

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/munkikit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Success("success message")
				logger.Error(errors.New("error message"))
			},
			wantLogs: []string{
				"info message",
				"warning message",
				"success message",
				"error message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("getting contents of %s...", "apps.csv")
				logger.Warningf("warning %d", 2)
				logger.Successf("filled %d cells", 3)
			},
			wantLogs: []string{
				"getting contents of apps.csv...",
				"warning 2",
				"filled 3 cells",
			},
		},
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:   "apps.csv",
					Type:   "csv",
					Status: status.StatusModified,
					Detail: "2 cells filled",
				})
			},
			wantLogs: []string{
				"apps.csv",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			logger := New(ctx, buf)

			tt.op(t, logger)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Contains(t, lines[i], want, "log line %d should match", i)
			}
		})
	}
}
