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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/munkikit/pkg/status"
)

// 🎯 FileOperation describes what a command did to one file
type FileOperation struct {
	Path   string            // File path
	Type   string            // csv or plist
	Status status.FileStatus // Outcome
	Detail string            // Short free-form note
}

// 📢 Logger prints progress for people on the console and mirrors every
// line to zerolog for debugging.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger using the zerolog logger carried by ctx
func New(ctx context.Context, console io.Writer) *Logger {
	return &Logger{
		zlog:    *zerolog.Ctx(ctx),
		console: console,
	}
}

func (l *Logger) printer(base pterm.PrefixPrinter, symbol string) *pterm.PrefixPrinter {
	return base.WithWriter(l.console).WithPrefix(pterm.Prefix{Text: symbol, Style: base.Prefix.Style})
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printer(pterm.Info, "INFO").Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printer(pterm.Success, "DONE").Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printer(pterm.Warning, "WARNING").Println(msg)
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error as a single line
func (l *Logger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printer(pterm.Error, "ERROR").Println(err.Error())
	l.zlog.Error().Err(err).Msg("command failed")
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...any) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...any) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 LogFileOperation prints one status line for a file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatFileOperation(op.Path, op.Type, op.Status, op.Detail))

	l.zlog.Info().
		Str("file", op.Path).
		Str("type", op.Type).
		Stringer("status", op.Status).
		Str("detail", op.Detail).
		Msg("file operation")
}

// 📝 Raw writes text to the console as is
func (l *Logger) Raw(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.console, text)
}
