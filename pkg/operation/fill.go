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
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"

	"github.com/walteh/munkikit/pkg/log"
	"github.com/walteh/munkikit/pkg/report"
	"github.com/walteh/munkikit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📊 FillOptions configures a FillOperation
type FillOptions struct {
	Path          string // report to rewrite in place
	AppColumn     int    // 1-based
	VersionColumn int    // 1-based
	DryRun        bool   // print the changes instead of writing them
}

// 📦 FillOperation fills blank app and version cells of a Jamf report
type FillOperation struct {
	Options
	fill FillOptions

	result *report.FillResult
}

// 🏭 NewFillOperation creates a new fill operation
func NewFillOperation(opts Options, fill FillOptions) (*FillOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &FillOperation{Options: opts, fill: fill}, nil
}

func (op *FillOperation) Name() string { return "fill-report" }

// Result is the fill outcome of the last successful Execute.
func (op *FillOperation) Result() *report.FillResult { return op.result }

// 🏃 Execute validates arguments, fills the report and swaps it into place.
// Every argument check happens before the report is opened, and nothing is
// written unless the whole table was filled.
func (op *FillOperation) Execute(ctx context.Context) error {
	path := op.fill.Path
	if path == "" {
		return errors.Errorf("%w: you must specify a .csv using the --csv flag", report.ErrConfiguration)
	}

	cols, err := report.NewColumns(op.fill.AppColumn, op.fill.VersionColumn)
	if err != nil {
		return err
	}

	exists, err := op.Files.FileExists(ctx, path)
	if err != nil {
		return errors.Errorf("%w: checking %s: %s", report.ErrIO, path, err.Error())
	}
	if !exists {
		return errors.Errorf("%w: %s does not exist", report.ErrConfiguration, path)
	}

	op.Logger.Infof("Getting contents of %s...", path)
	original, err := op.Files.ReadFile(ctx, path)
	if err != nil {
		return errors.Errorf("%w: unable to open %s: %s", report.ErrIO, path, err.Error())
	}

	table, enc, err := report.ReadCSV(bytes.NewReader(original))
	if err != nil {
		return errors.Errorf("unable to get contents of %s: %w", path, err)
	}

	res, err := report.Fill(ctx, table, cols)
	if err != nil {
		return err
	}
	if res.UnfilledHeader {
		op.Logger.Warning("The first row has a blank application title or version; there is nothing above it to copy")
	}

	var filled bytes.Buffer
	if err := report.WriteCSV(&filled, res.Table, enc); err != nil {
		return errors.Errorf("encoding %s: %w", path, err)
	}

	fileStatus := status.StatusUnchanged
	if !bytes.Equal(original, filled.Bytes()) {
		fileStatus = status.StatusModified
	}

	if op.fill.DryRun {
		op.Logger.Raw(status.FormatDiff(string(original), filled.String()))
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:   filepath.Base(path),
			Type:   "csv",
			Status: fileStatus,
			Detail: pluralCells(res.Filled) + " would be filled (dry run)",
		})
		op.result = res
		return nil
	}

	op.Logger.Info("Writing filled-in data to a temporary file and moving it into place...")
	err = op.Files.ReplaceFile(ctx, path, func(w io.Writer) error {
		_, err := w.Write(filled.Bytes())
		return err
	})
	if err != nil {
		return errors.Errorf("%w: %s", report.ErrIO, err.Error())
	}

	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:   filepath.Base(path),
		Type:   "csv",
		Status: fileStatus,
		Detail: pluralCells(res.Filled) + " filled",
	})
	op.result = res
	return nil
}

func pluralCells(n int) string {
	if n == 1 {
		return "1 cell"
	}
	return strconv.Itoa(n) + " cells"
}
