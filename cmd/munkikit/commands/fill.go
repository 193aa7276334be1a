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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/munkikit/cmd/munkikit/opts"
	"github.com/walteh/munkikit/pkg/operation"
)

// NewFillReportCmd creates the fill-report command.
func NewFillReportCmd(o *opts.RootOpts) *cobra.Command {
	var fill operation.FillOptions

	cmd := &cobra.Command{
		Use:   "fill-report",
		Short: "Fill blank application titles and versions in a Jamf report",
		Long: `fill-report rewrites a Jamf application report (CSV) in place.

Jamf only prints the application title and version on the first row of each
group. Every blank cell in those two columns gets the value from the row
above it. Columns are numbered from 1.

It will:
1. Check the columns and that the file exists
2. Read the whole report and fill it in memory
3. Write a temporary file next to the report and move it into place`,
		Example: `  munkikit fill-report --csv ~/Desktop/apps.csv
  munkikit fill-report --csv apps.csv --app 3 --vers 4 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !cmd.Flags().Changed("app") {
				fill.AppColumn = o.Config.Report.AppColumn
			}
			if !cmd.Flags().Changed("vers") {
				fill.VersionColumn = o.Config.Report.VersionColumn
			}

			op, err := operation.NewFillOperation(operation.Options{Files: o.Files, Logger: o.Logger}, fill)
			if err != nil {
				return err
			}
			return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
		},
	}

	cmd.Flags().StringVar(&fill.Path, "csv", "", "path to the Jamf report to fill in place")
	cmd.Flags().IntVar(&fill.AppColumn, "app", 1, "column number of the application title")
	cmd.Flags().IntVar(&fill.VersionColumn, "vers", 2, "column number of the application version")
	cmd.Flags().BoolVar(&fill.DryRun, "dry-run", false, "show the changes without writing them")

	return cmd
}
