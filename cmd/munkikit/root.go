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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/munkikit/cmd/munkikit/commands"
	"github.com/walteh/munkikit/cmd/munkikit/opts"
	"github.com/walteh/munkikit/pkg/config"
	"github.com/walteh/munkikit/pkg/log"
	"github.com/walteh/munkikit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewCommand creates the munkikit root command.
func NewCommand() *cobra.Command {
	return newRootCommand(&opts.RootOpts{})
}

func newRootCommand(o *opts.RootOpts) *cobra.Command {
	var (
		configFile string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "munkikit",
		Short: "Jamf and Munki helpers for managed Macs",
		Long: `munkikit bundles the small jobs a Mac admin runs from Jamf policies:

  fill-report        fill blank app title and version cells in a Jamf report
  install-optional   request a Munki optional install and show it to the user`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if debug {
				logger := zerolog.Ctx(ctx).Level(zerolog.DebugLevel)
				ctx = logger.WithContext(ctx)
				cmd.SetContext(ctx)
			}

			load := config.LoadOrDefault
			if cmd.Flags().Changed("config") {
				load = config.Load
			}
			cfg, err := load(ctx, configFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			o.Config = cfg
			if o.Logger == nil {
				o.Logger = log.New(ctx, cmd.OutOrStdout())
			}
			if o.Files == nil {
				o.Files = status.New()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		commands.NewFillReportCmd(o),
		commands.NewInstallOptionalCmd(o),
		newVersionCmd(),
	)

	return cmd
}
