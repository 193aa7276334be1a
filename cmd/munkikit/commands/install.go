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
	"github.com/walteh/munkikit/pkg/munki"
	"github.com/walteh/munkikit/pkg/operation"
)

// jamfItemArg is where Jamf puts script parameter 4, after the mount
// point, computer name and user name it always passes.
const jamfItemArg = 3

// NewInstallOptionalCmd creates the install-optional command.
func NewInstallOptionalCmd(o *opts.RootOpts) *cobra.Command {
	var (
		install      operation.InstallOptions
		ignoredUsers []string
	)

	cmd := &cobra.Command{
		Use:   "install-optional [jamf args...]",
		Short: "Request a Munki optional install for the logged in user",
		Long: `install-optional adds an item to managed_installs of the self service
manifest, opens Managed Software Center for the logged in user and, when the
manifest changed, starts a background Munki run.

The item comes from --item, else from Jamf script parameter 4, else from a
single positional argument.`,
		Example: `  munkikit install-optional --item Firefox
  munkikit install-optional / "$HOSTNAME" "$USER" Firefox`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := o.Config.Munki

			if !cmd.Flags().Changed("item") {
				install.Item = itemFromArgs(args)
			}
			if !cmd.Flags().Changed("manifest") {
				install.ManifestPath = cfg.ManifestPath
			}
			if !cmd.Flags().Changed("require-manifest") {
				install.RequireManifest = cfg.RequireManifest
			}
			if !cmd.Flags().Changed("ignore-user") {
				ignoredUsers = cfg.IgnoredUsers
			}

			client, err := munki.NewClient(munki.Options{
				StatPath:                  cfg.StatPath,
				SuPath:                    cfg.SuPath,
				ManagedSoftwareUpdatePath: cfg.ManagedSoftwareUpdatePath,
				IgnoredUsers:              ignoredUsers,
				Runner:                    o.Commands,
			})
			if err != nil {
				return err
			}
			install.Munki = client

			op, err := operation.NewInstallOperation(operation.Options{Files: o.Files, Logger: o.Logger}, install)
			if err != nil {
				return err
			}
			return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
		},
	}

	cmd.Flags().StringVar(&install.Item, "item", "", "Munki item name to install")
	cmd.Flags().StringVar(&install.ManifestPath, "manifest", "", "self service manifest to update")
	cmd.Flags().BoolVar(&install.RequireManifest, "require-manifest", false, "fail when the manifest does not exist yet")
	cmd.Flags().StringSliceVar(&ignoredUsers, "ignore-user", nil, "console users (or patterns) that get no session")

	return cmd
}

func itemFromArgs(args []string) string {
	switch {
	case len(args) > jamfItemArg:
		return args[jamfItemArg]
	case len(args) == 1:
		return args[0]
	}
	return ""
}
