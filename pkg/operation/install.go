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
	"path/filepath"

	"github.com/walteh/munkikit/pkg/log"
	"github.com/walteh/munkikit/pkg/manifest"
	"github.com/walteh/munkikit/pkg/munki"
	"github.com/walteh/munkikit/pkg/report"
	"github.com/walteh/munkikit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 InstallOptions configures an InstallOperation
type InstallOptions struct {
	Item            string        // Munki item name, not the display name
	ManifestPath    string        // self service manifest to update
	RequireManifest bool          // fail instead of creating a missing manifest
	Munki           *munki.Client // console user and agent access
}

// 🎮 InstallOperation marks a Munki optional install for installation and
// shows Managed Software Center to the logged in user
type InstallOperation struct {
	Options
	install InstallOptions

	changed bool
}

// 🏭 NewInstallOperation creates a new install operation
func NewInstallOperation(opts Options, install InstallOptions) (*InstallOperation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if install.Munki == nil {
		return nil, errors.Errorf("munki client is required")
	}
	if install.ManifestPath == "" {
		install.ManifestPath = manifest.DefaultPath
	}
	return &InstallOperation{Options: opts, install: install}, nil
}

func (op *InstallOperation) Name() string { return "install-optional" }

// Changed reports whether the last Execute added the item to the manifest.
func (op *InstallOperation) Changed() bool { return op.changed }

// 🏃 Execute adds the item to managed_installs, then opens Managed Software
// Center for the console user. A background run is only started when the
// manifest changed and a real user is logged in.
func (op *InstallOperation) Execute(ctx context.Context) error {
	item := op.install.Item
	path := op.install.ManifestPath
	if item == "" {
		return errors.Errorf("%w: no argument provided for item to add", report.ErrConfiguration)
	}

	if op.install.RequireManifest {
		exists, err := op.Files.FileExists(ctx, path)
		if err != nil {
			return errors.Errorf("%w: checking %s: %s", report.ErrIO, path, err.Error())
		}
		if !exists {
			return errors.Errorf("%w: %s does not exist", report.ErrIO, path)
		}
	}

	m, err := manifest.Load(ctx, op.Files, path)
	if err != nil {
		return err
	}

	changed, err := m.AddManagedInstall(item)
	if err != nil {
		return errors.Errorf("adding %s to %s: %w", item, path, err)
	}
	op.changed = changed

	fileOp := log.FileOperation{Path: filepath.Base(path), Type: "plist", Status: status.StatusUnchanged, Detail: item + " already requested"}
	if changed {
		fileStatus := status.StatusModified
		if !m.Existed {
			fileStatus = status.StatusNew
		}
		if err := m.Save(ctx, op.Files, path); err != nil {
			return err
		}
		fileOp.Status = fileStatus
		fileOp.Detail = "added " + item
	}
	op.Logger.LogFileOperation(ctx, fileOp)

	user, err := op.install.Munki.ConsoleUser(ctx)
	if err != nil {
		return err
	}
	if op.install.Munki.IsIgnoredUser(user) {
		op.Logger.Infof("No user session to show Managed Software Center in (console user %q)", user)
		return nil
	}

	url := munki.UpdatesURL
	if !changed {
		url = munki.DetailURL(item)
	}
	if err := op.install.Munki.OpenInSession(ctx, user, url); err != nil {
		op.Logger.Warningf("Could not open Managed Software Center: %s", err)
	}

	if changed {
		op.Logger.Info("Starting a background Munki run...")
		if err := op.install.Munki.AutoRun(ctx); err != nil {
			return err
		}
		op.Logger.Successf("%s will be installed", item)
	} else {
		op.Logger.Successf("%s is already set to install", item)
	}

	return nil
}
