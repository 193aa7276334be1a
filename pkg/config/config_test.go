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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: "munkikit.yaml",
			config: `
report:
  app_column: 3
  version_column: 1
munki:
  manifest_path: /tmp/manifests/SelfServeManifest
  ignored_users: [root, "_*"]
  require_manifest: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3, cfg.Report.AppColumn, "app column should match")
				assert.Equal(t, 1, cfg.Report.VersionColumn, "version column should match")
				assert.Equal(t, "/tmp/manifests/SelfServeManifest", cfg.Munki.ManifestPath, "manifest path should match")
				assert.Equal(t, []string{"root", "_*"}, cfg.Munki.IgnoredUsers, "ignored users should match")
				assert.True(t, cfg.Munki.RequireManifest, "require manifest should be set")
				assert.Equal(t, "/usr/bin/su", cfg.Munki.SuPath, "su path should default")
			},
		},
		{
			name:   "yaml_minimal_gets_defaults",
			file:   "munkikit.yml",
			config: "report: {}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1, cfg.Report.AppColumn, "app column should default")
				assert.Equal(t, 2, cfg.Report.VersionColumn, "version column should default")
				assert.Equal(t, "/Library/Managed Installs/manifests/SelfServeManifest", cfg.Munki.ManifestPath, "manifest path should default")
				assert.Equal(t, []string{"root", "", "_mbsetupuser"}, cfg.Munki.IgnoredUsers, "ignored users should default")
				assert.Equal(t, "/usr/local/munki/managedsoftwareupdate", cfg.Munki.ManagedSoftwareUpdatePath, "msu path should default")
			},
		},
		{
			name:   "yaml_empty_file",
			file:   "munkikit.yaml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1, cfg.Report.AppColumn, "app column should default")
				assert.Equal(t, 2, cfg.Report.VersionColumn, "version column should default")
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        "munkikit.yaml",
			config:      "reprot:\n  app_column: 1\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "yaml_same_columns",
			file:        "munkikit.yaml",
			config:      "report:\n  app_column: 2\n  version_column: 2\n",
			wantErr:     true,
			errContains: "cannot be the same column",
		},
		{
			name: "hcl_with_env",
			file: "munkikit.hcl",
			config: `
report {
  app_column     = 2
  version_column = 4
}
munki {
  manifest_path    = "${env.MUNKIKIT_TEST_ROOT}/SelfServeManifest"
  require_manifest = true
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Report.AppColumn, "app column should match")
				assert.Equal(t, 4, cfg.Report.VersionColumn, "version column should match")
				assert.Equal(t, "/srv/munki/SelfServeManifest", cfg.Munki.ManifestPath, "env should be interpolated")
				assert.True(t, cfg.Munki.RequireManifest, "require manifest should be set")
			},
		},
		{
			name:        "hcl_invalid",
			file:        "munkikit.hcl",
			config:      "report {",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:   "json",
			file:   "munkikit.json",
			config: `{"munki": {"ignored_users": ["admin"], "stat_path": "/bin/stat"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"admin"}, cfg.Munki.IgnoredUsers, "ignored users should match")
				assert.Equal(t, "/bin/stat", cfg.Munki.StatPath, "stat path should match")
			},
		},
		{
			name:        "json_unknown_field",
			file:        "munkikit.json",
			config:      `{"extra": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unsupported_extension",
			file:        "munkikit.toml",
			config:      "x = 1",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	t.Setenv("MUNKIKIT_TEST_ROOT", "/srv/munki")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestLogger(t)
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config file")

			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "Load should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}
			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, path, cfg.Location(), "location should be recorded")
			tt.check(t, cfg)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := setupTestLogger(t)

	cfg, err := LoadOrDefault(ctx, filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err, "missing file should not fail")
	assert.Equal(t, Default(), cfg, "missing file should yield defaults")
	assert.Empty(t, cfg.Location(), "defaults have no location")

	_, err = Load(ctx, filepath.Join(t.TempDir(), DefaultFile))
	require.Error(t, err, "Load should fail for a missing file")
	assert.Contains(t, err.Error(), "reading config file", "error should mention reading")
}
