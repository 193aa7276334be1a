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

	"github.com/rs/zerolog"
	"github.com/walteh/munkikit/pkg/manifest"
	"github.com/walteh/munkikit/pkg/munki"
	"github.com/walteh/munkikit/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is looked up in the working directory when --config is not given.
const DefaultFile = ".munkikit.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📊 ReportConfig holds defaults for fill-report
type ReportConfig struct {
	AppColumn     int `json:"app_column,omitempty" yaml:"app_column,omitempty"`         // 1-based application title column
	VersionColumn int `json:"version_column,omitempty" yaml:"version_column,omitempty"` // 1-based application version column
}

// 📦 MunkiConfig holds defaults for install-optional
type MunkiConfig struct {
	ManifestPath              string   `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
	ManagedSoftwareUpdatePath string   `json:"managedsoftwareupdate_path,omitempty" yaml:"managedsoftwareupdate_path,omitempty"`
	SuPath                    string   `json:"su_path,omitempty" yaml:"su_path,omitempty"`
	StatPath                  string   `json:"stat_path,omitempty" yaml:"stat_path,omitempty"`
	IgnoredUsers              []string `json:"ignored_users,omitempty" yaml:"ignored_users,omitempty"` // nil means the built in list
	RequireManifest           bool     `json:"require_manifest,omitempty" yaml:"require_manifest,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Report ReportConfig `json:"report" yaml:"report"`
	Munki  MunkiConfig  `json:"munki" yaml:"munki"`

	location string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	// defaults never fail validation
	_ = cfg.Validate()
	return cfg
}

// Location is the file the config was loaded from, empty for defaults.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate fills defaults and checks the configuration
func (cfg *Config) Validate() error {
	if cfg.Report.AppColumn == 0 {
		cfg.Report.AppColumn = 1
	}
	if cfg.Report.VersionColumn == 0 {
		cfg.Report.VersionColumn = 2
	}
	if _, err := report.NewColumns(cfg.Report.AppColumn, cfg.Report.VersionColumn); err != nil {
		return errors.Errorf("report: %w", err)
	}

	if cfg.Munki.ManifestPath == "" {
		cfg.Munki.ManifestPath = manifest.DefaultPath
	}
	if cfg.Munki.ManagedSoftwareUpdatePath == "" {
		cfg.Munki.ManagedSoftwareUpdatePath = munki.DefaultManagedSoftwareUpdatePath
	}
	if cfg.Munki.SuPath == "" {
		cfg.Munki.SuPath = munki.DefaultSuPath
	}
	if cfg.Munki.StatPath == "" {
		cfg.Munki.StatPath = munki.DefaultStatPath
	}
	if cfg.Munki.IgnoredUsers == nil {
		cfg.Munki.IgnoredUsers = append([]string(nil), munki.DefaultIgnoredUsers...)
	}

	cfg.Munki.ManifestPath = filepath.Clean(cfg.Munki.ManifestPath)

	return nil
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	return cfg, nil
}

// 🎯 LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}
