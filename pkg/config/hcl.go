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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. Expressions may reference env.NAME.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envValue(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Report *struct {
			AppColumn     *int `hcl:"app_column,optional"`
			VersionColumn *int `hcl:"version_column,optional"`
		} `hcl:"report,block"`
		Munki *struct {
			ManifestPath              *string  `hcl:"manifest_path,optional"`
			ManagedSoftwareUpdatePath *string  `hcl:"managedsoftwareupdate_path,optional"`
			SuPath                    *string  `hcl:"su_path,optional"`
			StatPath                  *string  `hcl:"stat_path,optional"`
			IgnoredUsers              []string `hcl:"ignored_users,optional"`
			RequireManifest           *bool    `hcl:"require_manifest,optional"`
		} `hcl:"munki,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if r := hclCfg.Report; r != nil {
		if r.AppColumn != nil {
			cfg.Report.AppColumn = *r.AppColumn
		}
		if r.VersionColumn != nil {
			cfg.Report.VersionColumn = *r.VersionColumn
		}
	}
	if m := hclCfg.Munki; m != nil {
		cfg.Munki.ManifestPath = deref(m.ManifestPath)
		cfg.Munki.ManagedSoftwareUpdatePath = deref(m.ManagedSoftwareUpdatePath)
		cfg.Munki.SuPath = deref(m.SuPath)
		cfg.Munki.StatPath = deref(m.StatPath)
		cfg.Munki.IgnoredUsers = m.IgnoredUsers
		if m.RequireManifest != nil {
			cfg.Munki.RequireManifest = *m.RequireManifest
		}
	}

	return cfg, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// envValue exposes the process environment as the env map.
func envValue() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(vars)
}
