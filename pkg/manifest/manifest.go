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

// Package manifest reads and updates Munki manifests stored as property lists.
package manifest

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"github.com/walteh/munkikit/pkg/status"
	"gitlab.com/tozd/go/errors"
	"howett.net/plist"
)

// DefaultPath is where Munki keeps the self service manifest.
const DefaultPath = "/Library/Managed Installs/manifests/SelfServeManifest"

// ManagedInstallsKey is the list of items Munki must install.
const ManagedInstallsKey = "managed_installs"

var (
	// ErrRead marks a manifest that is not a valid property list dictionary.
	ErrRead = errors.Base("cannot read plist contents")
	// ErrNotArray marks a managed_installs value that is not an array.
	ErrNotArray = errors.Base("managed installs is not an array")
)

// 📄 Manifest is a decoded manifest dictionary
type Manifest struct {
	Contents map[string]any
	Existed  bool // false when the manifest was not on disk yet
}

// 🏭 New returns an empty manifest that has not been written yet.
func New() *Manifest {
	return &Manifest{Contents: map[string]any{}}
}

// 📝 Parse decodes a property list dictionary.
func Parse(data []byte) (*Manifest, error) {
	contents := map[string]any{}
	if _, err := plist.Unmarshal(data, &contents); err != nil {
		return nil, errors.Errorf("%w: %s", ErrRead, err.Error())
	}
	return &Manifest{Contents: contents, Existed: true}, nil
}

// 🎯 Load reads the manifest at path. A missing file yields an empty manifest.
func Load(ctx context.Context, fm status.FileManager, path string) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)

	exists, err := fm.FileExists(ctx, path)
	if err != nil {
		return nil, errors.Errorf("checking manifest: %w", err)
	}
	if !exists {
		logger.Debug().Str("path", path).Msg("manifest does not exist, starting empty")
		return New(), nil
	}

	data, err := fm.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("cannot open %s for reading: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf("loading %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("keys", len(m.Contents)).Msg("loaded manifest")
	return m, nil
}

// ManagedInstalls returns the string entries of managed_installs.
func (m *Manifest) ManagedInstalls() []string {
	list, ok := m.Contents[ManagedInstallsKey].([]any)
	if !ok {
		return nil
	}
	items := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

// 🔄 AddManagedInstall appends item to managed_installs unless it is already there.
// It reports whether the manifest changed.
func (m *Manifest) AddManagedInstall(item string) (bool, error) {
	if item == "" {
		return false, errors.New("item name is required")
	}
	if m.Contents == nil {
		m.Contents = map[string]any{}
	}

	raw, ok := m.Contents[ManagedInstallsKey]
	if !ok {
		m.Contents[ManagedInstallsKey] = []any{item}
		return true, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return false, errors.WithStack(ErrNotArray)
	}
	if slices.Contains(m.ManagedInstalls(), item) {
		return false, nil
	}

	m.Contents[ManagedInstallsKey] = append(list, item)
	return true, nil
}

// Encode renders the manifest as an XML property list.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := plist.MarshalIndent(m.Contents, plist.XMLFormat, "\t")
	if err != nil {
		return nil, errors.Errorf("encoding plist: %w", err)
	}
	return data, nil
}

// 💾 Save writes the manifest to path through fm.
func (m *Manifest) Save(ctx context.Context, fm status.FileManager, path string) error {
	data, err := m.Encode()
	if err != nil {
		return errors.Errorf("cannot write plist contents back to %s: %w", path, err)
	}
	if err := fm.WriteFileAtomic(ctx, path, data); err != nil {
		return errors.Errorf("cannot open %s for writing: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("saved manifest")
	m.Existed = true
	return nil
}
