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

package status

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what an operation did to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File did not exist and was created
	StatusModified             // File content changed
	StatusUnchanged            // File content is the same
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 💾 FileManager handles the file system operations the tools need
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	FileExists(ctx context.Context, path string) (bool, error)

	// ReplaceFile writes new content next to path and swaps it in.
	ReplaceFile(ctx context.Context, path string, write func(io.Writer) error) error
	// WriteFileAtomic is ReplaceFile for content already in memory.
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// 🔧 Manager is the os-backed FileManager
type Manager struct {
	tempPattern string
	newFileMode os.FileMode
	rename      func(oldpath, newpath string) error
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new file manager
func New() *Manager {
	return &Manager{tempPattern: ".%s.*.tmp", newFileMode: 0644, rename: os.Rename}
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// FileExists reports whether path exists and is a regular file.
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// ReplaceFile replaces path with whatever write produces.
//
// The temp file lives in the same directory as path so the final rename never
// crosses a file system. Order is: write and close the temp file, remove the
// original, rename the temp file into place. The original is never touched
// unless the new content was fully written. If the final rename fails the
// temp file is kept and its path is part of the error.
func (m *Manager) ReplaceFile(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	logger := zerolog.Ctx(ctx)

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(m.tempPattern, base))
	if err != nil {
		return errors.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	logger.Debug().Str("path", path).Str("temp", tmpPath).Msg("created temporary file")

	keepTemp := false
	closed := false
	defer func() {
		if !closed {
			tmp.Close()
		}
		if err != nil && !keepTemp {
			os.Remove(tmpPath)
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err := write(buf); err != nil {
		return errors.Errorf("writing temporary file: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return errors.Errorf("flushing temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Errorf("syncing temporary file: %w", err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temporary file: %w", err)
	}

	if info, statErr := os.Stat(path); statErr == nil {
		if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
			return errors.Errorf("copying permissions to temporary file: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return errors.Errorf("removing original file %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("removed original file")
	} else if os.IsNotExist(statErr) {
		if err := os.Chmod(tmpPath, m.newFileMode); err != nil {
			return errors.Errorf("setting permissions on temporary file: %w", err)
		}
	} else {
		return errors.Errorf("checking original file: %w", statErr)
	}

	if err := m.rename(tmpPath, path); err != nil {
		keepTemp = true
		return errors.Errorf("moving temporary file %s to %s: %w", tmpPath, path, err)
	}
	logger.Debug().Str("path", path).Msg("replaced file")

	return nil
}

// WriteFileAtomic creates parent directories and replaces path with content.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	return m.ReplaceFile(ctx, path, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(content))
		return err
	})
}
