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
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome of processing a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // No occurrences, or rewrite produced identical text
	StatusChanged              // Occurrences were replaced
	StatusSkipped              // File was not processed (missing path, not a regular file)
	StatusFailed               // Encoding, overlap, read or write error
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusChanged:
		return "changed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s FileStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// 📄 FileRecord holds everything known about one file during a run. It is
// owned by a single worker until it is handed to the reporter.
type FileRecord struct {
	Path        string
	Encoding    string
	Mode        fs.FileMode
	Original    string
	Rewritten   string
	Occurrences []text.Occurrence
	Diffs       []text.RuleDiff
	Status      FileStatus
	Err         error
	Written     bool
}

// Fail marks the record as failed.
func (r *FileRecord) Fail(err error) *FileRecord {
	r.Status = StatusFailed
	r.Err = err
	return r
}

// Skip marks the record as skipped.
func (r *FileRecord) Skip(err error) *FileRecord {
	r.Status = StatusSkipped
	r.Err = err
	return r
}

// 💥 WriteError is returned when an atomic write fails. The target file is
// left as it was.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// 💾 FileManager handles the file system operations of a run
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, fs.FileMode, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error
}

// 🔧 Manager implements FileManager on the local file system
type Manager struct {
	baseDir string // Base directory for relative paths; empty means the working directory

	// overridable in tests
	rename func(oldpath, newpath string) error
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new file manager
func New(baseDir string) *Manager {
	if baseDir != "" {
		baseDir = filepath.Clean(baseDir)
	}
	return &Manager{
		baseDir: baseDir,
		rename:  os.Rename,
	}
}

// 🔒 getAbsPath resolves a path against the base directory
func (m *Manager) getAbsPath(path string) string {
	if m.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// ReadFile returns the raw bytes and permission bits of a regular file.
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, fs.FileMode, error) {
	absPath := m.getAbsPath(path)

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, 0, errors.Errorf("reading file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, 0, errors.Errorf("reading file: %s is not a regular file", path)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, 0, errors.Errorf("reading file: %w", err)
	}
	return content, info.Mode().Perm(), nil
}

// WriteFileAtomic writes content to a temporary file next to path and renames
// it over path only once the content is fully on disk.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode fs.FileMode) error {
	absPath := m.getAbsPath(path)
	if mode == 0 {
		mode = 0o644
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".renamerc-*")
	if err != nil {
		return &WriteError{Path: path, Op: "creating temp file", Err: err}
	}
	tempPath := tmp.Name()

	fail := func(op string, err error) error {
		_ = tmp.Close()
		if rmErr := os.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
			zerolog.Ctx(ctx).Warn().Err(rmErr).Str("temp", tempPath).Msg("removing temp file")
		}
		return &WriteError{Path: path, Op: op, Err: err}
	}

	if _, err := tmp.Write(content); err != nil {
		return fail("writing temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail("setting permissions", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("closing temp file", err)
	}

	// Rename temp file to target (atomic operation)
	if err := m.rename(tempPath, absPath); err != nil {
		return fail("renaming temp file", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("file written")
	return nil
}
