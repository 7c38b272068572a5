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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestManager_WriteFileAtomic(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "service.ts")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	mgr := New(dir)
	require.NoError(t, mgr.WriteFileAtomic(ctx, "service.ts", []byte("new"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestManager_WriteFileAtomic_RenameFailureKeepsOriginal(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "service.ts")
	original := []byte("const payPeriod = 1;\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	mgr := New("")
	mgr.rename = func(oldpath, newpath string) error {
		return errors.New("disk full")
	}

	err := mgr.WriteFileAtomic(ctx, path, []byte("const staffPayPeriod = 1;\n"), 0o644)
	require.Error(t, err)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "renaming temp file", writeErr.Op)
	assert.Contains(t, err.Error(), "disk full")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got, "original must be byte-for-byte intact")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be cleaned up")
}

func TestManager_WriteFileAtomic_MissingDirectory(t *testing.T) {
	mgr := New(t.TempDir())
	err := mgr.WriteFileAtomic(testContext(t), filepath.Join("missing", "file.ts"), []byte("x"), 0)

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, "creating temp file", writeErr.Op)
}

func TestManager_ReadFile(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("hello"), 0o640))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	mgr := New(dir)

	content, mode, err := mgr.ReadFile(ctx, "a.ts")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Equal(t, os.FileMode(0o640), mode)

	_, _, err = mgr.ReadFile(ctx, "sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")

	_, _, err = mgr.ReadFile(ctx, "missing.ts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileStatus_String(t *testing.T) {
	tests := []struct {
		status FileStatus
		want   string
	}{
		{StatusUnchanged, "unchanged"},
		{StatusChanged, "changed"},
		{StatusSkipped, "skipped"},
		{StatusFailed, "failed"},
		{StatusUnknown, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
			b, err := tt.status.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}
