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

package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		debug       bool
		wantConsole []string
		skipConsole []string
	}{
		{
			name:        "info_level",
			wantConsole: []string{"rename run finished"},
			skipConsole: []string{"file loaded"},
		},
		{
			name:        "debug_level",
			debug:       true,
			wantConsole: []string{"rename run finished", "file loaded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var console bytes.Buffer
			logger := New(Options{Console: &console, NoColor: true, Debug: tt.debug})
			defer logger.Close()

			ctx := logger.WithContext(context.Background())
			zerolog.Ctx(ctx).Debug().Str("path", "a.ts").Msg("file loaded")
			zerolog.Ctx(ctx).Info().Int("files_changed", 1).Msg("rename run finished")

			for _, want := range tt.wantConsole {
				assert.Contains(t, console.String(), want)
			}
			for _, skip := range tt.skipConsole {
				assert.NotContains(t, console.String(), skip)
			}
		})
	}
}

func TestNew_LogFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "renamerc.log")

	logger := New(Options{
		Console: &console,
		NoColor: true,
		File:    &FileOptions{Filename: path, MaxSize: 1},
	})
	logger.Warn().Str("path", "b.ts").Msg("path not found")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.Contains(t, string(data), `"path":"b.ts"`)
	assert.Contains(t, console.String(), "path not found")
}
