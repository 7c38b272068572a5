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

package textfile

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📥 Load reads path through fm and decodes it. The returned record is Failed
// when the file cannot be read or decoded; otherwise its status is still
// StatusUnknown and Original holds the UTF-8 text.
func Load(ctx context.Context, fm status.FileManager, path string) *status.FileRecord {
	rec := &status.FileRecord{Path: path}

	raw, mode, err := fm.ReadFile(ctx, path)
	if err != nil {
		return rec.Fail(err)
	}
	rec.Mode = mode

	content, enc, err := Decode(raw)
	if err != nil {
		var encErr *EncodingError
		if errors.As(err, &encErr) {
			encErr.Path = path
		}
		return rec.Fail(err)
	}

	rec.Encoding = string(enc)
	rec.Original = content

	zerolog.Ctx(ctx).Trace().
		Str("path", path).
		Str("encoding", rec.Encoding).
		Int("bytes", len(raw)).
		Msg("file loaded")

	return rec
}
