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
	"fmt"
)

// FileFormatter defines how file outcomes should be formatted
type FileFormatter interface {
	// FormatRecord formats a one-line outcome message
	FormatRecord(rec *FileRecord, dryRun bool) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatRecord formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatRecord(rec *FileRecord, dryRun bool) string {
	switch rec.Status {
	case StatusChanged:
		if dryRun {
			return fmt.Sprintf("🔎 Would rename %d in %s", len(rec.Occurrences), rec.Path)
		}
		return fmt.Sprintf("📝 Renamed %d in %s", len(rec.Occurrences), rec.Path)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s: %v", rec.Path, rec.Err)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s: %v", rec.Path, rec.Err)
	default:
		return fmt.Sprintf("👍 Unchanged %s", rec.Path)
	}
}
