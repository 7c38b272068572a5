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

package report

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/walteh/renamerc/pkg/rules"
	"github.com/walteh/renamerc/pkg/status"
	"github.com/walteh/renamerc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Match is one occurrence as shown to users: position, rule and the source line.
type Match struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Old    string `json:"old"`
	New    string `json:"new"`
	Text   string `json:"text"`
}

// FileResult is the reported outcome of one file.
type FileResult struct {
	Path     string            `json:"path"`
	Status   status.FileStatus `json:"status"`
	Encoding string            `json:"encoding,omitempty"`
	Replaced int               `json:"replaced"`
	Written  bool              `json:"written"`
	Rules    []text.RuleDiff   `json:"rules,omitempty"`
	Matches  []Match           `json:"matches,omitempty"`
	Error    string            `json:"error,omitempty"`

	err       error
	original  string
	rewritten string
}

// Err returns the error that failed or skipped the file.
func (f FileResult) Err() error {
	return f.err
}

// 📊 RunSummary is the structured result of a run.
type RunSummary struct {
	FilesScanned        int                `json:"files_scanned"`
	FilesChanged        int                `json:"files_changed"`
	FilesUnchanged      int                `json:"files_unchanged"`
	OccurrencesReplaced int                `json:"occurrences_replaced"`
	FilesSkipped        int                `json:"files_skipped"`
	FilesFailed         int                `json:"files_failed"`
	DryRun              bool               `json:"dry_run"`
	Interrupted         bool               `json:"interrupted"`
	Rules               []rules.RenameRule `json:"rules"`
	Files               []FileResult       `json:"files"`
}

// ExitCode is 0 when every file was processed and 1 otherwise.
func (s *RunSummary) ExitCode() int {
	if s.FilesFailed > 0 || s.Interrupted {
		return 1
	}
	return 0
}

// Problems returns the failed and skipped files.
func (s *RunSummary) Problems() []FileResult {
	var out []FileResult
	for _, f := range s.Files {
		if f.Status == status.StatusFailed || f.Status == status.StatusSkipped {
			out = append(out, f)
		}
	}
	return out
}

// JSON encodes the summary for the machine-readable run report.
func (s *RunSummary) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding run report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON writes the run report atomically through fm.
func (s *RunSummary) WriteJSON(ctx context.Context, fm status.FileManager, path string) error {
	data, err := s.JSON()
	if err != nil {
		return err
	}
	if err := fm.WriteFileAtomic(ctx, path, data, 0o644); err != nil {
		return errors.Errorf("writing run report: %w", err)
	}
	return nil
}

// 🧮 Reporter aggregates file records from concurrent workers.
type Reporter struct {
	mu       sync.Mutex
	set      *rules.RuleSet
	dryRun   bool
	keepText bool
	summary  RunSummary
}

// NewReporter creates a reporter for a run of set. keepText retains original
// and rewritten text of changed files so diffs can be rendered.
func NewReporter(set *rules.RuleSet, dryRun, keepText bool) *Reporter {
	r := &Reporter{set: set, dryRun: dryRun, keepText: keepText}
	r.summary.DryRun = dryRun
	if set != nil {
		r.summary.Rules = set.Rules()
	}
	return r
}

// Add records the outcome of one file. It is safe for concurrent use.
func (r *Reporter) Add(rec *status.FileRecord) {
	res := FileResult{
		Path:     rec.Path,
		Status:   rec.Status,
		Encoding: rec.Encoding,
		Written:  rec.Written,
		Rules:    rec.Diffs,
		err:      rec.Err,
	}
	if rec.Err != nil {
		res.Error = rec.Err.Error()
	}
	if rec.Status == status.StatusChanged {
		res.Replaced = len(rec.Occurrences)
		res.Matches = r.matches(rec)
		if r.keepText {
			res.original, res.rewritten = rec.Original, rec.Rewritten
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch rec.Status {
	case status.StatusChanged:
		r.summary.FilesScanned++
		r.summary.FilesChanged++
		r.summary.OccurrencesReplaced += res.Replaced
	case status.StatusSkipped:
		r.summary.FilesSkipped++
	case status.StatusFailed:
		r.summary.FilesScanned++
		r.summary.FilesFailed++
	default:
		r.summary.FilesScanned++
		r.summary.FilesUnchanged++
	}
	r.summary.Files = append(r.summary.Files, res)
}

// Interrupt marks the run as ended early.
func (r *Reporter) Interrupt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Interrupted = true
}

// Summary returns a snapshot of the run, files sorted by path.
func (r *Reporter) Summary() *RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.summary
	s.Files = make([]FileResult, len(r.summary.Files))
	copy(s.Files, r.summary.Files)
	sort.Slice(s.Files, func(i, j int) bool {
		return s.Files[i].Path < s.Files[j].Path
	})
	return &s
}

func (r *Reporter) matches(rec *status.FileRecord) []Match {
	if r.set == nil {
		return nil
	}
	out := make([]Match, 0, len(rec.Occurrences))
	for _, o := range rec.Occurrences {
		rule := r.set.Rule(o.Rule)
		out = append(out, Match{
			Line:   o.Line,
			Column: o.Column,
			Old:    rule.Old,
			New:    rule.New,
			Text:   lineAt(rec.Original, o.Offset),
		})
	}
	return out
}

// lineAt returns the line of s containing offset, without its line ending.
func lineAt(s string, offset int) string {
	start := strings.LastIndexByte(s[:offset], '\n') + 1
	end := strings.IndexByte(s[offset:], '\n')
	if end < 0 {
		end = len(s)
	} else {
		end += offset
	}
	return strings.TrimRight(s[start:end], "\r")
}
