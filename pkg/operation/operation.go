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

package operation

import (
	"context"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/report"
	"github.com/walteh/renamerc/pkg/rules"
	"github.com/walteh/renamerc/pkg/status"
	"github.com/walteh/renamerc/pkg/text"
	"github.com/walteh/renamerc/pkg/textfile"
	"github.com/walteh/renamerc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator renames identifiers across a corpus of files
type Operator interface {
	// Run processes every file selected by opts and returns the run summary.
	// A cancelled ctx yields the partial summary and an error wrapping ctx.Err().
	Run(ctx context.Context, opts walker.Options) (*report.RunSummary, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// RuleSet is the validated set of renames to apply
	RuleSet *rules.RuleSet
	// Files reads and atomically writes corpus files
	Files status.FileManager
	// Replacer finds and rewrites occurrences; defaults to text.BoundaryReplacer
	Replacer text.TextReplacer
	// Jobs bounds the number of files processed at once; <= 0 means one per CPU
	Jobs int
	// DryRun computes every rewrite without writing
	DryRun bool
	// KeepText retains file text in the summary so diffs can be rendered
	KeepText bool
	// Console receives one line per changed, skipped or failed file; nil is quiet
	Console io.Writer
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.RuleSet == nil {
		return nil, errors.Errorf("rule set is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewBoundaryReplacer()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &operator{opts: opts}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	opts Options
}

// Run implements Operator.Run
func (o *operator) Run(ctx context.Context, opts walker.Options) (*report.RunSummary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("root", opts.Root).
		Strs("paths", opts.Paths).
		Int("rules", o.opts.RuleSet.Len()).
		Int("jobs", o.opts.Jobs).
		Bool("dry_run", o.opts.DryRun).
		Msg("starting rename run")

	reporter := report.NewReporter(o.opts.RuleSet, o.opts.DryRun, o.opts.KeepText)
	console := status.NewUserLogger(ctx, o.opts.Console, o.opts.DryRun)

	r := newRunner(o.opts.Jobs, func(rec *status.FileRecord) {
		reporter.Add(rec)
		console.LogRecord(rec)
	})
	r.run(ctx, walker.Walk(ctx, opts), o.processFile)

	if err := ctx.Err(); err != nil {
		reporter.Interrupt()
		summary := reporter.Summary()
		logger.Warn().Int("files_scanned", summary.FilesScanned).Msg("rename run interrupted")
		return summary, errors.Errorf("rename run interrupted: %w", err)
	}

	summary := reporter.Summary()
	logger.Debug().
		Int("files_scanned", summary.FilesScanned).
		Int("files_changed", summary.FilesChanged).
		Int("occurrences_replaced", summary.OccurrencesReplaced).
		Msg("rename run finished")
	return summary, nil
}

// 🔄 processFile takes one file through load, match, rewrite and write.
// Every match is computed before anything is written.
func (o *operator) processFile(ctx context.Context, path string) *status.FileRecord {
	rec := textfile.Load(ctx, o.opts.Files, path)
	if rec.Status == status.StatusFailed {
		return rec
	}

	result, err := o.opts.Replacer.ReplaceText(ctx, rec.Original, o.opts.RuleSet)
	if err != nil {
		return rec.Fail(errors.Errorf("matching %s: %w", path, err))
	}

	if !result.WasModified {
		rec.Status = status.StatusUnchanged
		return rec
	}

	rec.Status = status.StatusChanged
	rec.Rewritten = result.ModifiedContent
	rec.Occurrences = result.Occurrences
	rec.Diffs = result.Diffs

	if o.opts.DryRun {
		return rec
	}

	if err := o.opts.Files.WriteFileAtomic(ctx, path, textfile.Encode(rec.Rewritten), rec.Mode); err != nil {
		return rec.Fail(err)
	}
	rec.Written = true
	return rec
}
