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

	"github.com/walteh/renamerc/pkg/status"
	"github.com/walteh/renamerc/pkg/walker"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 fileRunner feeds walked files to a bounded pool of workers
type fileRunner struct {
	jobs   int
	record func(*status.FileRecord)
}

// 🏗️ newRunner creates a runner that hands every finished record to record
func newRunner(jobs int, record func(*status.FileRecord)) *fileRunner {
	return &fileRunner{
		jobs:   jobs,
		record: record,
	}
}

// 🏃 run processes candidates until the channel closes or ctx is done.
// Files already being processed finish; files not yet started are dropped.
func (r *fileRunner) run(ctx context.Context, candidates <-chan walker.Candidate, process func(context.Context, string) *status.FileRecord) {
	var g errgroup.Group
	g.SetLimit(r.jobs)

	for c := range candidates {
		if ctx.Err() != nil {
			break
		}

		if c.Err != nil {
			r.record(walkRecord(c))
			continue
		}

		path := c.Path
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r.record(process(ctx, path))
			return nil
		})
	}

	// workers never return errors; outcomes travel in records
	_ = g.Wait()
}

// walkRecord turns a walk failure into a record: missing paths are skipped,
// anything else fails.
func walkRecord(c walker.Candidate) *status.FileRecord {
	rec := &status.FileRecord{Path: c.Path}

	var notFound *walker.PathNotFoundError
	if errors.As(c.Err, &notFound) {
		return rec.Skip(c.Err)
	}
	return rec.Fail(c.Err)
}
