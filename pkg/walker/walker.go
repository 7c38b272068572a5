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

package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// DefaultExclude is applied when Options.Exclude is nil.
var DefaultExclude = []string{"**/.git/**", "**/node_modules/**"}

// Options selects the files of a corpus.
type Options struct {
	// Root is walked recursively when set
	Root string

	// Paths are explicit files or directories, emitted before Root
	Paths []string

	// Extensions filters files found by walking directories (".ts" or "ts").
	// Explicit file paths are never filtered. Empty accepts every file.
	Extensions []string

	// Exclude holds doublestar patterns matched against the slash-separated
	// path relative to the directory being walked
	Exclude []string
}

// Candidate is a file to process, or a path that could not be walked.
type Candidate struct {
	Path string
	Err  error
}

// PathNotFoundError is reported for a root or explicit path that does not exist.
type PathNotFoundError struct {
	Path string
	Err  error
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

func (e *PathNotFoundError) Unwrap() error {
	return e.Err
}

// 🚶 Walk streams candidate files on the returned channel. The channel is
// closed once every path has been visited or ctx is done.
func Walk(ctx context.Context, opts Options) <-chan Candidate {
	out := make(chan Candidate)

	w := &walker{
		ctx:     ctx,
		out:     out,
		exts:    normalizeExtensions(opts.Extensions),
		exclude: opts.Exclude,
		seen:    make(map[string]struct{}),
	}
	if w.exclude == nil {
		w.exclude = DefaultExclude
	}

	go func() {
		defer close(out)

		for _, p := range opts.Paths {
			if !w.visit(p, true) {
				return
			}
		}
		if opts.Root != "" {
			w.visit(opts.Root, false)
		}
	}()

	return out
}

type walker struct {
	ctx     context.Context
	out     chan<- Candidate
	exts    map[string]struct{}
	exclude []string
	seen    map[string]struct{}
}

// emit sends c unless ctx is done; it reports whether walking should go on.
func (w *walker) emit(c Candidate) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.out <- c:
		return true
	}
}

func (w *walker) visit(path string, explicit bool) bool {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w.emit(Candidate{Path: path, Err: &PathNotFoundError{Path: path, Err: err}})
		}
		return w.emit(Candidate{Path: path, Err: err})
	}

	switch {
	case info.IsDir():
		return w.walkDir(path)
	case info.Mode().IsRegular():
		if !explicit && !w.accepts(path) {
			return true
		}
		return w.add(path)
	default:
		zerolog.Ctx(w.ctx).Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("ignoring non-regular file")
		return true
	}
}

func (w *walker) walkDir(root string) bool {
	keepGoing := true

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if !w.emit(Candidate{Path: path, Err: err}) {
				keepGoing = false
				return filepath.SkipAll
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			// match "dir/" so patterns like "**/node_modules/**" prune the directory itself
			if rel != "." && w.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || w.excluded(rel) || !w.accepts(path) {
			return nil
		}
		if !w.add(path) {
			keepGoing = false
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return w.emit(Candidate{Path: root, Err: err})
	}

	return keepGoing
}

func (w *walker) add(path string) bool {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	if _, ok := w.seen[key]; ok {
		return true
	}
	w.seen[key] = struct{}{}
	return w.emit(Candidate{Path: path})
}

func (w *walker) excluded(rel string) bool {
	for _, pattern := range w.exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(w.ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(w.ctx).Trace().Str("path", rel).Str("pattern", pattern).Msg("path excluded by pattern")
			return true
		}
	}
	return false
}

func (w *walker) accepts(path string) bool {
	if len(w.exts) == 0 {
		return true
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

func normalizeExtensions(exts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out[e] = struct{}{}
	}
	return out
}
