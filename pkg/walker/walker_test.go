package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func collect(t *testing.T, ctx context.Context, opts Options) (paths []string, errs []error) {
	t.Helper()
	for c := range Walk(ctx, opts) {
		if c.Err != nil {
			errs = append(errs, c.Err)
			continue
		}
		paths = append(paths, c.Path)
	}
	return paths, errs
}

func rel(t *testing.T, root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	sort.Strings(out)
	return out
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/hr.ts",
		"src/Page.TSX",
		"src/readme.md",
		"src/deep/nested/model.ts",
		"node_modules/lib/index.ts",
		".git/config.ts",
		"prisma/schema.prisma",
	)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "extension_filter",
			opts: Options{Root: root, Extensions: []string{".ts", "tsx"}},
			want: []string{"src/Page.TSX", "src/deep/nested/model.ts", "src/hr.ts"},
		},
		{
			name: "no_filter",
			opts: Options{Root: root},
			want: []string{"prisma/schema.prisma", "src/Page.TSX", "src/deep/nested/model.ts", "src/hr.ts", "src/readme.md"},
		},
		{
			name: "custom_exclude",
			opts: Options{Root: root, Extensions: []string{"ts"}, Exclude: []string{"src/deep/**"}},
			want: []string{".git/config.ts", "node_modules/lib/index.ts", "src/hr.ts"},
		},
		{
			name: "explicit_paths_skip_filter",
			opts: Options{Paths: []string{filepath.Join(root, "prisma", "schema.prisma")}, Extensions: []string{".ts"}},
			want: []string{"prisma/schema.prisma"},
		},
		{
			name: "explicit_and_root_are_deduplicated",
			opts: Options{Root: filepath.Join(root, "src"), Paths: []string{filepath.Join(root, "src", "hr.ts")}, Extensions: []string{".ts"}},
			want: []string{"src/deep/nested/model.ts", "src/hr.ts"},
		},
		{
			name: "explicit_directory_is_walked",
			opts: Options{Paths: []string{filepath.Join(root, "src", "deep")}},
			want: []string{"src/deep/nested/model.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, errs := collect(t, testContext(t), tt.opts)
			require.Empty(t, errs)
			assert.Equal(t, tt.want, rel(t, root, paths))
		})
	}
}

func TestWalk_PathNotFound(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts")

	missing := filepath.Join(root, "missing")
	paths, errs := collect(t, testContext(t), Options{
		Paths: []string{filepath.Join(root, "gone.ts"), filepath.Join(root, "a.ts")},
		Root:  missing,
	})

	assert.Equal(t, []string{filepath.Join(root, "a.ts")}, paths)
	require.Len(t, errs, 2)
	for _, err := range errs {
		var notFound *PathNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	}
}

func TestWalk_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "b.ts", "c.ts")

	ctx, cancel := context.WithCancel(testContext(t))
	ch := Walk(ctx, Options{Root: root})

	first := <-ch
	require.NoError(t, first.Err)
	cancel()

	// the channel must close even though nobody drains the remaining files
	for range ch {
	}
}

func TestWalk_IgnoresSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real.ts")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.ts"), filepath.Join(root, "link.ts")))

	paths, errs := collect(t, testContext(t), Options{Root: root})
	require.Empty(t, errs)
	assert.Equal(t, []string{"real.ts"}, rel(t, root, paths))
}
