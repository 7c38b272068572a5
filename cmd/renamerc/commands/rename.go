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

package commands

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/walteh/renamerc/cmd/renamerc/opts"
	"github.com/walteh/renamerc/pkg/operation"
	"github.com/walteh/renamerc/pkg/report"
	"github.com/walteh/renamerc/pkg/status"
	"github.com/walteh/renamerc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// NewRenameCmd creates the rename command
func NewRenameCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename identifiers across a corpus of files",
		Long: `Rename applies every rule of a rules file to each selected file.
It will:
1. Validate the rules as a whole (conflicts stop the run before any write)
2. Walk --root and --paths, filtering directory contents by --ext
3. Rewrite each file with whole-identifier matches only
4. Replace each changed file atomically, as UTF-8`,
		Args: opts.ConfigArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, o, false)
		},
	}

	addRunFlags(cmd)
	cmd.Flags().Bool(opts.DryRunKey, false, "compute every rewrite without writing")
	return cmd
}

// NewFindCmd creates the find command
func NewFindCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List every occurrence the rules would rename",
		Long: `Find runs a rename as a dry run and prints each occurrence as
path:line:col, the rename, and the source line.`,
		Args: opts.ConfigArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, o, true)
		},
	}

	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(opts.RulesKey, "r", "", "rules file (.json, .yaml, .hcl or .toml)")
	cmd.Flags().String(opts.RootKey, "", "directory to walk recursively")
	cmd.Flags().StringSlice(opts.ExtKey, nil, "file extensions to include when walking, e.g. .ts,.tsx")
	cmd.Flags().StringSlice(opts.PathsKey, nil, "explicit files or directories to process")
	cmd.Flags().StringArrayP(opts.ExcludeKey, "x", nil, "glob of paths to exclude, relative to the walked directory (can be repeated)")
	cmd.Flags().Bool(opts.DiffKey, false, "print a unified diff of every changed file")
	cmd.Flags().IntP(opts.JobsKey, "j", 0, "files processed at once (0 means one per CPU)")
	cmd.Flags().String(opts.ReportKey, "", "write a JSON run report to this file")
}

// bindFlags binds the executing command's flags so that flag values win over
// RENAMERC_* variables and .renamerc.yaml.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = errors.Errorf("binding flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	return zerolog.Ctx(ctx).With().Str("command", cmd.Name()).Logger().WithContext(ctx)
}

func runRename(cmd *cobra.Command, o *opts.RootOpts, find bool) error {
	ctx := commandContext(cmd)
	v := o.Config

	if err := bindFlags(v, cmd.Flags()); err != nil {
		return opts.ConfigError(err)
	}

	set, err := loadRules(ctx, v)
	if err != nil {
		return err
	}

	walkOpts, err := walkOptions(v)
	if err != nil {
		return opts.ConfigError(err)
	}

	dryRun := find || v.GetBool(opts.DryRunKey)
	diff := v.GetBool(opts.DiffKey)

	op, err := operation.New(operation.Options{
		RuleSet:  set,
		Files:    status.New(""),
		Jobs:     v.GetInt(opts.JobsKey),
		DryRun:   dryRun,
		KeepText: diff,
		Console:  o.Stderr,
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	summary, runErr := op.Run(ctx, walkOpts)

	if err := report.Render(o.Stdout, summary, report.RenderOptions{Matches: find, Diff: diff}); err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	if path := v.GetString(opts.ReportKey); path != "" {
		if err := summary.WriteJSON(ctx, status.New(""), path); err != nil {
			return &opts.ExitError{Code: opts.ExitFailure, Err: err}
		}
	}

	if runErr != nil {
		return &opts.ExitError{Code: opts.ExitFailure, Err: runErr}
	}
	if code := summary.ExitCode(); code != opts.ExitOK {
		return &opts.ExitError{Code: code, Err: errors.Errorf("%d file(s) failed", summary.FilesFailed)}
	}
	return nil
}

func walkOptions(v *viper.Viper) (walker.Options, error) {
	root := v.GetString(opts.RootKey)
	paths := stringList(v, opts.PathsKey)

	if root == "" && len(paths) == 0 {
		return walker.Options{}, errors.New("no inputs: set --root or --paths")
	}

	if root != "" {
		info, err := os.Stat(root)
		if err != nil {
			return walker.Options{}, errors.Errorf("root %s: %w", root, err)
		}
		if !info.IsDir() {
			return walker.Options{}, errors.Errorf("root %s is not a directory", root)
		}
	}

	return walker.Options{
		Root:       root,
		Paths:      paths,
		Extensions: stringList(v, opts.ExtKey),
		Exclude:    append(slices.Clone(walker.DefaultExclude), stringList(v, opts.ExcludeKey)...),
	}, nil
}

// stringList reads a list that may also arrive as one comma-separated
// environment value.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
