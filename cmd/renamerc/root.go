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

package main

import (
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/renamerc/cmd/renamerc/commands"
	"github.com/walteh/renamerc/cmd/renamerc/opts"
	"github.com/walteh/renamerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree around shared options
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renamerc",
		Short: "Boundary-aware identifier renames across a codebase",
		Long: `renamerc applies a set of old → new identifier renames to many files at
once. Matches respect identifier boundaries, rules are checked against each
other before any file is touched, and every file is replaced atomically.`,
		Args:          opts.ConfigArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addRootFlags(cmd, o)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return opts.ConfigError(err)
	})
	cmd.SetOut(o.Stdout)
	cmd.SetErr(o.Stderr)

	cmd.AddCommand(
		commands.NewRenameCmd(o),
		commands.NewFindCmd(o),
		commands.NewCheckCmd(o),
		newVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	flags := cmd.PersistentFlags()
	flags.BoolP(opts.DebugKey, "d", false, "enable debug logging")
	flags.String("log-file", "", "also write JSON logs to this rotating file")
	flags.Bool(opts.NoColorKey, false, "disable coloured output")

	_ = o.Config.BindPFlag(opts.DebugKey, flags.Lookup(opts.DebugKey))
	_ = o.Config.BindPFlag(opts.LogFilenameKey, flags.Lookup("log-file"))
	_ = o.Config.BindPFlag(opts.NoColorKey, flags.Lookup(opts.NoColorKey))
}

// setupLogging configures zerolog based on flags and puts the logger in the
// command context
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) error {
	v := o.Config

	noColor := v.GetBool(opts.NoColorKey)
	if noColor {
		color.NoColor = true
		pterm.DisableColor()
	}

	if o.LogFile != nil {
		return errors.New("logger already configured")
	}

	logOpts := log.Options{
		Console: o.Stderr,
		NoColor: noColor,
		Debug:   v.GetBool(opts.DebugKey),
	}
	if filename := v.GetString(opts.LogFilenameKey); filename != "" {
		logOpts.File = &log.FileOptions{
			Filename:   filename,
			MaxSize:    v.GetInt(opts.LogMaxSizeKey),
			MaxBackups: v.GetInt(opts.LogMaxBackupsKey),
			MaxAge:     v.GetInt(opts.LogMaxAgeKey),
			Compress:   v.GetBool(opts.LogCompressKey),
		}
	}

	logger := log.New(logOpts)
	o.LogFile = logger
	cmd.SetContext(logger.WithContext(cmd.Context()))

	logger.Debug().Str("command", cmd.CommandPath()).Str("config", v.ConfigFileUsed()).Msg("logging configured")
	return nil
}
