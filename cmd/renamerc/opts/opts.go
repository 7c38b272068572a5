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

package opts

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes of the renamerc binary
const (
	ExitOK      = 0
	ExitFailure = 1 // one or more files failed, or the run was interrupted
	ExitConfig  = 2 // rule conflicts, bad rules file, missing root, no inputs
)

// Configuration keys shared by flags, RENAMERC_* variables and .renamerc.yaml
const (
	RulesKey   = "rules"
	RootKey    = "root"
	ExtKey     = "ext"
	PathsKey   = "paths"
	ExcludeKey = "exclude"
	DryRunKey  = "dry-run"
	DiffKey    = "diff"
	JobsKey    = "jobs"
	ReportKey  = "report"

	DebugKey         = "debug"
	NoColorKey       = "no-color"
	LogFilenameKey   = "log.filename"
	LogMaxSizeKey    = "log.max_size"
	LogMaxBackupsKey = "log.max_backups"
	LogMaxAgeKey     = "log.max_age"
	LogCompressKey   = "log.compress"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config *viper.Viper
	Stdout io.Writer
	Stderr io.Writer

	// LogFile is the process logger; closing it closes the --log-file, if any
	LogFile io.Closer
}

// Close releases the log file.
func (o *RootOpts) Close() error {
	if o.LogFile == nil {
		return nil
	}
	return o.LogFile.Close()
}

// 🚪 ExitError carries the process exit code for an error
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ConfigError marks err as a configuration problem detected before any file
// was touched.
func ConfigError(err error) error {
	return &ExitError{Code: ExitConfig, Err: err}
}

// ConfigArgs makes positional argument errors, unknown subcommands included,
// exit as configuration errors.
func ConfigArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return ConfigError(err)
		}
		return nil
	}
}
