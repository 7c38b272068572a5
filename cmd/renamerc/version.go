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
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/renamerc/cmd/renamerc/opts"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// VersionInfo describes the binary and the rules files it understands
type VersionInfo struct {
	Version      string   `json:"version"`
	Revision     string   `json:"revision,omitempty"`
	Time         string   `json:"time,omitempty"`
	Modified     bool     `json:"modified,omitempty"`
	GoVersion    string   `json:"go_version"`
	Platform     string   `json:"platform"`
	RulesFormats []string `json:"rules_formats"`
	Boundaries   []string `json:"boundaries"`
}

// readVersionInfo fills VersionInfo from the embedded build info and the
// registered rules-file parsers
func readVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:      "dev",
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		RulesFormats: config.Extensions(),
		Boundaries: []string{
			string(rules.BoundaryIdentifier),
			string(rules.BoundaryJS),
			string(rules.BoundaryKebab),
		},
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := buildInfo.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Time = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

func (v *VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚀 renamerc %s (%s, %s)\n", v.Version, v.GoVersion, v.Platform)
	if v.Revision != "" {
		rev := v.Revision
		if v.Modified {
			rev += "+dirty"
		}
		fmt.Fprintf(&b, "   revision:      %s %s\n", rev, v.Time)
	}
	fmt.Fprintf(&b, "   rules formats: %s\n", strings.Join(v.RulesFormats, " "))
	fmt.Fprintf(&b, "   boundaries:    %s\n", strings.Join(v.Boundaries, " "))
	return b.String()
}

func newVersionCmd(o *opts.RootOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  opts.ConfigArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := readVersionInfo()
			if !asJSON {
				fmt.Fprint(o.Stdout, info)
				return nil
			}

			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return errors.Errorf("encoding version info: %w", err)
			}
			fmt.Fprintln(o.Stdout, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
