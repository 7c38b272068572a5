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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/walteh/renamerc/cmd/renamerc/opts"
	"github.com/walteh/renamerc/pkg/config"
	"github.com/walteh/renamerc/pkg/report"
	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a rules file without touching any file",
		Args:  opts.ConfigArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			if err := bindFlags(o.Config, cmd.Flags()); err != nil {
				return opts.ConfigError(err)
			}

			set, err := loadRules(ctx, o.Config)
			if err != nil {
				return err
			}

			report.RenderRules(o.Stdout, set.Rules())
			fmt.Fprintln(o.Stdout, color.GreenString("✓ %d rule(s), no conflicts", set.Len()))
			return nil
		},
	}

	cmd.Flags().StringP(opts.RulesKey, "r", "", "rules file (.json, .yaml, .hcl or .toml)")
	return cmd
}

func loadRules(ctx context.Context, v *viper.Viper) (*rules.RuleSet, error) {
	path := v.GetString(opts.RulesKey)
	if path == "" {
		return nil, opts.ConfigError(errors.New("a rules file is required (--rules)"))
	}

	set, err := config.Load(ctx, path)
	if err != nil {
		return nil, opts.ConfigError(err)
	}
	return set, nil
}
