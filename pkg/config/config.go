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

package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for rules file parsers
type Parser interface {
	// 📝 Parse parses a rules file from bytes
	Parse(ctx context.Context, data []byte) (*RulesFile, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool

	// Extensions lists the file extensions the parser accepts, with the dot
	Extensions() []string
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Extensions returns every rules-file extension with a registered parser, sorted.
func Extensions() []string {
	var out []string
	for _, p := range parsers {
		out = append(out, p.Extensions()...)
	}
	sort.Strings(out)
	return out
}

// 📚 RulesFile is a decoded rules file
type RulesFile struct {
	Path  string
	Rules []rules.RenameRule
}

// RuleSet validates the rules as a whole.
func (f *RulesFile) RuleSet() (*rules.RuleSet, error) {
	if len(f.Rules) == 0 {
		return nil, errors.Errorf("%s: no rules defined", f.name())
	}
	set, err := rules.New(f.Rules)
	if err != nil {
		return nil, errors.Errorf("%s: %w", f.name(), err)
	}
	return set, nil
}

func (f *RulesFile) name() string {
	if f.Path == "" {
		return "rules"
	}
	return f.Path
}

// 🎯 Load reads, parses and validates a rules file
func Load(ctx context.Context, path string) (*rules.RuleSet, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rules file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rules file: %w", err)
	}

	f, err := Parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	set, err := f.RuleSet()
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("path", path).Int("rules", set.Len()).Msg("rules loaded")
	return set, nil
}

// Parse decodes data with the parser registered for filename's extension.
func Parse(ctx context.Context, filename string, data []byte) (*RulesFile, error) {
	p := GetParser(filename)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", filename)
	}

	f, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing rules file %s: %w", filename, err)
	}
	f.Path = filename
	return f, nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 🔄 ruleEntry is the on-disk shape of one rule shared by the JSON, YAML
// and TOML parsers
type ruleEntry struct {
	Old        string      `json:"old" yaml:"old" toml:"old"`
	New        string      `json:"new" yaml:"new" toml:"new"`
	Boundary   string      `json:"boundary,omitempty" yaml:"boundary,omitempty" toml:"boundary"`
	IgnoreCase bool        `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty" toml:"ignore_case"`
	Guard      *guardEntry `json:"guard,omitempty" yaml:"guard,omitempty" toml:"guard"`
}

// guardEntry accepts either a guard object or a bare string, which is
// shorthand for a single not_preceded_by context.
type guardEntry struct {
	NotPrecededBy []string `json:"not_preceded_by,omitempty" yaml:"not_preceded_by,omitempty" toml:"not_preceded_by"`
	NotFollowedBy []string `json:"not_followed_by,omitempty" yaml:"not_followed_by,omitempty" toml:"not_followed_by"`
}

func toRules(entries []ruleEntry) []rules.RenameRule {
	out := make([]rules.RenameRule, 0, len(entries))
	for _, e := range entries {
		r := rules.RenameRule{
			Old:        e.Old,
			New:        e.New,
			Boundary:   rules.Boundary(e.Boundary),
			IgnoreCase: e.IgnoreCase,
		}
		if e.Guard != nil {
			r.Guard = &rules.Guard{
				NotPrecededBy: e.Guard.NotPrecededBy,
				NotFollowedBy: e.Guard.NotFollowedBy,
			}
		}
		out = append(out, r)
	}
	return out
}
