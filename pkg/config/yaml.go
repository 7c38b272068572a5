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
	"bytes"
	"context"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// Extensions lists the file extensions this parser handles
func (p *YAMLParser) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return hasExt(filename, p.Extensions()...)
}

// 📝 Parse accepts a top-level sequence of rules or a "rules" key
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*RulesFile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	var entries []ruleEntry
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		if err := decodeYAML(data, &entries); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	} else {
		var doc struct {
			Rules []ruleEntry `yaml:"rules"`
		}
		if err := decodeYAML(data, &doc); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
		entries = doc.Rules
	}

	return &RulesFile{Rules: toRules(entries)}, nil
}

func decodeYAML(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(v)
}

func (g *guardEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*g = guardEntry{NotPrecededBy: []string{s}}
		return nil
	}

	// Node.Decode does not carry the decoder's KnownFields setting
	if node.Kind == yaml.MappingNode {
		for i := 0; i < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "not_preceded_by", "not_followed_by":
			default:
				return errors.Errorf("line %d: guard: field %s not found", node.Content[i].Line, key)
			}
		}
	}

	type plain guardEntry
	var v plain
	if err := node.Decode(&v); err != nil {
		return errors.Errorf("guard: %w", err)
	}
	*g = guardEntry(v)
	return nil
}
