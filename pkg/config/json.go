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
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// Extensions lists the file extensions this parser handles
func (p *JSONParser) Extensions() []string {
	return []string{".json"}
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return hasExt(filename, p.Extensions()...)
}

// 📝 Parse accepts a bare array of rules or an object with a "rules" array
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*RulesFile, error) {
	var entries []ruleEntry

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := decodeJSON(trimmed, &entries); err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
	} else {
		var doc struct {
			Rules []ruleEntry `json:"rules"`
		}
		if err := decodeJSON(trimmed, &doc); err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
		entries = doc.Rules
	}

	return &RulesFile{Rules: toRules(entries)}, nil
}

func decodeJSON(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.Errorf("unexpected data after the rules at byte %d", decoder.InputOffset())
	}
	return nil
}

func (g *guardEntry) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*g = guardEntry{NotPrecededBy: []string{s}}
		return nil
	}

	type plain guardEntry
	var v plain
	if err := decodeJSON(data, &v); err != nil {
		return errors.Errorf("guard: %w", err)
	}
	*g = guardEntry(v)
	return nil
}
