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

package rules

import (
	"fmt"
	"strings"
)

// Conflict is one problem found while validating a rule list. B is -1 when the
// problem involves a single rule.
type Conflict struct {
	A      int    `json:"a"`
	B      int    `json:"b"`
	Reason string `json:"reason"`
}

// ❌ RuleConflictError lists every rule, or pair of rules, that cannot be
// applied deterministically.
type RuleConflictError struct {
	Conflicts []Conflict
	rules     []RenameRule
}

func (e *RuleConflictError) add(a, b int, reason string) {
	e.Conflicts = append(e.Conflicts, Conflict{A: a, B: b, Reason: reason})
}

func (e *RuleConflictError) describe(i int) string {
	if i < 0 || i >= len(e.rules) {
		return fmt.Sprintf("rule %d", i+1)
	}
	return fmt.Sprintf("rule %d (%s)", i+1, e.rules[i])
}

func (e *RuleConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		if c.B < 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", e.describe(c.A), c.Reason))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s vs %s: %s", e.describe(c.A), e.describe(c.B), c.Reason))
	}
	return fmt.Sprintf("%d rule conflict(s): %s", len(e.Conflicts), strings.Join(parts, "; "))
}
