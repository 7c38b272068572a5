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
	"unicode/utf8"
)

// 📚 RuleSet is a validated, immutable list of rename rules kept in declaration order.
type RuleSet struct {
	rules []RenameRule
}

// New validates rs and returns a RuleSet. Every problem found is reported in a
// single *RuleConflictError; no rule order is ever chosen silently.
func New(rs []RenameRule) (*RuleSet, error) {
	normalized := make([]RenameRule, len(rs))
	conflict := &RuleConflictError{}

	for i, r := range rs {
		b, err := ParseBoundary(string(r.Boundary))
		if err != nil {
			conflict.add(i, -1, err.Error())
		}
		r.Boundary = b
		if r.Guard.IsZero() {
			r.Guard = nil
		}
		normalized[i] = r

		switch {
		case r.Old == "":
			conflict.add(i, -1, "old name is empty")
			continue
		case r.New == "":
			conflict.add(i, -1, "new name is empty")
			continue
		case r.Old == r.New:
			conflict.add(i, -1, "old and new names are identical")
			continue
		}

		if at, ok := firstAccepted(r, r.New); ok {
			conflict.add(i, -1, fmt.Sprintf("old name re-matches inside its own new name at byte %d", at))
		} else if text, ok := junctionMatch(r, r); ok {
			conflict.add(i, -1, fmt.Sprintf("new name can join surrounding text into its own old name, as in %q", text))
		}
	}

	for i, a := range normalized {
		if a.Old == "" || a.New == "" {
			continue
		}
		for j, b := range normalized {
			if i == j || b.Old == "" || b.New == "" {
				continue
			}
			if j < i && sameName(a, b) {
				conflict.add(j, i, "duplicate old name")
				continue
			}
			if at, ok := firstUnguarded(a, b.New); ok {
				conflict.add(i, j, fmt.Sprintf("old name %q occurs in new name %q at byte %d", a.Old, b.New, at))
				continue
			}
			if text, ok := junctionMatch(b, a); ok {
				conflict.add(i, j, fmt.Sprintf("old name %q can form across new name %q, as in %q", a.Old, b.New, text))
			}
		}
	}

	if len(conflict.Conflicts) > 0 {
		conflict.rules = normalized
		return nil, conflict
	}

	return &RuleSet{rules: normalized}, nil
}

// MustNew is New for rule sets known to be valid; it panics otherwise.
func MustNew(rs ...RenameRule) *RuleSet {
	set, err := New(rs)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rule returns the i-th rule in application order.
func (s *RuleSet) Rule(i int) RenameRule {
	return s.rules[i]
}

// Rules returns a copy of the rules in application order.
func (s *RuleSet) Rules() []RenameRule {
	out := make([]RenameRule, len(s.rules))
	copy(out, s.rules)
	return out
}

func sameName(a, b RenameRule) bool {
	if a.IgnoreCase || b.IgnoreCase {
		return strings.EqualFold(a.Old, b.Old)
	}
	return a.Old == b.Old
}

// firstAccepted finds the first match of r in s that passes boundary and guard checks.
func firstAccepted(r RenameRule, s string) (int, bool) {
	for p := 0; p < len(s); {
		if n, ok := r.MatchAt(s, p); ok && r.Accepts(s, p, p+n) {
			return p, true
		}
		_, size := utf8.DecodeRuneInString(s[p:])
		p += size
	}
	return 0, false
}

// firstUnguarded finds the first plain substring match of r in s that r's guard
// does not reject. Boundaries are ignored on purpose: another rule's output is
// compared as a raw string.
func firstUnguarded(r RenameRule, s string) (int, bool) {
	for p := 0; p < len(s); {
		if n, ok := r.MatchAt(s, p); ok && !r.Guard.Rejects(s, p, p+n, r.IgnoreCase) {
			return p, true
		}
		_, size := utf8.DecodeRuneInString(s[p:])
		p += size
	}
	return 0, false
}

// junctionMatch looks for a text where out's replacement, together with the
// text around it, forms an accepted match of pat that crosses an edge of
// out.New or encloses it. Matches lying wholly inside out.New are left to
// firstAccepted and firstUnguarded. It returns the rewritten text.
func junctionMatch(out, pat RenameRule) (string, bool) {
	for d := 1 - len(pat.Old); d < len(out.New); d++ {
		if d >= 0 && d+len(pat.Old) <= len(out.New) {
			continue
		}

		var left, right string
		if d < 0 {
			if !utf8.RuneStart(pat.Old[-d]) {
				continue
			}
			left = pat.Old[:-d]
		}
		if cut := len(out.New) - d; cut < len(pat.Old) {
			if !utf8.RuneStart(pat.Old[cut]) {
				continue
			}
			right = pat.Old[cut:]
		}

		after := left + out.New + right
		start := len(left) + d
		n, ok := pat.MatchAt(after, start)
		if !ok || !pat.Accepts(after, start, start+n) {
			continue
		}

		// the replacement must have been possible in the first place
		before := left + out.Old + right
		if !out.Accepts(before, len(left), len(left)+len(out.Old)) {
			continue
		}
		return after, true
	}
	return "", false
}
