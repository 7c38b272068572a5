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
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// 🧱 Boundary selects which runes count as identifier characters when a rule
// checks that a match is a whole identifier.
type Boundary string

const (
	BoundaryIdentifier Boundary = "identifier" // letters, digits and '_'
	BoundaryJS         Boundary = "js"         // identifier plus '$'
	BoundaryKebab      Boundary = "kebab"      // identifier plus '-'
)

// ParseBoundary maps a rules-file value to a Boundary. The empty string is the default.
func ParseBoundary(s string) (Boundary, error) {
	switch Boundary(strings.ToLower(strings.TrimSpace(s))) {
	case "", BoundaryIdentifier, "word":
		return BoundaryIdentifier, nil
	case BoundaryJS, "javascript", "ts":
		return BoundaryJS, nil
	case BoundaryKebab, "css":
		return BoundaryKebab, nil
	}
	return "", errors.Errorf("unknown boundary %q", s)
}

// IsIdent reports whether r is part of an identifier under this boundary.
func (b Boundary) IsIdent(r rune) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch b {
	case BoundaryJS:
		return r == '$'
	case BoundaryKebab:
		return r == '-'
	}
	return false
}

// 🛡️ Guard rejects matches by their immediate surroundings.
type Guard struct {
	NotPrecededBy []string `json:"not_preceded_by,omitempty" yaml:"not_preceded_by,omitempty"`
	NotFollowedBy []string `json:"not_followed_by,omitempty" yaml:"not_followed_by,omitempty"`
}

// IsZero reports whether the guard has no conditions.
func (g *Guard) IsZero() bool {
	return g == nil || (len(g.NotPrecededBy) == 0 && len(g.NotFollowedBy) == 0)
}

// Rejects reports whether the match text[start:end] is excluded by the guard.
func (g *Guard) Rejects(text string, start, end int, ignoreCase bool) bool {
	if g == nil {
		return false
	}
	before, after := text[:start], text[end:]
	for _, p := range g.NotPrecededBy {
		if p == "" {
			continue
		}
		if ignoreCase && hasSuffixFold(before, p) || !ignoreCase && strings.HasSuffix(before, p) {
			return true
		}
	}
	for _, s := range g.NotFollowedBy {
		if s == "" {
			continue
		}
		if ignoreCase {
			if _, ok := prefixFold(after, s); ok {
				return true
			}
		} else if strings.HasPrefix(after, s) {
			return true
		}
	}
	return false
}

// 🔄 RenameRule renames every whole-identifier occurrence of Old to New.
type RenameRule struct {
	Old        string   `json:"old" yaml:"old"`
	New        string   `json:"new" yaml:"new"`
	Boundary   Boundary `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	IgnoreCase bool     `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	Guard      *Guard   `json:"guard,omitempty" yaml:"guard,omitempty"`
}

func (r RenameRule) String() string {
	return r.Old + " -> " + r.New
}

// MatchAt reports whether Old appears at byte offset i of s and returns the
// byte length of the matched text.
func (r RenameRule) MatchAt(s string, i int) (int, bool) {
	if r.IgnoreCase {
		return prefixFold(s[i:], r.Old)
	}
	if strings.HasPrefix(s[i:], r.Old) {
		return len(r.Old), true
	}
	return 0, false
}

// Accepts applies the boundary and guard checks to the match s[start:end].
//
// A leading boundary is only required when Old starts with an identifier rune,
// and a trailing one only when it ends with one.
func (r RenameRule) Accepts(s string, start, end int) bool {
	b := r.Boundary
	if b == "" {
		b = BoundaryIdentifier
	}

	first, _ := utf8.DecodeRuneInString(r.Old)
	if b.IsIdent(first) && start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:start])
		if b.IsIdent(prev) {
			return false
		}
	}

	last, _ := utf8.DecodeLastRuneInString(r.Old)
	if b.IsIdent(last) && end < len(s) {
		next, _ := utf8.DecodeRuneInString(s[end:])
		if b.IsIdent(next) {
			return false
		}
	}

	return !r.Guard.Rejects(s, start, end, r.IgnoreCase)
}

// prefixFold reports whether s starts with prefix under simple case folding,
// returning the number of bytes of s consumed.
func prefixFold(s, prefix string) (int, bool) {
	n := 0
	for _, pr := range prefix {
		if n >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[n:])
		if !foldEqual(sr, pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func hasSuffixFold(s, suffix string) bool {
	for len(suffix) > 0 {
		if len(s) == 0 {
			return false
		}
		sr, ssize := utf8.DecodeLastRuneInString(s)
		xr, xsize := utf8.DecodeLastRuneInString(suffix)
		if !foldEqual(sr, xr) {
			return false
		}
		s, suffix = s[:len(s)-ssize], suffix[:len(suffix)-xsize]
	}
	return true
}

func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
