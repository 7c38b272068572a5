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

package text

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/walteh/renamerc/pkg/rules"
)

// ⚠️ OverlapError is returned when two different rules match overlapping
// bytes of the same text.
type OverlapError struct {
	RuleA, RuleB rules.RenameRule
	Offset       int
	Line         int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("rules %q and %q overlap at line %d (byte %d)", e.RuleA.String(), e.RuleB.String(), e.Line, e.Offset)
}

// 🔍 FindOccurrences locates every occurrence of every rule in text, sorted by
// offset. Matches of different rules may not overlap.
func FindOccurrences(text string, set *rules.RuleSet) ([]Occurrence, error) {
	var all []Occurrence
	for i := 0; i < set.Len(); i++ {
		all = append(all, matchRule(text, i, set.Rule(i))...)
	}

	sort.SliceStable(all, func(a, b int) bool {
		if all[a].Offset != all[b].Offset {
			return all[a].Offset < all[b].Offset
		}
		return all[a].Rule < all[b].Rule
	})

	lines := newLineIndex(text)
	for k := range all {
		all[k].Line, all[k].Column = lines.position(all[k].Offset)
		if k > 0 && all[k].Offset < all[k-1].End() {
			return nil, &OverlapError{
				RuleA:  set.Rule(all[k-1].Rule),
				RuleB:  set.Rule(all[k].Rule),
				Offset: all[k].Offset,
				Line:   all[k].Line,
			}
		}
	}

	return all, nil
}

// MatchRule returns the occurrences of a single rule in text. idx is recorded
// as the Occurrence.Rule of each result.
func MatchRule(text string, idx int, rule rules.RenameRule) []Occurrence {
	occ := matchRule(text, idx, rule)
	lines := newLineIndex(text)
	for k := range occ {
		occ[k].Line, occ[k].Column = lines.position(occ[k].Offset)
	}
	return occ
}

func matchRule(text string, idx int, rule rules.RenameRule) []Occurrence {
	if rule.Old == "" {
		return nil
	}

	var out []Occurrence
	pos := 0
	for pos < len(text) {
		var start, n int
		if rule.IgnoreCase {
			m, ok := rule.MatchAt(text, pos)
			if !ok {
				pos += runeLen(text, pos)
				continue
			}
			start, n = pos, m
		} else {
			k := strings.Index(text[pos:], rule.Old)
			if k < 0 {
				break
			}
			start, n = pos+k, len(rule.Old)
		}

		if !rule.Accepts(text, start, start+n) {
			// a rejected candidate may still hide an accepted one starting inside it
			pos = start + runeLen(text, start)
			continue
		}

		out = append(out, Occurrence{Rule: idx, Offset: start, Length: n})
		pos = start + n
	}
	return out
}

func runeLen(s string, i int) int {
	_, size := utf8.DecodeRuneInString(s[i:])
	return size
}

// lineIndex maps byte offsets to 1-based line and column numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (l lineIndex) position(offset int) (line, column int) {
	i := sort.Search(len(l), func(i int) bool { return l[i] > offset }) - 1
	return i + 1, offset - l[i] + 1
}
