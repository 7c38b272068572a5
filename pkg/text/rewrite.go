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
	"context"
	"strings"

	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// Rewrite replaces every occurrence with its rule's new name. occ must be
// sorted by offset and non-overlapping, as returned by FindOccurrences; the
// original text is never modified, so earlier replacements cannot shift the
// offsets of later ones.
func Rewrite(original string, occ []Occurrence, set *rules.RuleSet) string {
	if len(occ) == 0 {
		return original
	}

	var b strings.Builder
	b.Grow(len(original))

	last := 0
	for _, o := range occ {
		b.WriteString(original[last:o.Offset])
		b.WriteString(set.Rule(o.Rule).New)
		last = o.End()
	}
	b.WriteString(original[last:])

	return b.String()
}

// BoundaryReplacer implements TextReplacer with identifier-boundary matching
type BoundaryReplacer struct{}

// NewBoundaryReplacer creates a new BoundaryReplacer
func NewBoundaryReplacer() *BoundaryReplacer {
	return &BoundaryReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *BoundaryReplacer) ReplaceText(ctx context.Context, content string, set *rules.RuleSet) (*ReplacementResult, error) {
	if set == nil {
		return nil, errors.New("rule set is required")
	}

	occ, err := FindOccurrences(content, set)
	if err != nil {
		return nil, err
	}

	modified := Rewrite(content, occ, set)

	return &ReplacementResult{
		OriginalContent:  content,
		ModifiedContent:  modified,
		WasModified:      modified != content,
		ReplacementCount: len(occ),
		Occurrences:      occ,
		Diffs:            ruleDiffs(modified, occ, set),
	}, nil
}

// ruleDiffs counts, for each rule that matched, how many occurrences were
// replaced and how many whole-identifier occurrences of the new name exist
// after the rewrite.
func ruleDiffs(modified string, occ []Occurrence, set *rules.RuleSet) []RuleDiff {
	replaced := make([]int, set.Len())
	for _, o := range occ {
		replaced[o.Rule]++
	}

	var diffs []RuleDiff
	for i, n := range replaced {
		if n == 0 {
			continue
		}
		rule := set.Rule(i)
		asOld := rules.RenameRule{Old: rule.New, Boundary: rule.Boundary, IgnoreCase: rule.IgnoreCase}
		diffs = append(diffs, RuleDiff{
			Old:      rule.Old,
			New:      rule.New,
			Replaced: n,
			NewCount: len(matchRule(modified, i, asOld)),
		})
	}
	return diffs
}
