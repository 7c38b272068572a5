package text

import (
	"context"

	"github.com/walteh/renamerc/pkg/rules"
)

// Occurrence is one located match of a rule in a file's decoded text.
type Occurrence struct {
	// Rule is the index of the matching rule in its RuleSet
	Rule int `json:"rule"`

	// Offset and Length delimit the match in bytes of the UTF-8 text
	Offset int `json:"offset"`
	Length int `json:"length"`

	// Line and Column are 1-based; Column counts bytes
	Line   int `json:"line"`
	Column int `json:"column"`
}

// End returns the byte offset just past the match.
func (o Occurrence) End() int {
	return o.Offset + o.Length
}

// RuleDiff counts what a single rule did to a file
type RuleDiff struct {
	Old string `json:"old"`
	New string `json:"new"`

	// Replaced is the number of occurrences of Old that were rewritten
	Replaced int `json:"replaced"`

	// NewCount is the number of whole-identifier occurrences of New after the rewrite
	NewCount int `json:"new_count"`
}

// ReplacementResult contains the results of a rename pass over one text
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent string

	// ModifiedContent is the content after replacements
	ModifiedContent string

	// Occurrences are all matches, sorted by offset
	Occurrences []Occurrence

	// Diffs holds per-rule counts for rules that matched
	Diffs []RuleDiff
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies every rule of the set to the content in a single pass
	ReplaceText(ctx context.Context, content string, set *rules.RuleSet) (*ReplacementResult, error)
}
