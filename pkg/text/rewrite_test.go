package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/renamerc/pkg/rules"
)

func TestBoundaryReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []rules.RenameRule
		want         string
		wantCount    int
		wantError    string
		wantModified bool
	}{
		{
			name:         "simple_replacement",
			content:      "const payPeriod = x;",
			rules:        []rules.RenameRule{{Old: "payPeriod", New: "staffPayPeriod"}},
			want:         "const staffPayPeriod = x;",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "boundary_keeps_similar_identifiers",
			content:      "const payPeriodId = 1; // displayPeriod unaffected",
			rules:        []rules.RenameRule{{Old: "payPeriodId", New: "staffPayPeriodId"}},
			want:         "const staffPayPeriodId = 1; // displayPeriod unaffected",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "guarded_rule",
			content: "new PayPeriod(); type T = StaffPayPeriod;",
			rules: []rules.RenameRule{
				{Old: "PayPeriod", New: "StaffPayPeriod", Guard: &rules.Guard{NotPrecededBy: []string{"Staff"}}},
			},
			want:         "new StaffPayPeriod(); type T = StaffPayPeriod;",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "multiple_rules_single_pass",
			content: "prisma.payPeriod.update({ where: { payStatementId } })",
			rules: []rules.RenameRule{
				{Old: "payPeriod", New: "staffPayPeriod"},
				{Old: "payStatementId", New: "staffPayStatementId"},
			},
			want:         "prisma.staffPayPeriod.update({ where: { staffPayStatementId } })",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:         "no_match",
			content:      "Hello World",
			rules:        []rules.RenameRule{{Old: "Goodbye", New: "Hi"}},
			want:         "Hello World",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_content",
			content:      "",
			rules:        []rules.RenameRule{{Old: "World", New: "Universe"}},
			want:         "",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "overlapping_rules",
			content: "prisma.payPeriod",
			rules: []rules.RenameRule{
				{Old: "prisma.payPeriod", New: "prisma.staffPayPeriod"},
				{Old: "payPeriod", New: "staffPayPeriod"},
			},
			wantError: "overlap at line 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := rules.New(tt.rules)
			require.NoError(t, err)

			replacer := NewBoundaryReplacer()
			result, err := replacer.ReplaceText(context.Background(), tt.content, set)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalContent)
			assert.Equal(t, tt.want, result.ModifiedContent)
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestBoundaryReplacer_Idempotent(t *testing.T) {
	set := rules.MustNew(
		rules.RenameRule{Old: "payPeriod", New: "staffPayPeriod"},
		rules.RenameRule{Old: "PayPeriod", New: "StaffPayPeriod", Guard: &rules.Guard{NotPrecededBy: []string{"Staff", "staff"}}},
		rules.RenameRule{Old: "payPeriodId", New: "staffPayPeriodId"},
	)
	content := "model PayPeriod { payPeriodId Int }\nconst payPeriod = await prisma.payPeriod.findFirst();\n"

	replacer := NewBoundaryReplacer()
	first, err := replacer.ReplaceText(context.Background(), content, set)
	require.NoError(t, err)
	require.True(t, first.WasModified)
	assert.Equal(t, 4, first.ReplacementCount)

	second, err := replacer.ReplaceText(context.Background(), first.ModifiedContent, set)
	require.NoError(t, err)
	assert.False(t, second.WasModified)
	assert.Empty(t, second.Occurrences)
	assert.Equal(t, first.ModifiedContent, second.ModifiedContent)
}

func TestBoundaryReplacer_Diffs(t *testing.T) {
	set := rules.MustNew(
		rules.RenameRule{Old: "payPeriod", New: "staffPayPeriod"},
		rules.RenameRule{Old: "unused", New: "stillUnused"},
	)

	result, err := NewBoundaryReplacer().ReplaceText(context.Background(), "payPeriod staffPayPeriod payPeriod", set)
	require.NoError(t, err)
	assert.Equal(t, []RuleDiff{{Old: "payPeriod", New: "staffPayPeriod", Replaced: 2, NewCount: 3}}, result.Diffs)
}

func TestBoundaryReplacer_NilRuleSet(t *testing.T) {
	_, err := NewBoundaryReplacer().ReplaceText(context.Background(), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule set is required")
}

func TestBoundaryReplacer_IdempotentAcrossJunctions(t *testing.T) {
	tests := []struct {
		name     string
		rules    []rules.RenameRule
		content  string
		rejected bool
	}{
		{
			name:     "replacement_followed_by_dotted_old_name",
			rules:    []rules.RenameRule{{Old: "foo", New: "bar"}, {Old: "bar.baz", New: "qux"}},
			content:  "x := foo.baz",
			rejected: true,
		},
		{
			name:     "replacement_rejoins_own_old_name",
			rules:    []rules.RenameRule{{Old: "x.y", New: "y"}},
			content:  "a(x.x.y)",
			rejected: true,
		},
		{
			name:    "leading_quote_rule",
			rules:   []rules.RenameRule{{Old: "'PayPeriod", New: "'StaffPayPeriod"}},
			content: "'PayPeriod'PayPeriod' 'PayPeriod'",
		},
		{
			name:    "boundary_blocks_junction",
			rules:   []rules.RenameRule{{Old: "foo", New: "bar"}, {Old: "barX.baz", New: "qux"}},
			content: "foo.baz fooX.baz foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := rules.New(tt.rules)
			if tt.rejected {
				var conflict *rules.RuleConflictError
				require.ErrorAs(t, err, &conflict)
				return
			}
			require.NoError(t, err)

			replacer := NewBoundaryReplacer()
			first, err := replacer.ReplaceText(context.Background(), tt.content, set)
			require.NoError(t, err)
			require.True(t, first.WasModified)

			second, err := replacer.ReplaceText(context.Background(), first.ModifiedContent, set)
			require.NoError(t, err)
			assert.False(t, second.WasModified, "second run changed %q", first.ModifiedContent)
		})
	}
}
