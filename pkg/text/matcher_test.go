package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/renamerc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

func TestFindOccurrences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rules   []rules.RenameRule
		want    []Occurrence
	}{
		{
			name:    "whole_identifier",
			content: "const payPeriod = x;",
			rules:   []rules.RenameRule{{Old: "payPeriod", New: "staffPayPeriod"}},
			want:    []Occurrence{{Rule: 0, Offset: 6, Length: 9, Line: 1, Column: 7}},
		},
		{
			name:    "partial_identifier_is_ignored",
			content: "displayPeriodValue",
			rules:   []rules.RenameRule{{Old: "payPeriod", New: "staffPayPeriod"}},
			want:    nil,
		},
		{
			name:    "already_renamed_superstring_is_ignored",
			content: "new StaffPayPeriod()",
			rules:   []rules.RenameRule{{Old: "PayPeriod", New: "StaffPayPeriod"}},
			want:    nil,
		},
		{
			name:    "multiple_lines",
			content: "a := payPeriod\n\tb := payPeriod.id\n",
			rules:   []rules.RenameRule{{Old: "payPeriod", New: "staffPayPeriod"}},
			want: []Occurrence{
				{Rule: 0, Offset: 5, Length: 9, Line: 1, Column: 6},
				{Rule: 0, Offset: 21, Length: 9, Line: 2, Column: 7},
			},
		},
		{
			name:    "rules_sorted_by_offset",
			content: "payStatementId, payPeriodId",
			rules: []rules.RenameRule{
				{Old: "payPeriodId", New: "staffPayPeriodId"},
				{Old: "payStatementId", New: "staffPayStatementId"},
			},
			want: []Occurrence{
				{Rule: 1, Offset: 0, Length: 14, Line: 1, Column: 1},
				{Rule: 0, Offset: 16, Length: 11, Line: 1, Column: 17},
			},
		},
		{
			name:    "guard_rejects_prefixed_match",
			content: "Staff.PayPeriod PayPeriod",
			rules: []rules.RenameRule{
				{Old: "PayPeriod", New: "StaffPayPeriod", Guard: &rules.Guard{NotPrecededBy: []string{"Staff."}}},
			},
			want: []Occurrence{{Rule: 0, Offset: 16, Length: 9, Line: 1, Column: 17}},
		},
		{
			name:    "quoted_entity_name",
			content: `entity: 'PayPeriod', other: PayPeriod`,
			rules:   []rules.RenameRule{{Old: "'PayPeriod", New: "'StaffPayPeriod"}},
			want:    []Occurrence{{Rule: 0, Offset: 8, Length: 10, Line: 1, Column: 9}},
		},
		{
			name:    "ignore_case",
			content: "PAYPERIOD payperiod PayPeriodX",
			rules:   []rules.RenameRule{{Old: "payPeriod", New: "staffPayPeriod", IgnoreCase: true}},
			want: []Occurrence{
				{Rule: 0, Offset: 0, Length: 9, Line: 1, Column: 1},
				{Rule: 0, Offset: 10, Length: 9, Line: 1, Column: 11},
			},
		},
		{
			name:    "rejected_candidate_does_not_hide_later_match",
			content: "aa_a a",
			rules:   []rules.RenameRule{{Old: "a", New: "b"}},
			want:    []Occurrence{{Rule: 0, Offset: 5, Length: 1, Line: 1, Column: 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := rules.New(tt.rules)
			require.NoError(t, err)

			got, err := FindOccurrences(tt.content, set)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindOccurrences_Overlap(t *testing.T) {
	set := rules.MustNew(
		rules.RenameRule{Old: "prisma.payPeriod", New: "prisma.staffPayPeriod"},
		rules.RenameRule{Old: "payPeriod", New: "staffPayPeriod"},
	)

	_, err := FindOccurrences("await prisma.payPeriod.findMany()", set)
	require.Error(t, err)

	var overlap *OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, "prisma.payPeriod", overlap.RuleA.Old)
	assert.Equal(t, "payPeriod", overlap.RuleB.Old)
	assert.Equal(t, 13, overlap.Offset)
	assert.Equal(t, 1, overlap.Line)
}

func TestMatchRule(t *testing.T) {
	got := MatchRule("x\ny payPeriod", 3, rules.RenameRule{Old: "payPeriod", New: "p"})
	assert.Equal(t, []Occurrence{{Rule: 3, Offset: 4, Length: 9, Line: 2, Column: 3}}, got)
}
