package text_test

import (
	"context"
	"fmt"

	"github.com/walteh/renamerc/pkg/rules"
	"github.com/walteh/renamerc/pkg/text"
)

func ExampleBoundaryReplacer_ReplaceText() {
	// Define the rename rules
	set := rules.MustNew(
		rules.RenameRule{Old: "payPeriodId", New: "staffPayPeriodId"},
		rules.RenameRule{
			Old:   "PayPeriod",
			New:   "StaffPayPeriod",
			Guard: &rules.Guard{NotPrecededBy: []string{"Staff", "staff"}},
		},
	)

	// Apply them
	result, err := text.NewBoundaryReplacer().ReplaceText(context.Background(),
		"const payPeriodId = new PayPeriod(); // displayPeriod unaffected", set)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	for _, o := range result.Occurrences {
		fmt.Printf("  %d:%d %s\n", o.Line, o.Column, set.Rule(o.Rule))
	}

	// Output:
	// Modified: const staffPayPeriodId = new StaffPayPeriod(); // displayPeriod unaffected
	// Changes: 2
	//   1:7 payPeriodId -> staffPayPeriodId
	//   1:25 PayPeriod -> StaffPayPeriod
}
