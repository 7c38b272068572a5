/*
Package config loads rename rules files for renamerc.

	            +-------------+
	            |  RulesFile  |
	            |   (rules)   |
	            +------+------+
	                   |
	  +--------+-------+-------+--------+
	  |        |               |        |
	+-+----+ +-+----+      +---+--+ +---+--+
	| JSON | | YAML |      | HCL  | | TOML |
	+------+ +------+      +------+ +------+

🎯 Purpose:
- Decodes a rules file in any registered format
- Rejects unknown fields in every format
- Hands the decoded rules to rules.New for conflict checking

🔄 Flow:
1. Load reads the file
2. GetParser picks a parser by file extension
3. The parser decodes entries into []rules.RenameRule
4. RulesFile.RuleSet validates the set as a whole

📝 Formats:

	// JSON: a bare array, or {"rules": [...]}
	[
	  {"old": "payStatementId", "new": "staffPayStatementId"},
	  {"old": "PayPeriod", "new": "StaffPayPeriod", "guard": "Staff"}
	]

	# YAML
	rules:
	  - old: payStatementId
	    new: staffPayStatementId
	    guard:
	      not_followed_by: [":"]

	# HCL
	rule "payStatementId" {
	  new = "staffPayStatementId"
	  guard {
	    not_preceded_by = ["staff."]
	  }
	}

	# TOML
	[[rule]]
	old = "payStatementId"
	new = "staffPayStatementId"

A guard given as a plain string (JSON and YAML) is shorthand for a single
not_preceded_by context.

🔍 Example:

	set, err := config.Load(ctx, "rules.json")
	if err != nil {
		var conflict *rules.RuleConflictError
		if errors.As(err, &conflict) {
			// rules contradict each other; nothing was touched
		}
		return err
	}
*/
package config
