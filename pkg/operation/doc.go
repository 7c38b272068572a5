/*
Package operation runs a rename over a corpus of files.

	+-------------+
	|   walker    |
	| (candidates)|
	+------+------+
	       |
	+------+------+
	| fileRunner  |
	| (errgroup)  |
	+------+------+
	       |
	+------+------+      +-------------+
	| processFile +----->+  reporter   |
	| load→write  |      | (summary)   |
	+-------------+      +-------------+

🎯 Purpose:
- Applies a validated rules.RuleSet to every selected file
- Keeps each file atomic: all matches are computed before the single write
- Aggregates per-file outcomes into a report.RunSummary

🔄 Flow:
 1. walker.Walk streams candidate paths
 2. fileRunner hands them to at most Jobs workers
 3. Each worker loads and decodes the file (textfile), matches and rewrites it
    (text) and writes it atomically (status) unless DryRun is set
 4. The record goes to the reporter and the console logger

⚡ Failure handling:
  - A file that cannot be decoded, has overlapping occurrences or fails to
    write is Failed; the run carries on with the other files
  - A missing explicit path is Skipped
  - Cancelling ctx stops new files from starting; files mid-write complete and
    Run returns the partial summary with Interrupted set

🔍 Example:

	op, err := operation.New(operation.Options{
		RuleSet: set,
		Files:   status.New(""),
		Jobs:    8,
	})
	if err != nil {
		return err
	}

	summary, err := op.Run(ctx, walker.Options{Root: "src", Extensions: []string{".ts", ".tsx"}})
	if err != nil {
		return err
	}
	os.Exit(summary.ExitCode())
*/
package operation
