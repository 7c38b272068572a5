/*
Package status tracks the outcome of each file in a rename run and owns the
file system operations behind it.

	            +-------------+
	            |   Status    |
	            | (FileRecord)|
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Logs   |
	| (Manager) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Carries a file through a run as a FileRecord owned by one worker
- Reads files and replaces them atomically
- Prints one user-facing line per file outcome

⚡ Atomic writes:
WriteFileAtomic writes to a temporary file in the target's directory, syncs
it, applies the original permission bits and renames it over the target. If
any step fails the temporary file is removed, the target keeps its previous
bytes and a *WriteError is returned.

📊 Statuses:
  - StatusChanged: occurrences were replaced (or would be, in a dry run)
  - StatusUnchanged: nothing to replace
  - StatusSkipped: the path was not processed
  - StatusFailed: decoding, overlap, read or write error
*/
package status
