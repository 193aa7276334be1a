/*
Package status owns every write the tools make to disk.

	+-------------+        +-------------+
	|  Operation  | -----> |   Status    |
	| (transform) |        |  (storage)  |
	+-------------+        +------+------+
	                              |
	                 temp file -> remove original -> rename

🎯 Purpose:
- Reads source files
- Replaces files without ever exposing a half written file at the target path
- Describes what happened to a file (new, modified, unchanged)
- Renders status lines and dry-run diffs for the console

📝 Replacement order:
 1. write the whole new content to a temp file in the target's directory
 2. flush, fsync and close it
 3. copy the original's permission bits onto it
 4. remove the original
 5. rename the temp file into place

A failure in steps 1-4 removes the temp file and leaves the original alone.
A failure in step 5 keeps the temp file so nothing is lost.
*/
package status
