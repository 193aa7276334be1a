/*
Package operation runs the two workflows munkikit exposes.

	+-----------+      +-----------+      +-----------+
	|  command  | ---> | operation | ---> |  status   |
	|  (flags)  |      | (workflow)|      | (storage) |
	+-----------+      +-----+-----+      +-----------+
	                         |
	              report / manifest / munki

🎯 FillOperation:
 1. check arguments (csv path, distinct columns, file exists)
 2. read and parse the whole report
 3. carry app title and version down over blank cells
 4. write a temp file, remove the original, rename the temp file into place

🎯 InstallOperation:
 1. add the item to managed_installs of the self service manifest
 2. find the console user
 3. open Managed Software Center in that user's session
 4. start a background managedsoftwareupdate run when the manifest changed

Operations return errors instead of exiting so they can be embedded and
tested; only the command line turns an error into an exit status.
*/
package operation
