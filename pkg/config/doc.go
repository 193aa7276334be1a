/*
Package config loads optional defaults for munkikit from a YAML, HCL or JSON file.

🔍 Format is chosen by extension through a small parser registry:
  - .yaml / .yml  (unknown keys are rejected)
  - .hcl          (env.NAME is available in expressions)
  - .json         (unknown keys are rejected)

Example (.munkikit.yaml):

	report:
	  app_column: 1
	  version_column: 2
	munki:
	  manifest_path: /Library/Managed Installs/manifests/SelfServeManifest
	  ignored_users: [root, "", _mbsetupuser]
	  require_manifest: false

Zero values are replaced by defaults in Validate, so every field is optional.
Command line flags always win over the file.
*/
package config
