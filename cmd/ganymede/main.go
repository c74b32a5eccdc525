// Ganymede is an embeddable authorization-policy engine with an
// oslo.policy-compatible rule language.
//
// The binary is a companion tool for the library: it validates rule files and
// evaluates rules against hand-built requests, which is useful when authoring
// policies or debugging a deny.
//
// Usage:
//
//	# Validate a rule file
//	ganymede lint --file policy.yaml
//
//	# Validate a directory of rule files, JSON output for CI
//	ganymede lint --dir policies/ --format json
//
//	# Evaluate a rule against a synthetic request
//	ganymede eval --file policy.yaml --rule cloud_admin \
//	    --role admin --api-attr domain_id=admin_domain_id
//
//	# Show version information
//	ganymede version
package main

func main() {
	Execute()
}
