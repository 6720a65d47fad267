// Package harness provides conformance testing for the canonicalizer.
//
// The harness loads scenario files, runs the full front-end pipeline
// (parse, optional try/catch/finally rewrite, canonicalize, print) and
// compares the rendered S-expression against golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	source: |
//	  function main() {
//	    return 42;
//	  }
//	width: 120
//	desugar_try: false
//	want_error: ""
//
// A scenario either expects a canonical tree (the default) or a rejection:
// when want_error is set, the run passes if canonicalization fails with a
// diagnostic containing that substring, and no golden file is consulted.
//
// # Deterministic Output
//
// The printed S-expression depends only on the source text and the width,
// so golden files are stable across runs and machines. Error scenarios
// assert on diagnostic substrings rather than full messages to keep them
// robust against rewording.
package harness
