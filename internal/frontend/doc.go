// Package frontend wraps the external ECMAScript parser used as the source
// reader for the compiler. It exposes parsing, an optional try/catch/finally
// rewrite, and a raw AST dump for debugging.
//
// The package deliberately stops at the parsed AST: deciding which constructs
// the restricted source language accepts is the canonicalizer's job, not the
// parser's.
package frontend
