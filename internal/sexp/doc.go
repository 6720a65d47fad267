// Package sexp implements the S-expression text form shared by the canonical
// tree and the CPS IR.
//
// # Grammar
//
// The wire grammar is deliberately tiny:
//
//	sexp ::= atom | "(" sexp* ")"
//
// Atoms are maximal runs of non-whitespace, non-parenthesis characters; there
// is no quoting, escaping, or comment syntax. List elements are separated by
// one or more whitespace characters (space, tab, CR, LF) with no trailing
// separator before the closing parenthesis.
//
// # Layout
//
// The printer is width-aware. A list renders flat (children joined by single
// spaces) when the flat rendering fits within the maximum line width from its
// start column. Otherwise the first element stays on the opening line and
// every remaining element is placed on its own line, indented two columns
// past the opening parenthesis. The decision is per node: a child that fits
// stays flat even when its parent broke. Layout never changes structure -
// parsing the printed text reproduces the original tree exactly.
package sexp
