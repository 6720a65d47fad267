package sexp

import (
	"io"
	"strings"
)

// DefaultWidth is the maximum line width used when no explicit width is given.
const DefaultWidth = 120

// Print renders v as S-expression text laid out within the given maximum
// line width. The output carries no trailing newline.
func Print(v Value, width int) string {
	var b strings.Builder
	render(&b, v, 0, width)
	return b.String()
}

// Fprint writes the rendering of v to w.
func Fprint(w io.Writer, v Value, width int) error {
	_, err := io.WriteString(w, Print(v, width))
	return err
}

// render writes v starting at column col. A list is laid out flat when its
// flat rendering fits within width from col; otherwise the first element
// stays on the opening line and each remaining element goes on its own line
// indented two columns past the opening parenthesis.
func render(b *strings.Builder, v Value, col, width int) {
	switch t := v.(type) {
	case Atom:
		b.WriteString(string(t))
	case List:
		if len(t) == 0 || col+flatWidth(t) <= width {
			renderFlat(b, t)
			return
		}
		b.WriteByte('(')
		render(b, t[0], col+1, width)
		indent := strings.Repeat(" ", col+2)
		for _, child := range t[1:] {
			b.WriteByte('\n')
			b.WriteString(indent)
			render(b, child, col+2, width)
		}
		b.WriteByte(')')
	}
}

// renderFlat writes v on a single line, children separated by single spaces.
func renderFlat(b *strings.Builder, v Value) {
	switch t := v.(type) {
	case Atom:
		b.WriteString(string(t))
	case List:
		b.WriteByte('(')
		for i, child := range t {
			if i > 0 {
				b.WriteByte(' ')
			}
			renderFlat(b, child)
		}
		b.WriteByte(')')
	}
}

// flatWidth returns the length of the single-line rendering of v.
func flatWidth(v Value) int {
	switch t := v.(type) {
	case Atom:
		return len(t)
	case List:
		n := 2
		for i, child := range t {
			if i > 0 {
				n++
			}
			n += flatWidth(child)
		}
		return n
	}
	return 0
}
