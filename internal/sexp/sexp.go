package sexp

// Value is a sealed interface over the two S-expression forms.
// Only Atom and List implement it.
type Value interface {
	sexpValue() // Sealed - only these types implement it
}

// Atom is an opaque identifier or numeral rendered as its literal text.
type Atom string

func (Atom) sexpValue() {}

// List is an ordered sequence of values. A tagged node is a List whose
// first element is the tag Atom.
type List []Value

func (List) sexpValue() {}

// NewAtom creates an Atom value.
func NewAtom(s string) Atom {
	return Atom(s)
}

// NewList creates a List from values.
func NewList(vals ...Value) List {
	return List(vals)
}

// Tagged builds a tagged node: a list whose first element is the tag atom.
func Tagged(tag string, children ...Value) List {
	out := make(List, 0, len(children)+1)
	out = append(out, Atom(tag))
	return append(out, children...)
}

// Atoms builds a list of atoms from names. Used for parameter and
// local-variable lists, which are always flat sequences of identifiers.
func Atoms(names ...string) List {
	out := make(List, len(names))
	for i, n := range names {
		out[i] = Atom(n)
	}
	return out
}

// Tag returns the tag of a tagged node, or "" if v is not a non-empty list
// headed by an atom.
func Tag(v Value) string {
	list, ok := v.(List)
	if !ok || len(list) == 0 {
		return ""
	}
	tag, ok := list[0].(Atom)
	if !ok {
		return ""
	}
	return string(tag)
}
