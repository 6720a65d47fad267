package sexp

import "fmt"

// Parse reads exactly one S-expression from s. Surrounding whitespace is
// permitted; anything else after the expression is an error.
func Parse(s string) (Value, error) {
	p := &parser{src: s}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, fmt.Errorf("sexp: trailing input at offset %d", p.pos)
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) parseValue() (Value, error) {
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("sexp: unexpected end of input")
	}
	switch p.src[p.pos] {
	case '(':
		return p.parseList()
	case ')':
		return nil, fmt.Errorf("sexp: unexpected ')' at offset %d", p.pos)
	default:
		return p.parseAtom(), nil
	}
}

func (p *parser) parseList() (Value, error) {
	open := p.pos
	p.pos++
	list := List{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("sexp: unterminated list opened at offset %d", open)
		}
		if p.src[p.pos] == ')' {
			p.pos++
			return list, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

func (p *parser) parseAtom() Value {
	start := p.pos
	for p.pos < len(p.src) && !isSpace(p.src[p.pos]) && p.src[p.pos] != '(' && p.src[p.pos] != ')' {
		p.pos++
	}
	return Atom(p.src[start:p.pos])
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
