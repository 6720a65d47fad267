package cps

import (
	"strconv"

	"github.com/headinthebox/async-await/internal/sexp"
)

// Tags of the serialized CPS IR.
const (
	TagConstant = "Constant"
	TagFun      = "Fun"
	TagAwait    = "Await"
	TagLetVal   = "LetVal"
	TagLetCont  = "LetCont"
	TagCallFun  = "CallFun"
	TagCallCont = "CallCont"
	TagIf       = "If"
	TagFunDecl  = "FunDecl"
)

// SExpr renders a whole program as a plain list of FunDecl trees.
func (p Program) SExpr() sexp.Value {
	out := make(sexp.List, len(p))
	for i, decl := range p {
		out[i] = decl.SExpr()
	}
	return out
}

// SExpr renders the declaration as (FunDecl name (params...) k h body).
func (d FunDecl) SExpr() sexp.Value {
	return sexp.Tagged(TagFunDecl,
		sexp.Atom(d.Name),
		sexp.Atoms(d.Parameters...),
		sexp.Atom(d.ReturnCont),
		sexp.Atom(d.ThrowCont),
		ExprSExpr(d.Body),
	)
}

// ValueSExpr renders a value form. A nil value renders as the empty list;
// serialization performs no checking (Validate reports nils as violations).
func ValueSExpr(v Value) sexp.Value {
	switch t := v.(type) {
	case Constant:
		return sexp.Tagged(TagConstant, sexp.Atom(strconv.Itoa(t.Value)))
	case Fun:
		return sexp.Tagged(TagFun,
			sexp.Atoms(t.Parameters...),
			sexp.Atom(t.ReturnCont),
			sexp.Atom(t.ThrowCont),
			ExprSExpr(t.Body),
		)
	case Await:
		return sexp.Tagged(TagAwait,
			sexp.Atom(t.Value),
			sexp.Atom(t.NormalCont),
			sexp.Atom(t.ErrorCont),
		)
	default:
		return sexp.List{}
	}
}

// ExprSExpr renders an expression form. A nil expression renders as the
// empty list.
func ExprSExpr(e Expr) sexp.Value {
	switch t := e.(type) {
	case LetVal:
		return sexp.Tagged(TagLetVal,
			sexp.Atom(t.Name),
			ValueSExpr(t.Bound),
			ExprSExpr(t.Rest),
		)
	case LetCont:
		return sexp.Tagged(TagLetCont,
			sexp.Atom(t.Name),
			sexp.Atoms(t.Parameters...),
			ExprSExpr(t.Body),
			ExprSExpr(t.Rest),
		)
	case CallFun:
		return sexp.Tagged(TagCallFun,
			sexp.Atom(t.Callee),
			sexp.Atoms(t.Arguments...),
			sexp.Atom(t.ReturnCont),
			sexp.Atom(t.ThrowCont),
		)
	case CallCont:
		return sexp.Tagged(TagCallCont,
			sexp.Atom(t.Callee),
			sexp.Atoms(t.Arguments...),
		)
	case If:
		return sexp.Tagged(TagIf,
			sexp.Atom(t.Condition),
			ExprSExpr(t.Then),
			ExprSExpr(t.Else),
		)
	default:
		return sexp.List{}
	}
}
