// Package cps defines the continuation-passing-style intermediate
// representation that canonical trees are compiled into, together with its
// S-expression serialization, a strict decoder, and a structural validator.
//
// # Model
//
// Two mutually recursive sum types. Values:
//
//	(Constant n)
//	(Fun (params...) returnCont throwCont body)
//	(Await value normalCont errorCont)
//
// Expressions:
//
//	(LetVal name value rest)
//	(LetCont name (params...) contBody rest)
//	(CallFun callee (args...) returnCont throwCont)
//	(CallCont callee (args...))
//	(If condition then else)
//
// A function declaration is (FunDecl name (params...) returnCont throwCont
// body); a program is a plain list of FunDecl trees.
//
// Every call in the IR names both a success and a failure continuation, and
// suspension (Await) is a first-class value form. Expressions are terminal:
// every control path ends in exactly one CallFun or CallCont - the IR has no
// implicit fallthrough or return. Constructors perform no checking; the
// producer of the IR is responsible for the terminal-expression property, and
// Validate makes it checkable after the fact.
//
// # Identifier policy
//
// Identifiers are opaque non-empty names. Shadowing of outer bindings by
// LetVal, LetCont, and Fun parameters is permitted, and continuation arity is
// not checked against call sites. Validate enforces only non-emptiness.
package cps
