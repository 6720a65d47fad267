package cps

import (
	"fmt"
	"strconv"

	"github.com/headinthebox/async-await/internal/sexp"
)

// DecodeProgram decodes a plain list of FunDecl trees. It is the strict
// inverse of Program.SExpr: unknown tags, wrong arities, and lists where an
// identifier is expected are all errors.
func DecodeProgram(v sexp.Value) (Program, error) {
	list, ok := v.(sexp.List)
	if !ok {
		return nil, fmt.Errorf("cps: program must be a list of declarations")
	}
	prog := make(Program, 0, len(list))
	for i, item := range list {
		decl, err := DecodeFunDecl(item)
		if err != nil {
			return nil, fmt.Errorf("declaration %d: %w", i, err)
		}
		prog = append(prog, decl)
	}
	return prog, nil
}

// DecodeFunDecl decodes one (FunDecl name (params...) k h body) tree.
func DecodeFunDecl(v sexp.Value) (FunDecl, error) {
	list, err := taggedList(v, TagFunDecl, 5)
	if err != nil {
		return FunDecl{}, err
	}
	name, err := atomText(list[1])
	if err != nil {
		return FunDecl{}, fmt.Errorf("FunDecl name: %w", err)
	}
	params, err := atomTexts(list[2])
	if err != nil {
		return FunDecl{}, fmt.Errorf("FunDecl parameters: %w", err)
	}
	returnCont, err := atomText(list[3])
	if err != nil {
		return FunDecl{}, fmt.Errorf("FunDecl return continuation: %w", err)
	}
	throwCont, err := atomText(list[4])
	if err != nil {
		return FunDecl{}, fmt.Errorf("FunDecl throw continuation: %w", err)
	}
	body, err := DecodeExpr(list[5])
	if err != nil {
		return FunDecl{}, fmt.Errorf("FunDecl body: %w", err)
	}
	return FunDecl{
		Name:       name,
		Parameters: params,
		ReturnCont: returnCont,
		ThrowCont:  throwCont,
		Body:       body,
	}, nil
}

// DecodeExpr decodes an expression form.
func DecodeExpr(v sexp.Value) (Expr, error) {
	switch sexp.Tag(v) {
	case TagLetVal:
		list, err := taggedList(v, TagLetVal, 3)
		if err != nil {
			return nil, err
		}
		name, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("LetVal name: %w", err)
		}
		bound, err := DecodeValue(list[2])
		if err != nil {
			return nil, fmt.Errorf("LetVal value: %w", err)
		}
		rest, err := DecodeExpr(list[3])
		if err != nil {
			return nil, err
		}
		return LetVal{Name: name, Bound: bound, Rest: rest}, nil

	case TagLetCont:
		list, err := taggedList(v, TagLetCont, 4)
		if err != nil {
			return nil, err
		}
		name, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("LetCont name: %w", err)
		}
		params, err := atomTexts(list[2])
		if err != nil {
			return nil, fmt.Errorf("LetCont parameters: %w", err)
		}
		body, err := DecodeExpr(list[3])
		if err != nil {
			return nil, err
		}
		rest, err := DecodeExpr(list[4])
		if err != nil {
			return nil, err
		}
		return LetCont{Name: name, Parameters: params, Body: body, Rest: rest}, nil

	case TagCallFun:
		list, err := taggedList(v, TagCallFun, 4)
		if err != nil {
			return nil, err
		}
		callee, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("CallFun callee: %w", err)
		}
		args, err := atomTexts(list[2])
		if err != nil {
			return nil, fmt.Errorf("CallFun arguments: %w", err)
		}
		returnCont, err := atomText(list[3])
		if err != nil {
			return nil, fmt.Errorf("CallFun return continuation: %w", err)
		}
		throwCont, err := atomText(list[4])
		if err != nil {
			return nil, fmt.Errorf("CallFun throw continuation: %w", err)
		}
		return CallFun{Callee: callee, Arguments: args, ReturnCont: returnCont, ThrowCont: throwCont}, nil

	case TagCallCont:
		list, err := taggedList(v, TagCallCont, 2)
		if err != nil {
			return nil, err
		}
		callee, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("CallCont callee: %w", err)
		}
		args, err := atomTexts(list[2])
		if err != nil {
			return nil, fmt.Errorf("CallCont arguments: %w", err)
		}
		return CallCont{Callee: callee, Arguments: args}, nil

	case TagIf:
		list, err := taggedList(v, TagIf, 3)
		if err != nil {
			return nil, err
		}
		cond, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("If condition: %w", err)
		}
		then, err := DecodeExpr(list[2])
		if err != nil {
			return nil, err
		}
		alt, err := DecodeExpr(list[3])
		if err != nil {
			return nil, err
		}
		return If{Condition: cond, Then: then, Else: alt}, nil

	default:
		return nil, fmt.Errorf("unknown expression tag %q", sexp.Tag(v))
	}
}

// DecodeValue decodes a value form.
func DecodeValue(v sexp.Value) (Value, error) {
	switch sexp.Tag(v) {
	case TagConstant:
		list, err := taggedList(v, TagConstant, 1)
		if err != nil {
			return nil, err
		}
		text, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("Constant: %w", err)
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("Constant %q is not an integer", text)
		}
		return Constant{Value: n}, nil

	case TagFun:
		list, err := taggedList(v, TagFun, 4)
		if err != nil {
			return nil, err
		}
		params, err := atomTexts(list[1])
		if err != nil {
			return nil, fmt.Errorf("Fun parameters: %w", err)
		}
		returnCont, err := atomText(list[2])
		if err != nil {
			return nil, fmt.Errorf("Fun return continuation: %w", err)
		}
		throwCont, err := atomText(list[3])
		if err != nil {
			return nil, fmt.Errorf("Fun throw continuation: %w", err)
		}
		body, err := DecodeExpr(list[4])
		if err != nil {
			return nil, fmt.Errorf("Fun body: %w", err)
		}
		return Fun{Parameters: params, ReturnCont: returnCont, ThrowCont: throwCont, Body: body}, nil

	case TagAwait:
		list, err := taggedList(v, TagAwait, 3)
		if err != nil {
			return nil, err
		}
		value, err := atomText(list[1])
		if err != nil {
			return nil, fmt.Errorf("Await value: %w", err)
		}
		normalCont, err := atomText(list[2])
		if err != nil {
			return nil, fmt.Errorf("Await normal continuation: %w", err)
		}
		errorCont, err := atomText(list[3])
		if err != nil {
			return nil, fmt.Errorf("Await error continuation: %w", err)
		}
		return Await{Value: value, NormalCont: normalCont, ErrorCont: errorCont}, nil

	default:
		return nil, fmt.Errorf("unknown value tag %q", sexp.Tag(v))
	}
}

// taggedList checks that v is (tag child...) with exactly children children.
func taggedList(v sexp.Value, tag string, children int) (sexp.List, error) {
	list, ok := v.(sexp.List)
	if !ok {
		return nil, fmt.Errorf("expected (%s ...), got an atom", tag)
	}
	if got := sexp.Tag(list); got != tag {
		return nil, fmt.Errorf("expected (%s ...), got tag %q", tag, got)
	}
	if len(list) != children+1 {
		return nil, fmt.Errorf("%s expects %d children, got %d", tag, children, len(list)-1)
	}
	return list, nil
}

func atomText(v sexp.Value) (string, error) {
	a, ok := v.(sexp.Atom)
	if !ok {
		return "", fmt.Errorf("expected an identifier, got a list")
	}
	return string(a), nil
}

func atomTexts(v sexp.Value) ([]string, error) {
	list, ok := v.(sexp.List)
	if !ok {
		return nil, fmt.Errorf("expected an identifier list, got an atom")
	}
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, err := atomText(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}
