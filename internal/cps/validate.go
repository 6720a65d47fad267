package cps

import "fmt"

// CheckTerminal verifies the terminal-expression property: following
// Rest fields, continuation bodies, and If branches, every control path ends
// in exactly one CallFun or CallCont. A nil expression anywhere is a
// violation. The first violation found is returned.
func CheckTerminal(e Expr) error {
	switch t := e.(type) {
	case nil:
		return fmt.Errorf("missing terminal expression")
	case LetVal:
		return CheckTerminal(t.Rest)
	case LetCont:
		if err := CheckTerminal(t.Body); err != nil {
			return fmt.Errorf("continuation %s: %w", t.Name, err)
		}
		return CheckTerminal(t.Rest)
	case If:
		if err := CheckTerminal(t.Then); err != nil {
			return err
		}
		return CheckTerminal(t.Else)
	case CallFun, CallCont:
		return nil
	default:
		return fmt.Errorf("unknown expression %T", e)
	}
}

// Validate checks a whole program and returns one error per violation.
// It enforces the terminal-expression property (including bodies of nested
// Fun values) and the identifier policy: names must be non-empty. Shadowing
// is permitted and continuation arity is not checked against call sites.
func Validate(p Program) []error {
	var errs []error
	for i, decl := range p {
		label := decl.Name
		if label == "" {
			label = fmt.Sprintf("declaration %d", i)
			errs = append(errs, fmt.Errorf("%s: empty function name", label))
		}
		errs = append(errs, checkIdentifiers(label, decl.Parameters, "parameter")...)
		if decl.ReturnCont == "" {
			errs = append(errs, fmt.Errorf("%s: empty return continuation", label))
		}
		if decl.ThrowCont == "" {
			errs = append(errs, fmt.Errorf("%s: empty throw continuation", label))
		}
		if err := CheckTerminal(decl.Body); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", label, err))
		}
		errs = append(errs, checkExpr(label, decl.Body)...)
	}
	return errs
}

func checkExpr(fn string, e Expr) []error {
	var errs []error
	switch t := e.(type) {
	case LetVal:
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s: LetVal with empty name", fn))
		}
		errs = append(errs, checkValue(fn, t.Bound)...)
		errs = append(errs, checkExpr(fn, t.Rest)...)
	case LetCont:
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s: LetCont with empty name", fn))
		}
		errs = append(errs, checkIdentifiers(fn, t.Parameters, "continuation parameter")...)
		errs = append(errs, checkExpr(fn, t.Body)...)
		errs = append(errs, checkExpr(fn, t.Rest)...)
	case CallFun:
		if t.Callee == "" {
			errs = append(errs, fmt.Errorf("%s: CallFun with empty callee", fn))
		}
		errs = append(errs, checkIdentifiers(fn, t.Arguments, "argument")...)
		if t.ReturnCont == "" {
			errs = append(errs, fmt.Errorf("%s: CallFun with empty return continuation", fn))
		}
		if t.ThrowCont == "" {
			errs = append(errs, fmt.Errorf("%s: CallFun with empty throw continuation", fn))
		}
	case CallCont:
		if t.Callee == "" {
			errs = append(errs, fmt.Errorf("%s: CallCont with empty callee", fn))
		}
		errs = append(errs, checkIdentifiers(fn, t.Arguments, "argument")...)
	case If:
		if t.Condition == "" {
			errs = append(errs, fmt.Errorf("%s: If with empty condition", fn))
		}
		errs = append(errs, checkExpr(fn, t.Then)...)
		errs = append(errs, checkExpr(fn, t.Else)...)
	}
	return errs
}

func checkValue(fn string, v Value) []error {
	var errs []error
	switch t := v.(type) {
	case nil:
		errs = append(errs, fmt.Errorf("%s: LetVal with no bound value", fn))
	case Constant:
		// nothing to check
	case Fun:
		errs = append(errs, checkIdentifiers(fn, t.Parameters, "parameter")...)
		if t.ReturnCont == "" {
			errs = append(errs, fmt.Errorf("%s: Fun with empty return continuation", fn))
		}
		if t.ThrowCont == "" {
			errs = append(errs, fmt.Errorf("%s: Fun with empty throw continuation", fn))
		}
		if err := CheckTerminal(t.Body); err != nil {
			errs = append(errs, fmt.Errorf("%s: nested function: %w", fn, err))
		}
		errs = append(errs, checkExpr(fn, t.Body)...)
	case Await:
		if t.Value == "" {
			errs = append(errs, fmt.Errorf("%s: Await with empty value", fn))
		}
		if t.NormalCont == "" {
			errs = append(errs, fmt.Errorf("%s: Await with empty normal continuation", fn))
		}
		if t.ErrorCont == "" {
			errs = append(errs, fmt.Errorf("%s: Await with empty error continuation", fn))
		}
	}
	return errs
}

func checkIdentifiers(fn string, names []string, kind string) []error {
	var errs []error
	for i, name := range names {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s: empty %s at position %d", fn, kind, i))
		}
	}
	return errs
}
