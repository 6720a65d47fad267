package cps

// Value is a sealed interface over the CPS value forms.
// Only Constant, Fun, and Await implement it.
type Value interface {
	cpsValue() // Sealed - only these types implement it
}

// Constant is an integer constant.
type Constant struct {
	Value int
}

func (Constant) cpsValue() {}

// Fun is a function abstraction. Alongside its parameters it binds the two
// continuations every call must supply: ReturnCont receives the result and
// ThrowCont receives a thrown value.
type Fun struct {
	Parameters []string
	ReturnCont string
	ThrowCont  string
	Body       Expr
}

func (Fun) cpsValue() {}

// Await suspends on an awaited value. NormalCont receives the value on
// completion; ErrorCont receives the failure.
type Await struct {
	Value      string
	NormalCont string
	ErrorCont  string
}

func (Await) cpsValue() {}

// Expr is a sealed interface over the CPS expression forms.
// Only LetVal, LetCont, CallFun, CallCont, and If implement it.
//
// Expressions are terminal: every control path ends in exactly one CallFun
// or CallCont. Constructors do not enforce this; see Validate.
type Expr interface {
	cpsExpr() // Sealed - only these types implement it
}

// LetVal binds a value to a name within Rest.
type LetVal struct {
	Name  string
	Bound Value
	Rest  Expr
}

func (LetVal) cpsExpr() {}

// LetCont binds a continuation within Rest. Body runs when the continuation
// is invoked, with Parameters bound to the call arguments.
type LetCont struct {
	Name       string
	Parameters []string
	Body       Expr
	Rest       Expr
}

func (LetCont) cpsExpr() {}

// CallFun transfers control to a function with explicit success and failure
// continuations. It never returns.
type CallFun struct {
	Callee     string
	Arguments  []string
	ReturnCont string
	ThrowCont  string
}

func (CallFun) cpsExpr() {}

// CallCont transfers control to a continuation. It never returns.
type CallCont struct {
	Callee    string
	Arguments []string
}

func (CallCont) cpsExpr() {}

// If branches on a condition name. Both arms are full expressions; there is
// no partial conditional.
type If struct {
	Condition string
	Then      Expr
	Else      Expr
}

func (If) cpsExpr() {}

// FunDecl is a top-level function declaration.
type FunDecl struct {
	Name       string
	Parameters []string
	ReturnCont string
	ThrowCont  string
	Body       Expr
}

// Program is an ordered sequence of function declarations.
type Program []FunDecl
