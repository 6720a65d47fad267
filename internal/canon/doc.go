// Package canon rewrites parsed function declarations into the canonical
// tree form consumed by CPS conversion.
//
// # Canonical Tree
//
// A canonical tree is an S-expression: an atom (identifier or numeral) or a
// tagged node, a list whose first element is a constant tag drawn from a
// fixed vocabulary. Each tag carries a fixed arity:
//
//	(Sync name (params...) (locals...) body)       function kinds; also Async, SyncStar
//	(Block stmt...)
//	(Expression expr)
//	(Return expr)            (YieldBreak)
//	(If cond then else)
//	(Label name stmt)        (Break name)          (Continue name)
//	(While label cond body)  label is the atom null when the loop is unlabeled
//	(TryCatch block exn block)                     (TryFinally block block)
//	(Throw expr)
//	(Constant digits)        (Variable name)
//	(Assignment name expr)   (Call callee arg...)
//	(Await expr)             (Yield expr)          (YieldStar expr)
//
// A compilation unit is a plain list of per-function trees in source order.
//
// # Acceptance Grammar
//
// The canonicalizer supports exactly the constructs a CPS converter for
// async/generator studies needs, and rejects everything else with an
// UnsupportedSyntaxError naming the construct. The load-bearing rules:
//
//   - A function declaration must be named; the name's substrings select the
//     root tag (_async -> Async, _syncStar -> SyncStar, otherwise Sync).
//   - The body must be a block. If its first statement declares variables,
//     all declarators must be uninitialized; their names become the hoisted
//     locals and the statement is dropped from the body. Variable
//     declarations anywhere else are rejected.
//   - Calls to the bare identifiers await, yield, and yieldStar are
//     reinterpreted as unary control operators. An expression statement whose
//     expression canonicalizes to Yield or YieldStar becomes that node
//     directly; yield is a statement-level construct despite its call syntax.
//   - if requires an else branch. break and continue require a label. A
//     labeled while receives the label in its own label slot rather than a
//     Label wrapper. A statement may carry at most one label.
//   - try supports exactly try/finally or try/catch with a named exception;
//     the three-part try/catch/finally form is rejected here (the frontend
//     package offers an opt-in desugaring into nested try statements). The
//     source grammar admits at most one catch clause per try, so a
//     multi-catch rejection path never arises at this boundary.
//
// Trees are immutable once returned: the canonicalizer threads context (such
// as an enclosing label) down during construction instead of patching nodes
// afterwards. On rejection no partial tree is produced.
package canon
