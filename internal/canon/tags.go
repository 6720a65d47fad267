package canon

// Tags of the canonical tree. The vocabulary is fixed; every tag appears
// with one arity only (see the package documentation).
const (
	TagSync     = "Sync"
	TagAsync    = "Async"
	TagSyncStar = "SyncStar"

	TagBlock      = "Block"
	TagExpression = "Expression"
	TagReturn     = "Return"
	TagYieldBreak = "YieldBreak"
	TagIf         = "If"
	TagLabel      = "Label"
	TagBreak      = "Break"
	TagContinue   = "Continue"
	TagWhile      = "While"
	TagTryCatch   = "TryCatch"
	TagTryFinally = "TryFinally"

	TagConstant   = "Constant"
	TagVariable   = "Variable"
	TagAssignment = "Assignment"
	TagCall       = "Call"
	TagAwait      = "Await"
	TagYield      = "Yield"
	TagYieldStar  = "YieldStar"
	TagThrow      = "Throw"
)

// NoLabel is the placeholder atom filling the label slot of an unlabeled loop.
const NoLabel = "null"
