package optimize

import "github.com/fern-lang/fern/pkg/ir"

// CoreLibrary supplies canonical replacement expressions for runtime
// operations the rewriter cannot express as a local tree rewrite: coercing
// values to the generic sequence interface, casting entities to interfaces
// via dispatch tables, and bridging between curried and fixed-arity calling
// shapes at runtime. Implementations construct expressions only; they must
// be side-effect-free and safe for concurrent use, since declarations are
// optimized in parallel.
type CoreLibrary interface {
	// CoerceToSequence materializes a conversion of e to the target sequence
	// type.
	CoerceToSequence(e ir.Expr, target ir.SeqType) ir.Expr

	// CastToInterface materializes a cast of e to the target interface,
	// typically as a dispatch-table lookup.
	CastToInterface(e ir.Expr, target ir.DeclaredType) ir.Expr

	// PartiallyApply builds a partial application of a fixed-arity function:
	// fn expects arity arguments but only args (fewer) are available. The
	// result has the remaining curried type typ.
	PartiallyApply(fn ir.Expr, arity int, args []ir.Expr, typ ir.Type) ir.Expr

	// UncurryAtRuntime wraps a curried function value of the given arity so
	// it presents a fixed-arity interface.
	UncurryAtRuntime(arity int, fn ir.Expr) ir.Expr
}
