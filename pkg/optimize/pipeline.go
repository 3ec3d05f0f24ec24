package optimize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fern-lang/fern/pkg/ir"
)

// Rule is one named rewrite, applied as a single full-tree sweep.
type Rule struct {
	Name  string
	Apply func(ir.Expr) ir.Expr
}

type optimizer struct {
	core CoreLibrary
}

// Rules returns the rewrite pipeline in its fixed, hand-ordered form. The
// order is load-bearing: the beta reductions must run before cast resolution
// and the uncurry family, which rely on redundant bindings and saturated
// applications already being gone, and the uncurry sub-passes each produce
// the shape the next one expects (received args, then sending args, then
// inner functions, then applications, then unwrap). Every rule is one
// sweep; all run bottom-up except uncurryApplications, which sweeps
// outside-in so it can observe whole application chains (see outsideIn).
func Rules(core CoreLibrary) []Rule {
	o := &optimizer{core: core}
	return []Rule{
		{Name: "bindingBetaReduction", Apply: bottomUp(o.bindingBetaReduction)},
		{Name: "lambdaBetaReduction", Apply: bottomUp(o.lambdaBetaReduction)},
		{Name: "getterBetaReduction", Apply: bottomUp(o.getterBetaReduction)},
		{Name: "resolveCasts", Apply: bottomUp(o.resolveCasts)},
		{Name: "uncurryReceivedArgs", Apply: bottomUp(o.uncurryReceivedArgs)},
		{Name: "uncurrySendingArgs", Apply: bottomUp(o.uncurrySendingArgs)},
		{Name: "uncurryInnerFunctions", Apply: bottomUp(o.uncurryInnerFunctions)},
		{Name: "uncurryApplications", Apply: outsideIn(o.uncurryApplications)},
		{Name: "unwrapFunctions", Apply: bottomUp(o.unwrapFunctions)},
	}
}

func bottomUp(rule func(ir.Expr) ir.Expr) func(ir.Expr) ir.Expr {
	return func(e ir.Expr) ir.Expr { return ir.Visit(rule, e) }
}

// outsideIn applies the rule to a node before descending into the (possibly
// rewritten) node's children. uncurryApplications needs this orientation: it
// must observe a whole application chain before the chain's inner
// applications have been rewritten away.
func outsideIn(rule func(ir.Expr) ir.Expr) func(ir.Expr) ir.Expr {
	var sweep func(ir.Expr) ir.Expr
	sweep = func(e ir.Expr) ir.Expr {
		return ir.MapChildren(sweep, rule(e))
	}
	return sweep
}

// OptimizeExpr folds the full rule pipeline over one expression, each rule
// as one complete sweep, left to right, exactly once.
func OptimizeExpr(core CoreLibrary, e ir.Expr) ir.Expr {
	return runRules(Rules(core), e)
}

func runRules(rules []Rule, e ir.Expr) ir.Expr {
	for _, rule := range rules {
		e = rule.Apply(e)
	}
	return e
}

// CompilerBug is an internal invariant violation surfaced during
// optimization. It aborts the compilation of the unit that triggered it;
// it is never a recoverable or retryable condition.
type CompilerBug struct {
	Decl string
	Err  error
}

func (b *CompilerBug) Error() string {
	if b.Decl == "" {
		return fmt.Sprintf("compiler bug during optimization: %v", b.Err)
	}
	return fmt.Sprintf("compiler bug while optimizing %q: %v", b.Decl, b.Err)
}

func (b *CompilerBug) Unwrap() error { return b.Err }

// Optimize rewrites every declaration body of a compilation unit through the
// rule pipeline and returns a file of the same shape: declaration kinds,
// names, and arities are preserved, only expression bodies change.
// Declarations share no state, so they are processed in parallel; each
// declaration's own pipeline still runs its rules in the documented order.
func Optimize(ctx context.Context, core CoreLibrary, file *ir.File) (*ir.File, error) {
	rules := Rules(core)
	decls := make([]ir.Declaration, len(file.Decls))

	eg, _ := errgroup.WithContext(ctx)
	for i, decl := range file.Decls {
		eg.Go(func() error {
			optimized, err := optimizeDecl(rules, decl)
			if err != nil {
				return err
			}
			decls[i] = optimized
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("optimized compilation unit", "path", file.SourcePath, "decls", len(decls))
	return &ir.File{
		SourcePath:   file.SourcePath,
		Decls:        decls,
		UsedNames:    file.UsedNames,
		Dependencies: file.Dependencies,
	}, nil
}

func optimizeDecl(rules []Rule, decl ir.Declaration) (out ir.Declaration, err error) {
	defer func() {
		if r := recover(); r != nil {
			bugErr, ok := r.(error)
			if !ok {
				bugErr = errors.Errorf("%v", r)
			}
			err = &CompilerBug{Decl: decl.DeclName(), Err: bugErr}
		}
	}()

	switch d := decl.(type) {
	case *ir.ActionDecl:
		return &ir.ActionDecl{Body: runRules(rules, d.Body)}, nil
	case *ir.ValueDecl:
		return &ir.ValueDecl{Name: d.Name, Body: runRules(rules, d.Body), Public: d.Public}, nil
	case *ir.ConstructorDecl:
		return &ir.ConstructorDecl{Name: d.Name, Arguments: d.Arguments, Body: runRules(rules, d.Body)}, nil
	case *ir.OverrideDecl:
		return &ir.OverrideDecl{Name: d.Name, EntityName: d.EntityName, Arguments: d.Arguments, Body: runRules(rules, d.Body)}, nil
	case *ir.InterfaceCastDecl:
		members := make([]ir.InterfaceMember, len(d.Members))
		for i, m := range d.Members {
			members[i] = ir.InterfaceMember{Name: m.Name, Body: runRules(rules, m.Body)}
		}
		return &ir.InterfaceCastDecl{InterfaceName: d.InterfaceName, EntityName: d.EntityName, Members: members}, nil
	default:
		panic(errors.Errorf("unhandled declaration type %T", decl))
	}
}
