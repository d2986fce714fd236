package infer

import (
	"log/slog"

	"github.com/chimera-lang/chimera/frontend/ast"
	"github.com/chimera-lang/chimera/frontend/cst"
	"github.com/chimera-lang/chimera/frontend/types"
)

// checkItem is the [LET] rule: infer the definition's body, then
// quantify the result over its free type variables that are not free
// in any assumption currently in scope. The resulting scheme is bound
// into f, which is what makes a name usable at several independently
// instantiated types later on.
//
// An explicit annotation is trusted verbatim and bound as given; the
// body is still inferred so the typed tree exists for lowering, but
// the scheme is never re-derived from it.
func (c *Checker) checkItem(f frameID, it ast.Item) (cst.Item, error) {
	body, err := c.infer(f, it.Expr)
	if err != nil {
		return cst.Item{}, err
	}
	var scheme types.Scheme
	if it.Ann != nil {
		scheme = *it.Ann
	} else {
		scheme = types.Generalize(c.ctx, body.Type(), c.liveVars(f))
	}
	c.bind(f, it.Name, scheme)
	logger.Debug("checked definition",
		slog.String("name", it.Name),
		slog.String("scheme", scheme.String()),
	)
	return cst.Item{Name: it.Name, Body: body}, nil
}

// CheckProgram runs one top-level check over the parsed item list. The
// unification Context lives exactly as long as this call; every scope
// frame derives from it. On success the returned tree carries fully
// resolved monotypes.
func CheckProgram(prog *ast.Program) (*cst.Program, error) {
	c := NewChecker()
	out := &cst.Program{Items: make([]cst.Item, 0, len(prog.Items))}
	for _, item := range prog.Items {
		checked, err := c.checkItem(rootFrame, item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, checked)
	}
	for i := range out.Items {
		resolveExpr(c.ctx, out.Items[i].Body)
	}
	return out, nil
}

// resolveExpr rewrites every attached monotype through the Context's
// substitutions, so no lowering stage ever observes a stale variable.
func resolveExpr(ctx *types.Context, e cst.Expr) {
	switch e := e.(type) {
	case *cst.Var:
		e.T = ctx.Resolve(e.T)
	case *cst.Lambda:
		for i := range e.Params {
			e.Params[i].T = ctx.Resolve(e.Params[i].T)
		}
		resolveExpr(ctx, e.Body)
		e.T = ctx.Resolve(e.T)
	case *cst.Apply:
		resolveExpr(ctx, e.Callee)
		for _, a := range e.Args {
			resolveExpr(ctx, a)
		}
		e.T = ctx.Resolve(e.T)
	case *cst.Call:
		resolveExpr(ctx, e.Callee)
		for _, a := range e.Args {
			resolveExpr(ctx, a)
		}
		e.T = ctx.Resolve(e.T)
	case *cst.Block:
		for _, stmt := range e.Body {
			switch stmt := stmt.(type) {
			case *cst.ExprStmt:
				resolveExpr(ctx, stmt.X)
			case *cst.ItemStmt:
				resolveExpr(ctx, stmt.Item.Body)
			}
		}
		e.T = ctx.Resolve(e.T)
	}
}
