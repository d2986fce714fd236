package infer

import (
	"github.com/chimera-lang/chimera/frontend/ast"
	"github.com/chimera-lang/chimera/frontend/cst"
	"github.com/chimera-lang/chimera/frontend/types"
	"github.com/pkg/errors"
)

// infer is algorithm J: one case per untyped expression variant, each
// producing a typed node. Inference is fail-fast; the first scope or
// unification error aborts the whole enclosing top-level item.
func (c *Checker) infer(f frameID, e ast.Expr) (cst.Expr, error) {
	switch e := e.(type) {
	case *ast.Void:
		return &cst.Void{}, nil

	case *ast.IntLit:
		return &cst.IntLit{Value: e.Value}, nil

	case *ast.BoolLit:
		return &cst.BoolLit{Value: e.Value}, nil

	case *ast.CharLit:
		return &cst.CharLit{Value: e.Value}, nil

	case *ast.StrLit:
		return &cst.StrLit{Value: e.Value}, nil

	// The [VAR] rule: find an assumption for the name somewhere up the
	// frame chain and specialize it with fresh type variables.
	case *ast.Var:
		t, err := c.lookup(f, e.Name)
		if err != nil {
			return nil, err
		}
		return &cst.Var{Name: e.Name, T: t}, nil

	// The [ABS] rule: each parameter gets a fresh type variable bound
	// monomorphically in a child frame; the child frame is discarded
	// with the case, so parameter bindings never leak into the
	// enclosing assumption set.
	case *ast.Lambda:
		child := c.newChild(f)
		params := make([]cst.Param, len(e.Params))
		argTypes := make([]types.Type, len(e.Params))
		for i, name := range e.Params {
			tv := c.ctx.Fresh()
			c.bind(child, name, types.MonoScheme(tv))
			params[i] = cst.Param{Name: name, T: tv}
			argTypes[i] = tv
		}
		body, err := c.infer(child, e.Body)
		if err != nil {
			return nil, err
		}
		t := types.Arrow{Args: argTypes, Return: body.Type()}
		return &cst.Lambda{Params: params, Body: body, T: t}, nil

	// The [APP] rule: unify the callee's type against an arrow from
	// the argument types to a fresh result variable. Whether the node
	// becomes a Call or an Apply depends only on whether the callee's
	// own parameter list is exactly covered by the supplied arguments.
	case *ast.Apply:
		callee, err := c.infer(f, e.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]cst.Expr, len(e.Args))
		argTypes := make([]types.Type, len(e.Args))
		for i, a := range e.Args {
			arg, err := c.infer(f, a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
			argTypes[i] = arg.Type()
		}
		result := c.ctx.Fresh()
		if err := c.ctx.Unify(callee.Type(), types.Arrow{Args: argTypes, Return: result}); err != nil {
			return nil, err
		}
		t := c.ctx.Resolve(result)
		if arrow, ok := c.ctx.Resolve(callee.Type()).(types.Arrow); ok && len(arrow.Args) == len(args) {
			return &cst.Call{Callee: callee, Args: args, T: t}, nil
		}
		return &cst.Apply{Callee: callee, Args: args, T: t}, nil

	// A block checks its statements in a child frame; its type is the
	// type of the final statement when that is an expression, Void
	// otherwise.
	case *ast.Block:
		child := c.newChild(f)
		body := make([]cst.Stmt, 0, len(e.Body))
		blockType := types.Type(types.VoidType)
		for i, stmt := range e.Body {
			switch stmt := stmt.(type) {
			case *ast.ExprStmt:
				x, err := c.infer(child, stmt.X)
				if err != nil {
					return nil, err
				}
				body = append(body, &cst.ExprStmt{X: x})
				if i == len(e.Body)-1 {
					blockType = x.Type()
				}
			case *ast.ItemStmt:
				item, err := c.checkItem(child, stmt.Item)
				if err != nil {
					return nil, err
				}
				body = append(body, &cst.ItemStmt{Item: item})
			default:
				return nil, errors.Errorf("unhandled statement %T", stmt)
			}
		}
		return &cst.Block{Body: body, T: blockType}, nil
	}

	return nil, errors.Errorf("unhandled expression %T", e)
}
