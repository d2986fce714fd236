package infer

import (
	"testing"

	"github.com/chimera-lang/chimera/frontend/ast"
	"github.com/chimera-lang/chimera/frontend/cherr"
	"github.com/chimera-lang/chimera/frontend/cst"
	"github.com/chimera-lang/chimera/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralTyping(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want types.Type
	}{
		{"void", &ast.Void{}, types.VoidType},
		{"int", &ast.IntLit{Value: 42}, types.IntType},
		{"bool", &ast.BoolLit{Value: true}, types.BoolType},
		{"char", &ast.CharLit{Value: 'x'}, types.CharType},
		{"str", &ast.StrLit{Value: "hi"}, types.StrType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			typed, err := c.infer(rootFrame, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typed.Type())
			// literals never touch the unification context
			assert.Equal(t, 0, c.ctx.NumVars())
			assert.Equal(t, 0, c.ctx.NumSubst())
		})
	}
}

func TestLambdaParamsDoNotLeak(t *testing.T) {
	c := NewChecker()
	_, err := c.infer(rootFrame, &ast.Lambda{
		Params: []string{"x"},
		Body:   &ast.Var{Name: "x"},
	})
	require.NoError(t, err)

	_, err = c.lookup(rootFrame, "x")
	require.Error(t, err)
	assert.Equal(t, cherr.Scope, cherr.CodeOf(err))
}

func TestArityClassification(t *testing.T) {
	// f = |a, b| a, then f applied to two and to one argument
	twoParam := &ast.Lambda{
		Params: []string{"a", "b"},
		Body:   &ast.Var{Name: "a"},
	}

	t.Run("saturated becomes Call", func(t *testing.T) {
		c := NewChecker()
		typed, err := c.infer(rootFrame, &ast.Apply{
			Callee: twoParam,
			Args:   []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}},
		})
		require.NoError(t, err)
		call, ok := typed.(*cst.Call)
		require.True(t, ok, "expected a Call node, got %T", typed)
		assert.Equal(t, types.IntType, c.ctx.Resolve(call.Type()))
	})

	t.Run("partial becomes Apply with a smaller arrow", func(t *testing.T) {
		c := NewChecker()
		typed, err := c.infer(rootFrame, &ast.Apply{
			Callee: twoParam,
			Args:   []ast.Expr{&ast.IntLit{Value: 1}},
		})
		require.NoError(t, err)
		apply, ok := typed.(*cst.Apply)
		require.True(t, ok, "expected an Apply node, got %T", typed)
		arrow, ok := c.ctx.Resolve(apply.Type()).(types.Arrow)
		require.True(t, ok, "a partial application should have an arrow type")
		assert.Len(t, arrow.Args, 1)
	})
}

func TestUnboundNameFailsFast(t *testing.T) {
	prog := &ast.Program{Items: []ast.Item{
		{Name: "main", Expr: &ast.Var{Name: "undefined_name"}},
	}}
	_, err := CheckProgram(prog)
	require.Error(t, err)
	assert.Equal(t, cherr.Scope, cherr.CodeOf(err))
	assert.Contains(t, err.Error(), "undefined_name")
}

func TestLetPolymorphism(t *testing.T) {
	// identity = |x| x; usedInt = identity 1; usedBool = identity true
	prog := &ast.Program{Items: []ast.Item{
		{Name: "identity", Expr: &ast.Lambda{Params: []string{"x"}, Body: &ast.Var{Name: "x"}}},
		{Name: "usedInt", Expr: &ast.Apply{Callee: &ast.Var{Name: "identity"}, Args: []ast.Expr{&ast.IntLit{Value: 1}}}},
		{Name: "usedBool", Expr: &ast.Apply{Callee: &ast.Var{Name: "identity"}, Args: []ast.Expr{&ast.BoolLit{Value: true}}}},
	}}
	checked, err := CheckProgram(prog)
	require.NoError(t, err)
	require.Len(t, checked.Items, 3)
	assert.Equal(t, types.Type(types.IntType), checked.Items[1].Body.Type())
	assert.Equal(t, types.Type(types.BoolType), checked.Items[2].Body.Type())
}

func TestAnnotationBoundVerbatim(t *testing.T) {
	intToInt := types.Scheme{Body: types.Arrow{
		Args:   []types.Type{types.IntType},
		Return: types.IntType,
	}}
	prog := &ast.Program{Items: []ast.Item{
		{
			Name: "f",
			Ann:  &intToInt,
			Expr: &ast.Lambda{Params: []string{"x"}, Body: &ast.Var{Name: "x"}},
		},
		{Name: "main", Expr: &ast.Apply{Callee: &ast.Var{Name: "f"}, Args: []ast.Expr{&ast.BoolLit{Value: true}}}},
	}}
	_, err := CheckProgram(prog)
	require.Error(t, err)
	assert.Equal(t, cherr.Unification, cherr.CodeOf(err))
	assert.Contains(t, err.Error(), "Int")
	assert.Contains(t, err.Error(), "Bool")
}

func TestBlockTyping(t *testing.T) {
	t.Run("trailing expression decides the type", func(t *testing.T) {
		c := NewChecker()
		typed, err := c.infer(rootFrame, &ast.Block{Body: []ast.Stmt{
			&ast.ItemStmt{Item: ast.Item{Name: "answer", Expr: &ast.IntLit{Value: 42}}},
			&ast.ExprStmt{X: &ast.Var{Name: "answer"}},
		}})
		require.NoError(t, err)
		assert.Equal(t, types.Type(types.IntType), typed.Type())
	})

	t.Run("trailing item makes the block Void", func(t *testing.T) {
		c := NewChecker()
		typed, err := c.infer(rootFrame, &ast.Block{Body: []ast.Stmt{
			&ast.ItemStmt{Item: ast.Item{Name: "zero", Expr: &ast.IntLit{Value: 0}}},
		}})
		require.NoError(t, err)
		assert.Equal(t, types.Type(types.VoidType), typed.Type())
	})

	t.Run("empty block is Void", func(t *testing.T) {
		c := NewChecker()
		typed, err := c.infer(rootFrame, &ast.Block{})
		require.NoError(t, err)
		assert.Equal(t, types.Type(types.VoidType), typed.Type())
	})

	t.Run("block locals stay local", func(t *testing.T) {
		prog := &ast.Program{Items: []ast.Item{
			{Name: "a", Expr: &ast.Block{Body: []ast.Stmt{
				&ast.ItemStmt{Item: ast.Item{Name: "hidden", Expr: &ast.IntLit{Value: 1}}},
				&ast.ExprStmt{X: &ast.Var{Name: "hidden"}},
			}}},
			{Name: "main", Expr: &ast.Var{Name: "hidden"}},
		}}
		_, err := CheckProgram(prog)
		require.Error(t, err)
		assert.Equal(t, cherr.Scope, cherr.CodeOf(err))
	})
}

func TestCheckedTypesAreResolved(t *testing.T) {
	// apply = |f, x| f x: the parameter types are refined through an
	// application site and must come back fully substituted
	prog := &ast.Program{Items: []ast.Item{
		{Name: "call1", Expr: &ast.Lambda{
			Params: []string{"f"},
			Body:   &ast.Apply{Callee: &ast.Var{Name: "f"}, Args: []ast.Expr{&ast.IntLit{Value: 1}}},
		}},
		{Name: "main", Expr: &ast.Apply{
			Callee: &ast.Var{Name: "call1"},
			Args:   []ast.Expr{&ast.Lambda{Params: []string{"x"}, Body: &ast.Var{Name: "x"}}},
		}},
	}}
	checked, err := CheckProgram(prog)
	require.NoError(t, err)
	assert.Equal(t, types.Type(types.IntType), checked.Items[1].Body.Type())

	call, ok := checked.Items[1].Body.(*cst.Call)
	require.True(t, ok)
	lam, ok := call.Args[0].(*cst.Lambda)
	require.True(t, ok)
	assert.Equal(t, types.Type(types.IntType), lam.Params[0].T)
}
