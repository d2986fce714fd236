package ast

import (
	"strings"
	"testing"

	"github.com/chimera-lang/chimera/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identityUnit = `{
  "items": [
    {
      "name": "id",
      "expr": {"kind": "lambda", "params": ["x"], "body": {"kind": "name", "name": "x"}}
    },
    {
      "name": "main",
      "expr": {"kind": "apply", "callee": {"kind": "name", "name": "id"}, "args": [{"kind": "int", "int": 42}]}
    }
  ]
}`

func TestDecodeIdentityUnit(t *testing.T) {
	prog, err := Decode(strings.NewReader(identityUnit))
	require.NoError(t, err)
	require.Len(t, prog.Items, 2)

	id := prog.Items[0]
	assert.Equal(t, "id", id.Name)
	assert.Nil(t, id.Ann)
	lam, ok := id.Expr.(*Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, lam.Params)
	assert.Equal(t, &Var{Name: "x"}, lam.Body)

	main := prog.Items[1]
	apply, ok := main.Expr.(*Apply)
	require.True(t, ok)
	assert.Equal(t, &Var{Name: "id"}, apply.Callee)
	require.Len(t, apply.Args, 1)
	assert.Equal(t, &IntLit{Value: 42}, apply.Args[0])
}

func TestDecodeAnnotation(t *testing.T) {
	unit := `{
  "items": [
    {
      "name": "inc",
      "ann": {
        "type": {"kind": "arrow", "args": [{"kind": "con", "con": "Int"}], "return": {"kind": "con", "con": "Int"}}
      },
      "expr": {"kind": "name", "name": "succ"}
    }
  ]
}`
	prog, err := Decode(strings.NewReader(unit))
	require.NoError(t, err)
	require.NotNil(t, prog.Items[0].Ann)
	assert.Equal(t, types.Scheme{Body: types.Arrow{
		Args:   []types.Type{types.IntType},
		Return: types.IntType,
	}}, *prog.Items[0].Ann)
}

func TestDecodeBlockAndLiterals(t *testing.T) {
	unit := `{
  "items": [
    {
      "name": "main",
      "expr": {"kind": "block", "stmts": [
        {"item": {"name": "greeting", "expr": {"kind": "str", "str": "hi"}}},
        {"expr": {"kind": "bool", "bool": true}},
        {"expr": {"kind": "char", "char": "z"}},
        {"expr": {"kind": "void"}}
      ]}
    }
  ]
}`
	prog, err := Decode(strings.NewReader(unit))
	require.NoError(t, err)
	block, ok := prog.Items[0].Expr.(*Block)
	require.True(t, ok)
	require.Len(t, block.Body, 4)

	item, ok := block.Body[0].(*ItemStmt)
	require.True(t, ok)
	assert.Equal(t, "greeting", item.Item.Name)
	assert.Equal(t, &StrLit{Value: "hi"}, item.Item.Expr)

	assert.Equal(t, &ExprStmt{X: &BoolLit{Value: true}}, block.Body[1])
	assert.Equal(t, &ExprStmt{X: &CharLit{Value: 'z'}}, block.Body[2])
	assert.Equal(t, &ExprStmt{X: &Void{}}, block.Body[3])
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	unit := `{"items": [{"name": "main", "expr": {"kind": "float", "int": 1}}]}`
	_, err := Decode(strings.NewReader(unit))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float")
}

func TestDecodeRejectsAmbiguousStmt(t *testing.T) {
	unit := `{"items": [{"name": "main", "expr": {"kind": "block", "stmts": [{}]}}]}`
	_, err := Decode(strings.NewReader(unit))
	require.Error(t, err)
}

func TestDecodeRejectsMissingExpr(t *testing.T) {
	unit := `{"items": [{"name": "main"}]}`
	_, err := Decode(strings.NewReader(unit))
	require.Error(t, err)
}
