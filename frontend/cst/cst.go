// Package cst is the typed syntax tree: the same shape as ast, with a
// fully-resolved monotype attached to every expression and the
// saturated/curried distinction made explicit (Call vs Apply).
package cst

import (
	"github.com/chimera-lang/chimera/frontend/types"
)

type Program struct {
	Items []Item
}

type Item struct {
	Name string
	Body Expr
}

type Expr interface {
	// Type is the inferred monotype of this node. Once a Program has
	// been checked it contains no substitutable type variable.
	Type() types.Type
	exprNode()
}

type Void struct{}

func (*Void) exprNode()        {}
func (*Void) Type() types.Type { return types.VoidType }

type IntLit struct {
	Value int64
}

func (*IntLit) exprNode()        {}
func (*IntLit) Type() types.Type { return types.IntType }

type BoolLit struct {
	Value bool
}

func (*BoolLit) exprNode()        {}
func (*BoolLit) Type() types.Type { return types.BoolType }

type CharLit struct {
	Value rune
}

func (*CharLit) exprNode()        {}
func (*CharLit) Type() types.Type { return types.CharType }

type StrLit struct {
	Value string
}

func (*StrLit) exprNode()        {}
func (*StrLit) Type() types.Type { return types.StrType }

type Var struct {
	Name string
	T    types.Type
}

func (*Var) exprNode()          {}
func (e *Var) Type() types.Type { return e.T }

type Param struct {
	Name string
	T    types.Type
}

type Lambda struct {
	Params []Param
	Body   Expr
	T      types.Type
}

func (*Lambda) exprNode()          {}
func (e *Lambda) Type() types.Type { return e.T }

// Apply is a curried (partial) application: fewer arguments than the
// callee's parameter list. Its type is an arrow over the remaining
// parameters.
type Apply struct {
	Callee Expr
	Args   []Expr
	T      types.Type
}

func (*Apply) exprNode()          {}
func (e *Apply) Type() types.Type { return e.T }

// Call is a saturated application: exactly as many arguments as the
// callee's parameter list. The distinction is a lowering hint only; it
// carries no extra type information.
type Call struct {
	Callee Expr
	Args   []Expr
	T      types.Type
}

func (*Call) exprNode()          {}
func (e *Call) Type() types.Type { return e.T }

type Block struct {
	Body []Stmt
	T    types.Type
}

func (*Block) exprNode()          {}
func (e *Block) Type() types.Type { return e.T }

type Stmt interface {
	stmtNode()
}

type ExprStmt struct {
	X Expr
}

type ItemStmt struct {
	Item Item
}

func (*ExprStmt) stmtNode() {}
func (*ItemStmt) stmtNode() {}
