// Package ast is the untyped syntax tree handed over by the parser.
// The parser itself lives outside this module; its output reaches us
// either as these values directly or through Decode.
package ast

import (
	"github.com/chimera-lang/chimera/frontend/types"
)

// Program is an ordered list of top-level items.
type Program struct {
	Items []Item
}

// Item is one definition: an optional explicit type-scheme annotation,
// a name, and the expression bound to it.
type Item struct {
	Name string
	Ann  *types.Scheme
	Expr Expr
}

type Expr interface {
	exprNode()
}

type Void struct{}

type IntLit struct {
	Value int64
}

type BoolLit struct {
	Value bool
}

type CharLit struct {
	Value rune
}

type StrLit struct {
	Value string
}

// Var is a reference to a name bound somewhere in the scope chain.
type Var struct {
	Name string
}

type Lambda struct {
	Params []string
	Body   Expr
}

// Apply is function application. Whether it is saturated is not known
// yet; inference decides that and the typed tree records it.
type Apply struct {
	Callee Expr
	Args   []Expr
}

type Block struct {
	Body []Stmt
}

func (*Void) exprNode()    {}
func (*IntLit) exprNode()  {}
func (*BoolLit) exprNode() {}
func (*CharLit) exprNode() {}
func (*StrLit) exprNode()  {}
func (*Var) exprNode()     {}
func (*Lambda) exprNode()  {}
func (*Apply) exprNode()   {}
func (*Block) exprNode()   {}

type Stmt interface {
	stmtNode()
}

// ExprStmt is an expression evaluated for effect; its result is
// discarded unless it is the final statement of a Block.
type ExprStmt struct {
	X Expr
}

// ItemStmt is a local definition inside a Block.
type ItemStmt struct {
	Item Item
}

func (*ExprStmt) stmtNode() {}
func (*ItemStmt) stmtNode() {}
