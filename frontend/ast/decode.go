package ast

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/chimera-lang/chimera/frontend/types"
)

// Decode reads a Program in the parser's JSON wire form. Expressions
// are kind-tagged objects; see the test fixtures for the full shape.
func Decode(r io.Reader) (*Program, error) {
	var wire wireProgram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	prog := &Program{Items: make([]Item, 0, len(wire.Items))}
	for i, it := range wire.Items {
		item, err := it.toItem()
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, it.Name, err)
		}
		prog.Items = append(prog.Items, item)
	}
	return prog, nil
}

type wireProgram struct {
	Items []wireItem `json:"items"`
}

type wireItem struct {
	Name string      `json:"name"`
	Ann  *wireScheme `json:"ann,omitempty"`
	Expr *wireExpr   `json:"expr"`
}

type wireScheme struct {
	Forall []types.VarID `json:"forall,omitempty"`
	Type   *wireType     `json:"type"`
}

type wireType struct {
	Kind   string      `json:"kind"`
	Con    string      `json:"con,omitempty"`
	Var    types.VarID `json:"var,omitempty"`
	Args   []wireType  `json:"args,omitempty"`
	Return *wireType   `json:"return,omitempty"`
}

type wireExpr struct {
	Kind   string     `json:"kind"`
	Int    int64      `json:"int,omitempty"`
	Bool   bool       `json:"bool,omitempty"`
	Char   string     `json:"char,omitempty"`
	Str    string     `json:"str,omitempty"`
	Name   string     `json:"name,omitempty"`
	Params []string   `json:"params,omitempty"`
	Body   *wireExpr  `json:"body,omitempty"`
	Callee *wireExpr  `json:"callee,omitempty"`
	Args   []wireExpr `json:"args,omitempty"`
	Stmts  []wireStmt `json:"stmts,omitempty"`
}

type wireStmt struct {
	Expr *wireExpr `json:"expr,omitempty"`
	Item *wireItem `json:"item,omitempty"`
}

func (w wireItem) toItem() (Item, error) {
	if w.Expr == nil {
		return Item{}, fmt.Errorf("missing expr")
	}
	expr, err := w.Expr.toExpr()
	if err != nil {
		return Item{}, err
	}
	item := Item{Name: w.Name, Expr: expr}
	if w.Ann != nil {
		scheme, err := w.Ann.toScheme()
		if err != nil {
			return Item{}, fmt.Errorf("annotation: %w", err)
		}
		item.Ann = &scheme
	}
	return item, nil
}

func (w wireScheme) toScheme() (types.Scheme, error) {
	if w.Type == nil {
		return types.Scheme{}, fmt.Errorf("missing type")
	}
	body, err := w.Type.toType()
	if err != nil {
		return types.Scheme{}, err
	}
	return types.Scheme{Vars: w.Forall, Body: body}, nil
}

func (w wireType) toType() (types.Type, error) {
	switch w.Kind {
	case "con":
		return types.Named(w.Con), nil
	case "var":
		return types.Var{ID: w.Var}, nil
	case "arrow":
		if w.Return == nil {
			return nil, fmt.Errorf("arrow is missing its return type")
		}
		args := make([]types.Type, len(w.Args))
		for i, a := range w.Args {
			arg, err := a.toType()
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		ret, err := w.Return.toType()
		if err != nil {
			return nil, err
		}
		return types.Arrow{Args: args, Return: ret}, nil
	}
	return nil, fmt.Errorf("unknown type kind %q", w.Kind)
}

func (w wireExpr) toExpr() (Expr, error) {
	switch w.Kind {
	case "void":
		return &Void{}, nil
	case "int":
		return &IntLit{Value: w.Int}, nil
	case "bool":
		return &BoolLit{Value: w.Bool}, nil
	case "char":
		r, size := utf8.DecodeRuneInString(w.Char)
		if size == 0 || size != len(w.Char) {
			return nil, fmt.Errorf("char literal %q is not a single rune", w.Char)
		}
		return &CharLit{Value: r}, nil
	case "str":
		return &StrLit{Value: w.Str}, nil
	case "name":
		return &Var{Name: w.Name}, nil
	case "lambda":
		if w.Body == nil {
			return nil, fmt.Errorf("lambda is missing its body")
		}
		body, err := w.Body.toExpr()
		if err != nil {
			return nil, err
		}
		return &Lambda{Params: w.Params, Body: body}, nil
	case "apply":
		if w.Callee == nil {
			return nil, fmt.Errorf("apply is missing its callee")
		}
		callee, err := w.Callee.toExpr()
		if err != nil {
			return nil, err
		}
		args := make([]Expr, len(w.Args))
		for i, a := range w.Args {
			arg, err := a.toExpr()
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Apply{Callee: callee, Args: args}, nil
	case "block":
		stmts := make([]Stmt, len(w.Stmts))
		for i, s := range w.Stmts {
			stmt, err := s.toStmt()
			if err != nil {
				return nil, err
			}
			stmts[i] = stmt
		}
		return &Block{Body: stmts}, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", w.Kind)
}

func (w wireStmt) toStmt() (Stmt, error) {
	switch {
	case w.Expr != nil && w.Item == nil:
		x, err := w.Expr.toExpr()
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil
	case w.Item != nil && w.Expr == nil:
		item, err := w.Item.toItem()
		if err != nil {
			return nil, err
		}
		return &ItemStmt{Item: item}, nil
	}
	return nil, fmt.Errorf("statement must be exactly one of expr or item")
}
