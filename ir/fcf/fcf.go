// Package fcf is the Flat Chimera Form: every function literal hoisted
// into a deterministically-named top-level Func, leaving only flat
// expressions behind.
package fcf

import (
	"fmt"
	"log/slog"

	"github.com/chimera-lang/chimera/frontend/cst"
	"github.com/chimera-lang/chimera/internal/log"
	"github.com/chimera-lang/chimera/ir/ccf"
	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "lower-fcf")

type Module struct {
	// Binds are definitions whose body is not a function literal.
	Binds []Bind
	// Funcs are all function literals: top-level ones under their own
	// name, nested ones lifted out under {enclosing}_$_{ordinal}.
	Funcs []Func
}

type Bind struct {
	Name string
	Body Expr
}

type Func struct {
	Name   string
	Params []cst.Param
	Body   Expr
}

// Expr is a flat expression: no Lambda variant exists here.
type Expr interface {
	flatNode()
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

// Var references either a user definition or a lifted Func.
type Var struct {
	Name string
}

// Apply and Call keep the classification chosen during inference.
type Apply struct {
	Callee Expr
	Args   []Expr
}

type Call struct {
	Callee Expr
	Args   []Expr
}

type Block struct {
	Body []Stmt
}

func (*Void) flatNode()    {}
func (*IntLit) flatNode()  {}
func (*BoolLit) flatNode() {}
func (*CharLit) flatNode() {}
func (*StrLit) flatNode()  {}
func (*Var) flatNode()     {}
func (*Apply) flatNode()   {}
func (*Call) flatNode()    {}
func (*Block) flatNode()   {}

type Stmt interface {
	flatStmtNode()
}

type ExprStmt struct {
	X Expr
}

// BindStmt is a flattened local definition.
type BindStmt struct {
	Name string
	X    Expr
}

func (*ExprStmt) flatStmtNode() {}
func (*BindStmt) flatStmtNode() {}

type builder struct {
	funcs []Func
	names *set.Set[string]
	err   error
}

// FromForm lifts every nested function literal of the core form into a
// free-standing Func. Given the same input the lifted names and their
// order are identical on every run: ordinals are structural counters,
// nothing is derived from addresses or map order. Lifting cannot fail
// on a well-typed input; a name collision here is a defect, not a user
// error.
func FromForm(form *ccf.Form) (*Module, error) {
	b := &builder{names: set.New[string](len(form.Defs) + 1)}
	m := &Module{}
	for _, def := range form.Defs {
		counter := 0
		if lam, ok := def.Body.(*cst.Lambda); ok {
			body := b.flatten(def.Name, lam.Body, &counter)
			b.declare(Func{Name: def.Name, Params: lam.Params, Body: body})
			continue
		}
		m.Binds = append(m.Binds, Bind{Name: def.Name, Body: b.flatten(def.Name, def.Body, &counter)})
	}
	// main itself becomes a zero-parameter Func evaluating the entry
	// expression.
	counter := 0
	entry := b.flatten(ccf.EntryName, form.Main, &counter)
	b.declare(Func{Name: ccf.EntryName, Body: entry})
	if b.err != nil {
		return nil, b.err
	}
	m.Funcs = b.funcs
	return m, nil
}

func (b *builder) declare(fn Func) {
	if !b.names.Insert(fn.Name) && b.err == nil {
		b.err = errors.Errorf("duplicate function name %q after lifting", fn.Name)
	}
	b.funcs = append(b.funcs, fn)
}

// flatten rewrites e under the enclosing definition name. Encountering
// a Lambda takes the next ordinal from counter, lifts the lambda's
// body under the new name with a fresh nested counter, and leaves a
// Var reference in the lambda's place.
func (b *builder) flatten(name string, e cst.Expr, counter *int) Expr {
	switch e := e.(type) {
	case *cst.Void:
		return &Void{}
	case *cst.IntLit:
		return &IntLit{Value: e.Value}
	case *cst.BoolLit:
		return &BoolLit{Value: e.Value}
	case *cst.CharLit:
		return &CharLit{Value: e.Value}
	case *cst.StrLit:
		return &StrLit{Value: e.Value}
	case *cst.Var:
		return &Var{Name: e.Name}

	case *cst.Lambda:
		lifted := fmt.Sprintf("%s_$_%d", name, *counter)
		*counter++
		nested := 0
		body := b.flatten(lifted, e.Body, &nested)
		b.declare(Func{Name: lifted, Params: e.Params, Body: body})
		logger.Debug("lifted lambda", slog.String("name", lifted))
		return &Var{Name: lifted}

	case *cst.Apply:
		return &Apply{Callee: b.flatten(name, e.Callee, counter), Args: b.flattenAll(name, e.Args, counter)}
	case *cst.Call:
		return &Call{Callee: b.flatten(name, e.Callee, counter), Args: b.flattenAll(name, e.Args, counter)}

	case *cst.Block:
		body := make([]Stmt, 0, len(e.Body))
		for _, stmt := range e.Body {
			switch stmt := stmt.(type) {
			case *cst.ExprStmt:
				body = append(body, &ExprStmt{X: b.flatten(name, stmt.X, counter)})
			case *cst.ItemStmt:
				// local definitions flatten under the enclosing name,
				// threading the same counter: sibling lambdas at this
				// nesting level must receive distinct ordinals
				body = append(body, &BindStmt{Name: stmt.Item.Name, X: b.flatten(name, stmt.Item.Body, counter)})
			}
		}
		return &Block{Body: body}
	}
	panic(errors.Errorf("unhandled typed expression %T", e))
}

func (b *builder) flattenAll(name string, exprs []cst.Expr, counter *int) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = b.flatten(name, e, counter)
	}
	return out
}
