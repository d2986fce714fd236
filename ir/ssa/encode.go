package ssa

import (
	"io"

	"github.com/chimera-lang/chimera/ir/fcf"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// The wire form handed to the backend process. Sum types become
// kind-tagged structs so the encoding stays stable across Go versions
// and is readable from any msgpack implementation.

type wireProgram struct {
	Binds []wireBind `msgpack:"binds"`
	Procs []wireProc `msgpack:"procs"`
}

type wireBind struct {
	Name string   `msgpack:"name"`
	Body wireExpr `msgpack:"body"`
}

type wireProc struct {
	Name      string      `msgpack:"name"`
	ParamSlot int         `msgpack:"param_slot"`
	Blocks    []wireBlock `msgpack:"blocks"`
}

type wireBlock struct {
	Label    string        `msgpack:"label"`
	Params   []string      `msgpack:"params"`
	Instrs   []wireInstr   `msgpack:"instrs"`
	Transfer *wireTransfer `msgpack:"transfer,omitempty"`
}

type wireInstr struct {
	Kind string   `msgpack:"kind"`
	Slot int      `msgpack:"slot"`
	X    wireExpr `msgpack:"x"`
}

type wireTransfer struct {
	Kind string `msgpack:"kind"`
	Slot int    `msgpack:"slot"`
}

type wireExpr struct {
	Kind   string     `msgpack:"kind"`
	Int    int64      `msgpack:"int,omitempty"`
	Bool   bool       `msgpack:"bool,omitempty"`
	Char   string     `msgpack:"char,omitempty"`
	Str    string     `msgpack:"str,omitempty"`
	Name   string     `msgpack:"name,omitempty"`
	Callee *wireExpr  `msgpack:"callee,omitempty"`
	Args   []wireExpr `msgpack:"args,omitempty"`
	Stmts  []wireStmt `msgpack:"stmts,omitempty"`
}

type wireStmt struct {
	Name string   `msgpack:"name,omitempty"`
	X    wireExpr `msgpack:"x"`
}

// Encode writes the program in its msgpack wire form.
func Encode(w io.Writer, p *Program) error {
	wp := wireProgram{
		Binds: make([]wireBind, len(p.Binds)),
		Procs: make([]wireProc, len(p.Procs)),
	}
	for i, bind := range p.Binds {
		wp.Binds[i] = wireBind{Name: bind.Name, Body: encodeExpr(bind.Body)}
	}
	for i, proc := range p.Procs {
		blocks := make([]wireBlock, len(proc.Blocks))
		for j, block := range proc.Blocks {
			wb := wireBlock{Label: block.Label, Params: block.Params}
			for _, instr := range block.Instrs {
				local, ok := instr.(*Local)
				if !ok {
					return errors.Errorf("unhandled instruction %T", instr)
				}
				wb.Instrs = append(wb.Instrs, wireInstr{Kind: "local", Slot: local.Slot, X: encodeExpr(local.X)})
			}
			if block.Transfer != nil {
				ret, ok := block.Transfer.(*Return)
				if !ok {
					return errors.Errorf("unhandled transfer %T", block.Transfer)
				}
				wb.Transfer = &wireTransfer{Kind: "return", Slot: ret.Slot}
			}
			blocks[j] = wb
		}
		wp.Procs[i] = wireProc{Name: proc.Name, ParamSlot: proc.ParamSlot, Blocks: blocks}
	}
	if err := msgpack.NewEncoder(w).Encode(wp); err != nil {
		return errors.Wrap(err, "encode ssa program")
	}
	return nil
}

func encodeExpr(e fcf.Expr) wireExpr {
	switch e := e.(type) {
	case *fcf.Void:
		return wireExpr{Kind: "void"}
	case *fcf.IntLit:
		return wireExpr{Kind: "int", Int: e.Value}
	case *fcf.BoolLit:
		return wireExpr{Kind: "bool", Bool: e.Value}
	case *fcf.CharLit:
		return wireExpr{Kind: "char", Char: string(e.Value)}
	case *fcf.StrLit:
		return wireExpr{Kind: "str", Str: e.Value}
	case *fcf.Var:
		return wireExpr{Kind: "name", Name: e.Name}
	case *fcf.Apply:
		return wireExpr{Kind: "apply", Callee: encodeExprPtr(e.Callee), Args: encodeAll(e.Args)}
	case *fcf.Call:
		return wireExpr{Kind: "call", Callee: encodeExprPtr(e.Callee), Args: encodeAll(e.Args)}
	case *fcf.Block:
		stmts := make([]wireStmt, len(e.Body))
		for i, stmt := range e.Body {
			switch stmt := stmt.(type) {
			case *fcf.ExprStmt:
				stmts[i] = wireStmt{X: encodeExpr(stmt.X)}
			case *fcf.BindStmt:
				stmts[i] = wireStmt{Name: stmt.Name, X: encodeExpr(stmt.X)}
			}
		}
		return wireExpr{Kind: "block", Stmts: stmts}
	}
	panic(errors.Errorf("unhandled flat expression %T", e))
}

func encodeExprPtr(e fcf.Expr) *wireExpr {
	we := encodeExpr(e)
	return &we
}

func encodeAll(exprs []fcf.Expr) []wireExpr {
	out := make([]wireExpr, len(exprs))
	for i, e := range exprs {
		out[i] = encodeExpr(e)
	}
	return out
}
