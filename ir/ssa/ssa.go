// Package ssa turns lifted functions into basic-block procedures. The
// shape is deliberately minimal: every procedure is an empty entry
// block plus an end block computing the function body and returning
// it. Decomposing the body into per-operation instructions is the
// backend's job.
package ssa

import (
	"github.com/chimera-lang/chimera/ir/fcf"
)

type Program struct {
	// Binds are passed through from the flat form untouched.
	Binds []fcf.Bind
	Procs []Proc
}

type Proc struct {
	Name string
	// ParamSlot is the local slot index where the backend binds the
	// procedure's parameters.
	ParamSlot int
	Blocks    []Block
}

type Block struct {
	Label  string
	Params []string
	Instrs []Instr
	// Transfer is at most one terminating transfer. The entry block
	// leaves it nil: the backend attaches real parameter binding and
	// control-flow edges there later.
	Transfer Transfer
}

type Instr interface {
	instrNode()
}

// Local assigns a flat expression to a function-local slot.
type Local struct {
	Slot int
	X    fcf.Expr
}

func (*Local) instrNode() {}

type Transfer interface {
	transferNode()
}

// Return transfers out of the procedure with the value of a slot.
type Return struct {
	Slot int
}

func (*Return) transferNode() {}

const (
	entryLabel = "entry"
	endLabel   = "end"

	resultSlot = 1
)

// FromFunc builds the two-block skeleton for one lifted function: an
// entry block with no instructions and no transfer, and an end block
// holding the single compute instruction and the return transfer
// referencing it.
func FromFunc(fn fcf.Func) Proc {
	entry := Block{
		Label: entryLabel,
	}
	end := Block{
		Label:    endLabel,
		Instrs:   []Instr{&Local{Slot: resultSlot, X: fn.Body}},
		Transfer: &Return{Slot: resultSlot},
	}
	return Proc{Name: fn.Name, ParamSlot: 0, Blocks: []Block{entry, end}}
}

// FromModule lowers the whole flat form, preserving order.
func FromModule(m *fcf.Module) *Program {
	procs := make([]Proc, len(m.Funcs))
	for i, fn := range m.Funcs {
		procs[i] = FromFunc(fn)
	}
	return &Program{Binds: m.Binds, Procs: procs}
}
