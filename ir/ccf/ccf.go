// Package ccf is the Core Chimera Form: the checked item list reshaped
// into auxiliary definitions plus one distinguished entry expression.
package ccf

import (
	"github.com/chimera-lang/chimera/frontend/cherr"
	"github.com/chimera-lang/chimera/frontend/cst"
)

// EntryName is the reserved name of the program entry point.
const EntryName = "main"

type Form struct {
	// Defs holds every definition except the entry, in source order.
	Defs []Def
	// Main is the entry expression, extracted from the item named
	// "main". The program amounts to a Void -> Void function that
	// evaluates it.
	Main cst.Expr
}

type Def struct {
	Name string
	Body cst.Expr
}

// Extract finds the unique item named "main", removes it from the list
// and returns the rest alongside it. This is a pure reshaping step: no
// validation beyond the entry's presence happens here.
func Extract(prog *cst.Program) (*Form, error) {
	mainIndex := -1
	for i, item := range prog.Items {
		if item.Name == EntryName {
			mainIndex = i
			break
		}
	}
	if mainIndex < 0 {
		return nil, cherr.New(cherr.NewNoMain{})
	}
	defs := make([]Def, 0, len(prog.Items)-1)
	for i, item := range prog.Items {
		if i == mainIndex {
			continue
		}
		defs = append(defs, Def{Name: item.Name, Body: item.Body})
	}
	return &Form{Defs: defs, Main: prog.Items[mainIndex].Body}, nil
}
