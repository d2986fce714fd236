package ssa

import (
	"fmt"
	"strings"

	"github.com/chimera-lang/chimera/ir/fcf"
)

// String renders the program in a readable form, for debugging and for
// the CLI when no output file is requested.
func (p *Program) String() string {
	var sb strings.Builder
	for _, bind := range p.Binds {
		fmt.Fprintf(&sb, "bind %s = %s\n", bind.Name, DumpExpr(bind.Body))
	}
	for _, proc := range p.Procs {
		fmt.Fprintf(&sb, "proc %s (param slot %d) {\n", proc.Name, proc.ParamSlot)
		for _, block := range proc.Blocks {
			fmt.Fprintf(&sb, "  %s(%s):\n", block.Label, strings.Join(block.Params, ", "))
			for _, instr := range block.Instrs {
				if local, ok := instr.(*Local); ok {
					fmt.Fprintf(&sb, "    v%d = %s\n", local.Slot, DumpExpr(local.X))
				}
			}
			if ret, ok := block.Transfer.(*Return); ok {
				fmt.Fprintf(&sb, "    ret v%d\n", ret.Slot)
			}
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

// DumpExpr renders a flat expression on one line.
func DumpExpr(e fcf.Expr) string {
	switch e := e.(type) {
	case *fcf.Void:
		return "()"
	case *fcf.IntLit:
		return fmt.Sprintf("%d", e.Value)
	case *fcf.BoolLit:
		return fmt.Sprintf("%t", e.Value)
	case *fcf.CharLit:
		return fmt.Sprintf("%q", e.Value)
	case *fcf.StrLit:
		return fmt.Sprintf("%q", e.Value)
	case *fcf.Var:
		return e.Name
	case *fcf.Apply:
		return fmt.Sprintf("apply %s(%s)", DumpExpr(e.Callee), dumpAll(e.Args))
	case *fcf.Call:
		return fmt.Sprintf("call %s(%s)", DumpExpr(e.Callee), dumpAll(e.Args))
	case *fcf.Block:
		parts := make([]string, len(e.Body))
		for i, stmt := range e.Body {
			switch stmt := stmt.(type) {
			case *fcf.ExprStmt:
				parts[i] = DumpExpr(stmt.X)
			case *fcf.BindStmt:
				parts[i] = fmt.Sprintf("%s = %s", stmt.Name, DumpExpr(stmt.X))
			}
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	}
	return fmt.Sprintf("<%T>", e)
}

func dumpAll(exprs []fcf.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = DumpExpr(e)
	}
	return strings.Join(parts, ", ")
}
