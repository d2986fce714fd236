// Package chimera ties the pipeline together: one call takes a parsed
// compilation unit through type checking and all lowering stages.
package chimera

import (
	"fmt"
	"io"

	"github.com/chimera-lang/chimera/frontend/ast"
	"github.com/chimera-lang/chimera/frontend/cst"
	"github.com/chimera-lang/chimera/frontend/infer"
	"github.com/chimera-lang/chimera/internal/log"
	"github.com/chimera-lang/chimera/ir/ccf"
	"github.com/chimera-lang/chimera/ir/fcf"
	"github.com/chimera-lang/chimera/ir/ssa"
)

var packageLogger = log.DefaultLogger.With("section", "lower")

// CheckUnit decodes a unit from the parser's wire form and type-checks
// it. The first error aborts the unit; there is no error accumulation.
func CheckUnit(r io.Reader) (*cst.Program, error) {
	prog, err := ast.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("read unit: %w", err)
	}
	return infer.CheckProgram(prog)
}

// Lower takes a checked unit through core-form extraction, lambda
// lifting and block construction. Only the extraction can fail with a
// user-reportable error (a missing entry point); anything after that
// failing means a defect, not a compile error.
func Lower(prog *cst.Program) (*ssa.Program, error) {
	form, err := ccf.Extract(prog)
	if err != nil {
		return nil, err
	}
	module, err := fcf.FromForm(form)
	if err != nil {
		return nil, err
	}
	packageLogger.Debug("lowered unit",
		"defs", len(form.Defs),
		"funcs", len(module.Funcs),
		"binds", len(module.Binds),
	)
	return ssa.FromModule(module), nil
}

// CompileUnit is CheckUnit followed by Lower.
func CompileUnit(r io.Reader) (*ssa.Program, error) {
	checked, err := CheckUnit(r)
	if err != nil {
		return nil, err
	}
	return Lower(checked)
}
