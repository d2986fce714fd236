package cherr

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	Scope
	Unification
	NoMain
)

// ChimeraError is a compile error that can be reported to the user.
// Internal defects (broken invariants in the lowering stages) are
// deliberately not ChimeraErrors.
type ChimeraError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) ChimeraError
	getStack() []byte
}

func FormatWithCode(e ChimeraError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E ChimeraError](err E) ChimeraError {
	return err.withStack(debug.Stack())
}

// CodeOf returns the ErrCode of err when it is a ChimeraError, and None
// otherwise.
func CodeOf(err error) ErrCode {
	if cherr, ok := err.(ChimeraError); ok {
		return cherr.Code()
	}
	return None
}
