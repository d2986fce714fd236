package cherr

import (
	"fmt"
)

// NewScope reports a name with no binding anywhere in the scope chain.
type NewScope struct {
	Name  string
	stack []byte
}

func (e NewScope) Code() ErrCode { return Scope }
func (e NewScope) Error() string {
	return fmt.Sprintf("name '%s' is not defined", e.Name)
}
func (e NewScope) getStack() []byte { return e.stack }
func (e NewScope) withStack(stack []byte) ChimeraError {
	e.stack = stack
	return e
}

// NewUnification reports two monotypes that could not be made equal,
// either because their shapes differ or because the occurs check failed.
// First and Second are the rendered forms of the conflicting types.
type NewUnification struct {
	First  string
	Second string
	stack  []byte
}

func (e NewUnification) Code() ErrCode { return Unification }
func (e NewUnification) Error() string {
	return fmt.Sprintf("type mismatch: expected type '%s', but found a different type '%s'", e.First, e.Second)
}
func (e NewUnification) getStack() []byte { return e.stack }
func (e NewUnification) withStack(stack []byte) ChimeraError {
	e.stack = stack
	return e
}

// NewNoMain reports a compilation unit with no entry point.
type NewNoMain struct {
	stack []byte
}

func (e NewNoMain) Code() ErrCode { return NoMain }
func (e NewNoMain) Error() string {
	return "no entry point: a definition named 'main' is required"
}
func (e NewNoMain) getStack() []byte { return e.stack }
func (e NewNoMain) withStack(stack []byte) ChimeraError {
	e.stack = stack
	return e
}
