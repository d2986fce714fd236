package types

import (
	"fmt"
	"strings"
)

// VarID identifies a type variable within one unification Context.
type VarID uint32

// Type is a monotype. The three shapes are Const (builtins and named
// types), Arrow (carrying the full parameter list, so arity is visible
// on the type itself) and Var (a placeholder resolved through the
// Context's substitutions).
type Type interface {
	typeNode()
	String() string
}

// Const is a concrete named type. The builtins below are ordinary
// Consts; any other name is a user-level named type.
type Const struct {
	Name string
}

var (
	VoidType = Const{Name: "Void"}
	IntType  = Const{Name: "Int"}
	BoolType = Const{Name: "Bool"}
	CharType = Const{Name: "Char"}
	StrType  = Const{Name: "Str"}
)

// Named returns the monotype of a user-defined named type.
func Named(name string) Const {
	return Const{Name: name}
}

func (Const) typeNode()        {}
func (t Const) String() string { return t.Name }

// Arrow is a function type with an ordered parameter-type list.
type Arrow struct {
	Args   []Type
	Return Type
}

func (Arrow) typeNode() {}
func (t Arrow) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(args, ", "), t.Return)
}

// Var is an unbound placeholder. It holds no substitution itself:
// whatever it resolves to is recorded in the Context that created it.
type Var struct {
	ID VarID
}

func (Var) typeNode() {}
func (t Var) String() string {
	// 'a, 'b, ... then 'a1, 'b1, ... for high IDs
	letter := rune('a' + t.ID%26)
	if round := t.ID / 26; round > 0 {
		return fmt.Sprintf("'%c%d", letter, round)
	}
	return fmt.Sprintf("'%c", letter)
}
