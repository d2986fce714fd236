package types

import (
	"github.com/chimera-lang/chimera/frontend/cherr"
)

// Context records the substitutions made by Unify. It does not track
// the types of names; that is the scope frames' job. One Context is
// owned by each top-level check and shared by every frame derived from
// it, so a substitution made while checking a nested expression is
// visible to enclosing and sibling scopes from that point on.
type Context struct {
	next  VarID
	subst map[VarID]Type
}

func NewContext() *Context {
	return &Context{subst: make(map[VarID]Type)}
}

// Fresh allocates a new unbound type variable.
func (c *Context) Fresh() Var {
	v := Var{ID: c.next}
	c.next++
	return v
}

// NumVars reports how many type variables have been allocated so far.
func (c *Context) NumVars() int { return int(c.next) }

// NumSubst reports how many substitutions have been recorded so far.
func (c *Context) NumSubst() int { return len(c.subst) }

// shallow follows the substitution chain of t until it reaches either a
// non-variable type or an unbound variable. It never descends into
// Arrow arguments.
func (c *Context) shallow(t Type) Type {
	for {
		v, ok := t.(Var)
		if !ok {
			return t
		}
		bound, ok := c.subst[v.ID]
		if !ok {
			return t
		}
		t = bound
	}
}

// Resolve applies all recorded substitutions to t, deeply. Variables
// with no recorded substitution are left in place.
func (c *Context) Resolve(t Type) Type {
	switch t := c.shallow(t).(type) {
	case Const:
		return t
	case Var:
		return t
	case Arrow:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.Resolve(a)
		}
		return Arrow{Args: args, Return: c.Resolve(t.Return)}
	}
	return t
}

// occurs reports whether the variable id appears anywhere inside t,
// following substitutions. A variable unifying with a type containing
// itself would build an infinite type.
func (c *Context) occurs(id VarID, t Type) bool {
	switch t := c.shallow(t).(type) {
	case Var:
		return t.ID == id
	case Arrow:
		for _, a := range t.Args {
			if c.occurs(id, a) {
				return true
			}
		}
		return c.occurs(id, t.Return)
	}
	return false
}

// Unify attempts to make a and b equal by recording substitutions.
// Arrows of different arities unify when the shorter parameter list is
// a prefix of the longer one and the shorter arrow's result absorbs the
// remaining parameters; this is what gives a partial application an
// arrow type of one fewer parameter.
func (c *Context) Unify(a, b Type) error {
	a, b = c.shallow(a), c.shallow(b)

	if av, ok := a.(Var); ok {
		if bv, ok := b.(Var); ok && av.ID == bv.ID {
			return nil
		}
		if c.occurs(av.ID, b) {
			return c.mismatch(a, b)
		}
		c.subst[av.ID] = b
		return nil
	}
	if _, ok := b.(Var); ok {
		return c.Unify(b, a)
	}

	switch a := a.(type) {
	case Const:
		if b, ok := b.(Const); ok && a.Name == b.Name {
			return nil
		}
	case Arrow:
		if b, ok := b.(Arrow); ok {
			return c.unifyArrows(a, b)
		}
	}
	return c.mismatch(a, b)
}

func (c *Context) unifyArrows(a, b Arrow) error {
	// Orient so that a has the shorter parameter list.
	if len(a.Args) > len(b.Args) {
		a, b = b, a
	}
	for i, arg := range a.Args {
		if err := c.Unify(arg, b.Args[i]); err != nil {
			return err
		}
	}
	if len(a.Args) == len(b.Args) {
		return c.Unify(a.Return, b.Return)
	}
	// Partial application: the shorter arrow's result must itself be a
	// function over the longer arrow's remaining parameters.
	rest := Arrow{Args: b.Args[len(a.Args):], Return: b.Return}
	return c.Unify(a.Return, rest)
}

func (c *Context) mismatch(a, b Type) error {
	return cherr.New(cherr.NewUnification{
		First:  c.Resolve(a).String(),
		Second: c.Resolve(b).String(),
	})
}
