package types

import (
	"slices"
	"strings"

	hset "github.com/hashicorp/go-set/v3"
	xset "github.com/xtgo/set"
)

// Scheme is a monotype universally quantified over Vars. A Scheme is
// only ever produced by Generalize at a definition boundary; every use
// site goes through Instantiate.
type Scheme struct {
	Vars []VarID
	Body Type
}

// MonoScheme wraps t without quantifying anything. Lambda parameters
// are bound this way: their type variables stay live so that
// application sites can refine them.
func MonoScheme(t Type) Scheme {
	return Scheme{Body: t}
}

func (s Scheme) String() string {
	if len(s.Vars) == 0 {
		return s.Body.String()
	}
	vars := make([]string, len(s.Vars))
	for i, id := range s.Vars {
		vars[i] = Var{ID: id}.String()
	}
	return "forall " + strings.Join(vars, " ") + ". " + s.Body.String()
}

// Instantiate replaces every quantified variable of s with a fresh one,
// so each use of a polymorphic name is typed independently.
func (s Scheme) Instantiate(ctx *Context) Type {
	if len(s.Vars) == 0 {
		return s.Body
	}
	fresh := make(map[VarID]Type, len(s.Vars))
	for _, id := range s.Vars {
		fresh[id] = ctx.Fresh()
	}
	return substitute(s.Body, fresh)
}

// FreeVars returns the IDs of the unquantified type variables of s,
// after applying ctx's substitutions, sorted ascending.
func (s Scheme) FreeVars(ctx *Context) []VarID {
	free := FreeVars(ctx, s.Body)
	if len(s.Vars) == 0 {
		return free
	}
	quantified := slices.Clone(s.Vars)
	slices.Sort(quantified)
	data := varIDs(slices.Concat(free, quantified))
	n := xset.Diff(data, len(free))
	return slices.Clone(data[:n])
}

// FreeVars collects the variables of t that are still unbound in ctx,
// sorted ascending so callers get a deterministic order.
func FreeVars(ctx *Context, t Type) []VarID {
	collected := hset.New[VarID](0)
	collectFreeVars(ctx, t, collected)
	ids := collected.Slice()
	slices.Sort(ids)
	return ids
}

func collectFreeVars(ctx *Context, t Type, into *hset.Set[VarID]) {
	switch t := ctx.shallow(t).(type) {
	case Var:
		into.Insert(t.ID)
	case Arrow:
		for _, a := range t.Args {
			collectFreeVars(ctx, a, into)
		}
		collectFreeVars(ctx, t.Return, into)
	}
}

// Generalize quantifies t over its free variables, minus the live ones:
// a variable free in some enclosing assumption is still being refined
// and must not be quantified. This is the [LET] rule.
func Generalize(ctx *Context, t Type, live []VarID) Scheme {
	body := ctx.Resolve(t)
	free := FreeVars(ctx, body)
	if len(free) == 0 {
		return Scheme{Body: body}
	}
	liveSorted := dedupeSorted(live)
	data := varIDs(slices.Concat(free, liveSorted))
	n := xset.Diff(data, len(free))
	return Scheme{Vars: slices.Clone(data[:n]), Body: body}
}

func dedupeSorted(ids []VarID) []VarID {
	s := hset.From(ids)
	out := s.Slice()
	slices.Sort(out)
	return out
}

func substitute(t Type, with map[VarID]Type) Type {
	switch t := t.(type) {
	case Var:
		if repl, ok := with[t.ID]; ok {
			return repl
		}
		return t
	case Arrow:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = substitute(a, with)
		}
		return Arrow{Args: args, Return: substitute(t.Return, with)}
	}
	return t
}

// varIDs adapts a []VarID to sort.Interface for the xtgo/set slice
// algebra.
type varIDs []VarID

func (s varIDs) Len() int           { return len(s) }
func (s varIDs) Less(i, j int) bool { return s[i] < s[j] }
func (s varIDs) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
