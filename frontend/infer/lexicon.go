package infer

import (
	"github.com/benbjohnson/immutable"
	"github.com/chimera-lang/chimera/frontend/cherr"
	"github.com/chimera-lang/chimera/frontend/types"
	"github.com/chimera-lang/chimera/internal/log"
)

var logger = log.DefaultLogger.With("section", "infer")

// frameID addresses a scope frame inside a Checker's arena. Frames
// reference their parent by index, never by pointer, and hold no
// reference to the unification Context; the Checker owns both and
// threads the Context through every inference call.
type frameID int32

const (
	noFrame   frameID = -1
	rootFrame frameID = 0
)

// frame is one level of name-to-scheme bindings. The binding map is
// immutable: installing a binding replaces the map held by this arena
// entry, so a child frame created earlier can never observe it
// retroactively through a shared structure.
type frame struct {
	bindings *immutable.Map[string, types.Scheme]
	parent   frameID
}

// Checker performs one top-level check. It owns the unification
// Context and the arena of scope frames derived from it.
type Checker struct {
	ctx    *types.Context
	frames []frame
}

func NewChecker() *Checker {
	return &Checker{
		ctx: types.NewContext(),
		frames: []frame{{
			bindings: immutable.NewMap[string, types.Scheme](nil),
			parent:   noFrame,
		}},
	}
}

// newChild allocates a frame whose lookups fall through to parent.
func (c *Checker) newChild(parent frameID) frameID {
	c.frames = append(c.frames, frame{
		bindings: immutable.NewMap[string, types.Scheme](nil),
		parent:   parent,
	})
	return frameID(len(c.frames) - 1)
}

// bind installs a scheme visible to frame f and its children.
func (c *Checker) bind(f frameID, name string, s types.Scheme) {
	fr := &c.frames[f]
	fr.bindings = fr.bindings.Set(name, s)
}

// lookup walks outward through enclosing frames and instantiates the
// first scheme found for name.
func (c *Checker) lookup(f frameID, name string) (types.Type, error) {
	for id := f; id != noFrame; id = c.frames[id].parent {
		if s, ok := c.frames[id].bindings.Get(name); ok {
			return s.Instantiate(c.ctx), nil
		}
	}
	return nil, cherr.New(cherr.NewScope{Name: name})
}

// liveVars collects the free type variables of every scheme bound in
// the chain starting at f. These are still being refined by some
// enclosing scope and must remain unquantified by generalization.
func (c *Checker) liveVars(f frameID) []types.VarID {
	var live []types.VarID
	for id := f; id != noFrame; id = c.frames[id].parent {
		itr := c.frames[id].bindings.Iterator()
		for !itr.Done() {
			_, s, _ := itr.Next()
			live = append(live, s.FreeVars(c.ctx)...)
		}
	}
	return live
}
