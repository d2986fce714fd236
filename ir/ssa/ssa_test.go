package ssa

import (
	"bytes"
	"testing"

	"github.com/chimera-lang/chimera/ir/fcf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestProcHasTwoBlockSkeleton(t *testing.T) {
	proc := FromFunc(fcf.Func{
		Name: "fortyTwo",
		Body: &fcf.IntLit{Value: 42},
	})

	assert.Equal(t, "fortyTwo", proc.Name)
	assert.Equal(t, 0, proc.ParamSlot)
	require.Len(t, proc.Blocks, 2)

	entry, end := proc.Blocks[0], proc.Blocks[1]
	assert.Equal(t, "entry", entry.Label)
	assert.Empty(t, entry.Instrs)
	assert.Nil(t, entry.Transfer)

	assert.Equal(t, "end", end.Label)
	require.Len(t, end.Instrs, 1)
	local, ok := end.Instrs[0].(*Local)
	require.True(t, ok)
	assert.Equal(t, 1, local.Slot)
	assert.Equal(t, &fcf.IntLit{Value: 42}, local.X)

	ret, ok := end.Transfer.(*Return)
	require.True(t, ok)
	assert.Equal(t, local.Slot, ret.Slot, "the return must reference the compute instruction's slot")
}

func TestFromModulePreservesOrderAndBinds(t *testing.T) {
	m := &fcf.Module{
		Binds: []fcf.Bind{{Name: "answer", Body: &fcf.IntLit{Value: 42}}},
		Funcs: []fcf.Func{
			{Name: "id", Body: &fcf.Var{Name: "x"}},
			{Name: "main", Body: &fcf.Call{Callee: &fcf.Var{Name: "id"}, Args: []fcf.Expr{&fcf.IntLit{Value: 1}}}},
		},
	}
	p := FromModule(m)

	assert.Equal(t, m.Binds, p.Binds)
	require.Len(t, p.Procs, 2)
	assert.Equal(t, "id", p.Procs[0].Name)
	assert.Equal(t, "main", p.Procs[1].Name)
}

func TestDump(t *testing.T) {
	m := &fcf.Module{
		Binds: []fcf.Bind{{Name: "answer", Body: &fcf.IntLit{Value: 42}}},
		Funcs: []fcf.Func{{Name: "main", Body: &fcf.Apply{
			Callee: &fcf.Var{Name: "f"},
			Args:   []fcf.Expr{&fcf.StrLit{Value: "hi"}},
		}}},
	}
	out := FromModule(m).String()
	assert.Contains(t, out, "bind answer = 42")
	assert.Contains(t, out, "proc main (param slot 0) {")
	assert.Contains(t, out, "entry():")
	assert.Contains(t, out, `v1 = apply f("hi")`)
	assert.Contains(t, out, "ret v1")
}

func TestEncodeWireShape(t *testing.T) {
	p := FromModule(&fcf.Module{
		Funcs: []fcf.Func{{Name: "main", Body: &fcf.Void{}}},
	})
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p))

	var decoded map[string]any
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &decoded))
	procs, ok := decoded["procs"].([]any)
	require.True(t, ok)
	require.Len(t, procs, 1)
}
