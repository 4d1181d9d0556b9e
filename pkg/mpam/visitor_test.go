package mpam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytoy-sec/MpamParser/pkg/acpi"
)

type recorder struct {
	entries []Entry
	stopAt  int
}

var errStop = errors.New("stop")

func (r *recorder) Run(t *Table) error { return t.Apply(r) }

func (r *recorder) Visit(e Entry) error {
	if r.stopAt > 0 && len(r.entries) == r.stopAt {
		return errStop
	}
	r.entries = append(r.entries, e)
	return nil
}

func TestApply(t *testing.T) {
	tbl := mustParse(t, NewBuilder("ARMLTD", "FVP").
		AddNode(MSCNode{InterfaceType: InterfaceCache, BaseAddress: 0x1000}, []byte{0xaa, 0xbb}).
		AddNode(MSCNode{InterfaceType: InterfaceMemory, BaseAddress: 0x2000}, nil).
		Bytes())

	r := &recorder{}
	require.NoError(t, r.Run(tbl))
	require.Len(t, r.entries, 2)

	assert.Equal(t, uint32(acpi.HeaderSize), r.entries[0].Offset)
	assert.Len(t, r.entries[0].Raw, MSCNodeSize+2)
	assert.Equal(t, []byte{0xaa, 0xbb}, r.entries[0].Raw[MSCNodeSize:])
	assert.Equal(t, uint32(acpi.HeaderSize+MSCNodeSize+2), r.entries[1].Offset)
	assert.Equal(t, uint64(0x2000), r.entries[1].Node.BaseAddress)

	r = &recorder{stopAt: 1}
	assert.ErrorIs(t, r.Run(tbl), errStop)
	assert.Len(t, r.entries, 1)
}

func TestApplyMalformed(t *testing.T) {
	tbl := mustParse(t, NewBuilder("ARMLTD", "FVP").
		AddNode(MSCNode{InterfaceType: InterfaceCache, BaseAddress: 0x1000}, nil).
		AddRaw(zeroLengthNode()).
		Bytes())

	r := &recorder{}
	assert.ErrorIs(t, r.Run(tbl), ErrMalformedTable)
	assert.Len(t, r.entries, 1)
}

func TestPrefix(t *testing.T) {
	good := mustParse(t, NewBuilder("ARMLTD", "FVP").
		AddNode(MSCNode{InterfaceType: InterfaceMemory, BaseAddress: 0x1000}, nil).
		Bytes())
	p, err := good.Prefix()
	require.NoError(t, err)
	assert.Same(t, good, p)

	bad := mustParse(t, NewBuilder("ARMLTD", "FVP").
		AddNode(MSCNode{InterfaceType: InterfaceMemory, BaseAddress: 0x1000}, nil).
		AddNode(MSCNode{InterfaceType: InterfaceCache, BaseAddress: 0x2000}, nil).
		AddRaw(zeroLengthNode()).
		AddNode(MSCNode{InterfaceType: InterfaceMemory, BaseAddress: 0x3000}, nil).
		Bytes())
	p, err = bad.Prefix()
	assert.ErrorIs(t, err, ErrMalformedTable)
	require.NotNil(t, p)
	assert.Equal(t, uint32(acpi.HeaderSize+2*MSCNodeSize), p.Header().Length)

	nodes, err := p.AllNodes()
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	mem, err := CollectAddresses(p.MemoryBases())
	require.NoError(t, err)
	assert.Equal(t, []uint64{0x1000}, mem)
}
