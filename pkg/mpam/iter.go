package mpam

import (
	"encoding/binary"

	"github.com/tinytoy-sec/MpamParser/pkg/acpi"
)

// nodeLengthEnd is the first byte past the type and length fields.
const nodeLengthEnd = 3

// NodeIter walks the MSC nodes of a table. The table carries no node count,
// so each node's own Length is the only way to find the next one; every
// Length is checked against the remaining byte budget before it is used.
//
// A NodeIter is consumed once. Use Table.Nodes to start another walk.
//
//	it := table.Nodes()
//	for it.Next() {
//		node := it.Node()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type NodeIter struct {
	region    []byte // node bytes, starting right after the header
	pos       uint32
	remaining uint32

	node    MSCNode
	nodeOff uint32
	nodeLen uint32
	err     error
}

func newNodeIter(region []byte, remaining uint32) *NodeIter {
	return &NodeIter{region: region, remaining: remaining}
}

// Next decodes the next node. It returns false at the end of the table or
// once a malformed node has been reached; Err tells the two apart.
func (it *NodeIter) Next() bool {
	if it.err != nil || it.remaining == 0 {
		return false
	}

	if it.remaining < nodeLengthEnd {
		return it.fail(ReasonTooShort, 0)
	}
	if uint64(it.pos)+nodeLengthEnd > uint64(len(it.region)) {
		return it.fail(ReasonTruncated, 0)
	}

	length := uint32(binary.LittleEndian.Uint16(it.region[it.pos+1 : it.pos+nodeLengthEnd]))
	switch {
	case length == 0:
		return it.fail(ReasonZeroLength, length)
	case length < MSCNodeSize:
		return it.fail(ReasonTooShort, length)
	case length > it.remaining:
		return it.fail(ReasonOverrun, length)
	case uint64(it.pos)+uint64(length) > uint64(len(it.region)):
		return it.fail(ReasonTruncated, length)
	}

	it.node = decodeNode(it.region[it.pos : it.pos+MSCNodeSize])
	it.nodeOff = it.pos
	it.nodeLen = length
	it.pos += length
	it.remaining -= length
	return true
}

func (it *NodeIter) fail(r Reason, length uint32) bool {
	it.err = &MalformedError{
		Reason:    r,
		Offset:    acpi.HeaderSize + it.pos,
		Length:    length,
		Remaining: it.remaining,
	}
	return false
}

// Node returns the node decoded by the last successful call to Next.
func (it *NodeIter) Node() MSCNode {
	return it.node
}

// Raw returns the bytes of the current node, trailing data included. The
// slice aliases the table.
func (it *NodeIter) Raw() []byte {
	return it.region[it.nodeOff : it.nodeOff+it.nodeLen : it.nodeOff+it.nodeLen]
}

// Offset returns the offset of the current node from the start of the table.
func (it *NodeIter) Offset() uint32 {
	return acpi.HeaderSize + it.nodeOff
}

// Err returns the error that stopped the walk, or nil if the table was
// walked to its end.
func (it *NodeIter) Err() error {
	return it.err
}

// AddressIter yields the base addresses of the nodes of one interface type,
// in table order.
type AddressIter struct {
	nodes *NodeIter
	want  InterfaceType
	addr  uint64
}

func (it *AddressIter) Next() bool {
	for it.nodes.Next() {
		if n := it.nodes.Node(); n.InterfaceType == it.want {
			it.addr = n.BaseAddress
			return true
		}
	}
	return false
}

func (it *AddressIter) Addr() uint64 {
	return it.addr
}

// Err returns the error of the underlying node walk.
func (it *AddressIter) Err() error {
	return it.nodes.Err()
}

// CollectAddresses drains it. On error the addresses yielded before the bad
// node are returned along with the error.
func CollectAddresses(it *AddressIter) ([]uint64, error) {
	var addrs []uint64
	for it.Next() {
		addrs = append(addrs, it.Addr())
	}
	return addrs, it.Err()
}
