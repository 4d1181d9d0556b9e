package mpam

import (
	"encoding/binary"
	"fmt"
)

// MSCNodeSize is the size of the fixed fields at the start of every MSC node.
// The resource node list and any type specific data follow them and are
// covered by Length.
const MSCNodeSize = 36

// InterfaceType selects which kind of memory system component a node
// describes.
type InterfaceType uint8

const (
	InterfaceCache  InterfaceType = 1
	InterfaceMemory InterfaceType = 2
)

var interfaceTypeNames = map[InterfaceType]string{
	InterfaceCache:  "cache",
	InterfaceMemory: "memory",
}

func (t InterfaceType) String() string {
	if s, ok := interfaceTypeNames[t]; ok {
		return s
	}
	// Other kinds exist in firmware but are not modeled.
	return fmt.Sprintf("unknown (%d)", uint8(t))
}

// MSCNode holds the fixed fields of one MPAM node structure.
type MSCNode struct {
	InterfaceType InterfaceType
	Length        uint16
	Reserved      uint8 `json:"-"`
	BaseAddress   uint64

	OverflowInterrupt      uint32
	OverflowInterruptFlags uint32

	ErrorInterrupt      uint32
	ErrorInterruptFlags uint32

	MaxNRDYUsec uint32

	// Offset of the resource node list, relative to the start of the node.
	Offset uint32
}

// decodeNode reads the fixed fields from buf, which must hold at least
// MSCNodeSize bytes.
func decodeNode(buf []byte) MSCNode {
	le := binary.LittleEndian
	return MSCNode{
		InterfaceType:          InterfaceType(buf[0]),
		Length:                 le.Uint16(buf[1:3]),
		Reserved:               buf[3],
		BaseAddress:            le.Uint64(buf[4:12]),
		OverflowInterrupt:      le.Uint32(buf[12:16]),
		OverflowInterruptFlags: le.Uint32(buf[16:20]),
		ErrorInterrupt:         le.Uint32(buf[20:24]),
		ErrorInterruptFlags:    le.Uint32(buf[24:28]),
		MaxNRDYUsec:            le.Uint32(buf[28:32]),
		Offset:                 le.Uint32(buf[32:36]),
	}
}

// Encode returns the fixed fields in wire form. Length is written as is.
func (n *MSCNode) Encode() []byte {
	le := binary.LittleEndian
	buf := make([]byte, MSCNodeSize)
	buf[0] = byte(n.InterfaceType)
	le.PutUint16(buf[1:3], n.Length)
	buf[3] = n.Reserved
	le.PutUint64(buf[4:12], n.BaseAddress)
	le.PutUint32(buf[12:16], n.OverflowInterrupt)
	le.PutUint32(buf[16:20], n.OverflowInterruptFlags)
	le.PutUint32(buf[20:24], n.ErrorInterrupt)
	le.PutUint32(buf[24:28], n.ErrorInterruptFlags)
	le.PutUint32(buf[28:32], n.MaxNRDYUsec)
	le.PutUint32(buf[32:36], n.Offset)
	return buf
}

func (n MSCNode) String() string {
	return fmt.Sprintf("MSCNode{Type=%v, Length=%#x, Base=%#x, OverflowIRQ=%#x/%#x, ErrorIRQ=%#x/%#x, MaxNRDY=%dus, ResourceOffset=%#x}",
		n.InterfaceType, n.Length, n.BaseAddress,
		n.OverflowInterrupt, n.OverflowInterruptFlags,
		n.ErrorInterrupt, n.ErrorInterruptFlags,
		n.MaxNRDYUsec, n.Offset)
}
