package mpam

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tinytoy-sec/MpamParser/pkg/acpi"
	"github.com/tinytoy-sec/MpamParser/pkg/oem"
)

// Builder assembles MPAM tables from nodes.
type Builder struct {
	header acpi.Header
	nodes  bytes.Buffer
}

// NewBuilder returns a Builder for a revision 1 table with the given OEM
// identification.
func NewBuilder(oemID, oemTableID string) *Builder {
	b := &Builder{}
	copy(b.header.Signature[:], Signature)
	b.header.Revision = 1
	copy(b.header.OEMID[:], oem.Encode(oemID, len(b.header.OEMID)))
	copy(b.header.OEMTableID[:], oem.Encode(oemTableID, len(b.header.OEMTableID)))
	b.header.OEMRevision = 1
	copy(b.header.CreatorID[:], oem.Encode("MPAM", len(b.header.CreatorID)))
	b.header.CreatorRevision = 1
	return b
}

// WithRevision sets the table revision.
func (b *Builder) WithRevision(rev uint8) *Builder {
	b.header.Revision = rev
	return b
}

// WithHeader replaces the whole header with h. Length and Checksum are
// ignored; Bytes fills them in.
func (b *Builder) WithHeader(h acpi.Header) *Builder {
	b.header = h
	return b
}

// MaxTrailerSize is the longest trailer whose node length still fits the
// 16-bit Length field.
const MaxTrailerSize = math.MaxUint16 - MSCNodeSize

// AddNode appends n followed by trailer, which stands in for the resource
// node list and type specific data. A zero n.Length is replaced with the
// real node size; any other value is written unchanged. AddNode panics if
// n.Length is zero and trailer is longer than MaxTrailerSize.
func (b *Builder) AddNode(n MSCNode, trailer []byte) *Builder {
	if n.Length == 0 {
		if len(trailer) > MaxTrailerSize {
			panic(fmt.Sprintf("mpam: trailer of %d bytes exceeds the %d byte limit", len(trailer), MaxTrailerSize))
		}
		n.Length = uint16(MSCNodeSize + len(trailer))
	}
	b.nodes.Write(n.Encode())
	b.nodes.Write(trailer)
	return b
}

// AddRaw appends bytes to the node region as they are.
func (b *Builder) AddRaw(raw []byte) *Builder {
	b.nodes.Write(raw)
	return b
}

// Bytes returns the table with its length and checksum filled in.
func (b *Builder) Bytes() []byte {
	h := b.header
	h.Length = uint32(acpi.HeaderSize + b.nodes.Len())
	h.Checksum = 0
	buf := append(h.Encode(), b.nodes.Bytes()...)
	buf[acpi.ChecksumOffset] = -acpi.Checksum(buf)
	return buf
}
