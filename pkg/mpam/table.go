package mpam

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tinytoy-sec/MpamParser/pkg/acpi"
)

// Signature identifies an MPAM table.
const Signature = "MPAM"

// ParseOptions controls the checks Parse applies before handing out a Table.
type ParseOptions struct {
	// VerifyChecksum rejects tables whose bytes do not sum to zero.
	VerifyChecksum bool
}

// Table is a read-only view of an MPAM table: the header followed by a
// sequence of variable sized MSC nodes. It borrows the bytes given to Parse
// and never modifies them, so any number of walks may run over one Table at
// the same time.
type Table struct {
	header acpi.Header
	buf    []byte
}

// Parse checks the header of the MPAM table in buf and returns a view of
// it. Bytes past the declared table length are ignored. The nodes are not
// checked until they are walked.
func Parse(buf []byte) (*Table, error) {
	return ParseWithOptions(buf, ParseOptions{})
}

// ParseWithOptions is Parse with extra checks.
func ParseWithOptions(buf []byte, opts ParseOptions) (*Table, error) {
	h, err := acpi.ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	if sig := h.SignatureString(); sig != Signature {
		return nil, fmt.Errorf("signature %q: %w", sig, ErrSignature)
	}
	if h.Length < acpi.HeaderSize {
		return nil, &MalformedError{Reason: ReasonHeaderLength, Length: h.Length}
	}
	if uint64(len(buf)) < uint64(h.Length) {
		return nil, &MalformedError{
			Reason:    ReasonTruncated,
			Offset:    uint32(len(buf)),
			Length:    h.Length,
			Remaining: h.Length - uint32(len(buf)),
		}
	}
	buf = buf[:h.Length]
	if opts.VerifyChecksum && !acpi.ValidChecksum(buf) {
		return nil, fmt.Errorf("byte sum %#x: %w", acpi.Checksum(buf), ErrChecksum)
	}
	return &Table{header: *h, buf: buf}, nil
}

// Header returns a copy of the table header.
func (t *Table) Header() acpi.Header {
	return t.header
}

// Buf returns the table bytes, header included.
func (t *Table) Buf() []byte {
	return t.buf
}

// NodeRegionLength is the number of bytes available to nodes.
func (t *Table) NodeRegionLength() uint32 {
	return t.header.Length - acpi.HeaderSize
}

// Nodes starts a new walk over the nodes of the table.
func (t *Table) Nodes() *NodeIter {
	return newNodeIter(t.buf[acpi.HeaderSize:], t.NodeRegionLength())
}

// MemoryBases yields the base address of every memory controller MSC.
func (t *Table) MemoryBases() *AddressIter {
	return &AddressIter{nodes: t.Nodes(), want: InterfaceMemory}
}

// CacheBases yields the base address of every cache MSC.
func (t *Table) CacheBases() *AddressIter {
	return &AddressIter{nodes: t.Nodes(), want: InterfaceCache}
}

// AllNodes walks the whole table. On error the nodes read before the bad
// one are returned along with the error.
func (t *Table) AllNodes() ([]MSCNode, error) {
	var nodes []MSCNode
	it := t.Nodes()
	for it.Next() {
		nodes = append(nodes, it.Node())
	}
	return nodes, it.Err()
}

func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MPAM: %v", t.header)
	it := t.Nodes()
	for it.Next() {
		fmt.Fprintf(&b, "\n%#x: %v", it.Offset(), it.Node())
	}
	if err := it.Err(); err != nil {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}

type tableJSON struct {
	Header acpi.Header
	Nodes  []MSCNode
}

// MarshalJSON encodes the header and every node. It fails if the table is
// malformed.
func (t *Table) MarshalJSON() ([]byte, error) {
	nodes, err := t.AllNodes()
	if err != nil {
		return nil, err
	}
	return json.Marshal(tableJSON{Header: t.header, Nodes: nodes})
}
