package mpam

import "errors"

// Entry is one node as handed to a Visitor.
type Entry struct {
	// Offset of the node from the start of the table.
	Offset uint32
	Node   MSCNode
	// Raw holds the whole node, trailing data included. It aliases the
	// table bytes and must not be modified.
	Raw []byte `json:"-"`
}

// Visitor defines the methods used to walk a table.
type Visitor interface {
	Run(*Table) error
	Visit(Entry) error
}

// Apply calls v.Visit for each node in table order. It stops at the first
// error returned by v or by the walk.
func (t *Table) Apply(v Visitor) error {
	it := t.Nodes()
	for it.Next() {
		if err := v.Visit(Entry{Offset: it.Offset(), Node: it.Node(), Raw: it.Raw()}); err != nil {
			return err
		}
	}
	return it.Err()
}

// Prefix returns the table cut short before its first malformed node, along
// with the error describing that node. A well-formed table is returned as is
// with a nil error.
func (t *Table) Prefix() (*Table, error) {
	it := t.Nodes()
	for it.Next() {
	}
	err := it.Err()
	if err == nil {
		return t, nil
	}
	var merr *MalformedError
	if !errors.As(err, &merr) {
		return nil, err
	}
	h := t.header
	h.Length = merr.Offset
	return &Table{header: h, buf: t.buf[:merr.Offset]}, err
}
