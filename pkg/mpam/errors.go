package mpam

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTable is matched by every *MalformedError.
	ErrMalformedTable = errors.New("malformed MPAM table")
	ErrSignature      = errors.New("not an MPAM table")
	ErrChecksum       = errors.New("MPAM table checksum mismatch")
)

// Reason tells why a table was rejected.
type Reason int

const (
	ReasonZeroLength Reason = iota
	ReasonTooShort
	ReasonOverrun
	ReasonTruncated
	ReasonHeaderLength
)

var reasonNames = map[Reason]string{
	ReasonZeroLength:   "zero node length",
	ReasonTooShort:     "node shorter than fixed fields",
	ReasonOverrun:      "node runs past table end",
	ReasonTruncated:    "table bytes shorter than declared length",
	ReasonHeaderLength: "declared length shorter than header",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason (%d)", int(r))
}

// MalformedError reports where the walk over a table stopped. Offset is
// relative to the start of the table, Length is the offending declared
// length, Remaining is the byte budget left at Offset.
type MalformedError struct {
	Reason    Reason
	Offset    uint32
	Length    uint32
	Remaining uint32
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v: %v at offset %#x (length %#x, remaining %#x)",
		ErrMalformedTable, e.Reason, e.Offset, e.Length, e.Remaining)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedTable
}
