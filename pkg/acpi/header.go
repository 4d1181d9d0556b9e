package acpi

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tinytoy-sec/MpamParser/pkg/oem"
)

// HeaderSize is the size in bytes of the common System Description Table
// header.
const HeaderSize = 36

// ChecksumOffset is the offset of the Checksum field within the header.
const ChecksumOffset = 9

var ErrTooShort = errors.New("too short to be an ACPI table")

// Header defines the common header for all ACPI system description tables.
type Header struct {
	// The signature defines the table type.
	Signature [4]byte

	// The length of the table, header included.
	Length uint32

	Revision uint8

	// A value that when added to the sum of all other bytes in the table
	// should result in the value 0.
	Checksum uint8

	// OEM specific information
	OEMID       [6]byte
	OEMTableID  [8]byte
	OEMRevision uint32

	// Information about the ASL compiler that generated this table
	CreatorID       [4]byte
	CreatorRevision uint32
}

// ParseHeader decodes the header at the start of buf.
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("need at least %d bytes, only %d provided: %w", HeaderSize, len(buf), ErrTooShort)
	}
	var h Header
	if err := binary.Read(bytes.NewReader(buf[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Encode returns the little-endian wire form of the header.
func (h *Header) Encode() []byte {
	buf := &bytes.Buffer{}
	// Writing a fixed-size struct to a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

// SignatureString returns the table signature, e.g. "MPAM".
func (h *Header) SignatureString() string {
	return string(h.Signature[:])
}

// OEM returns the decoded OEM ID and OEM table ID.
func (h *Header) OEM() (id, tableID string) {
	return oem.Decode(h.OEMID[:]), oem.Decode(h.OEMTableID[:])
}

func (h Header) String() string {
	id, tableID := h.OEM()
	return fmt.Sprintf("%s{Length=%#x, Revision=%d, Checksum=%#x, OEM=%q/%q rev %#x, Creator=%q rev %#x}",
		h.SignatureString(), h.Length, h.Revision, h.Checksum,
		id, tableID, h.OEMRevision,
		oem.Decode(h.CreatorID[:]), h.CreatorRevision)
}

// MarshalJSON renders the character fields as strings.
func (h Header) MarshalJSON() ([]byte, error) {
	id, tableID := h.OEM()
	return json.Marshal(struct {
		Signature       string
		Length          uint32
		Revision        uint8
		Checksum        uint8
		OEMID           string
		OEMTableID      string
		OEMRevision     uint32
		CreatorID       string
		CreatorRevision uint32
	}{
		Signature:       h.SignatureString(),
		Length:          h.Length,
		Revision:        h.Revision,
		Checksum:        h.Checksum,
		OEMID:           id,
		OEMTableID:      tableID,
		OEMRevision:     h.OEMRevision,
		CreatorID:       oem.Decode(h.CreatorID[:]),
		CreatorRevision: h.CreatorRevision,
	})
}

// Checksum returns the byte sum of buf modulo 256.
func Checksum(buf []byte) uint8 {
	var sum uint8
	for _, b := range buf {
		sum += b
	}
	return sum
}

// ValidChecksum reports whether the bytes of a whole table sum to zero.
func ValidChecksum(table []byte) bool {
	return Checksum(table) == 0
}
