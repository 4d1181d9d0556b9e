package acpi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeader() Header {
	h := Header{
		Signature:       [4]byte{'M', 'P', 'A', 'M'},
		Length:          72,
		Revision:        1,
		OEMRevision:     0x20240101,
		CreatorRevision: 0x1,
	}
	copy(h.OEMID[:], "ARMLTD")
	copy(h.OEMTableID[:], "FVP     ")
	copy(h.CreatorID[:], "INTL")
	return h
}

func TestHeaderLayout(t *testing.T) {
	h := sampleHeader()
	buf := h.Encode()
	require.Len(t, buf, HeaderSize)

	assert.Equal(t, []byte("MPAM"), buf[0:4])
	assert.Equal(t, []byte{72, 0, 0, 0}, buf[4:8])
	assert.Equal(t, byte(1), buf[8])
	assert.Equal(t, []byte("ARMLTD"), buf[10:16])
	assert.Equal(t, []byte("FVP     "), buf[16:24])
	assert.Equal(t, []byte{0x01, 0x01, 0x24, 0x20}, buf[24:28])
	assert.Equal(t, []byte("INTL"), buf[28:32])
}

func TestParseHeader(t *testing.T) {
	want := sampleHeader()
	got, err := ParseHeader(append(want.Encode(), 0xaa, 0xbb))
	require.NoError(t, err)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("ParseHeader mismatch (-want +got):\n%s", diff)
	}

	id, tableID := got.OEM()
	assert.Equal(t, "ARMLTD", id)
	assert.Equal(t, "FVP", tableID)
	assert.Equal(t, "MPAM", got.SignatureString())
	assert.Contains(t, got.String(), `OEM="ARMLTD"/"FVP"`)
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	assert.True(t, errors.Is(err, ErrTooShort), "got %v", err)
}

func TestChecksum(t *testing.T) {
	h := sampleHeader()
	buf := h.Encode()
	assert.False(t, ValidChecksum(buf))

	buf[ChecksumOffset] = -Checksum(buf)
	assert.True(t, ValidChecksum(buf))
	assert.Equal(t, uint8(0), Checksum(nil))
}
