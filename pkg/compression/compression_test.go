package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMaxDecodedSize(t *testing.T, n int64) {
	old := maxDecodedSize
	maxDecodedSize = n
	t.Cleanup(func() { maxDecodedSize = old })
}

func TestRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("MPAM\x48\x00\x00\x00"), 64)

	for _, c := range []Compressor{&XZ{}, &LZMA{}} {
		t.Run(c.Name(), func(t *testing.T) {
			enc, err := c.Encode(data)
			require.NoError(t, err)
			assert.NotEqual(t, data, enc)

			dec, err := c.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, data, dec)
		})
	}
}

func TestDetect(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 32)

	xzData, err := (&XZ{}).Encode(data)
	require.NoError(t, err)
	c := Detect(xzData, "")
	require.NotNil(t, c)
	assert.Equal(t, "XZ", c.Name())

	lzmaData, err := (&LZMA{}).Encode(data)
	require.NoError(t, err)
	c = Detect(lzmaData, "")
	require.NotNil(t, c)
	assert.Equal(t, "LZMA", c.Name())
	dec, err := c.Decode(lzmaData)
	require.NoError(t, err)
	assert.Equal(t, data, dec)

	assert.Nil(t, Detect([]byte("MPAM\x24\x00\x00\x00"), ""))
	assert.Nil(t, Detect(nil, ""))
}

func TestDetectMissingSystemXZ(t *testing.T) {
	xzData, err := (&XZ{}).Encode([]byte("table"))
	require.NoError(t, err)
	c := Detect(xzData, "/nonexistent/xz")
	assert.IsType(t, &XZ{}, c)
}

func TestNewXZ(t *testing.T) {
	assert.IsType(t, &XZ{}, NewXZ(""))
	assert.IsType(t, &XZ{}, NewXZ("/nonexistent/xz"))
}

func TestDecodeSizeLimit(t *testing.T) {
	data := bytes.Repeat([]byte{0xa5}, 64)

	for _, c := range []Compressor{&XZ{}, &LZMA{}, &SystemXZ{}} {
		t.Run(c.Name(), func(t *testing.T) {
			enc, err := (&XZ{}).Encode(data)
			if _, ok := c.(*LZMA); ok {
				enc, err = c.Encode(data)
			}
			require.NoError(t, err)

			withMaxDecodedSize(t, int64(len(data)))
			dec, err := c.Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, data, dec)

			withMaxDecodedSize(t, int64(len(data)-1))
			_, err = c.Decode(enc)
			assert.ErrorIs(t, err, ErrTooLarge)
		})
	}
}
