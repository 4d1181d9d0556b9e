package compression

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os/exec"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Compressor defines a single compression scheme (such as XZ).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

// ErrTooLarge is returned when a stream decodes to more bytes than any ACPI
// table can hold.
var ErrTooLarge = errors.New("decoded data exceeds the maximum table size")

// maxDecodedSize is the largest length an ACPI table header can declare.
var maxDecodedSize int64 = math.MaxUint32

// readAllLimited reads r up to maxDecodedSize bytes.
func readAllLimited(r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, maxDecodedSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > maxDecodedSize {
		return nil, ErrTooLarge
	}
	return buf, nil
}

var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// lzmaHeaderSize is the size of the properties, dictionary size and
// uncompressed size fields of a .lzma stream.
const lzmaHeaderSize = 13

// Detect returns the Compressor that can decode buf, or nil if buf does not
// look compressed. xzPath names the system xz command used for encoding; if
// it cannot be found the Go encoder is used.
func Detect(buf []byte, xzPath string) Compressor {
	switch {
	case bytes.HasPrefix(buf, xzMagic):
		return NewXZ(xzPath)
	// An ACPI table starts with a four letter signature; a .lzma stream
	// starts with the default properties byte.
	case len(buf) >= lzmaHeaderSize && buf[0] == 0x5d:
		return &LZMA{}
	}
	return nil
}

// NewXZ returns an XZ compressor. The system xz command at xzPath is used
// for encoding when it can be found.
func NewXZ(xzPath string) Compressor {
	if xzPath != "" {
		if _, err := exec.LookPath(xzPath); err == nil {
			return &SystemXZ{xzPath: xzPath}
		}
	}
	return &XZ{}
}

// XZ implements Compressor for the .xz container format.
type XZ struct{}

func (c *XZ) Name() string {
	return "XZ"
}

func (c *XZ) Decode(encodedData []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(encodedData))
	if err != nil {
		return nil, err
	}
	return readAllLimited(r)
}

func (c *XZ) Encode(decodedData []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := xz.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LZMA implements Compressor for the legacy .lzma format.
type LZMA struct{}

func (c *LZMA) Name() string {
	return "LZMA"
}

func (c *LZMA) Decode(encodedData []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(encodedData))
	if err != nil {
		return nil, err
	}
	return readAllLimited(r)
}

func (c *LZMA) Encode(decodedData []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := lzma.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(decodedData); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
