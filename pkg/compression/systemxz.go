package compression

import (
	"bytes"
	"os/exec"
)

// SystemXZ implements Compressor and calls out to the system's xz for
// encoding. Decode uses the Go-based decompressor.
type SystemXZ struct {
	xzPath string
}

// Name returns the type of compression employed.
func (c *SystemXZ) Name() string {
	return "XZ"
}

// Decode decodes a byte slice of XZ data.
func (c *SystemXZ) Decode(encodedData []byte) ([]byte, error) {
	return (&XZ{}).Decode(encodedData)
}

// Encode encodes a byte slice with XZ.
func (c *SystemXZ) Encode(decodedData []byte) ([]byte, error) {
	cmd := exec.Command(c.xzPath, "--format=xz", "-7", "--stdout")
	cmd.Stdin = bytes.NewBuffer(decodedData)
	return cmd.Output()
}
