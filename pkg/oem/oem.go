package oem

import (
	"strings"

	"github.com/tinytoy-sec/MpamParser/pkg/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Decode converts a fixed-width firmware string (OEM ID, OEM table ID,
// creator ID) from ISO-8859-1 to UTF-8 and drops NUL and space padding.
func Decode(input []byte) string {
	output, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), input)
	if err != nil {
		log.Errorf("could not decode firmware string %q: %v", input, err)
		output = input
	}
	return strings.TrimRight(string(output), "\x00 ")
}

// Encode writes s into a fixed-width field of n bytes, padding with spaces.
// Characters outside ISO-8859-1 are replaced by '?'.
func Encode(s string, n int) []byte {
	enc := charmap.ISO8859_1.NewEncoder()
	b, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		b = make([]byte, 0, len(s))
		for _, r := range s {
			if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
				b = append(b, c)
			} else {
				b = append(b, '?')
			}
		}
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	copy(out, b)
	return out
}
