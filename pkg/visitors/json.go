package visitors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
)

// JSON prints the whole table as JSON.
type JSON struct {
	// JSON is written to this writer.
	W io.Writer
}

// Run marshals the whole table.
func (v *JSON) Run(t *mpam.Table) error {
	b, err := json.MarshalIndent(t, "", "\t")
	if err != nil {
		return err
	}
	fmt.Fprintln(v.W, string(b))
	return nil
}

// Visit is not used; the table is marshalled in one go.
func (v *JSON) Visit(mpam.Entry) error {
	return nil
}

func init() {
	RegisterCLI("json", "produce JSON for the whole table", 0, func(args []string) (mpam.Visitor, error) {
		return &JSON{
			W: os.Stdout,
		}, nil
	})
}
