package visitors

import (
	"io"
	"os"

	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
)

// Dump writes the raw bytes of a single node.
type Dump struct {
	// Input
	Predicate FindPredicate

	// Output
	// The node is written to W, or to the file at Path when W is nil. The
	// file is only created once the node has been found.
	W    io.Writer
	Path string
}

// Run finds the node and writes it out.
func (v *Dump) Run(t *mpam.Table) error {
	e, err := FindExactlyOne(t, v.Predicate)
	if err != nil {
		return err
	}
	if v.W != nil {
		_, err = v.W.Write(e.Raw)
		return err
	}
	return os.WriteFile(v.Path, e.Raw, 0644)
}

// Visit is not used; Run delegates the walk to Find.
func (v *Dump) Visit(mpam.Entry) error {
	return nil
}

func init() {
	RegisterCLI("dump", "dump the raw bytes of one node to a file", 2, func(args []string) (mpam.Visitor, error) {
		pred, err := ParsePredicate(args[0])
		if err != nil {
			return nil, err
		}

		return &Dump{
			Predicate: pred,
			Path:      args[1],
		}, nil
	})
}
