package visitors

import (
	"fmt"
	"io"
	"os"

	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
)

// Nodes prints one line per node.
type Nodes struct {
	W io.Writer
}

func (v *Nodes) Run(t *mpam.Table) error {
	fmt.Fprintln(v.W, t.Header())
	return t.Apply(v)
}

func (v *Nodes) Visit(e mpam.Entry) error {
	_, err := fmt.Fprintf(v.W, "0x%04x: %v\n", e.Offset, e.Node)
	return err
}

// Bases prints the cache and memory MSC base addresses.
type Bases struct {
	W io.Writer
}

func (v *Bases) Run(t *mpam.Table) error {
	for _, kind := range []struct {
		name string
		it   *mpam.AddressIter
	}{
		{mpam.InterfaceCache.String(), t.CacheBases()},
		{mpam.InterfaceMemory.String(), t.MemoryBases()},
	} {
		for kind.it.Next() {
			if _, err := fmt.Fprintf(v.W, "%-6s 0x%016x\n", kind.name, kind.it.Addr()); err != nil {
				return err
			}
		}
		if err := kind.it.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Visit is not used; Run walks the table through the classifiers.
func (v *Bases) Visit(mpam.Entry) error {
	return nil
}

func init() {
	RegisterCLI("nodes", "print every MSC node", 0, func(args []string) (mpam.Visitor, error) {
		return &Nodes{W: os.Stdout}, nil
	})
	RegisterCLI("bases", "print cache and memory MSC base addresses", 0, func(args []string) (mpam.Visitor, error) {
		return &Bases{W: os.Stdout}, nil
	})
}
