package mpamhelper

import (
	"errors"
	"fmt"
	"os"

	"github.com/tinytoy-sec/MpamParser/pkg/compression"
	"github.com/tinytoy-sec/MpamParser/pkg/config"
	"github.com/tinytoy-sec/MpamParser/pkg/log"
	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
	"github.com/tinytoy-sec/MpamParser/pkg/visitors"
)

// Run loads the table named by args[0] and applies the visitors described
// by the remaining arguments.
func Run(cfg config.Config, args ...string) error {
	if len(args) == 0 {
		return errors.New("at least one argument is required")
	}

	v, err := visitors.ParseCLI(args[1:])
	if err != nil {
		return err
	}

	t, err := Load(cfg, args[0])
	if err != nil {
		return err
	}
	return visitors.ExecuteCLI(t, v)
}

// Load reads a table from path. path may be a raw table, an xz or lzma
// compressed table, or a directory written by the extract command.
//
// With cfg.Partial set, a table with a malformed node is cut short before
// that node and the error is logged instead of returned.
func Load(cfg config.Config, path string) (*mpam.Table, error) {
	f, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var t *mpam.Table
	if f.IsDir() {
		pd := visitors.ParseDir{BasePath: path}
		if t, err = pd.Parse(); err != nil {
			return nil, err
		}
	} else {
		image, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if c := compression.Detect(image, cfg.XZPath); c != nil {
			log.Infof("%s: decoding %s data", path, c.Name())
			if image, err = c.Decode(image); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", path, c.Name(), err)
			}
		}
		t, err = mpam.ParseWithOptions(image, mpam.ParseOptions{VerifyChecksum: cfg.VerifyChecksum})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if !cfg.Partial {
		return t, nil
	}
	prefix, err := t.Prefix()
	if err != nil {
		var merr *mpam.MalformedError
		if errors.As(err, &merr) {
			log.Warnf("%s: %v; keeping the nodes before offset %#x (length %#x, remaining %#x)",
				path, merr.Reason, merr.Offset, merr.Length, merr.Remaining)
		} else {
			return nil, err
		}
	}
	return prefix, nil
}

// Synth returns a sample well-formed table with two cache and three memory
// MSCs and one node of an unmodeled type.
func Synth() []byte {
	b := mpam.NewBuilder("ARMLTD", "FVP")
	cache := []uint64{0x0000_7fff_f000_0000, 0x0000_7fff_f001_0000}
	mem := []uint64{0x0000_0000_1000_0000, 0x0000_0000_1001_0000, 0x0000_0000_1002_0000}
	// Each node carries one resource node placeholder after its fixed fields.
	resource := make([]byte, 24)
	for i, base := range cache {
		b.AddNode(mpam.MSCNode{
			InterfaceType:     mpam.InterfaceCache,
			BaseAddress:       base,
			OverflowInterrupt: uint32(40 + i),
			ErrorInterrupt:    uint32(50 + i),
			MaxNRDYUsec:       10,
			Offset:            mpam.MSCNodeSize,
		}, resource)
	}
	for i, base := range mem {
		b.AddNode(mpam.MSCNode{
			InterfaceType:     mpam.InterfaceMemory,
			BaseAddress:       base,
			OverflowInterrupt: uint32(60 + i),
			ErrorInterrupt:    uint32(70 + i),
			MaxNRDYUsec:       100,
			Offset:            mpam.MSCNodeSize,
		}, resource)
	}
	b.AddNode(mpam.MSCNode{InterfaceType: 0x0a, BaseAddress: 0x0000_0000_0900_0000}, nil)
	return b.Bytes()
}

// WriteSynth writes Synth to path, xz compressed if compress is set.
func WriteSynth(cfg config.Config, path string, compress bool) error {
	buf := Synth()
	if compress {
		var err error
		if buf, err = compression.NewXZ(cfg.XZPath).Encode(buf); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf, 0644)
}
