package visitors

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tinytoy-sec/MpamParser/pkg/acpi"
	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
)

// SummaryFile is the name of the index Extract writes next to the nodes.
const SummaryFile = "summary.json"

// Summary describes an extracted table. Nodes are listed in table order.
// Header holds the original header bytes so ParseDir can restore every
// field; the decoded fields are there for reading.
type Summary struct {
	Signature  string
	Revision   uint8
	OEMID      string
	OEMTableID string
	Header     []byte `json:",omitempty"`
	Nodes      []SummaryNode
}

// SummaryNode points at the file holding one node.
type SummaryNode struct {
	File          string
	Offset        uint32
	InterfaceType mpam.InterfaceType
	BaseAddress   uint64
}

// Extract writes every node to its own file under BasePath, along with a
// summary.json that ParseDir reads back.
type Extract struct {
	BasePath string
	// Force allows extracting into a non-empty directory.
	Force bool

	summary Summary
}

// extractBinary dumps buf to filename under BasePath and returns the path
// relative to BasePath.
func (v *Extract) extractBinary(buf []byte, filename string) (string, error) {
	fp := filepath.Join(v.BasePath, filename)
	if err := os.WriteFile(fp, buf, 0666); err != nil {
		return "", err
	}
	return filename, nil
}

// Run wraps Visit and performs some setup and teardown tasks.
func (v *Extract) Run(t *mpam.Table) error {
	if !v.Force {
		// Check that the directory does not exist or is empty.
		files, err := os.ReadDir(v.BasePath)
		if err == nil {
			if len(files) != 0 {
				return errors.New("existing directory not empty, use force to override")
			}
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.MkdirAll(v.BasePath, 0755); err != nil {
		return err
	}

	h := t.Header()
	id, tableID := h.OEM()
	v.summary = Summary{
		Signature:  h.SignatureString(),
		Revision:   h.Revision,
		OEMID:      id,
		OEMTableID: tableID,
		Header:     t.Buf()[:acpi.HeaderSize],
	}
	if err := t.Apply(v); err != nil {
		return err
	}

	b, err := json.MarshalIndent(v.summary, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(v.BasePath, SummaryFile), b, 0666)
}

// Visit writes one node.
func (v *Extract) Visit(e mpam.Entry) error {
	name := fmt.Sprintf("%04d_%v_%#x.bin", len(v.summary.Nodes), e.Node.InterfaceType, e.Node.BaseAddress)
	if e.Node.InterfaceType != mpam.InterfaceCache && e.Node.InterfaceType != mpam.InterfaceMemory {
		name = fmt.Sprintf("%04d_type%d_%#x.bin", len(v.summary.Nodes), uint8(e.Node.InterfaceType), e.Node.BaseAddress)
	}
	path, err := v.extractBinary(e.Raw, name)
	if err != nil {
		return err
	}
	v.summary.Nodes = append(v.summary.Nodes, SummaryNode{
		File:          path,
		Offset:        e.Offset,
		InterfaceType: e.Node.InterfaceType,
		BaseAddress:   e.Node.BaseAddress,
	})
	return nil
}

// ParseDir rebuilds a table from a directory written by Extract.
type ParseDir struct {
	BasePath string
}

// Parse reads summary.json and the node files it lists.
func (v *ParseDir) Parse() (*mpam.Table, error) {
	jsonbuf, err := os.ReadFile(filepath.Join(v.BasePath, SummaryFile))
	if err != nil {
		return nil, err
	}
	var s Summary
	if err := json.Unmarshal(jsonbuf, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", SummaryFile, err)
	}
	if s.Signature != mpam.Signature {
		return nil, fmt.Errorf("summary signature %q: %w", s.Signature, mpam.ErrSignature)
	}

	b := mpam.NewBuilder(s.OEMID, s.OEMTableID).WithRevision(s.Revision)
	if s.Header != nil {
		h, err := acpi.ParseHeader(s.Header)
		if err != nil {
			return nil, fmt.Errorf("%s header: %w", SummaryFile, err)
		}
		if h.SignatureString() != mpam.Signature {
			return nil, fmt.Errorf("summary header signature %q: %w", h.SignatureString(), mpam.ErrSignature)
		}
		b.WithHeader(*h)
	}
	for _, n := range s.Nodes {
		if !filepath.IsLocal(n.File) {
			return nil, fmt.Errorf("%s: node file %q is outside %s", SummaryFile, n.File, v.BasePath)
		}
		raw, err := os.ReadFile(filepath.Join(v.BasePath, n.File))
		if err != nil {
			return nil, err
		}
		b.AddRaw(raw)
	}
	return mpam.Parse(b.Bytes())
}

func init() {
	RegisterCLI("extract", "extract the nodes to a directory", 1, func(args []string) (mpam.Visitor, error) {
		return &Extract{
			BasePath: args[0],
		}, nil
	})
}
