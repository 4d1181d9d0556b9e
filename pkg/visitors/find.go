package visitors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tinytoy-sec/MpamParser/pkg/mpam"
)

// FindPredicate is used to filter matches in the Find visitor.
type FindPredicate = func(e mpam.Entry) bool

// Find looks for nodes matching a predicate.
type Find struct {
	// Input
	// Only nodes for which this function returns true appear in `Matches`.
	Predicate FindPredicate

	// Output
	Matches []mpam.Entry

	// JSON is written to this writer.
	W io.Writer
}

// Run wraps Visit and performs some setup and teardown tasks.
func (v *Find) Run(t *mpam.Table) error {
	if err := t.Apply(v); err != nil {
		return err
	}
	if v.W != nil {
		b, err := json.MarshalIndent(v.Matches, "", "\t")
		if err != nil {
			return err
		}
		fmt.Fprintln(v.W, string(b))
	}
	return nil
}

// Visit applies the Find visitor to one node.
func (v *Find) Visit(e mpam.Entry) error {
	if v.Predicate(e) {
		v.Matches = append(v.Matches, e)
	}
	return nil
}

// FindTypePredicate matches nodes of one interface type.
func FindTypePredicate(t mpam.InterfaceType) FindPredicate {
	return func(e mpam.Entry) bool {
		return e.Node.InterfaceType == t
	}
}

// FindBasePredicate matches nodes by base address.
func FindBasePredicate(addr uint64) FindPredicate {
	return func(e mpam.Entry) bool {
		return e.Node.BaseAddress == addr
	}
}

// FindNotPredicate is a generic predicate which takes the logical NOT of an
// existing predicate.
func FindNotPredicate(predicate FindPredicate) FindPredicate {
	return func(e mpam.Entry) bool {
		return !predicate(e)
	}
}

// FindAndPredicate is a generic predicate which takes the logical AND of two
// existing predicates.
func FindAndPredicate(predicate1 FindPredicate, predicate2 FindPredicate) FindPredicate {
	return func(e mpam.Entry) bool {
		return predicate1(e) && predicate2(e)
	}
}

// ParsePredicate turns a command line argument into a predicate: "cache" and
// "memory" name an interface type, a hex number with a 0x prefix is a base
// address and any other number is a raw interface type.
func ParsePredicate(s string) (FindPredicate, error) {
	switch strings.ToLower(s) {
	case mpam.InterfaceCache.String():
		return FindTypePredicate(mpam.InterfaceCache), nil
	case mpam.InterfaceMemory.String():
		return FindTypePredicate(mpam.InterfaceMemory), nil
	}
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		addr, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("bad base address %q: %w", s, err)
		}
		return FindBasePredicate(addr), nil
	}
	t, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("expected cache, memory, a type number or a 0x base address, got %q", s)
	}
	return FindTypePredicate(mpam.InterfaceType(t)), nil
}

// FindExactlyOne does a find using the provided predicate and errors if
// there's more or less than one match.
func FindExactlyOne(t *mpam.Table, pred FindPredicate) (mpam.Entry, error) {
	find := &Find{
		Predicate: pred,
	}
	if err := find.Run(t); err != nil {
		return mpam.Entry{}, err
	}
	if mlen := len(find.Matches); mlen != 1 {
		return mpam.Entry{}, fmt.Errorf("expected exactly one match, got %v, matches were: %v", mlen, find.Matches)
	}
	return find.Matches[0], nil
}

func init() {
	RegisterCLI("find", "find nodes by type (cache, memory, number) or 0x base address", 1, func(args []string) (mpam.Visitor, error) {
		pred, err := ParsePredicate(args[0])
		if err != nil {
			return nil, err
		}
		return &Find{
			Predicate: pred,
			W:         os.Stdout,
		}, nil
	})
}
