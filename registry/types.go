package registry

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/rotor"
)

// RotorSpec is one catalog entry as written in the description file.
type RotorSpec struct {
	Name    string
	Kind    rotor.Kind
	Notches string // moving rotors only
	Cycles  string // cycle notation over the catalog alphabet
}

// Catalog is the complete description of a machine: its alphabet, its slot
// and pawl counts, and the rotors available to it, in file order.
type Catalog struct {
	Name      string
	Alphabet  string
	NumRotors int
	NumPawls  int
	Rotors    []RotorSpec
}

// Lookup returns the rotor spec named name, ignoring case, or false.
func (c *Catalog) Lookup(name string) (RotorSpec, bool) {
	for _, r := range c.Rotors {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return RotorSpec{}, false
}

// Count returns the number of catalog rotors of kind k.
func (c *Catalog) Count(k rotor.Kind) int {
	n := 0
	for _, r := range c.Rotors {
		if r.Kind == k {
			n++
		}
	}
	return n
}

// add appends spec, rejecting a name already in the catalog.
func (c *Catalog) add(spec RotorSpec) error {
	if prev, dup := c.Lookup(spec.Name); dup {
		return fmt.Errorf("%w: rotor %q defined twice (as %q)", errs.ErrConfiguration, spec.Name, prev.Name)
	}
	c.Rotors = append(c.Rotors, spec)
	return nil
}
