package registry

import (
	"fmt"

	"github.com/blackwell-systems/rotorsim/alphabet"
	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/machine"
	"github.com/blackwell-systems/rotorsim/perm"
	"github.com/blackwell-systems/rotorsim/rotor"
)

// Built holds a catalog compiled into runtime objects.
type Built struct {
	Catalog     *Catalog
	Alphabet    *alphabet.Alphabet
	Definitions []*rotor.Definition
	Machine     *machine.Machine
}

// Build parses the alphabet and every rotor's cycles and constructs a
// machine from them.
func Build(cat *Catalog) (*Built, error) {
	alpha, err := alphabet.Parse(cat.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", cat.Name, err)
	}

	b := &Built{Catalog: cat, Alphabet: alpha}

	// Compile rotor wirings.
	for _, spec := range cat.Rotors {
		p, err := perm.New(spec.Cycles, alpha)
		if err != nil {
			return nil, fmt.Errorf("rotor %q: %w", spec.Name, err)
		}
		var d *rotor.Definition
		switch spec.Kind {
		case rotor.Reflecting:
			d = rotor.NewReflector(spec.Name, p)
		case rotor.Fixed:
			d = rotor.NewFixed(spec.Name, p)
		case rotor.Moving:
			d, err = rotor.NewMoving(spec.Name, p, spec.Notches)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: rotor %q has kind %v", errs.ErrConfiguration, spec.Name, spec.Kind)
		}
		b.Definitions = append(b.Definitions, d)
	}

	b.Machine, err = b.NewMachine()
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", cat.Name, err)
	}
	return b, nil
}

// NewMachine returns another unconfigured machine sharing this catalog's
// rotor definitions.
func (b *Built) NewMachine() (*machine.Machine, error) {
	return machine.New(b.Alphabet, b.Catalog.NumRotors, b.Catalog.NumPawls, b.Definitions)
}

// Warnings describes catalog entries that load but are unusual: reflectors
// that are not fixed-point-free involutions cannot decrypt what they
// encrypt.
func (b *Built) Warnings() []string {
	var out []string
	for _, d := range b.Definitions {
		if d.Kind() != rotor.Reflecting {
			continue
		}
		p := d.Permutation()
		if !p.Involution() {
			out = append(out, fmt.Sprintf("reflector %s is not an involution", d.Name()))
		} else if !p.Derangement() {
			out = append(out, fmt.Sprintf("reflector %s leaves symbols unpaired", d.Name()))
		}
	}
	return out
}

// LoadAndBuild loads a machine description from path and builds it.
func LoadAndBuild(path string) (*Built, error) {
	cat, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(cat)
}
