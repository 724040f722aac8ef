package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/rotor"
)

// Raw YAML structures for unmarshaling.

type rawFile struct {
	Machine rawMachine `yaml:"machine"`
}

type rawMachine struct {
	Name     string              `yaml:"name" validate:"required"`
	Alphabet string              `yaml:"alphabet" validate:"required"`
	Slots    int                 `yaml:"slots" validate:"gt=1"`
	Pawls    int                 `yaml:"pawls" validate:"gte=0,ltfield=Slots"`
	Rotors   map[string]rawRotor `yaml:"rotors" validate:"required,min=1,dive"`
}

type rawRotor struct {
	Kind    string `yaml:"kind" validate:"required,oneof=reflector fixed moving R N M"`
	Notches string `yaml:"notches"`
	Cycles  string `yaml:"cycles"`
}

var validate = validator.New()

// LoadFile reads a machine description. Files ending in .yaml or .yml are
// parsed as YAML; anything else is read in the classic line format.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data)
	default:
		cat, err := ParseText(strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		if cat.Name == "" {
			cat.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return cat, nil
	}
}

// Parse parses a YAML machine description.
func Parse(data []byte) (*Catalog, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: yaml parse: %v", errs.ErrConfiguration, err)
	}
	r := &raw.Machine
	if err := validate.Struct(r); err != nil {
		return nil, fmt.Errorf("%w: machine: %v", errs.ErrConfiguration, err)
	}

	cat := &Catalog{
		Name:      r.Name,
		Alphabet:  r.Alphabet,
		NumRotors: r.Slots,
		NumPawls:  r.Pawls,
	}

	// Rotors keep file order; re-parse to get key order.
	var ordered struct {
		Machine struct {
			Rotors yaml.Node `yaml:"rotors"`
		} `yaml:"machine"`
	}
	if err := yaml.Unmarshal(data, &ordered); err != nil {
		return nil, fmt.Errorf("%w: yaml parse: %v", errs.ErrConfiguration, err)
	}

	rotorsNode := &ordered.Machine.Rotors
	if rotorsNode.Kind == yaml.MappingNode {
		for i := 0; i < len(rotorsNode.Content)-1; i += 2 {
			name := rotorsNode.Content[i].Value
			rr, ok := r.Rotors[name]
			if !ok {
				return nil, fmt.Errorf("%w: rotor %q not found", errs.ErrConfiguration, name)
			}
			spec, err := parseRotorSpec(name, rr)
			if err != nil {
				return nil, err
			}
			if err := cat.add(spec); err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

func parseRotorSpec(name string, rr rawRotor) (RotorSpec, error) {
	kind, err := rotor.ParseKind(rr.Kind)
	if err != nil {
		return RotorSpec{}, fmt.Errorf("rotor %q: %w", name, err)
	}
	if kind != rotor.Moving && rr.Notches != "" {
		return RotorSpec{}, fmt.Errorf("%w: %s rotor %q cannot have notches", errs.ErrConfiguration, kind, name)
	}
	return RotorSpec{Name: name, Kind: kind, Notches: rr.Notches, Cycles: rr.Cycles}, nil
}
