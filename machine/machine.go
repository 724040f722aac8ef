// Package machine assembles rotors and a plugboard into a rotor cipher
// machine and implements its stepping and substitution.
package machine

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/alphabet"
	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/perm"
	"github.com/blackwell-systems/rotorsim/rotor"
)

// Machine is a rotor machine with numRotors slots, the rightmost numPawls of
// which may carry moving rotors. A Machine is not safe for concurrent use.
type Machine struct {
	alpha     *alphabet.Alphabet
	numRotors int
	numPawls  int
	catalog   map[string]*rotor.Definition // keyed by upper-cased name

	slots     []*rotor.Rotor // slot 0 is the reflector; nil until InsertRotors
	plugboard *perm.Permutation
}

// New returns an unconfigured machine over alpha. It requires
// 1 < numRotors and 0 <= numPawls < numRotors; defs is the catalog of rotors
// that InsertRotors may choose from.
func New(alpha *alphabet.Alphabet, numRotors, numPawls int, defs []*rotor.Definition) (*Machine, error) {
	if numRotors <= 1 {
		return nil, fmt.Errorf("%w: need more than one rotor slot, got %d", errs.ErrConfiguration, numRotors)
	}
	if numPawls < 0 || numPawls >= numRotors {
		return nil, fmt.Errorf("%w: pawls must be in [0, %d), got %d", errs.ErrConfiguration, numRotors, numPawls)
	}

	m := &Machine{
		alpha:     alpha,
		numRotors: numRotors,
		numPawls:  numPawls,
		catalog:   make(map[string]*rotor.Definition, len(defs)),
		plugboard: perm.Identity(alpha),
	}
	for _, d := range defs {
		key := strings.ToUpper(d.Name())
		if _, dup := m.catalog[key]; dup {
			return nil, fmt.Errorf("%w: rotor %q defined twice", errs.ErrConfiguration, d.Name())
		}
		if d.Permutation().Size() != alpha.Size() {
			return nil, fmt.Errorf("%w: rotor %q permutes %d symbols, alphabet has %d",
				errs.ErrConfiguration, d.Name(), d.Permutation().Size(), alpha.Size())
		}
		m.catalog[key] = d
	}
	return m, nil
}

// NumRotors returns the number of rotor slots.
func (m *Machine) NumRotors() int { return m.numRotors }

// NumPawls returns the number of pawls, and so of moving rotors.
func (m *Machine) NumPawls() int { return m.numPawls }

// Alphabet returns the machine's alphabet.
func (m *Machine) Alphabet() *alphabet.Alphabet { return m.alpha }

// Configured reports whether rotors have been inserted.
func (m *Machine) Configured() bool { return m.slots != nil }

// Plugboard returns the current plugboard permutation.
func (m *Machine) Plugboard() *perm.Permutation { return m.plugboard }

// Slots returns the names of the inserted rotors, reflector first.
func (m *Machine) Slots() []string {
	names := make([]string, len(m.slots))
	for i, r := range m.slots {
		names[i] = r.Name()
	}
	return names
}

// InsertRotors fills the slots with fresh rotors built from the catalog
// entries named by names (names[0] is the reflector). Lookup ignores case.
// On error the previous assignment is left untouched.
func (m *Machine) InsertRotors(names []string) error {
	slots, err := m.buildSlots(names)
	if err != nil {
		return err
	}
	m.slots = slots
	return nil
}

// SetRotors positions slots 1..numRotors-1 from setting, one symbol per
// slot, left to right. The reflector keeps its position.
func (m *Machine) SetRotors(setting string) error {
	if !m.Configured() {
		return fmt.Errorf("%w: set rotors before inserting them", errs.ErrIllegalState)
	}
	pos, err := m.positions(setting)
	if err != nil {
		return err
	}
	applyPositions(m.slots, pos)
	return nil
}

// SetPlugboard replaces the plugboard. A nil permutation restores the
// identity. Any permutation of the alphabet is accepted, not only swaps.
func (m *Machine) SetPlugboard(p *perm.Permutation) error {
	if !m.Configured() {
		return fmt.Errorf("%w: set plugboard before inserting rotors", errs.ErrIllegalState)
	}
	plug, err := m.checkPlugboard(p)
	if err != nil {
		return err
	}
	m.plugboard = plug
	return nil
}

// Configure inserts the named rotors, positions them from setting and
// installs plugboard in one step. Nothing changes unless all three succeed.
// It reports the same errors as InsertRotors, SetRotors and SetPlugboard.
func (m *Machine) Configure(names []string, setting string, plugboard *perm.Permutation) error {
	slots, err := m.buildSlots(names)
	if err != nil {
		return err
	}
	pos, err := m.positions(setting)
	if err != nil {
		return err
	}
	plug, err := m.checkPlugboard(plugboard)
	if err != nil {
		return err
	}

	applyPositions(slots, pos)
	m.slots = slots
	m.plugboard = plug
	return nil
}

func (m *Machine) buildSlots(names []string) ([]*rotor.Rotor, error) {
	slots := make([]*rotor.Rotor, 0, len(names))
	used := make(map[string]bool, len(names))
	moving := 0
	for _, name := range names {
		key := strings.ToUpper(name)
		d, ok := m.catalog[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownRotor, name)
		}
		if used[key] {
			return nil, fmt.Errorf("%w: %q used more than once", errs.ErrDuplicateRotor, name)
		}
		used[key] = true
		if d.Kind() == rotor.Moving {
			moving++
		}
		slots = append(slots, rotor.New(d))
	}

	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: %d rotors for %d slots", errs.ErrSlotCountMismatch, 0, m.numRotors)
	}
	if !slots[0].Reflecting() {
		return nil, fmt.Errorf("%w: first rotor %q is not a reflector", errs.ErrReflectorPosition, slots[0].Name())
	}
	for i, r := range slots[1:] {
		if r.Reflecting() {
			return nil, fmt.Errorf("%w: reflector %q in slot %d", errs.ErrReflectorPosition, r.Name(), i+1)
		}
	}
	if len(slots) != m.numRotors {
		return nil, fmt.Errorf("%w: %d rotors for %d slots", errs.ErrSlotCountMismatch, len(slots), m.numRotors)
	}
	if moving != m.numPawls {
		return nil, fmt.Errorf("%w: %d moving rotors for %d pawls", errs.ErrPawlCountMismatch, moving, m.numPawls)
	}
	return slots, nil
}

func (m *Machine) positions(setting string) ([]int, error) {
	syms := []rune(setting)
	if len(syms) != m.numRotors-1 {
		return nil, fmt.Errorf("%w: setting %q has %d symbols, want %d",
			errs.ErrSettingLength, setting, len(syms), m.numRotors-1)
	}
	pos := make([]int, len(syms))
	for i, c := range syms {
		p, err := m.alpha.ToInt(c)
		if err != nil {
			return nil, fmt.Errorf("%w: setting %q: %q is not in the alphabet", errs.ErrInvalidSetting, setting, c)
		}
		pos[i] = p
	}
	return pos, nil
}

func (m *Machine) checkPlugboard(p *perm.Permutation) (*perm.Permutation, error) {
	if p == nil {
		return perm.Identity(m.alpha), nil
	}
	if p.Size() != m.alpha.Size() {
		return nil, fmt.Errorf("%w: plugboard permutes %d symbols, alphabet has %d",
			errs.ErrConfiguration, p.Size(), m.alpha.Size())
	}
	return p, nil
}

// applyPositions sets slots 1.. from pos; slot 0 is the reflector.
func applyPositions(slots []*rotor.Rotor, pos []int) {
	for i, p := range pos {
		slots[i+1].Set(p)
	}
}

// Setting renders the position of every slot, reflector included.
func (m *Machine) Setting() string {
	var b strings.Builder
	for _, r := range m.slots {
		b.WriteRune(m.alpha.ToChar(r.Setting()))
	}
	return b.String()
}

// String describes every slot, reflector first.
func (m *Machine) String() string {
	parts := make([]string, len(m.slots))
	for i, r := range m.slots {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
