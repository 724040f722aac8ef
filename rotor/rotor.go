// Package rotor models the rotors of a rotor cipher machine.
//
// A Definition is an immutable catalog entry; a Rotor is the mutable state a
// machine keeps for one of its slots. Machines build fresh Rotors from shared
// Definitions, so two machines never see each other's positions.
package rotor

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/perm"
)

// Kind is the capability tag of a rotor.
type Kind int

const (
	Reflecting Kind = iota
	Fixed
	Moving
)

func (k Kind) String() string {
	switch k {
	case Reflecting:
		return "reflector"
	case Fixed:
		return "fixed"
	case Moving:
		return "moving"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the catalog spellings "R", "N", "M" and the long names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "reflector", "reflecting":
		return Reflecting, nil
	case "n", "fixed":
		return Fixed, nil
	case "m", "moving":
		return Moving, nil
	default:
		return 0, fmt.Errorf("%w: unknown rotor kind %q", errs.ErrConfiguration, s)
	}
}

// Definition is the immutable description of a rotor.
type Definition struct {
	name    string
	kind    Kind
	perm    *perm.Permutation
	notches []bool // indexed by position; nil unless kind == Moving
}

// NewReflector defines a rotor that never moves and belongs in slot 0.
func NewReflector(name string, p *perm.Permutation) *Definition {
	return &Definition{name: name, kind: Reflecting, perm: p}
}

// NewFixed defines a rotor that never moves.
func NewFixed(name string, p *perm.Permutation) *Definition {
	return &Definition{name: name, kind: Fixed, perm: p}
}

// NewMoving defines a stepping rotor whose notches sit at the given symbols.
func NewMoving(name string, p *perm.Permutation, notches string) (*Definition, error) {
	d := &Definition{name: name, kind: Moving, perm: p, notches: make([]bool, p.Size())}
	for _, r := range notches {
		i, err := p.Alphabet().ToInt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: rotor %s notch %q not in alphabet", errs.ErrConfiguration, name, r)
		}
		d.notches[i] = true
	}
	return d, nil
}

// Name returns the rotor's name as defined.
func (d *Definition) Name() string { return d.name }

// Kind returns the capability tag.
func (d *Definition) Kind() Kind { return d.kind }

// Permutation returns the wiring at position 0.
func (d *Definition) Permutation() *perm.Permutation { return d.perm }

// Notches returns the notch symbols in alphabet order.
func (d *Definition) Notches() string {
	var b strings.Builder
	for i, on := range d.notches {
		if on {
			b.WriteRune(d.perm.Alphabet().ToChar(i))
		}
	}
	return b.String()
}

// Rotor is the per-machine state of one rotor: its position and the
// transient flag recording an advance during the current step.
type Rotor struct {
	def      *Definition
	position int
	advanced bool
}

// New returns a rotor at position 0 built from d.
func New(d *Definition) *Rotor {
	return &Rotor{def: d}
}

// Name returns the name of the rotor's definition.
func (r *Rotor) Name() string { return r.def.name }

// Kind returns the capability tag.
func (r *Rotor) Kind() Kind { return r.def.kind }

// Definition returns the catalog entry the rotor was built from.
func (r *Rotor) Definition() *Definition { return r.def }

// Permutation returns the wiring at position 0.
func (r *Rotor) Permutation() *perm.Permutation { return r.def.perm }

// Size returns the size of the alphabet the rotor permutes.
func (r *Rotor) Size() int { return r.def.perm.Size() }

// Rotates reports whether the rotor can step.
func (r *Rotor) Rotates() bool {
	switch r.def.kind {
	case Moving:
		return true
	default:
		return false
	}
}

// Reflecting reports whether the rotor is a reflector.
func (r *Rotor) Reflecting() bool {
	switch r.def.kind {
	case Reflecting:
		return true
	default:
		return false
	}
}

// Setting returns the current position.
func (r *Rotor) Setting() int { return r.position }

// Set moves the rotor to position p modulo the alphabet size.
func (r *Rotor) Set(p int) { r.position = r.def.perm.Wrap(p) }

// SetSymbol moves the rotor to the position of symbol c.
func (r *Rotor) SetSymbol(c rune) error {
	i, err := r.def.perm.Alphabet().ToInt(c)
	if err != nil {
		return err
	}
	r.Set(i)
	return nil
}

// AtNotch reports whether a moving rotor's current position is a notch.
func (r *Rotor) AtNotch() bool {
	switch r.def.kind {
	case Moving:
		return r.def.notches[r.position]
	default:
		return false
	}
}

// Advance steps a moving rotor one position and marks it as advanced for the
// current step. Other kinds ignore it.
func (r *Rotor) Advance() {
	switch r.def.kind {
	case Moving:
		r.position = r.def.perm.Wrap(r.position + 1)
		r.advanced = true
	case Reflecting, Fixed:
	}
}

// Advanced reports whether the rotor has stepped since ClearAdvanced.
func (r *Rotor) Advanced() bool { return r.advanced }

// ClearAdvanced resets the per-step flag.
func (r *Rotor) ClearAdvanced() { r.advanced = false }

// ConvertForward passes index p through the wiring shifted by the position.
func (r *Rotor) ConvertForward(p int) int {
	w := r.def.perm
	return w.Wrap(w.Permute(p+r.position) - r.position)
}

// ConvertBackward passes index e through the inverse wiring shifted by the
// position.
func (r *Rotor) ConvertBackward(e int) int {
	w := r.def.perm
	return w.Wrap(w.Invert(e+r.position) - r.position)
}

// String renders the rotor as "NAME (kind) at SYMBOL".
func (r *Rotor) String() string {
	return fmt.Sprintf("%s (%s) at %c", r.def.name, r.def.kind, r.def.perm.Alphabet().ToChar(r.position))
}
