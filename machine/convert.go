package machine

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/errs"
)

// ConvertIndex advances the rotors and returns the encoding of c, an index
// into the alphabet.
func (m *Machine) ConvertIndex(c int) (int, error) {
	if !m.Configured() {
		return 0, fmt.Errorf("%w: convert before inserting rotors", errs.ErrIllegalState)
	}
	if c < 0 || c >= m.alpha.Size() {
		return 0, fmt.Errorf("%w: index %d outside [0,%d)", errs.ErrInvalidSymbol, c, m.alpha.Size())
	}
	return m.convert(c), nil
}

// Convert upper-cases msg and encodes it one symbol at a time. Every symbol is
// checked before any rotor moves, so a rejected message leaves the machine
// as it was.
func (m *Machine) Convert(msg string) (string, error) {
	if !m.Configured() {
		return "", fmt.Errorf("%w: convert before inserting rotors", errs.ErrIllegalState)
	}
	msg = strings.ToUpper(msg)
	idx := make([]int, 0, len(msg))
	for _, r := range msg {
		i, err := m.alpha.ToInt(r)
		if err != nil {
			return "", err
		}
		idx = append(idx, i)
	}

	var b strings.Builder
	b.Grow(len(msg))
	for _, i := range idx {
		b.WriteRune(m.alpha.ToChar(m.convert(i)))
	}
	return b.String(), nil
}

func (m *Machine) convert(c int) int {
	c = m.plugboard.Permute(c)
	m.step()

	last := len(m.slots) - 1
	for i := last; i >= 0; i-- {
		c = m.slots[i].ConvertForward(c)
	}
	for i := 1; i <= last; i++ {
		c = m.slots[i].ConvertBackward(c)
	}
	c = m.plugboard.Invert(c)

	for _, r := range m.slots {
		r.ClearAdvanced()
	}
	return c
}

// step advances the rotors for one keypress. Notch state is sampled before
// anything moves. The rightmost rotor always steps. Then, scanning right to
// left inside the pawl window, a rotor on its notch pushes its left
// neighbour; if the notched rotor has not already moved this keypress it
// steps together with that neighbour (the double step).
func (m *Machine) step() {
	last := len(m.slots) - 1
	onNotch := make([]bool, len(m.slots))
	for i, r := range m.slots {
		onNotch[i] = r.AtNotch()
	}

	if m.slots[last].Rotates() {
		m.slots[last].Advance()
	}

	first := m.numRotors - m.numPawls
	for i := last; i-1 >= first; i-- {
		cur, left := m.slots[i], m.slots[i-1]
		if !onNotch[i] || !left.Rotates() {
			continue
		}
		if cur.Advanced() {
			left.Advance()
		} else {
			left.Advance()
			cur.Advance()
		}
	}
}
