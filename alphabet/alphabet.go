// Package alphabet maps an ordered set of symbols onto the indices 0..N-1.
package alphabet

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blackwell-systems/rotorsim/errs"
)

// Alphabet is an immutable bijection between symbols and indices.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// New builds an alphabet from an explicit symbol list. Index order is the
// order in which the symbols appear.
func New(symbols string) (*Alphabet, error) {
	if symbols == "" {
		return nil, fmt.Errorf("%w: empty alphabet", errs.ErrConfiguration)
	}
	a := &Alphabet{index: make(map[rune]int, utf8.RuneCountInString(symbols))}
	for pos, r := range symbols {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return nil, fmt.Errorf("%w: alphabet symbol %q at position %d is not a letter or digit",
				errs.ErrConfiguration, r, pos)
		}
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("%w: alphabet symbol %q repeated", errs.ErrConfiguration, r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// NewRange builds the alphabet lo..hi inclusive.
func NewRange(lo, hi rune) (*Alphabet, error) {
	if hi < lo {
		return nil, fmt.Errorf("%w: alphabet range %c-%c is reversed", errs.ErrConfiguration, lo, hi)
	}
	var b strings.Builder
	for r := lo; r <= hi; r++ {
		b.WriteRune(r)
	}
	return New(b.String())
}

// Parse accepts either a range written "A-Z" or an explicit symbol list.
func Parse(spec string) (*Alphabet, error) {
	spec = strings.TrimSpace(spec)
	if rs := []rune(spec); len(rs) == 3 && rs[1] == '-' {
		return NewRange(rs[0], rs[2])
	}
	if strings.Contains(spec, "-") {
		return nil, fmt.Errorf("%w: malformed alphabet range %q", errs.ErrConfiguration, spec)
	}
	return New(spec)
}

// Size returns N.
func (a *Alphabet) Size() int { return len(a.symbols) }

// Contains reports whether r is a member.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// ToInt returns the index of r.
func (a *Alphabet) ToInt(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not in the alphabet", errs.ErrInvalidSymbol, r)
	}
	return i, nil
}

// ToChar returns the symbol at index i. It panics when i is outside 0..N-1.
func (a *Alphabet) ToChar(i int) rune {
	if i < 0 || i >= len(a.symbols) {
		panic(fmt.Sprintf("alphabet: index %d out of range [0,%d)", i, len(a.symbols)))
	}
	return a.symbols[i]
}

// String returns the symbols in index order.
func (a *Alphabet) String() string { return string(a.symbols) }
