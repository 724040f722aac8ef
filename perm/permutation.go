// Package perm implements permutations of alphabet indices written in cycle
// notation.
package perm

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/alphabet"
	"github.com/blackwell-systems/rotorsim/errs"
)

// Permutation is an immutable bijection on 0..N-1 over an alphabet of size N.
type Permutation struct {
	alpha   *alphabet.Alphabet
	forward []int
	inverse []int
}

// New parses cycles, a string of the form "(cccc) (cc) ...", over a. Symbols
// that appear in no cycle map to themselves; whitespace is insignificant.
func New(cycles string, a *alphabet.Alphabet) (*Permutation, error) {
	tokens, err := Lex(cycles)
	if err != nil {
		return nil, fmt.Errorf("%w: cycles %q: %v", errs.ErrConfiguration, cycles, err)
	}
	parsed, err := parseCycles(tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: cycles %q: %v", errs.ErrConfiguration, cycles, err)
	}

	p := identity(a)
	seen := make(map[rune]bool)
	for _, cy := range parsed {
		if len(cy) == 0 {
			continue
		}
		idx := make([]int, len(cy))
		for k, r := range cy {
			i, err := a.ToInt(r)
			if err != nil {
				return nil, fmt.Errorf("%w: cycles %q: symbol %q not in alphabet %q",
					errs.ErrConfiguration, cycles, r, a.String())
			}
			if seen[r] {
				return nil, fmt.Errorf("%w: cycles %q: symbol %q appears more than once",
					errs.ErrConfiguration, cycles, r)
			}
			seen[r] = true
			idx[k] = i
		}
		for k, from := range idx {
			to := idx[(k+1)%len(idx)]
			p.forward[from] = to
			p.inverse[to] = from
		}
	}
	return p, nil
}

// Identity returns the permutation that maps every index to itself.
func Identity(a *alphabet.Alphabet) *Permutation {
	return identity(a)
}

func identity(a *alphabet.Alphabet) *Permutation {
	n := a.Size()
	p := &Permutation{alpha: a, forward: make([]int, n), inverse: make([]int, n)}
	for i := 0; i < n; i++ {
		p.forward[i] = i
		p.inverse[i] = i
	}
	return p
}

// Size returns the size of the alphabet permuted.
func (p *Permutation) Size() int { return len(p.forward) }

// Alphabet returns the alphabet the permutation was built over.
func (p *Permutation) Alphabet() *alphabet.Alphabet { return p.alpha }

// Wrap returns i modulo Size(), normalized to [0, Size()).
func (p *Permutation) Wrap(i int) int {
	r := i % p.Size()
	if r < 0 {
		r += p.Size()
	}
	return r
}

// Permute applies the permutation to i modulo Size().
func (p *Permutation) Permute(i int) int { return p.forward[p.Wrap(i)] }

// Invert applies the inverse permutation to c modulo Size().
func (p *Permutation) Invert(c int) int { return p.inverse[p.Wrap(c)] }

// PermuteSymbol applies the permutation to a symbol of the alphabet.
func (p *Permutation) PermuteSymbol(r rune) (rune, error) {
	i, err := p.alpha.ToInt(r)
	if err != nil {
		return 0, err
	}
	return p.alpha.ToChar(p.forward[i]), nil
}

// InvertSymbol applies the inverse permutation to a symbol of the alphabet.
func (p *Permutation) InvertSymbol(r rune) (rune, error) {
	i, err := p.alpha.ToInt(r)
	if err != nil {
		return 0, err
	}
	return p.alpha.ToChar(p.inverse[i]), nil
}

// Derangement reports whether no index maps to itself.
func (p *Permutation) Derangement() bool {
	for i, j := range p.forward {
		if i == j {
			return false
		}
	}
	return true
}

// Involution reports whether the permutation is its own inverse, i.e. every
// cycle has length one or two.
func (p *Permutation) Involution() bool {
	for i, j := range p.forward {
		if p.forward[j] != i {
			return false
		}
	}
	return true
}

// String renders the permutation in canonical cycle notation: each cycle starts
// at its lowest index and fixed points are omitted.
func (p *Permutation) String() string {
	var b strings.Builder
	done := make([]bool, p.Size())
	for start := range p.forward {
		if done[start] || p.forward[start] == start {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		for i := start; !done[i]; i = p.forward[i] {
			done[i] = true
			b.WriteRune(p.alpha.ToChar(i))
		}
		b.WriteByte(')')
	}
	return b.String()
}
