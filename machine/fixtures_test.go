package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/rotorsim/alphabet"
	"github.com/blackwell-systems/rotorsim/perm"
	"github.com/blackwell-systems/rotorsim/rotor"
)

// wirings holds the cycle notation of the rotors used across these tests.
var wirings = map[string]string{
	"I":     "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)",
	"II":    "(FIXVYOMW) (CDKLHUP) (ESZ) (BJ) (GR) (NT) (A) (Q)",
	"III":   "(ABDHPEJT) (CFLVMZOYQIRWUKXSG) (N)",
	"IV":    "(AEPLIYWCOXMRFZBSTGJQNH) (DV) (KU)",
	"V":     "(AVOLDRWFIUQ)(BZKSMNHYC) (EGTJPX)",
	"VI":    "(AJQDVLEOZWIYTS) (CGMNHFUX) (BPRK)",
	"VII":   "(ANOUPFRIMBZTLWKSVEGCJYDHXQ)",
	"VIII":  "(AFLSETWUNDHOZVICQ) (BKJ) (GXY) (MPR)",
	"Beta":  "(ALBEVFCYODJWUGNMQTZSKPR) (HIX)",
	"Gamma": "(AFNIRLBSQWVXGUZDKMTPCOYJHE)",
	"B":     "(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)",
	"C":     "(AR) (BD) (CO) (EJ) (FN) (GT) (HK) (IV) (LM) (PW) (QZ) (SX) (UY)",
}

// rotorSpec describes a catalog entry: kind "R", "N" or "M<notches>".
type rotorSpec struct {
	name   string
	cycles string
	kind   string
}

func alpha(t *testing.T, spec string) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.Parse(spec)
	require.NoError(t, err)
	return a
}

func defs(t *testing.T, a *alphabet.Alphabet, specs ...rotorSpec) []*rotor.Definition {
	t.Helper()
	out := make([]*rotor.Definition, 0, len(specs))
	for _, s := range specs {
		p, err := perm.New(s.cycles, a)
		require.NoError(t, err, s.name)
		switch s.kind[0] {
		case 'R':
			out = append(out, rotor.NewReflector(s.name, p))
		case 'N':
			out = append(out, rotor.NewFixed(s.name, p))
		case 'M':
			d, err := rotor.NewMoving(s.name, p, s.kind[1:])
			require.NoError(t, err, s.name)
			out = append(out, d)
		default:
			t.Fatalf("bad kind %q", s.kind)
		}
	}
	return out
}

func newMachine(t *testing.T, a *alphabet.Alphabet, slots, pawls int, specs ...rotorSpec) *Machine {
	t.Helper()
	m, err := New(a, slots, pawls, defs(t, a, specs...))
	require.NoError(t, err)
	return m
}

// navalMachine is the standard five slot, three pawl machine with the
// historical naval rotors.
func navalMachine(t *testing.T) *Machine {
	a := alpha(t, "A-Z")
	return newMachine(t, a, 5, 3,
		rotorSpec{"I", wirings["I"], "MQ"},
		rotorSpec{"II", wirings["II"], "ME"},
		rotorSpec{"III", wirings["III"], "MV"},
		rotorSpec{"IV", wirings["IV"], "MJ"},
		rotorSpec{"V", wirings["V"], "MZ"},
		rotorSpec{"VI", wirings["VI"], "MZM"},
		rotorSpec{"VII", wirings["VII"], "MZM"},
		rotorSpec{"VIII", wirings["VIII"], "MZM"},
		rotorSpec{"Beta", wirings["Beta"], "N"},
		rotorSpec{"Gamma", wirings["Gamma"], "N"},
		rotorSpec{"B", wirings["B"], "R"},
		rotorSpec{"C", wirings["C"], "R"},
	)
}

// labMachine is the four symbol machine whose stepping trace is small enough
// to follow by hand.
func labMachine(t *testing.T) *Machine {
	a := alpha(t, "A-D")
	return newMachine(t, a, 4, 3,
		rotorSpec{"R1", "(AC) (BD)", "R"},
		rotorSpec{"R2", "(ABCD)", "MC"},
		rotorSpec{"R3", "(ABCD)", "MC"},
		rotorSpec{"R4", "(ABCD)", "MC"},
	)
}

// notchedMachine has every moving rotor notched at C, with a fixed rotor IV.
func notchedMachine(t *testing.T, notchI, notchII, notchIII string) *Machine {
	a := alpha(t, "A-Z")
	return newMachine(t, a, 5, 3,
		rotorSpec{"I", wirings["I"], "M" + notchI},
		rotorSpec{"II", wirings["II"], "M" + notchII},
		rotorSpec{"III", wirings["III"], "M" + notchIII},
		rotorSpec{"IV", wirings["Beta"], "N"},
		rotorSpec{"IVV", wirings["IV"], "MJ"},
		rotorSpec{"V", wirings["B"], "R"},
	)
}

func mustInsert(t *testing.T, m *Machine, setting string, names ...string) {
	t.Helper()
	require.NoError(t, m.InsertRotors(names))
	require.NoError(t, m.SetRotors(setting))
}
