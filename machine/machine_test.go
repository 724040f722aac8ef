package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/perm"
)

func TestNewRejectsBadShape(t *testing.T) {
	a := alpha(t, "A-D")
	d := defs(t, a, rotorSpec{"R1", "(AC) (BD)", "R"})

	tests := []struct {
		name         string
		slots, pawls int
	}{
		{"single slot", 1, 0},
		{"pawls equal slots", 3, 3},
		{"negative pawls", 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(a, tt.slots, tt.pawls, d)
			assert.ErrorIs(t, err, errs.ErrConfiguration)
		})
	}
}

func TestNewRejectsCatalogProblems(t *testing.T) {
	a := alpha(t, "A-D")

	_, err := New(a, 2, 1, defs(t, a,
		rotorSpec{"R1", "(AC) (BD)", "R"},
		rotorSpec{"r1", "(AB)", "MA"},
	))
	assert.ErrorIs(t, err, errs.ErrConfiguration, "names are case-insensitive")

	big := alpha(t, "A-Z")
	_, err = New(a, 2, 1, defs(t, big, rotorSpec{"B", wirings["B"], "R"}))
	assert.ErrorIs(t, err, errs.ErrConfiguration, "alphabet size mismatch")
}

func TestInsertRotorsValidation(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  error
	}{
		{"reflector not first", []string{"IV", "III", "II", "I"}, errs.ErrReflectorPosition},
		{"reflector not first full length", []string{"I", "V", "IV", "III", "II"}, errs.ErrReflectorPosition},
		{"second reflector", []string{"V", "V2", "III", "II", "I"}, errs.ErrReflectorPosition},
		{"too few rotors", []string{"V", "III", "II", "I"}, errs.ErrSlotCountMismatch},
		{"too many rotors", []string{"V", "IV", "III", "II", "I", "IVV"}, errs.ErrSlotCountMismatch},
		{"empty", nil, errs.ErrSlotCountMismatch},
		{"duplicate", []string{"V", "I", "III", "II", "I"}, errs.ErrDuplicateRotor},
		{"duplicate ignoring case", []string{"V", "IV", "iii", "III", "I"}, errs.ErrDuplicateRotor},
		{"unknown", []string{"V", "X", "III", "II", "I"}, errs.ErrUnknownRotor},
		{"too many moving", []string{"V", "IVV", "III", "II", "I"}, errs.ErrPawlCountMismatch},
	}

	a := alpha(t, "A-Z")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, a, 5, 3,
				rotorSpec{"I", wirings["I"], "MC"},
				rotorSpec{"II", wirings["II"], "MC"},
				rotorSpec{"III", wirings["III"], "MC"},
				rotorSpec{"IV", wirings["Beta"], "N"},
				rotorSpec{"IVV", wirings["IV"], "MJ"},
				rotorSpec{"V", wirings["B"], "R"},
				rotorSpec{"V2", wirings["C"], "R"},
			)
			err := m.InsertRotors(tt.names)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, m.Configured())
		})
	}
}

func TestInsertRotorsTooFewMoving(t *testing.T) {
	a := alpha(t, "A-Z")
	m := newMachine(t, a, 2, 1,
		rotorSpec{"I", wirings["I"], "N"},
		rotorSpec{"II", wirings["II"], "R"},
	)
	assert.ErrorIs(t, m.InsertRotors([]string{"II", "I"}), errs.ErrPawlCountMismatch)
}

func TestInsertRotorsFailureKeepsAssignment(t *testing.T) {
	m := navalMachine(t)
	mustInsert(t, m, "AXLE", "B", "Beta", "III", "IV", "I")

	err := m.InsertRotors([]string{"B", "Beta", "III", "IV", "Nope"})
	require.ErrorIs(t, err, errs.ErrUnknownRotor)
	assert.Equal(t, []string{"B", "Beta", "III", "IV", "I"}, m.Slots())
	assert.Equal(t, "AAXLE", m.Setting())
}

func TestInsertRotorsIsCaseInsensitiveAndFresh(t *testing.T) {
	m := navalMachine(t)
	mustInsert(t, m, "AXLE", "b", "BETA", "iii", "Iv", "i")
	assert.Equal(t, []string{"B", "Beta", "III", "IV", "I"}, m.Slots())
	assert.Equal(t, "AAXLE", m.Setting())

	require.NoError(t, m.InsertRotors([]string{"B", "Beta", "III", "IV", "I"}))
	assert.Equal(t, "AAAAA", m.Setting(), "reinsertion starts from fresh rotors")
}

func TestUnconfiguredMachine(t *testing.T) {
	m := navalMachine(t)
	assert.False(t, m.Configured())
	assert.Equal(t, "", m.Setting())

	assert.ErrorIs(t, m.SetRotors("AAAA"), errs.ErrIllegalState)
	assert.ErrorIs(t, m.SetPlugboard(nil), errs.ErrIllegalState)
	_, err := m.Convert("A")
	assert.ErrorIs(t, err, errs.ErrIllegalState)
	_, err = m.ConvertIndex(0)
	assert.ErrorIs(t, err, errs.ErrIllegalState)
}

func TestSetRotors(t *testing.T) {
	m := navalMachine(t)
	require.NoError(t, m.InsertRotors([]string{"B", "Beta", "III", "IV", "I"}))
	require.NoError(t, m.SetRotors("AXLE"))
	assert.Equal(t, "AAXLE", m.Setting())

	assert.ErrorIs(t, m.SetRotors("AAA"), errs.ErrSettingLength)
	assert.ErrorIs(t, m.SetRotors("AAAAA"), errs.ErrSettingLength)
	assert.ErrorIs(t, m.SetRotors("AAA8"), errs.ErrInvalidSetting)
	assert.ErrorIs(t, m.SetRotors("ZZZa"), errs.ErrInvalidSetting)
	assert.Equal(t, "AAXLE", m.Setting(), "failed settings change nothing")
}

func TestSetPlugboard(t *testing.T) {
	m := navalMachine(t)
	mustInsert(t, m, "AAAA", "B", "Beta", "III", "IV", "I")

	small, err := perm.New("(AB)", alpha(t, "A-D"))
	require.NoError(t, err)
	assert.ErrorIs(t, m.SetPlugboard(small), errs.ErrConfiguration)

	// Arbitrary cycles are applied as given.
	p, err := perm.New("(ABC)", m.Alphabet())
	require.NoError(t, err)
	require.NoError(t, m.SetPlugboard(p))
	assert.Same(t, p, m.Plugboard())

	require.NoError(t, m.SetPlugboard(nil))
	assert.Equal(t, "", m.Plugboard().String())
}

func TestConvertRejectsForeignSymbols(t *testing.T) {
	m := navalMachine(t)
	mustInsert(t, m, "AAAA", "B", "Beta", "III", "IV", "I")

	_, err := m.Convert("Hel8oWorld")
	assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
	_, err = m.Convert("HELLO WORLD")
	assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
	assert.Equal(t, "AAAAA", m.Setting(), "rejected message does not step the rotors")

	_, err = m.ConvertIndex(26)
	assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
	_, err = m.ConvertIndex(-1)
	assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
}

func TestConvertEmptyMessage(t *testing.T) {
	m := navalMachine(t)
	mustInsert(t, m, "AAAA", "B", "Beta", "III", "IV", "I")
	out, err := m.Convert("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Equal(t, "AAAAA", m.Setting())
}

func TestMachinesShareCatalogNotState(t *testing.T) {
	a := alpha(t, "A-D")
	d := defs(t, a,
		rotorSpec{"R1", "(AC) (BD)", "R"},
		rotorSpec{"R2", "(ABCD)", "MC"},
		rotorSpec{"R3", "(ABCD)", "MC"},
		rotorSpec{"R4", "(ABCD)", "MC"},
	)
	m1, err := New(a, 4, 3, d)
	require.NoError(t, err)
	m2, err := New(a, 4, 3, d)
	require.NoError(t, err)

	names := []string{"R1", "R2", "R3", "R4"}
	require.NoError(t, m1.InsertRotors(names))
	require.NoError(t, m2.InsertRotors(names))
	require.NoError(t, m1.SetRotors("AAA"))
	require.NoError(t, m2.SetRotors("AAA"))

	_, err = m1.Convert("AAAA")
	require.NoError(t, err)
	assert.Equal(t, "AABA", m1.Setting())
	assert.Equal(t, "AAAA", m2.Setting())
}

func TestConfigure(t *testing.T) {
	m := navalMachine(t)
	plug, err := perm.New("(HQ) (EX) (IP) (TR) (BY)", m.Alphabet())
	require.NoError(t, err)

	require.NoError(t, m.Configure([]string{"B", "Beta", "III", "IV", "I"}, "AXLE", plug))
	assert.Equal(t, "AAXLE", m.Setting())
	assert.Same(t, plug, m.Plugboard())

	got, err := m.Convert("FROMHISSHOULDERHIAWATHA")
	require.NoError(t, err)
	assert.Equal(t, "QVPQSOKOILPUBKJZPISFXDW", got)

	require.NoError(t, m.Configure([]string{"C", "Gamma", "I", "II", "III"}, "ABCD", nil))
	assert.Equal(t, "AABCD", m.Setting())
	assert.Equal(t, "", m.Plugboard().String())
}

func TestConfigureFailureChangesNothing(t *testing.T) {
	m := navalMachine(t)
	plug, err := perm.New("(HQ) (EX) (IP) (TR) (BY)", m.Alphabet())
	require.NoError(t, err)
	require.NoError(t, m.Configure([]string{"B", "Beta", "III", "IV", "I"}, "AXLE", plug))
	_, err = m.Convert("HELLO")
	require.NoError(t, err)
	before := m.String()

	small, err := perm.New("(AB)", alpha(t, "A-D"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		names   []string
		setting string
		plug    *perm.Permutation
		want    error
	}{
		{"bad setting symbol", []string{"C", "Gamma", "I", "II", "III"}, "AX1E", nil, errs.ErrInvalidSetting},
		{"short setting", []string{"C", "Gamma", "I", "II", "III"}, "AXL", nil, errs.ErrSettingLength},
		{"too few rotors", []string{"C", "I", "II", "III"}, "AXLE", nil, errs.ErrSlotCountMismatch},
		{"foreign plugboard", []string{"C", "Gamma", "I", "II", "III"}, "AXLE", small, errs.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Configure(tt.names, tt.setting, tt.plug)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, m.String())
			assert.Same(t, plug, m.Plugboard())
		})
	}
}

func TestString(t *testing.T) {
	m := labMachine(t)
	assert.Equal(t, "", m.String())

	mustInsert(t, m, "ABC", "R1", "R2", "R3", "R4")
	assert.Equal(t, "R1 (reflector) at A, R2 (moving) at A, R3 (moving) at B, R4 (moving) at C", m.String())
}
