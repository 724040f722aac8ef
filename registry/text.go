package registry

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/rotor"
)

// ParseText reads the classic line-oriented machine description:
//
//	A-Z
//	5 3
//	I    MQ  (AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)
//	Beta N   (ALBEVFCYODJWUGNMQTZSKPR) (HIX)
//	B    R   (AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO)
//	         (MP) (RX) (SZ) (TV)
//
// The first line is the alphabet, the second the slot and pawl counts. Each
// rotor line gives a name, a type (M followed by its notches, N or R) and
// cycles; a line starting with '(' continues the previous rotor's cycles.
func ParseText(r io.Reader) (*Catalog, error) {
	sc := bufio.NewScanner(r)
	cat := &Catalog{}
	lineNo := 0
	stage := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch stage {
		case 0:
			cat.Alphabet = line
			stage++
		case 1:
			n, p, err := parseCounts(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", errs.ErrConfiguration, lineNo, err)
			}
			cat.NumRotors, cat.NumPawls = n, p
			stage++
		default:
			if strings.HasPrefix(line, "(") {
				if len(cat.Rotors) == 0 {
					return nil, fmt.Errorf("%w: line %d: cycles before any rotor", errs.ErrConfiguration, lineNo)
				}
				last := &cat.Rotors[len(cat.Rotors)-1]
				last.Cycles = strings.TrimSpace(last.Cycles + " " + line)
				continue
			}
			spec, err := parseRotorLine(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", errs.ErrConfiguration, lineNo, err)
			}
			if err := cat.add(spec); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if stage < 2 {
		return nil, fmt.Errorf("%w: missing alphabet or rotor counts", errs.ErrConfiguration)
	}
	return cat, nil
}

func parseCounts(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want \"<rotors> <pawls>\", got %q", line)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("rotor count %q is not an integer", fields[0])
	}
	p, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("pawl count %q is not an integer", fields[1])
	}
	if n <= p {
		return 0, 0, fmt.Errorf("rotors (%d) must outnumber pawls (%d)", n, p)
	}
	return n, p, nil
}

func parseRotorLine(line string) (RotorSpec, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return RotorSpec{}, fmt.Errorf("rotor description %q needs a name and a type", line)
	}
	name, typ := fields[0], fields[1]
	spec := RotorSpec{Name: name, Cycles: strings.Join(fields[2:], " ")}

	switch typ[0] {
	case 'M':
		spec.Kind = rotor.Moving
		spec.Notches = typ[1:]
	case 'N':
		spec.Kind = rotor.Fixed
	case 'R':
		spec.Kind = rotor.Reflecting
	default:
		return RotorSpec{}, fmt.Errorf("rotor %s: unknown type %q", name, typ)
	}
	if spec.Kind != rotor.Moving && len(typ) > 1 {
		return RotorSpec{}, fmt.Errorf("rotor %s: type %q takes no notches", name, typ)
	}
	return spec, nil
}
