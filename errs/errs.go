// Package errs defines the error taxonomy shared by the rotor machine packages.
//
// Every failure is reported by wrapping one of these sentinels with context,
// so callers match on the kind with errors.Is and print the wrapped message.
package errs

import "errors"

var (
	// ErrConfiguration reports a bad alphabet, permutation, rotor or catalog description.
	ErrConfiguration = errors.New("configuration error")

	// Raised by Machine.InsertRotors.
	ErrUnknownRotor      = errors.New("unknown rotor")
	ErrDuplicateRotor    = errors.New("duplicate rotor")
	ErrSlotCountMismatch = errors.New("slot count mismatch")
	ErrReflectorPosition = errors.New("reflector position")
	ErrPawlCountMismatch = errors.New("pawl count mismatch")

	// Raised by Machine.SetRotors.
	ErrInvalidSetting = errors.New("invalid setting")
	ErrSettingLength  = errors.New("setting length")

	// ErrInvalidSymbol reports a character outside the machine's alphabet.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrIllegalState reports an operation on a machine with no rotors inserted.
	ErrIllegalState = errors.New("illegal state")
)
