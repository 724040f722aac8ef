// Package session drives a machine over a stream of setting lines and
// message lines.
//
// A setting line starts with '*' and names the rotors, their setting and an
// optional plugboard:
//
//	* B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)
//
// Every other line is a message. Its whitespace is removed, it is converted
// with the current setting, and the result is written in groups.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/blackwell-systems/rotorsim/errs"
	"github.com/blackwell-systems/rotorsim/machine"
	"github.com/blackwell-systems/rotorsim/perm"
)

// ErrSkippedLines is returned by Run in keep-going mode when any line failed.
var ErrSkippedLines = errors.New("skipped lines")

const maxLine = 1 << 20

// Options controls output layout and error handling.
type Options struct {
	// GroupWidth is the number of symbols per output group; 0 disables grouping.
	GroupWidth int

	// KeepGoing logs and skips failing lines instead of stopping.
	KeepGoing bool
}

// Session processes input against a single machine.
type Session struct {
	m    *machine.Machine
	opts Options
	log  *zap.Logger
}

// New returns a session over m. A nil logger discards log output.
func New(m *machine.Machine, opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{m: m, opts: opts, log: log}
}

// Run reads lines from in until EOF and writes one output line per message
// line to out.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	w := bufio.NewWriter(out)

	var (
		lineNo  int
		started bool
		skipped int

		// ready is false after a rejected setting line, so messages are not
		// converted under the setting that line meant to replace.
		ready = s.m.Configured()
	)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			w.Flush()
			return err
		}
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if !started && trimmed == "" {
			continue
		}

		var err error
		if strings.HasPrefix(trimmed, "*") {
			started = true
			err = s.configure(trimmed)
			ready = err == nil
			if ready {
				s.log.Debug("Machine configured",
					zap.Int("line", lineNo),
					zap.Strings("slots", s.m.Slots()),
					zap.Stringer("rotors", s.m),
					zap.String("setting", s.m.Setting()),
					zap.Stringer("plugboard", s.m.Plugboard()))
			}
		} else if !ready {
			err = fmt.Errorf("%w: no valid setting line precedes this message", errs.ErrIllegalState)
		} else {
			err = s.message(w, line)
		}

		if err != nil {
			if !s.opts.KeepGoing {
				w.Flush()
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			skipped++
			s.log.Warn("Skipping line", zap.Int("line", lineNo), zap.Error(err))
		}
	}
	if err := sc.Err(); err != nil {
		w.Flush()
		return fmt.Errorf("read input: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	s.log.Debug("Session finished", zap.Int("lines", lineNo), zap.Int("skipped", skipped))
	if skipped > 0 {
		return fmt.Errorf("%w: %d of %d lines", ErrSkippedLines, skipped, lineNo)
	}
	return nil
}

// configure applies a setting line. Everything before the first '(' is the
// rotor names followed by the setting; the rest is the plugboard. The machine
// changes only if the whole line is valid.
func (s *Session) configure(line string) error {
	body, cycles := strings.TrimPrefix(line, "*"), ""
	if i := strings.IndexByte(body, '('); i >= 0 {
		body, cycles = body[:i], body[i:]
	}
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return fmt.Errorf("%w: setting line has no rotors or setting", errs.ErrConfiguration)
	}
	names, setting := fields[:len(fields)-1], fields[len(fields)-1]

	plug, err := perm.New(cycles, s.m.Alphabet())
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}
	return s.m.Configure(names, setting, plug)
}

func (s *Session) message(w *bufio.Writer, line string) error {
	out, err := s.m.Convert(strings.Join(strings.Fields(line), ""))
	if err != nil {
		return err
	}
	if _, err := w.WriteString(Group(out, s.opts.GroupWidth)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
