package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rotorsim/registry"
	"github.com/blackwell-systems/rotorsim/rotor"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog <config>",
	Short: "Summarize a machine description",
	Long: `Loads a machine description and prints its alphabet, slot and pawl counts and
every rotor it defines, flagging reflectors that cannot decrypt what they encrypt.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	start := time.Now()
	built, err := loadCatalog(args[0])
	if err != nil {
		return err
	}
	writeCatalogReport(cmd.OutOrStdout(), args[0], built, time.Since(start))
	return nil
}

const rule = "════════════════════════════════════════════"

func writeCatalogReport(w io.Writer, path string, b *registry.Built, elapsed time.Duration) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	ok := r.NewStyle().Foreground(lipgloss.Color("#2CD7C7")).SetString("✓")
	bad := r.NewStyle().Foreground(lipgloss.Color("#E74C3C")).SetString("✗")
	mark := func(v bool) string {
		if v {
			return ok.String()
		}
		return bad.String()
	}

	cat := b.Catalog

	// Header.
	fmt.Fprintln(w, title.Render("rotorsim: Rotor Machine Catalog"))
	fmt.Fprintf(w, "%s\n\n", rule)
	fmt.Fprintf(w, "Catalog:     %s\n", cat.Name)
	fmt.Fprintf(w, "Source:      %s\n\n", path)

	fmt.Fprintln(w, title.Render("Machine"))
	fmt.Fprintf(w, "  Alphabet:  %s (%d symbols)\n", b.Alphabet, b.Alphabet.Size())
	fmt.Fprintf(w, "  Slots:     %d\n", cat.NumRotors)
	fmt.Fprintf(w, "  Pawls:     %d\n\n", cat.NumPawls)

	// Rotor table.
	fmt.Fprintf(w, "%s %d  (%d moving, %d fixed, %d reflector)\n",
		title.Render("Rotors:     "), len(b.Definitions),
		cat.Count(rotor.Moving), cat.Count(rotor.Fixed), cat.Count(rotor.Reflecting))

	nameWidth := len("NAME")
	for _, d := range b.Definitions {
		nameWidth = max(nameWidth, len(d.Name()))
	}
	nameCol := r.NewStyle().Width(nameWidth + 2)
	kindCol := r.NewStyle().Width(11)
	notchCol := r.NewStyle().Width(9)

	fmt.Fprintf(w, "  %s%s%s%s\n",
		nameCol.Render("NAME"), kindCol.Render("KIND"), notchCol.Render("NOTCHES"), "WIRING PROPERTIES")
	for _, d := range b.Definitions {
		notches := d.Notches()
		if d.Kind() != rotor.Moving {
			notches = "-"
		}
		p := d.Permutation()
		fmt.Fprintf(w, "  %s%s%s%s deranged  %s involution\n",
			nameCol.Render(d.Name()), kindCol.Render(d.Kind().String()), notchCol.Render(notches),
			mark(p.Derangement()), mark(p.Involution()))
	}
	fmt.Fprintln(w)

	// Summary.
	warnings := b.Warnings()
	fmt.Fprintf(w, "%s\n", rule)
	if len(warnings) == 0 {
		fmt.Fprintf(w, "Warnings:            none\n")
	} else {
		fmt.Fprintf(w, "Warnings:            %d\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "  %s %s\n", bad, msg)
		}
	}
	fmt.Fprintf(w, "Reflectors:          %s\n", strings.Join(namesOfKind(b, rotor.Reflecting), ", "))
	fmt.Fprintf(w, "Checked in:          %v\n", elapsed.Round(time.Microsecond))
}

func namesOfKind(b *registry.Built, k rotor.Kind) []string {
	var names []string
	for _, d := range b.Definitions {
		if d.Kind() == k {
			names = append(names, d.Name())
		}
	}
	return names
}
