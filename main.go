// Command rotorsim runs messages through a configurable rotor cipher machine.
//
// Usage:
//
//	rotorsim <config> [input [output]]
//	rotorsim catalog <config>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blackwell-systems/rotorsim/registry"
	"github.com/blackwell-systems/rotorsim/session"
)

var (
	// Global flags
	verbose    bool
	groupWidth int
	keepGoing  bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rotorsim <config> [input [output]]",
	Short: "Rotor cipher machine simulator",
	Long: `rotorsim loads a machine description and converts the messages in input,
writing one line of output per message line.

Lines starting with '*' configure the machine:

  * B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)

Input defaults to stdin and output to stdout.`,
	Args:          cobra.RangeArgs(1, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		fd := os.Stderr.Fd()
		l, err := newLogger(verbose, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConvert,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().IntVarP(&groupWidth, "group", "g", 5, "Symbols per output group (0 disables grouping)")
	rootCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Skip lines that fail instead of stopping")

	rootCmd.AddCommand(catalogCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Console output is used when stderr
// is a terminal, JSON otherwise.
func newLogger(verbose, console bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if console {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l.With(zap.String("run_id", uuid.NewString())), nil
}

// loadCatalog loads and builds the machine description at path, logging any
// entries that load but look wrong.
func loadCatalog(path string) (*registry.Built, error) {
	built, err := registry.LoadAndBuild(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog loaded",
		zap.String("name", built.Catalog.Name),
		zap.String("path", path),
		zap.Int("rotors", len(built.Definitions)))
	for _, w := range built.Warnings() {
		logger.Warn("Catalog warning", zap.String("path", path), zap.String("warning", w))
	}
	return built, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	built, err := loadCatalog(args[0])
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) > 1 {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var (
		out     io.Writer = cmd.OutOrStdout()
		outFile *os.File
	)
	if len(args) > 2 {
		outFile, err = os.Create(args[2])
		if err != nil {
			return err
		}
		out = outFile
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s := session.New(built.Machine, session.Options{GroupWidth: groupWidth, KeepGoing: keepGoing}, logger)
	runErr := s.Run(ctx, in, out)
	if outFile != nil {
		if err := outFile.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("close %s: %w", args[2], err)
		}
	}
	return runErr
}
