// Package cli implements the compiler-select command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bimmel1231/homebrew"
	"github.com/bimmel1231/homebrew/selection"
)

type options struct {
	standards       []string
	defaultCompiler string
	explain         bool
	debug           bool
}

// NewRootCommand returns the compiler-select command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "compiler-select MANIFEST",
		Short: "Select a compiler for a package",
		Long: `compiler-select reads a compiler manifest describing a package's known
compiler failures and the compilers installed on a host, and prints the
compiler the package should be built with.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&opts.standards, "std", nil, "additional standards the package requires (e.g. cxx11,openmp)")
	cmd.Flags().StringVar(&opts.defaultCompiler, "default", "", "override the host default compiler (clang, gcc, llvm, gcc-4.0)")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "print every candidate considered")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options, manifestPath string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.debug)

	m, err := homebrew.ParseManifestFile(manifestPath)
	if err != nil {
		return err
	}

	selectOpts := []homebrew.Option{
		homebrew.WithLogger(logger),
		homebrew.WithStandards(opts.standards...),
	}
	if opts.defaultCompiler != "" {
		family, err := selection.ParseFamily(opts.defaultCompiler)
		if err != nil {
			return err
		}
		selectOpts = append(selectOpts, homebrew.WithDefaultCompiler(family))
	}

	out := cmd.OutOrStdout()
	c, decisions, err := homebrew.SelectCompilerWithDecisions(m.Package, m.Host, selectOpts...)
	if opts.explain {
		printDecisions(out, decisions)
	}
	if err != nil {
		var se *selection.SelectionError
		if errors.As(err, &se) {
			return fmt.Errorf("%w; install a compatible compiler such as a newer GNU GCC", err)
		}
		return err
	}
	fmt.Fprintln(out, c.String())
	return nil
}

func printDecisions(w io.Writer, decisions []selection.Decision) {
	for _, d := range decisions {
		switch {
		case !d.Installed:
			fmt.Fprintf(w, "  %-8s not installed\n", d.Candidate.Compiler)
		case d.ExcludedBy != nil:
			fmt.Fprintf(w, "  %-8s %-10s excluded by %s\n", d.Candidate.Compiler, d.Candidate.Version, d.ExcludedBy)
		default:
			fmt.Fprintf(w, "  %-8s %-10s selected\n", d.Candidate.Compiler, d.Candidate.Version)
		}
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}
