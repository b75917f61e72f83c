package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/strager/smallc/ast"
	"github.com/strager/smallc/build"
	"github.com/strager/smallc/config"
	"github.com/strager/smallc/diag"
)

// errDiagnostics makes the process exit non-zero after diagnostics have
// already been printed.
var errDiagnostics = errors.New("semantic errors found")

type options struct {
	configFile string
	logLevel   string
	scopes     bool
	noHeader   bool
	maxErrors  int
	sort       bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "smallc",
		Short: "Build small-C syntax trees and symbol tables",
		Long: `smallc reads a parse tree description written as s-expressions,
builds the abstract syntax tree and the scoped symbol table, and reports
redeclaration and redefinition errors.

Commands:
    dump <file>     Print the syntax tree
    scopes <file>   Print the scope tree
    check <file>    Report semantic errors only`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().IntVar(&opts.maxErrors, "max-errors", 0, "stop listing errors after this many (0 = unlimited)")
	root.PersistentFlags().BoolVar(&opts.sort, "sort", false, "list errors by position")

	dump := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args[0], dumpTree)
		},
	}
	dump.Flags().BoolVar(&opts.scopes, "scopes", false, "also print the scope tree")
	dump.Flags().BoolVar(&opts.noHeader, "no-header", false, "omit the AST: line")

	scopes := &cobra.Command{
		Use:   "scopes <file>",
		Short: "Print the scope tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args[0], dumpScopes)
		},
	}

	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Report semantic errors only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args[0], nil)
		},
	}

	root.AddCommand(dump, scopes, check)
	return root
}

// settings merges the config file with flags given on the command line.
func settings(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("max-errors") {
		cfg.Diagnostics.MaxErrors = opts.maxErrors
	}
	if flags.Changed("sort") {
		cfg.Diagnostics.Sort = opts.sort
	}
	if flags.Changed("scopes") {
		cfg.Dump.Scopes = opts.scopes
	}
	if flags.Changed("no-header") {
		cfg.Dump.Header = !opts.noHeader
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type printFunc func(w io.Writer, cfg *config.Config, res *build.Result) error

func run(cmd *cobra.Command, opts *options, path string, show printFunc) error {
	cfg, err := settings(cmd, opts)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file %s: %w", path, err)
	}
	logger.Debug("read tree description", "file", path, "bytes", len(source))

	var errs diag.List
	res, err := build.BuildString(string(source), &errs)
	if err != nil {
		var violation *ast.StructuralViolation
		if errors.As(err, &violation) {
			logger.Error("tree construction aborted", "file", path, "parent", violation.Parent, "child", violation.Child)
		}
		return err
	}
	logger.Info("built tree", "file", path, "errors", errs.Len())

	out := cmd.OutOrStdout()
	if show != nil {
		if err := show(out, cfg, res); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}

	if errs.Len() == 0 {
		return nil
	}
	items := errs.Items()
	if cfg.Diagnostics.Sort {
		items = errs.Sorted()
	}
	// check reports on stdout; the dumps keep stdout for the tree.
	w := cmd.ErrOrStderr()
	if show == nil {
		w = out
	}
	if err := diag.Fprint(w, items, cfg.Diagnostics.MaxErrors); err != nil {
		return err
	}
	return fmt.Errorf("%w: %d", errDiagnostics, errs.Len())
}

func dumpTree(w io.Writer, cfg *config.Config, res *build.Result) error {
	var err error
	if cfg.Dump.Header {
		_, err = io.WriteString(w, res.Tree.String())
	} else {
		err = ast.Fprint(w, res.Tree.Root, 1)
	}
	if err != nil || !cfg.Dump.Scopes {
		return err
	}
	_, err = io.WriteString(w, "\n"+res.Symbols.String())
	return err
}

func dumpScopes(w io.Writer, _ *config.Config, res *build.Result) error {
	_, err := io.WriteString(w, res.Symbols.String())
	return err
}
