// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the jsonfmt command-line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/nachofregeiro/jsonformatter/engine"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidInput is reported by the CLI when one or more of its inputs could
// not be processed. The individual failures have already been printed.
var ErrInvalidInput = errors.New("invalid input")

// stdinName is the name used in diagnostics for input read from stdin.
const stdinName = "<stdin>"

// New returns the jsonfmt CLI, configured by opts.
func New(opts ...Option) *CLI {
	cli := &CLI{
		Command: cobra.Command{
			Use:           "jsonfmt",
			Short:         "Format, minify, validate, and measure JSON text",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(cli)
	}
	cli.init()
	return cli
}

// Option is a CLI option.
type Option func(*CLI)

// WithIO replaces the standard input, output, and error streams of the CLI.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(cli *CLI) {
		cli.stdin, cli.stdout, cli.stderr = stdin, stdout, stderr
	}
}

// CLI is the jsonfmt command-line tool.
type CLI struct {
	cobra.Command

	stdin          io.Reader
	stdout, stderr io.Writer
	logger         log.Logger

	// flags
	config   string
	indent   int
	tab      bool
	sortKeys bool
	out      string
	parallel int
	verbose  bool
}

// An operation is the work a subcommand does on the text of one input.
// It returns the text to print for the input, if any.
type operation func(cli *CLI, text string) (string, error)

func (cli *CLI) init() {
	pf := cli.PersistentFlags()
	pf.StringVar(&cli.config, "config", "", "Read default settings from this YAML file")
	pf.StringVarP(&cli.out, "out", "o", "", "Write the result to the specified filepath")
	pf.IntVarP(&cli.parallel, "parallel", "p", runtime.GOMAXPROCS(0), "Max inputs processed concurrently")
	pf.BoolVarP(&cli.verbose, "verbose", "v", false, "Log diagnostics for each input")

	cli.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cli.initLogger()
		return cli.applyConfig(cmd.Flags())
	}

	format := cli.subcommand("format", "Pretty-print JSON with indentation", formatText)
	format.Flags().IntVarP(&cli.indent, "indent", "i", engine.DefaultOptions.IndentWidth, "Spaces per indentation level")
	format.Flags().BoolVar(&cli.tab, "tab", false, "Indent with tabs instead of spaces")
	format.Flags().BoolVarP(&cli.sortKeys, "sort-keys", "s", false, "Sort the members of every object by key")

	cli.subcommand("minify", "Remove all insignificant whitespace from JSON", minifyText)
	cli.subcommand("validate", "Check that the input is well-formed JSON", validateText)
	cli.subcommand("stats", "Report the size of the input text", statsText)
}

func (cli *CLI) subcommand(name, short string, op operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:     name + " [FILE ...]",
		Short:   short,
		Example: fmt.Sprintf("jsonfmt %s data.json\ncat data.json | jsonfmt %s", name, name),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.run(name, op, args)
		},
	}
	cli.AddCommand(cmd)
	return cmd
}

func (cli *CLI) initLogger() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(cli.stderr))
	if cli.verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowWarn())
	}
	cli.logger = log.With(logger, "ts", log.DefaultTimestampUTC)
}

// applyConfig loads the config file, if one was named, and uses its settings
// for each flag not explicitly set on the command line.
func (cli *CLI) applyConfig(flags *pflag.FlagSet) error {
	if cli.config != "" {
		cfg, err := LoadConfig(cli.config)
		if err != nil {
			return err
		}
		level.Debug(cli.logger).Log("msg", "loaded config", "path", cli.config)
		if cfg.Indent != nil && !flags.Changed("indent") {
			cli.indent = *cfg.Indent
		}
		if cfg.SortKeys != nil && !flags.Changed("sort-keys") {
			cli.sortKeys = *cfg.SortKeys
		}
		if cfg.Parallel != nil && !flags.Changed("parallel") {
			cli.parallel = *cfg.Parallel
		}
	}
	if cli.indent < 0 {
		return fmt.Errorf("invalid indent width %d", cli.indent)
	}
	if cli.parallel < 1 {
		return fmt.Errorf("invalid parallelism %d", cli.parallel)
	}
	return nil
}

func (cli *CLI) options() engine.Options {
	opts := engine.Options{IndentWidth: cli.indent, SortKeys: cli.sortKeys}
	if cli.tab {
		opts.IndentWidth = 0
	}
	return opts
}

func formatText(cli *CLI, text string) (string, error) {
	return engine.Format(text, cli.options())
}

func minifyText(_ *CLI, text string) (string, error) {
	return engine.Minify(text)
}

func validateText(_ *CLI, text string) (string, error) {
	return "", engine.Validate(text)
}

func statsText(_ *CLI, text string) (string, error) {
	st := engine.Stats(text)
	return fmt.Sprintf("%d characters, %d lines, %s", st.Characters, st.Lines, st.Size), nil
}

// An input is the contents of one named input, or the error reading it.
type input struct {
	name string
	text string
	err  error
}

// A result is the outcome of applying an operation to one input.
type result struct {
	name string
	out  string
	err  error
}

func (cli *CLI) run(cmdName string, op operation, args []string) error {
	inputs := cli.readInputs(args)
	results, err := cli.process(op, inputs)
	if err != nil {
		return err
	}

	var ok int
	for _, r := range results {
		if r.err == nil {
			ok++
		}
	}

	// The outfile is left untouched unless there is something to write to it.
	out := cli.stdout
	var f *os.File
	if cli.out != "" && ok > 0 {
		if f, err = os.Create(cli.out); err != nil {
			return fmt.Errorf("create outfile (%v): %w", cli.out, err)
		}
		out = f
	}

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintln(cli.stderr, describe(r.name, r.err))
			continue
		}
		switch cmdName {
		case "format", "minify":
			_, err = fmt.Fprintln(out, r.out)
		case "validate":
			_, err = fmt.Fprintf(out, "%s: valid\n", r.name)
		default:
			_, err = fmt.Fprintf(out, "%s: %s\n", r.name, r.out)
		}
		if err != nil {
			if f != nil {
				f.Close()
			}
			return fmt.Errorf("write result: %w", err)
		}
	}

	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close outfile: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs failed", ErrInvalidInput, failed, len(results))
	}
	return nil
}

// readInputs reads the named inputs. An empty list or the name "-" denotes
// standard input, which is read at most once.
func (cli *CLI) readInputs(args []string) []input {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var inputs []input
	var stdinRead bool
	for _, arg := range args {
		if arg == "-" {
			if stdinRead {
				inputs = append(inputs, input{name: stdinName, err: errors.New("standard input named more than once")})
				continue
			}
			stdinRead = true
			data, err := io.ReadAll(cli.stdin)
			inputs = append(inputs, input{name: stdinName, text: string(data), err: err})
			continue
		}
		data, err := os.ReadFile(arg)
		inputs = append(inputs, input{name: arg, text: string(data), err: err})
	}
	return inputs
}

// process applies op to each input concurrently on a pool of at most
// cli.parallel workers. The results are in the same order as the inputs.
func (cli *CLI) process(op operation, inputs []input) ([]result, error) {
	pool, err := ants.NewPool(cli.parallel)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]result, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		results[i] = result{name: in.name, err: in.err}
		if in.err != nil {
			continue
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			start := time.Now()
			out, err := op(cli, in.text)
			results[i].out, results[i].err = out, err
			level.Debug(cli.logger).Log("msg", "processed input", "name", in.name,
				"bytes", len(in.text), "ok", err == nil, "elapsed", time.Since(start))
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit %q: %w", in.name, err)
		}
	}
	wg.Wait()
	return results, nil
}

// describe renders a diagnostic for an input that failed. Located failures
// are reported as name:line:column: message.
func describe(name string, err error) string {
	var f *engine.Failure
	if errors.As(err, &f) && f.HasLocation() {
		return fmt.Sprintf("%s:%d:%d: %s", name, f.Line, f.Column, f.Message)
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return fmt.Sprintf("%s: %v", name, perr.Err)
	}
	return fmt.Sprintf("%s: %v", name, err)
}
