// Command idldoc rewrites IDL comments into @doc directives.
//
// Inside regions delimited by guard markers (by default #ifndef and #endif),
// full-line, inline and block comments become @doc("...") directives placed
// before the declaration they describe. Comments mentioning maxInclusive=,
// minInclusive= or units= additionally produce @range, @max, @min and @unit
// directives. Lines outside guarded regions are left untouched.
//
// # Usage
//
//	idldoc -i <file.idl|directory> [-o <file|directory>] [flags]
//	idldoc --sample
//	idldoc schema
//
// A directory input is mirrored into the output directory: files with a
// matching extension are transformed and every other file is copied. A file
// input is written to the output file, or to stdout when no output is given.
//
// # Modes
//
//	-d   print a unified diff for every file that would change
//	-l   print the path of every file that would change
//	-w   re-run whenever a file below the input directory changes
//
// Settings may also be read from a YAML file given with -c. Flags set on the
// command line take precedence over the file.
//
// Profiles of a run are written with --cpu-profile, --heap-profile,
// --goroutine-profile, --block-profile and --mutex-profile.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/idldoc/log"
	"go.jacobcolvin.com/idldoc/profile"
	"go.jacobcolvin.com/idldoc/transform"
	"go.jacobcolvin.com/idldoc/tree"
	"go.jacobcolvin.com/idldoc/version"
)

//go:embed sample.idl
var sample string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	opts := newOptions()

	err := newRootCmd(opts).ExecuteContext(ctx)

	stop()

	err = errors.Join(err, opts.profiler.Stop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type options struct {
	log       *log.Config
	profile   *profile.Config
	profiler  *profile.Profiler
	transform *transform.Config
	tree      *tree.Config
	sample    bool
}

func newOptions() *options {
	opts := &options{
		log:       log.NewConfig(),
		profile:   profile.NewConfig(),
		transform: transform.NewConfig(),
		tree:      tree.NewConfig(),
	}

	opts.profiler = opts.profile.NewProfiler()

	return opts
}

// newRootCmd builds the root command. The caller stops opts.profiler once the
// command returns.
func newRootCmd(opts *options) *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "idldoc -i <file.idl|directory> [-o <file|directory>]",
		Short: "Rewrite IDL comments as @doc directives",
		Long: `idldoc rewrites comments inside guarded regions of IDL files into @doc
directives, and derives @range, @min, @max and @unit directives from
maxInclusive=, minInclusive= and units= values found in those comments.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := opts.log.SetDefault(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return opts.profiler.Start()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	opts.log.RegisterFlags(rootCmd.PersistentFlags())
	opts.profile.RegisterFlags(rootCmd.PersistentFlags())
	opts.transform.RegisterFlags(flags)
	opts.tree.RegisterFlags(flags)
	flags.BoolVar(&opts.sample, "sample", false,
		"transform a built-in sample and print the result")

	for _, register := range []func(*cobra.Command) error{
		opts.log.RegisterCompletions,
		opts.profile.RegisterCompletions,
		opts.transform.RegisterCompletions,
		opts.tree.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := transform.Schema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", tree.ErrWriteOutput, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
			if err != nil {
				return fmt.Errorf("%w: %w", tree.ErrWriteOutput, err)
			}

			return nil
		},
	}
}

func run(cmd *cobra.Command, opts *options) error {
	err := opts.transform.Load(cmd.Flags())
	if err != nil {
		return err
	}

	t, err := opts.transform.NewTransformer()
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()

	if opts.sample {
		_, err := io.WriteString(stdout, t.Transform(sample))
		if err != nil {
			return fmt.Errorf("%w: %w", tree.ErrWriteOutput, err)
		}

		return nil
	}

	if opts.tree.Input == "" {
		return fmt.Errorf("%w: --%s is required", tree.ErrInvalidPath, opts.tree.Flags.Input)
	}

	procOpts := []tree.Option{tree.WithStdout(stdout)}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		procOpts = append(procOpts, tree.WithDiffFormatter(colorDiff))
	}

	p, err := opts.tree.NewProcessor(t, procOpts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if opts.tree.Watch {
		return p.Watch(ctx, opts.tree.Input, opts.tree.Output, func(rep *tree.Report, err error) {
			if err != nil {
				slog.Error("run failed", slog.Any("error", err))

				return
			}

			logReport(rep)
		})
	}

	rep, err := p.Run(ctx, opts.tree.Input, opts.tree.Output)
	if err != nil {
		return err
	}

	logReport(rep)

	return nil
}

func logReport(rep *tree.Report) {
	slog.Info("done",
		slog.Int("transformed", len(rep.Transformed)),
		slog.Int("changed", len(rep.Changed)),
		slog.Int("copied", len(rep.Copied)),
	)
}
