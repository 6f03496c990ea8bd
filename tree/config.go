package tree

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/idldoc/transform"
)

// Flags holds CLI flag names for tree processing, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Input      string
	Output     string
	Diff       string
	List       string
	Watch      string
	Jobs       string
	Extensions string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for tree processing.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProcessor] to create a [Processor].
type Config struct {
	Flags      Flags
	Input      string
	Output     string
	Extensions []string
	Jobs       int
	Diff       bool
	List       bool
	Watch      bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Input:      "input",
		Output:     "output",
		Diff:       "diff",
		List:       "list",
		Watch:      "watch",
		Jobs:       "jobs",
		Extensions: "extensions",
	}

	return f.NewConfig()
}

// RegisterFlags adds tree processing flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Input, c.Flags.Input, "i", "",
		"input file or directory")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "",
		"output file or directory (stdout when empty or - for file input)")
	flags.BoolVarP(&c.Diff, c.Flags.Diff, "d", false,
		"diff mode: show changes without writing")
	flags.BoolVarP(&c.List, c.Flags.List, "l", false,
		"list mode: only list files that would change")
	flags.BoolVarP(&c.Watch, c.Flags.Watch, "w", false,
		"re-run whenever a file below the input directory changes")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", runtime.GOMAXPROCS(0),
		"number of files processed concurrently")
	flags.StringSliceVar(&c.Extensions, c.Flags.Extensions, DefaultExtensions,
		"extensions of files to transform; other files are copied")
}

// RegisterCompletions registers shell completions for tree processing flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Extensions,
		cobra.FixedCompletions(DefaultExtensions, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Extensions, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Jobs,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Jobs, err)
	}

	return nil
}

// NewProcessor creates a [Processor] applying t, using this [Config].
func (c *Config) NewProcessor(t *transform.Transformer, opts ...Option) (*Processor, error) {
	if c.Diff && c.List {
		return nil, fmt.Errorf("%w: --%s and --%s are mutually exclusive",
			ErrInvalidOption, c.Flags.Diff, c.Flags.List)
	}

	if c.Jobs < 1 {
		return nil, fmt.Errorf("%w: --%s must be at least 1", ErrInvalidOption, c.Flags.Jobs)
	}

	mode := ModeWrite

	switch {
	case c.Diff:
		mode = ModeDiff
	case c.List:
		mode = ModeList
	}

	exts := make([]string, 0, len(c.Extensions))

	for _, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		exts = append(exts, ext)
	}

	base := []Option{
		WithMode(mode),
		WithJobs(c.Jobs),
		WithExtensions(exts...),
	}

	return NewProcessor(t, append(base, opts...)...), nil
}
