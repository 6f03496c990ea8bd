package transform

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/idldoc/annotate"
	"go.jacobcolvin.com/idldoc/derive"
)

// ErrInvalidConfig indicates an invalid configuration file or flag value.
var ErrInvalidConfig = errors.New("invalid config")

// Flags holds CLI flag names for transform configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	File          string
	DocMarker     string
	ValueKey      string
	Format        string
	GuardOpen     string
	GuardClose    string
	IndentStep    string
	UnitSentinels string
	Derive        string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:         f,
		DocMarker:     annotate.DefaultDocMarker,
		GuardOpen:     annotate.DefaultGuardOpen,
		GuardClose:    annotate.DefaultGuardClose,
		IndentStep:    annotate.DefaultIndentStep,
		UnitSentinels: derive.DefaultUnitSentinels,
		Derive:        true,
	}
}

// Config holds transform settings.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Load] after flag parsing to merge the
// configuration file, then [Config.NewTransformer].
type Config struct {
	Flags         Flags
	File          string
	DocMarker     string
	ValueKey      string
	Format        string
	GuardOpen     string
	GuardClose    string
	UnitSentinels []string
	IndentStep    int
	Derive        bool
}

// NewConfig returns a new [Config] with default flag names and values.
func NewConfig() *Config {
	f := Flags{
		File:          "config",
		DocMarker:     "doc-marker",
		ValueKey:      "value-key",
		Format:        "doc-format",
		GuardOpen:     "guard-open",
		GuardClose:    "guard-close",
		IndentStep:    "indent-step",
		UnitSentinels: "unit-sentinels",
		Derive:        "derive",
	}

	return f.NewConfig()
}

// RegisterFlags adds transform flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.File, c.Flags.File, "c", c.File,
		"YAML configuration file")
	flags.StringVar(&c.DocMarker, c.Flags.DocMarker, c.DocMarker,
		"documentation directive marker")
	flags.StringVar(&c.ValueKey, c.Flags.ValueKey, c.ValueKey,
		`name of the text argument, e.g. "value" for @doc(value="...")`)
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		`formatting parameter appended to directives, e.g. "markdown"`)
	flags.StringVar(&c.GuardOpen, c.Flags.GuardOpen, c.GuardOpen,
		"marker opening a transformed region")
	flags.StringVar(&c.GuardClose, c.Flags.GuardClose, c.GuardClose,
		"marker closing a transformed region")
	flags.IntVar(&c.IndentStep, c.Flags.IndentStep, c.IndentStep,
		"extra spaces before continuation lines of multi-line directives")
	flags.StringSliceVar(&c.UnitSentinels, c.Flags.UnitSentinels, c.UnitSentinels,
		"units values that do not produce a @unit directive")
	flags.BoolVar(&c.Derive, c.Flags.Derive, c.Derive,
		"derive @min, @max, @range and @unit directives from comment text")
}

// RegisterCompletions registers shell completions for transform flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.File,
		cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions([]string{"markdown"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.DocMarker, c.Flags.ValueKey, c.Flags.GuardOpen,
		c.Flags.GuardClose, c.Flags.IndentStep, c.Flags.UnitSentinels,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Load reads the configuration file named by [Config.File], if any, and
// applies its values to every setting whose flag was not changed in flags.
// A nil flags applies every value present in the file.
func (c *Config) Load(flags *pflag.FlagSet) error {
	if c.File == "" {
		return nil
	}

	f, err := ReadFile(c.File)
	if err != nil {
		return err
	}

	unset := func(name string) bool {
		return flags == nil || !flags.Changed(name)
	}

	if f.DocMarker != "" && unset(c.Flags.DocMarker) {
		c.DocMarker = f.DocMarker
	}

	if f.ValueKey != "" && unset(c.Flags.ValueKey) {
		c.ValueKey = f.ValueKey
	}

	if f.Format != "" && unset(c.Flags.Format) {
		c.Format = f.Format
	}

	if f.GuardOpen != "" && unset(c.Flags.GuardOpen) {
		c.GuardOpen = f.GuardOpen
	}

	if f.GuardClose != "" && unset(c.Flags.GuardClose) {
		c.GuardClose = f.GuardClose
	}

	if f.IndentStep != nil && unset(c.Flags.IndentStep) {
		c.IndentStep = *f.IndentStep
	}

	if f.UnitSentinels != nil && unset(c.Flags.UnitSentinels) {
		c.UnitSentinels = f.UnitSentinels
	}

	if f.Derive != nil && unset(c.Flags.Derive) {
		c.Derive = *f.Derive
	}

	return nil
}

// NewTransformer validates c and creates a [Transformer] from it.
func (c *Config) NewTransformer() (*Transformer, error) {
	switch {
	case c.DocMarker == "":
		return nil, fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, c.Flags.DocMarker)
	case c.GuardOpen == "" || c.GuardClose == "":
		return nil, fmt.Errorf("%w: guard markers must not be empty", ErrInvalidConfig)
	case c.GuardOpen == c.GuardClose:
		return nil, fmt.Errorf("%w: guard markers must differ, both are %q", ErrInvalidConfig, c.GuardOpen)
	case c.IndentStep < 0:
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, c.Flags.IndentStep)
	}

	scanner := annotate.New(
		annotate.WithDocMarker(c.DocMarker),
		annotate.WithValueKey(c.ValueKey),
		annotate.WithFormat(c.Format),
		annotate.WithGuardMarkers(c.GuardOpen, c.GuardClose),
		annotate.WithIndentStep(c.IndentStep),
	)

	var deriver *derive.Deriver
	if c.Derive {
		deriver = derive.New(derive.WithUnitSentinels(c.UnitSentinels...))
	}

	return New(scanner, deriver), nil
}
