package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Default sampling settings, applied only when the matching profile is
// enabled.
const (
	DefaultBlockRate     = 1
	DefaultMutexFraction = 1
)

// Flags holds CLI flag names for profiling configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	CPU       string
	Heap      string
	Goroutine string
	Block     string
	Mutex     string

	BlockRate     string
	MutexFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:         f,
		BlockRate:     DefaultBlockRate,
		MutexFraction: DefaultMutexFraction,
	}
}

// Config holds output paths and sampling settings. An empty path disables
// that profile.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags Flags

	CPU       string
	Heap      string
	Goroutine string
	Block     string
	Mutex     string

	BlockRate     int
	MutexFraction int
}

// NewConfig returns a new [Config] with default flag names and every profile
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPU:           "cpu-profile",
		Heap:          "heap-profile",
		Goroutine:     "goroutine-profile",
		Block:         "block-profile",
		Mutex:         "mutex-profile",
		BlockRate:     "block-profile-rate",
		MutexFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, c.CPU, "write a CPU profile of the run to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, c.Heap, "write a heap profile to file when the run ends")
	flags.StringVar(&c.Goroutine, c.Flags.Goroutine, c.Goroutine, "write a goroutine profile to file when the run ends")
	flags.StringVar(&c.Block, c.Flags.Block, c.Block, "write a block profile to file when the run ends")
	flags.StringVar(&c.Mutex, c.Flags.Mutex, c.Mutex, "write a mutex profile to file when the run ends")

	flags.IntVar(&c.BlockRate, c.Flags.BlockRate, c.BlockRate,
		"block profile rate in nanoseconds, used with --"+c.Flags.Block)
	flags.IntVar(&c.MutexFraction, c.Flags.MutexFraction, c.MutexFraction,
		"report 1/N mutex contention events, used with --"+c.Flags.Mutex)
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// Path flags keep the default file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, name := range []string{c.Flags.BlockRate, c.Flags.MutexFraction} {
		err := cmd.RegisterFlagCompletionFunc(name, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Enabled reports whether any profile is requested.
func (c *Config) Enabled() bool {
	return c.CPU != "" || c.Heap != "" || c.Goroutine != "" || c.Block != "" || c.Mutex != ""
}

// NewProfiler creates a [Profiler] reading c. Flag values parsed after this
// call are seen by [Profiler.Start].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{config: c}
}
