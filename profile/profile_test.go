package profile_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/idldoc/profile"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	assert.False(t, cfg.Enabled())
	assert.Equal(t, profile.DefaultBlockRate, cfg.BlockRate)
	assert.Equal(t, profile.DefaultMutexFraction, cfg.MutexFraction)
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--goroutine-profile=goroutine.prof",
		"--block-profile=block.prof",
		"--mutex-profile=mutex.prof",
		"--block-profile-rate=100",
		"--mutex-profile-fraction=10",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "cpu.prof", cfg.CPU)
	assert.Equal(t, "heap.prof", cfg.Heap)
	assert.Equal(t, "goroutine.prof", cfg.Goroutine)
	assert.Equal(t, "block.prof", cfg.Block)
	assert.Equal(t, "mutex.prof", cfg.Mutex)
	assert.Equal(t, 100, cfg.BlockRate)
	assert.Equal(t, 10, cfg.MutexFraction)
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	err := cfg.RegisterCompletions(cmd)
	require.NoError(t, err)

	for _, flag := range []string{"block-profile-rate", "mutex-profile-fraction"} {
		completionFn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, flag)

		values, directive := completionFn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Nil(t, values)
	}
}

func TestProfilerDisabled(t *testing.T) {
	t.Parallel()

	p := profile.NewConfig().NewProfiler()

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

// CPU profiling is process-wide, so this test does not run in parallel.
func TestProfilerCPU(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	p := cfg.NewProfiler()

	// Values set after NewProfiler are used.
	cfg.CPU = filepath.Join(dir, "cpu.prof")

	require.NoError(t, p.Start())
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())

	assert.FileExists(t, cfg.CPU)
}

func TestProfilerCPUCreateError(t *testing.T) {
	cfg := profile.NewConfig()
	cfg.CPU = filepath.Join(t.TempDir(), "missing", "cpu.prof")

	p := cfg.NewProfiler()

	err := p.Start()
	require.ErrorIs(t, err, profile.ErrProfile)

	require.NoError(t, p.Stop())
	assert.NoFileExists(t, cfg.CPU)
}

func TestProfilerSnapshots(t *testing.T) {
	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.Heap = filepath.Join(dir, "heap.prof")
	cfg.Goroutine = filepath.Join(dir, "goroutine.prof")
	cfg.Block = filepath.Join(dir, "block.prof")
	cfg.Mutex = filepath.Join(dir, "mutex.prof")

	p := cfg.NewProfiler()

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	for _, path := range []string{cfg.Heap, cfg.Goroutine, cfg.Block, cfg.Mutex} {
		assert.FileExists(t, path)
	}
}

func TestProfilerSnapshotErrorKeepsGoing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg := profile.NewConfig()
	cfg.Heap = filepath.Join(dir, "missing", "heap.prof")
	cfg.Goroutine = filepath.Join(dir, "goroutine.prof")

	p := cfg.NewProfiler()

	require.NoError(t, p.Start())

	err := p.Stop()
	require.ErrorIs(t, err, profile.ErrProfile)
	assert.Contains(t, err.Error(), "heap")
	assert.FileExists(t, cfg.Goroutine)
}
