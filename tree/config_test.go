package tree_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/idldoc/tree"
)

func TestConfigNewProcessor(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args        []string
		expectError bool
	}{
		"defaults": {
			args: []string{"-i", "in"},
		},
		"diff": {
			args: []string{"-d"},
		},
		"diff and list": {
			args:        []string{"-d", "-l"},
			expectError: true,
		},
		"zero jobs": {
			args:        []string{"--jobs=0"},
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := tree.NewConfig()
			cmd := &cobra.Command{Use: "test"}
			cfg.RegisterFlags(cmd.Flags())
			require.NoError(t, cmd.Flags().Parse(tc.args))

			p, err := cfg.NewProcessor(newTransformer())
			if tc.expectError {
				require.ErrorIs(t, err, tree.ErrInvalidOption)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestConfigExtensions(t *testing.T) {
	t.Parallel()

	in := writeTree(t, map[string]string{
		"a.idl":   guardedIDL,
		"b.pidl":  guardedIDL,
		"c.notes": guardedIDL,
	})

	cfg := tree.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--extensions", "pidl, .NOTES", "-l"}))

	var stdout bytes.Buffer

	p, err := cfg.NewProcessor(newTransformer(), tree.WithStdout(&stdout))
	require.NoError(t, err)

	rep, err := p.Run(t.Context(), in, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"b.pidl", "c.notes"}, rep.Transformed)
	assert.Equal(t, []string{"b.pidl", "c.notes"}, rep.Changed)
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := tree.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	fn, ok := cmd.GetFlagCompletionFunc("extensions")
	require.True(t, ok)

	values, directive := fn(cmd, nil, "")
	assert.Equal(t, tree.DefaultExtensions, values)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
