package tree_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/idldoc/tree"
)

type runResult struct {
	report *tree.Report
	err    error
}

func TestWatch(t *testing.T) {
	t.Parallel()

	in := writeTree(t, map[string]string{"a.idl": guardedIDL})
	out := t.TempDir()

	p := tree.NewProcessor(newTransformer(), tree.WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	runs := make(chan runResult, 16)
	done := make(chan error, 1)

	go func() {
		done <- p.Watch(ctx, in, out, func(rep *tree.Report, err error) {
			runs <- runResult{report: rep, err: err}
		})
	}()

	waitFor := func(match func(*tree.Report) bool) {
		t.Helper()

		deadline := time.After(10 * time.Second)

		for {
			select {
			case r := <-runs:
				require.NoError(t, r.err)

				if match(r.report) {
					return
				}

			case err := <-done:
				require.FailNow(t, "watch stopped early", "error: %v", err)

			case <-deadline:
				require.FailNow(t, "timed out waiting for run")
			}
		}
	}

	waitFor(func(rep *tree.Report) bool {
		return slices.Equal(rep.Transformed, []string{"a.idl"})
	})
	assert.Equal(t, guardedWant, readFile(t, filepath.Join(out, "a.idl")))

	require.NoError(t, os.MkdirAll(filepath.Join(in, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.idl"), []byte(guardedIDL), 0o644))

	waitFor(func(rep *tree.Report) bool {
		return slices.Contains(rep.Transformed, "b.idl")
	})
	assert.Equal(t, guardedWant, readFile(t, filepath.Join(out, "b.idl")))

	// Files in directories created after the watch started are picked up.
	require.NoError(t, os.WriteFile(filepath.Join(in, "sub", "c.idl"), []byte(guardedIDL), 0o644))

	waitFor(func(rep *tree.Report) bool {
		return slices.Contains(rep.Transformed, filepath.Join("sub", "c.idl"))
	})

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		require.FailNow(t, "watch did not stop")
	}
}

func TestWatchErrors(t *testing.T) {
	t.Parallel()

	in := writeTree(t, map[string]string{"a.idl": guardedIDL})

	tcs := map[string]struct {
		err    error
		input  string
		output string
	}{
		"file input": {
			input:  filepath.Join(in, "a.idl"),
			output: t.TempDir(),
			err:    tree.ErrInvalidPath,
		},
		"output is input": {
			input:  in,
			output: in,
			err:    tree.ErrInvalidPath,
		},
		"output inside input": {
			input:  in,
			output: filepath.Join(in, "out"),
			err:    tree.ErrInvalidPath,
		},
		"missing input": {
			input:  filepath.Join(in, "missing"),
			output: t.TempDir(),
			err:    tree.ErrReadInput,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := tree.NewProcessor(newTransformer())

			err := p.Watch(t.Context(), tc.input, tc.output, func(*tree.Report, error) {
				t.Error("unexpected run")
			})
			require.ErrorIs(t, err, tc.err)
		})
	}
}
