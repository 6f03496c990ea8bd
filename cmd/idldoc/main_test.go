package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/idldoc/stringtest"
	"go.jacobcolvin.com/idldoc/tree"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts := newOptions()
	cmd := newRootCmd(opts)
	cmd.SetArgs(append([]string{"--log-level=error"}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), errors.Join(err, opts.profiler.Stop())
}

func TestSample(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--sample")
	require.NoError(t, err)

	for _, want := range []string{
		"// Navigation message definitions.\n#ifndef NAV_TYPES_IDL\n",
		"//@verbatim(true)\nmodule nav\n",
		`    @doc("Fix quality reported by the receiver.")` + "\n    enum FixQuality\n",
		"        @doc(\"no position available\")\n        NO_FIX,\n",
		"        @doc(\"standalone solution\")\n        GPS_FIX,\n",
		`        @range(min=-90, max=90) @unit("degrees")` + "\n        double latitude;\n",
		`        @unit("meters")` + "\n        double altitude;\n",
		`        @min(0)` + "\n        float accuracy;\n",
		`    @max(360) @unit("degrees")` + "\n    typedef double Heading;\n",
		`    @doc("")` + "\n    struct Empty {\n",
		"#endif // NAV_TYPES_IDL\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSampleWithoutDerive(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--sample", "--derive=false", "--doc-marker=@comment")
	require.NoError(t, err)

	assert.NotContains(t, out, "@range(")
	assert.NotContains(t, out, "@doc(")
	assert.Contains(t, out, `@comment("padding only")`)
}

func TestSchemaCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "idldoc configuration", schema["title"])
}

func TestRunFileToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "types.idl")
	cfg := filepath.Join(dir, "idldoc.yaml")

	require.NoError(t, os.WriteFile(src, []byte(stringtest.JoinLF(
		"BEGIN",
		"long id; // identifier",
		"END",
		"",
	)), 0o644))
	require.NoError(t, os.WriteFile(cfg, []byte(stringtest.JoinLF(
		`guardOpen: "BEGIN"`,
		`guardClose: "END"`,
		"valueKey: value",
		"",
	)), 0o644))

	out, err := execute(t, "-i", src, "-c", cfg)
	require.NoError(t, err)

	assert.Equal(t, stringtest.JoinLF(
		"BEGIN",
		`@doc(value="identifier")`,
		"long id;",
		"END",
		"",
	), out)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	_, err := execute(t)
	require.ErrorIs(t, err, tree.ErrInvalidPath)

	_, err = execute(t, "-i", t.TempDir(), "-d", "-l")
	require.ErrorIs(t, err, tree.ErrInvalidOption)
}

// CPU profiling is process-wide, so this test does not run in parallel.
func TestRunWithProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	heap := filepath.Join(dir, "heap.prof")

	out, err := execute(t, "--sample", "--cpu-profile", cpu, "--heap-profile", heap)
	require.NoError(t, err)

	assert.Contains(t, out, `@doc("no position available")`)
	assert.FileExists(t, cpu)
	assert.FileExists(t, heap)
}
