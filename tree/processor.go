package tree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/idldoc/transform"
)

// Sentinel errors returned by the processor.
var (
	ErrReadInput     = errors.New("read input")
	ErrWriteOutput   = errors.New("write output")
	ErrInvalidPath   = errors.New("invalid path")
	ErrInvalidOption = errors.New("invalid option")
)

// DefaultExtensions are the extensions of files transformed by default.
var DefaultExtensions = []string{".idl"}

// Mode selects what a [Processor] does with transformed files.
type Mode string

const (
	// ModeWrite writes transformed and copied files to the output.
	ModeWrite Mode = "write"
	// ModeDiff prints a unified diff for every file that would change.
	ModeDiff Mode = "diff"
	// ModeList prints the path of every file that would change.
	ModeList Mode = "list"
)

// Report describes the files handled by one [Processor.Run]. Paths are
// relative to the input directory (or the input file name) and sorted.
type Report struct {
	// Transformed lists files passed through the transformer.
	Transformed []string
	// Copied lists files copied unchanged.
	Copied []string
	// Changed lists transformed files whose content changed.
	Changed []string
}

// Processor runs a [transform.Transformer] over files.
//
// Create instances with [NewProcessor] or [Config.NewProcessor].
type Processor struct {
	transformer *transform.Transformer
	stdout      io.Writer
	formatDiff  func(string) string
	mode        Mode
	extensions  []string
	jobs        int
	debounce    time.Duration
}

// Option configures a [Processor].
type Option func(*Processor)

// NewProcessor creates a [Processor] applying t.
func NewProcessor(t *transform.Transformer, opts ...Option) *Processor {
	p := &Processor{
		transformer: t,
		stdout:      os.Stdout,
		mode:        ModeWrite,
		extensions:  DefaultExtensions,
		jobs:        1,
		debounce:    DefaultDebounce,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithMode sets the processing [Mode].
func WithMode(mode Mode) Option {
	return func(p *Processor) {
		p.mode = mode
	}
}

// WithJobs sets how many files are processed concurrently. Values less than 1
// are clamped to 1.
func WithJobs(n int) Option {
	return func(p *Processor) {
		p.jobs = max(n, 1)
	}
}

// WithExtensions sets the extensions (including the dot) of files to
// transform. Matching is case-insensitive.
func WithExtensions(exts ...string) Option {
	return func(p *Processor) {
		p.extensions = exts
	}
}

// WithDebounce sets how long [Processor.Watch] waits after a change before
// re-running.
func WithDebounce(d time.Duration) Option {
	return func(p *Processor) {
		p.debounce = d
	}
}

// WithStdout sets where diffs, listings and single-file output go.
func WithStdout(w io.Writer) Option {
	return func(p *Processor) {
		p.stdout = w
	}
}

// WithDiffFormatter sets a function applied to every diff before printing,
// e.g. to add color.
func WithDiffFormatter(fn func(string) string) Option {
	return func(p *Processor) {
		p.formatDiff = fn
	}
}

type job struct {
	src    string
	dst    string
	rel    string
	perm   fs.FileMode
	target bool
}

type result struct {
	output  string
	diff    string
	job     job
	changed bool
}

// Run processes input, which may be a file or a directory.
//
// A directory is mirrored into the output directory. A single file is always
// transformed; with an empty or "-" output it is written to stdout.
func (p *Processor) Run(ctx context.Context, input, output string) (*Report, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	var jobs []job

	if info.IsDir() {
		jobs, err = p.collect(input, output)
		if err != nil {
			return nil, err
		}
	} else {
		jobs = []job{{
			src:    input,
			dst:    output,
			rel:    filepath.Base(input),
			perm:   info.Mode().Perm(),
			target: true,
		}}
	}

	results := make([]result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs)

	for i, j := range jobs {
		g.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}

			r, err := p.process(j)
			if err != nil {
				return err
			}

			results[i] = r

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	return p.report(results)
}

// collect walks input and plans one job per regular file.
func (p *Processor) collect(input, output string) ([]job, error) {
	if p.mode == ModeWrite && (output == "" || output == "-") {
		return nil, fmt.Errorf("%w: output directory required for directory input", ErrInvalidPath)
	}

	if p.mode == ModeWrite && isNested(input, output) {
		return nil, fmt.Errorf("%w: output %q is inside input %q", ErrInvalidPath, output, input)
	}

	var jobs []job

	err := filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(input, path)
		if err != nil {
			return err
		}

		jobs = append(jobs, job{
			src:    path,
			dst:    filepath.Join(output, rel),
			rel:    rel,
			perm:   info.Mode().Perm(),
			target: p.isTarget(path),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return jobs, nil
}

func (p *Processor) process(j job) (result, error) {
	r := result{job: j}

	if !j.target {
		if p.mode != ModeWrite {
			return r, nil
		}

		slog.Debug("copying file", slog.String("path", j.src))

		return r, copyFile(j.src, j.dst, j.perm)
	}

	src, err := os.ReadFile(j.src)
	if err != nil {
		return r, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	slog.Debug("processing file", slog.String("path", j.src))

	out := p.transformer.Transform(string(src))
	r.changed = out != string(src)

	switch p.mode {
	case ModeDiff:
		if r.changed {
			r.diff = unifiedDiff(j.rel, string(src), out)
		}

	case ModeList:
		// Reported from r.changed.

	case ModeWrite:
		if isStdout(j.dst) {
			r.output = out

			return r, nil
		}

		err := writeFile(j.dst, []byte(out), j.perm)
		if err != nil {
			return r, err
		}
	}

	return r, nil
}

// report builds the [Report] and prints per-file output in path order.
func (p *Processor) report(results []result) (*Report, error) {
	slices.SortFunc(results, func(a, b result) int {
		return strings.Compare(a.job.rel, b.job.rel)
	})

	rep := &Report{}

	for _, r := range results {
		if !r.job.target {
			if p.mode == ModeWrite {
				rep.Copied = append(rep.Copied, r.job.rel)
			}

			continue
		}

		rep.Transformed = append(rep.Transformed, r.job.rel)

		if r.changed {
			rep.Changed = append(rep.Changed, r.job.rel)
		}

		var out string

		switch {
		case p.mode == ModeWrite && isStdout(r.job.dst):
			out = r.output
		case p.mode == ModeDiff && r.diff != "":
			out = r.diff
			if p.formatDiff != nil {
				out = p.formatDiff(out)
			}
		case p.mode == ModeList && r.changed:
			out = r.job.src + "\n"
		}

		if out == "" {
			continue
		}

		_, err := io.WriteString(p.stdout, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	return rep, nil
}

func (p *Processor) isTarget(path string) bool {
	ext := filepath.Ext(path)

	return slices.ContainsFunc(p.extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return writeFile(dst, data, perm)
}

func writeFile(path string, data []byte, perm fs.FileMode) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = os.WriteFile(path, data, perm)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func isStdout(path string) bool {
	return path == "" || path == "-"
}

// isNested reports whether child is strictly below parent.
func isNested(parent, child string) bool {
	rel, err := filepath.Rel(absPath(parent), absPath(child))
	if err != nil {
		return false
	}

	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}
