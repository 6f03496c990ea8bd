package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// ErrProfile indicates that a profile could not be started or written.
var ErrProfile = errors.New("profile")

// Profiler runs one profiling session.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	config  *Config
	cpuFile *os.File
	mu      sync.Mutex
	started bool
}

// Start switches on the requested sampling and starts CPU profiling. It does
// nothing when no profile is enabled or the session already started.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || !p.config.Enabled() {
		return nil
	}

	if p.config.CPU != "" {
		f, err := os.Create(p.config.CPU) //nolint:gosec // Profile path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("%w: cpu: %w", ErrProfile, err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return errors.Join(fmt.Errorf("%w: cpu: %w", ErrProfile, err), f.Close())
		}

		p.cpuFile = f
	}

	if p.config.Block != "" {
		runtime.SetBlockProfileRate(p.config.BlockRate)
	}

	if p.config.Mutex != "" {
		runtime.SetMutexProfileFraction(p.config.MutexFraction)
	}

	p.started = true

	return nil
}

// Stop ends the session: it stops CPU profiling, writes the snapshot
// profiles and switches block and mutex sampling back off. Every profile is
// attempted even if an earlier one fails. Stop without a started session
// does nothing, so it is safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}

	p.started = false

	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: cpu: %w", ErrProfile, err))
		} else {
			slog.Debug("wrote profile", slog.String("profile", "cpu"), slog.String("path", p.config.CPU))
		}

		p.cpuFile = nil
	}

	if p.config.Heap != "" {
		// Up to date statistics for the heap snapshot.
		runtime.GC()
	}

	for _, s := range []struct{ name, path string }{
		{"heap", p.config.Heap},
		{"goroutine", p.config.Goroutine},
		{"block", p.config.Block},
		{"mutex", p.config.Mutex},
	} {
		if s.path == "" {
			continue
		}

		err := writeProfile(s.name, s.path)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		slog.Debug("wrote profile", slog.String("profile", s.name), slog.String("path", s.path))
	}

	if p.config.Block != "" {
		runtime.SetBlockProfileRate(0)
	}

	if p.config.Mutex != "" {
		runtime.SetMutexProfileFraction(0)
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("%w: unknown profile %q", ErrProfile, name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProfile, name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: %s: %w", ErrProfile, name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProfile, name, err)
	}

	return nil
}
