package tree

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long [Processor.Watch] waits for further events
// before re-running. Editors often save a file in several steps.
// See [WithDebounce].
const DefaultDebounce = 100 * time.Millisecond

// Watch runs the processor once, then again after every change below the
// input directory, until ctx is done. onRun receives the outcome of every
// run; a failed run does not stop watching.
//
// The output must not be the input directory or lie inside it.
func (p *Processor) Watch(ctx context.Context, input, output string, onRun func(*Report, error)) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: watch needs an input directory", ErrInvalidPath)
	}

	if p.mode == ModeWrite && (absPath(input) == absPath(output) || isNested(input, output)) {
		return fmt.Errorf("%w: output %q must be outside watched input %q", ErrInvalidPath, output, input)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	err = addTree(watcher, input)
	if err != nil {
		return err
	}

	onRun(p.Run(ctx, input, output))

	var timer *time.Timer

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					err := addTree(watcher, event.Name)
					if err != nil {
						slog.Warn("watching new directory",
							slog.String("path", event.Name),
							slog.Any("error", err),
						)
					}
				}
			}

			slog.Debug("file changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(p.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			onRun(p.Run(ctx, input, output))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("file watcher", slog.Any("error", err))
		}
	}
}

// addTree watches root and every directory below it.
func addTree(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("%w: watching %s: %w", ErrReadInput, root, err)
	}

	return nil
}
