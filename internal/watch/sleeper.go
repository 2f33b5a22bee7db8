// Package watch provides a clock.Sleeper that returns early when a matching
// file appears in the watched directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"edsmover/internal/clock"
	"edsmover/internal/logging"
)

// Sleeper sleeps like clock.Real but wakes as soon as a file whose base name
// satisfies match is created in the watched directory. Arrivals while nobody
// sleeps are remembered, so the next Sleep returns immediately.
type Sleeper struct {
	watcher *fsnotify.Watcher
	match   func(name string) bool
	logger  *slog.Logger
	wake    chan struct{}

	closeOnce sync.Once
	done      chan struct{}
}

var _ clock.Sleeper = (*Sleeper)(nil)

// NewSleeper starts watching dir.
func NewSleeper(dir string, match func(name string) bool, logger *slog.Logger) (*Sleeper, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	s := &Sleeper{
		watcher: w,
		match:   match,
		logger:  logging.NewComponentLogger(logger, "watch"),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

func (s *Sleeper) pump() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if s.match != nil && !s.match(name) {
				continue
			}
			s.logger.Debug("candidate arrived", logging.String("file", name))
			select {
			case s.wake <- struct{}{}:
			default:
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logging.WarnWithContext(s.logger, "directory watch error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "new files are picked up at the next interval instead"),
			)
		}
	}
}

// Sleep blocks for d, until a matching file arrives, or until ctx is done.
func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	case <-s.wake:
		return nil
	}
}

// Close stops watching. Sleep keeps working as a plain timer afterwards.
func (s *Sleeper) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.watcher.Close()
		<-s.done
	})
	return err
}
