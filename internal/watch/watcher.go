// SPDX-License-Identifier: MPL-2.0

// Package watch recompiles stylesheets when Sass sources change.
//
// A Watcher monitors one or more root directories (the source directory and
// the load paths) and invokes a callback once the filesystem has been quiet
// for the debounce period. Events within the window are coalesced so the
// callback fires once with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is unset.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrNoRoots is returned by New when no root directory is given.
	ErrNoRoots = errors.New("watch: no directory to watch")

	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")

	// defaultPatterns select the stylesheets dart-sass reads. Plain CSS is
	// left out: compiled output usually lands next to the sources.
	defaultPatterns = []string{"**/*.scss", "**/*.sass"}

	// defaultIgnores are never watched, whatever Config.Ignore holds.
	defaultIgnores = []string{
		"**/.git/**",
		"**/node_modules/**",
		"**/.sass-cache/**",
		"**/*.swp",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are the directories to watch recursively. A file is replaced
		// by its directory.
		Roots []string

		// Patterns are doublestar globs, relative to a root, selecting the
		// files that trigger a recompile. Empty means Sass sources.
		Patterns []string

		// Ignore are extra doublestar globs merged with the built-in ignores.
		Ignore []string

		// Debounce is the quiet period before OnChange fires. Zero or
		// negative values fall back to DefaultDebounce.
		Debounce time.Duration

		// OnChange receives the sorted set of changed absolute paths. A nil
		// callback is a no-op. Its errors are logged, not returned.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives watcher diagnostics; the context logger when nil.
		Logger *log.Logger
	}

	// Watcher monitors the roots and fires a debounced callback when a
	// matching file changes. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		roots    []string
		patterns []string
		ignores  []string
		debounce time.Duration
		started  atomic.Bool
	}
)

// New creates a Watcher and registers every non-ignored directory under the
// roots.
func New(cfg Config) (*Watcher, error) {
	roots, err := resolveRoots(cfg.Roots)
	if err != nil {
		return nil, err
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}
	if err := validatePatterns(patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		roots:    roots,
		patterns: slices.Clone(patterns),
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		debounce: debounce,
	}

	for _, root := range roots {
		if err := w.addDirectories(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Roots returns the absolute directories being watched.
func (w *Watcher) Roots() []string { return slices.Clone(w.roots) }

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	logger := w.cfg.Logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}

	var (
		mu       sync.Mutex
		pending  = make(map[string]struct{})
		timer    *time.Timer
		stopped  bool
		running  atomic.Bool
		inFlight sync.WaitGroup
	)

	// fire runs on the AfterFunc goroutine. Run waits for it before
	// returning, so no callback outlives the watcher. A compile still
	// running when the timer fires postpones the new one.
	fire := func() {
		mu.Lock()
		if stopped || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		if !running.CompareAndSwap(false, true) {
			logger.Debug("previous compile still running, postponing")
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		inFlight.Add(1)
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		defer inFlight.Done()
		defer running.Store(false)

		if len(changed) == 0 || w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			logger.Warn("recompile failed", "error", err)
		}
	}

	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inFlight.Wait()
		if err := w.fsw.Close(); err != nil {
			logger.Warn("failed to close watcher", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			// New directories extend the recursive watch.
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name, logger)
			}

			rel, ok := w.relative(evt.Name)
			if !ok || w.isIgnored(rel) || !w.matches(rel) {
				continue
			}
			logger.Debug("change detected", "path", evt.Name, "op", evt.Op.String())

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			logger.Warn("fsnotify error", "error", err)
		}
	}
}

// resolveRoots makes the roots absolute, replaces files by their directory
// and drops duplicates.
func resolveRoots(paths []string) ([]string, error) {
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		if !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		if !slices.Contains(roots, abs) {
			roots = append(roots, abs)
		}
	}
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	return roots, nil
}

// addDirectories registers root and every non-ignored directory below it.
// Pattern filtering happens when events arrive.
func (w *Watcher) addDirectories(root string) error {
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped rather than aborting the walk.
			return nil //nolint:nilerr // intentional skip of inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}
		if rel, ok := w.relative(path); ok && rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk %q: %w", root, walkErr)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string, logger *log.Logger) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if rel, ok := w.relative(path); ok && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
}

// relative returns path relative to the innermost root containing it.
func (w *Watcher) relative(path string) (string, bool) {
	best := ""
	for _, root := range w.roots {
		if (path == root || strings.HasPrefix(path, root+string(filepath.Separator))) && len(root) > len(best) {
			best = root
		}
	}
	if best == "" {
		return "", false
	}
	rel, err := filepath.Rel(best, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) isIgnored(rel string) bool { return matchAny(w.ignores, rel) }

func (w *Watcher) matches(rel string) bool { return matchAny(w.patterns, rel) }

func matchAny(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// validatePatterns checks that every pattern is a valid doublestar glob.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q", label, pat)
		}
	}
	return nil
}
