// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package shipit

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d  time.Duration
	mu sync.Mutex
	f  func()
	t  *time.Timer
}

// newDebouncer creates a new debouncer.
func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{
		d: d,
		f: f,
	}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Watch rebuilds the function every time its sources change, until ctx is
// canceled.
func Watch(ctx context.Context, c *Config) error {
	c.setDefaults()

	c.Logf("Performing an initial build...")
	if err := Build(ctx, c); err != nil {
		c.Logf("Initial build failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watchRecursive(watcher, filepath.Join(c.Dir, "src")); err != nil {
		return err
	}
	if err := watcher.Add(filepath.Join(c.Dir, "Cargo.toml")); err != nil {
		return err
	}

	rebuild := func() {
		c.Logf("Triggering build.")
		if err := Build(ctx, c); err != nil {
			c.Logf("Failed to rebuild the function: %v", err)
		}
	}
	// It's better to have a bit of delay, so that we don't start building
	// the function on each keystroke.
	debouncer := newDebouncer(250*time.Millisecond, rebuild)

	c.Logf("Started watching for new changes.")
	for {
		select {
		case event := <-watcher.Events:
			if !shouldRebuild(event.Name, event.Op) {
				continue
			}
			c.Logf("Changed %s, scheduling build.", event.Name)
			debouncer.Do()
		case err := <-watcher.Errors:
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

func watchRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}

// Adapted from
// https://github.com/brandur/modulir/blob/1ff912fdc45a79cb4d8d9f199d213ae9c3598cbd/watch.go#L201.
func shouldRebuild(path string, op fsnotify.Op) bool {
	base := filepath.Base(path)

	// Mac OS' worst mistake.
	if base == ".DS_Store" {
		return false
	}

	// Vim creates this temporary file to see whether it can write into a target
	// directory. It screws up our watching algorithm, so ignore it.
	if base == "4913" {
		return false
	}

	// A special case, but ignore creates on files that look like Vim backups.
	if strings.HasSuffix(base, "~") {
		return false
	}

	// Cargo constantly writes into the target directory during builds, and
	// reacting to that would keep the watcher rebuilding forever.
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "target" {
			return false
		}
	}

	if op&fsnotify.Create != 0 {
		return true
	}

	if op&fsnotify.Remove != 0 {
		return true
	}

	if op&fsnotify.Write != 0 {
		return true
	}

	/*
		Ignore everything else. Rationale:

		* chmod: we don't really care about these as they won't affect build
		output (unless potentially we no longer can read the file, but we'll go
		down that path if it ever becomes a problem).

		* rename: will produce a following create event as well, so just listen
		for that instead.
	*/
	return false
}
