package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"vesszo/internal/detector"
	"vesszo/internal/ingest"
)

const watchDebounce = 200 * time.Millisecond

// runWatch checks args once and again after every burst of file changes
// until interrupted. Exit statuses of single runs are reported, not returned.
func runWatch(cmd *cobra.Command, args []string, set detector.Set, s checkSettings) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(args)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	// прогресс поверх повторных запусков только мешает
	s.ui = uiModeOff
	runOnce := func() {
		fmt.Fprintf(os.Stderr, "--- %s\n", time.Now().Format("15:04:05"))
		fs, results, err := checkFiles(ctx, args, set, s)
		if err == nil {
			err = report(cmd.OutOrStdout(), fs, results, s, len(results) > 1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "vesszo: %v\n", err)
		}
	}
	runOnce()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// новые каталоги тоже надо слушать
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		case <-debounce:
			debounce = nil
			runOnce()
		}
	}
}

// relevant drops events that cannot change a check result.
func relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		return true
	}
	return ingest.Supported(ev.Name)
}

// watchDirs lists the directories to subscribe to: every directory argument
// with its non-hidden subdirectories and the parent of every file argument.
// Editors replace files on save, so files are watched through their parent.
func watchDirs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if _, dup := seen[dir]; !dup {
			seen[dir] = struct{}{}
			out = append(out, dir)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(arg))
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != arg && len(d.Name()) > 0 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

