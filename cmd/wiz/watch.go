package main

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"

	"wiz/internal/project"
	"wiz/internal/resolver"
)

var watchLog = commonlog.GetLogger("wiz.watch")

// watch rebuilds every time a source or project file changes. Each rebuild
// uses a fresh session.
func watch(opts *options, stdout, stderr io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	var extension string
	rebuild := func() {
		session, cfg, _ := compile(opts, stdout, stderr)
		extension = cfg.extension

		for _, dir := range watchDirs(session, cfg) {
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				watchLog.Errorf("watching %s: %s", dir, err)
				continue
			}
			watchLog.Debugf("watching %s", dir)
			watched[dir] = true
		}
	}

	rebuild()
	fmt.Fprintln(stdout, "Watching for changes...")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevant(event, extension) {
				watchLog.Infof("%s changed", event.Name)
				rebuild()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watcher: %s", err)
		}
	}
}

// watchDirs lists the directories holding the files session loaded, plus
// the project, import and entry directories. session may be nil when the
// build failed before compiling.
func watchDirs(session *resolver.Session, cfg settings) []string {
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	if session != nil {
		for path := range session.Sources() {
			add(filepath.Dir(path))
		}
		for _, dir := range session.ImportDirs() {
			add(dir)
		}
	}

	if cfg.projectPath != "" {
		add(filepath.Dir(cfg.projectPath))
	}
	if cfg.entry != "" {
		add(filepath.Dir(cfg.entry))
	}
	return dirs
}

// relevant reports whether event touches a project file or a source file
// with the given extension.
func relevant(event fsnotify.Event, extension string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	if filepath.Base(event.Name) == project.FileName {
		return true
	}
	return filepath.Ext(event.Name) == "."+extension
}
