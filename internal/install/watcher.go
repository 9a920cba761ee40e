package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/five82/hylauncher/internal/config"
)

// Watcher signals when anything changes on the path from the base directory
// down to the client directory. Directories that do not exist yet are picked
// up as soon as they appear.
type Watcher struct {
	fsw     *fsnotify.Watcher
	chain   []string
	watched map[string]bool
	changes chan struct{}
}

// NewWatcher starts watching every existing directory of the layout's
// client path.
func NewWatcher(layout config.Layout) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		chain:   watchChain(layout),
		watched: make(map[string]bool),
		changes: make(chan struct{}, 1),
	}
	w.sync()
	return w, nil
}

// Changes delivers one coalesced signal per burst of filesystem events.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				delete(w.watched, ev.Name)
			}
			w.sync()
			w.notify()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("installation watcher error")
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) sync() {
	for _, dir := range w.chain {
		if w.watched[dir] {
			continue
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return
		}
		if err := w.fsw.Add(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("failed to watch directory")
			return
		}
		w.watched[dir] = true
	}
}

// watchChain lists the directories from the base dir down to the client dir.
func watchChain(layout config.Layout) []string {
	base := filepath.Clean(layout.BaseDir)
	dir := filepath.Dir(filepath.Clean(layout.ClientPath))

	var chain []string
	for {
		chain = append(chain, dir)
		if dir == base {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
