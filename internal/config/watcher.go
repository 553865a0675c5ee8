package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watch re-reads the config file whenever it changes and hands the result to
// onReload. Only hot-applicable settings (currently the logging section) are
// expected to take effect; listener and upstream settings need a restart.
// The returned stop function closes the watcher.
func Watch(path string, onReload func(*Config)) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory too so atomic saves (write temp + rename) are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	_ = watcher.Add(path)

	go func() {
		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(100*time.Millisecond, func() {
					cfg, err := Load(path)
					if err != nil {
						log.WithError(err).WithField("path", path).Warn("config reload failed, keeping previous settings")
						return
					}
					log.WithField("path", path).Info("config reloaded")
					onReload(cfg)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("config watcher error")
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
