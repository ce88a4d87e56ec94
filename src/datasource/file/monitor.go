// monitor.go
package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// datasetExtensions are the file types the monitor reacts to.
var datasetExtensions = []string{".csv", ".xlsx"}

// Monitor watches a data directory for new or rewritten dataset files and
// hands them to a handler. Each file triggers at most once per modification.
type Monitor struct {
	watchDir string
	watcher  *fsnotify.Watcher
	lastFile string
	lastMod  time.Time
	mu       sync.Mutex
}

func NewMonitor(dir string) (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &Monitor{
		watchDir: dir,
		watcher:  watcher,
	}, nil
}

func (m *Monitor) Close() error {
	return m.watcher.Close()
}

// Watch blocks, invoking handler with the path of each freshly written
// dataset file. Returns when the watcher is closed.
func (m *Monitor) Watch(handler func(string)) error {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isDatasetFile(event.Name) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			if info.ModTime().After(m.lastMod) || event.Name != m.lastFile {
				m.lastMod = info.ModTime()
				m.lastFile = event.Name
				go handler(event.Name)
			}
			m.mu.Unlock()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func isDatasetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range datasetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
