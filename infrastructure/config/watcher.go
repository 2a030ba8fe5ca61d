package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Limits holds the runtime-tunable graph limits. Values of zero keep the
// compiled default.
type Limits struct {
	MaxConnectionsPerNode int `json:"maxConnectionsPerNode"`
	MaxNodesPerUniverse   int `json:"maxNodesPerUniverse"`
	FusionHistoryCap      int `json:"fusionHistoryCap"`
	NotificationFeedCap   int `json:"notificationFeedCap"`
}

// Overrides is the on-disk shape of the overrides file
type Overrides struct {
	Limits    Limits    `json:"limits"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Watcher reloads the overrides file when it changes on disk. Saves done
// atomically (write + rename) surface as create events, so the parent
// directory is watched as well.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *Overrides
	mu       sync.RWMutex
	onChange []func(Limits)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewWatcher loads the overrides file at path and begins tracking it
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	current, err := loadOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch overrides file: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		logger.Warn("failed to watch overrides directory", zap.Error(err))
	}

	return &Watcher{
		path:    path,
		watcher: fw,
		current: current,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("overrides watcher started", zap.String("path", w.path))
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
}

// OnChange registers a callback invoked with the new limits after a reload
func (w *Watcher) OnChange(handler func(Limits)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Limits returns the currently loaded limits
func (w *Watcher) Limits() Limits {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Limits
}

func (w *Watcher) watchLoop() {
	var debounce *time.Timer
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("overrides watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	next, err := loadOverrides(w.path)
	if err != nil {
		w.logger.Error("failed to reload overrides, keeping current", zap.Error(err))
		return
	}
	if err := validateLimits(next.Limits); err != nil {
		w.logger.Error("invalid overrides, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.current.Limits
	w.current = next
	handlers := make([]func(Limits), len(w.onChange))
	copy(handlers, w.onChange)
	w.mu.Unlock()

	w.logger.Info("overrides reloaded",
		zap.Any("previous", prev),
		zap.Any("current", next.Limits),
	)

	for _, handler := range handlers {
		go handler(next.Limits)
	}
}

func validateLimits(l Limits) error {
	if l.MaxConnectionsPerNode < 0 {
		return fmt.Errorf("maxConnectionsPerNode cannot be negative")
	}
	if l.MaxNodesPerUniverse < 0 {
		return fmt.Errorf("maxNodesPerUniverse cannot be negative")
	}
	if l.FusionHistoryCap < 0 {
		return fmt.Errorf("fusionHistoryCap cannot be negative")
	}
	if l.NotificationFeedCap < 0 {
		return fmt.Errorf("notificationFeedCap cannot be negative")
	}
	return nil
}

func loadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse overrides JSON: %w", err)
	}
	return &o, nil
}
