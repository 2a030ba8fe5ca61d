package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
)

// SnapshotKeyNotifications is the local storage key for the feed slice
const SnapshotKeyNotifications = "notifications"

// NotificationService keeps the bounded workspace feed, newest first.
// Entries come from fusion commits and node/project lifecycle changes.
type NotificationService struct {
	snapshots ports.SnapshotStore
	cfg       *config.DomainConfig
	logger    *zap.Logger

	mu      sync.RWMutex
	entries []entities.Notification
}

// NewNotificationService creates a notification service
func NewNotificationService(snapshots ports.SnapshotStore, cfg *config.DomainConfig, logger *zap.Logger) *NotificationService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &NotificationService{
		snapshots: snapshots,
		cfg:       cfg,
		logger:    logger,
		entries:   []entities.Notification{},
	}
}

// Add prepends an entry and evicts beyond the feed cap
func (s *NotificationService) Add(ctx context.Context, kind entities.NotificationKind, message string) {
	s.mu.Lock()
	entry := entities.Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.entries = append([]entities.Notification{entry}, s.entries...)
	if limit := s.cfg.NotificationFeedCap(); len(s.entries) > limit {
		s.entries = s.entries[:limit]
	}
	snapshot := make([]entities.Notification, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// List returns the feed, newest first
func (s *NotificationService) List(ctx context.Context) []entities.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Notification, len(s.entries))
	copy(out, s.entries)
	return out
}

// Restore loads the feed from the snapshot store, if a snapshot exists
func (s *NotificationService) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	var entries []entities.Notification
	found, err := s.snapshots.Get(ctx, SnapshotKeyNotifications, &entries)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if limit := s.cfg.NotificationFeedCap(); len(entries) > limit {
		entries = entries[:limit]
	}
	s.entries = entries
	return nil
}

func (s *NotificationService) persist(ctx context.Context, snapshot []entities.Notification) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Put(ctx, SnapshotKeyNotifications, snapshot); err != nil {
		s.logger.Warn("Failed to persist notifications", zap.Error(err))
	}
}
