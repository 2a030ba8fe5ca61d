package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/domain/core/scoring"
	"creativerse-backend/domain/core/valueobjects"
	"creativerse-backend/domain/events"
	pkgerrors "creativerse-backend/pkg/errors"
	"creativerse-backend/pkg/observability"
)

// SnapshotKeyFusionHistory is the local storage key for the history slice
const SnapshotKeyFusionHistory = "fusionHistory"

// FusionService drives the reality fusion pipeline: a selection set over
// the read-only catalog, a deterministic compatibility preview, and the
// commit that records a FusionResult and materializes its universe node.
// Commits are serialized by an in-flight guard; a fusion is either fully
// recorded or not recorded at all.
type FusionService struct {
	catalog   ports.RealityDataRepository
	history   ports.FusionHistoryRepository
	universe  *UniverseService
	notifier  *NotificationService
	snapshots ports.SnapshotStore
	metrics   *observability.Collector
	cfg       *config.DomainConfig
	logger    *zap.Logger

	mu        sync.Mutex
	selection []string
	inFlight  atomic.Bool
}

// NewFusionService creates a fusion pipeline service
func NewFusionService(
	catalog ports.RealityDataRepository,
	history ports.FusionHistoryRepository,
	universe *UniverseService,
	notifier *NotificationService,
	snapshots ports.SnapshotStore,
	metrics *observability.Collector,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *FusionService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &FusionService{
		catalog:   catalog,
		history:   history,
		universe:  universe,
		notifier:  notifier,
		snapshots: snapshots,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
		selection: []string{},
	}
}

// Catalog returns the full reality-data catalog
func (s *FusionService) Catalog(ctx context.Context) []entities.RealityData {
	return s.catalog.FindAll(ctx)
}

// DataByID returns a catalog item or a NotFoundError
func (s *FusionService) DataByID(ctx context.Context, id string) (entities.RealityData, error) {
	item, found := s.catalog.FindByID(ctx, id)
	if !found {
		return entities.RealityData{}, pkgerrors.NewNotFoundError("reality data")
	}
	return item, nil
}

// SelectItem adds a catalog item to the selection set. Selecting an item
// twice is a no-op; selecting an unknown id is a NotFoundError.
func (s *FusionService) SelectItem(ctx context.Context, id string) error {
	if _, found := s.catalog.FindByID(ctx, id); !found {
		return pkgerrors.NewNotFoundError("reality data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.selection {
		if existing == id {
			return nil
		}
	}
	s.selection = append(s.selection, id)
	return nil
}

// DeselectItem removes an item from the selection set; absent ids are a
// no-op.
func (s *FusionService) DeselectItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.selection[:0]
	for _, existing := range s.selection {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	s.selection = kept
}

// ClearSelection empties the selection set
func (s *FusionService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = s.selection[:0]
}

// Selection returns the selected ids in selection order
func (s *FusionService) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.selection))
	copy(out, s.selection)
	return out
}

// CompatibilityPreview scores the current selection set. It is recomputed
// from the selection on every call, never cached.
func (s *FusionService) CompatibilityPreview(ctx context.Context) int {
	items := s.selectedItems(ctx)
	return scoring.Compatibility(items)
}

// selectedItems resolves the selection against the catalog, dropping ids
// that no longer resolve
func (s *FusionService) selectedItems(ctx context.Context) []entities.RealityData {
	ids := s.Selection()
	items := make([]entities.RealityData, 0, len(ids))
	for _, id := range ids {
		if item, found := s.catalog.FindByID(ctx, id); found {
			items = append(items, item)
		}
	}
	return items
}

// PerformFusion commits a fusion of the given source items. It fails with
// a ValidationError for fewer than two distinct sources, a ConflictError
// when another fusion is mid-commit, and records nothing when the context
// is cancelled first. The stored compatibility is the deterministic score
// of the source set, identical to what the preview reported.
func (s *FusionService) PerformFusion(ctx context.Context, sourceIDs []string, name, description string) (entities.FusionResult, error) {
	if len(sourceIDs) < s.cfg.MinFusionSources {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.NewValidationError(
			fmt.Sprintf("fusion requires at least %d source items", s.cfg.MinFusionSources))
	}

	sources := dedupe(sourceIDs)
	if len(sources) < s.cfg.MinFusionSources {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.NewValidationError("fusion source items must be distinct")
	}

	if name == "" {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.NewValidationError("fusion name cannot be empty")
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.NewConflictError("another fusion is already in progress")
	}
	defer s.inFlight.Store(false)

	items := make([]entities.RealityData, 0, len(sources))
	var unknown []string
	for _, id := range sources {
		item, found := s.catalog.FindByID(ctx, id)
		if !found {
			unknown = append(unknown, id)
			continue
		}
		items = append(items, item)
	}
	if len(unknown) > 0 {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.NewValidationError("unknown source items").
			WithDetails(map[string]interface{}{"unknown_ids": unknown})
	}

	if err := ctx.Err(); err != nil {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.Wrap(err, "fusion aborted before commit")
	}

	fusionID := valueobjects.NewID()
	result := entities.FusionResult{
		ID:            fusionID.String(),
		Name:          name,
		Description:   description,
		SourceDataIDs: sources,
		DateCreated:   time.Now(),
		Compatibility: scoring.Compatibility(items),
		Status:        entities.FusionStatusCompleted,
	}

	if err := s.history.Append(ctx, result); err != nil {
		s.rejected()
		return entities.FusionResult{}, pkgerrors.Wrap(err, "failed to record fusion")
	}

	if s.universe != nil {
		metadata := entities.NodeMetadata{Description: description}
		if _, err := s.universe.CreateFusionNode(ctx, name, sources, metadata); err != nil {
			// Roll the history entry back so no partial fusion is visible
			s.dropFromHistory(ctx, result.ID)
			s.rejected()
			return entities.FusionResult{}, pkgerrors.Wrap(err, "failed to materialize fusion node")
		}
	}

	if s.metrics != nil {
		s.metrics.FusionsPerformed.Inc()
	}
	if s.notifier != nil {
		s.notifier.Add(ctx, entities.NotificationFusion,
			fmt.Sprintf("Fusion %q completed at %d%% compatibility", name, result.Compatibility))
	}

	s.persistHistory(ctx)

	event := events.NewFusionPerformed(fusionID, sources, result.Compatibility, result.DateCreated)
	s.logger.Info("Fusion performed",
		zap.String("eventType", event.GetEventType()),
		zap.String("fusionID", result.ID),
		zap.Strings("sources", sources),
		zap.Int("compatibility", result.Compatibility),
	)

	return result, nil
}

// History returns all recorded fusions, most recent first
func (s *FusionService) History(ctx context.Context) []entities.FusionResult {
	return s.history.History(ctx)
}

// Recent returns the capped recent-fusions shortlist
func (s *FusionService) Recent(ctx context.Context) []entities.FusionResult {
	return s.history.Recent(ctx)
}

// RestoreHistory loads fusion history from the snapshot store
func (s *FusionService) RestoreHistory(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	var history []entities.FusionResult
	found, err := s.snapshots.Get(ctx, SnapshotKeyFusionHistory, &history)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	return s.history.Replace(ctx, history)
}

func (s *FusionService) persistHistory(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Put(ctx, SnapshotKeyFusionHistory, s.history.History(ctx)); err != nil {
		s.logger.Warn("Failed to persist fusion history", zap.Error(err))
	}
}

func (s *FusionService) dropFromHistory(ctx context.Context, id string) {
	var kept []entities.FusionResult
	for _, r := range s.history.History(ctx) {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if err := s.history.Replace(ctx, kept); err != nil {
		s.logger.Error("Failed to roll back fusion history entry",
			zap.String("fusionID", id),
			zap.Error(err),
		)
	}
}

func (s *FusionService) rejected() {
	if s.metrics != nil {
		s.metrics.FusionsRejected.Inc()
	}
}

// dedupe keeps the first occurrence of each id, preserving order
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
