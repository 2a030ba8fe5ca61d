package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/domain/core/valueobjects"
	"creativerse-backend/domain/events"
	pkgerrors "creativerse-backend/pkg/errors"
	"creativerse-backend/pkg/observability"
)

// SnapshotKeyUniverseNodes is the local storage key for the node slice
const SnapshotKeyUniverseNodes = "universeNodes"

// UniverseService owns the universe node graph: typed, positioned nodes
// with directed adjacency lists. Multi-node invariants (cascade cleanup,
// fusion back-links) are serialized through the service mutex; the node
// selection is transient state, not part of any node.
type UniverseService struct {
	repo      ports.UniverseRepository
	snapshots ports.SnapshotStore
	notifier  *NotificationService
	metrics   *observability.Collector
	cfg       *config.DomainConfig
	logger    *zap.Logger

	mu             sync.Mutex
	selectedNodeID string
}

// NewUniverseService creates a universe graph service
func NewUniverseService(
	repo ports.UniverseRepository,
	snapshots ports.SnapshotStore,
	notifier *NotificationService,
	metrics *observability.Collector,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *UniverseService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &UniverseService{
		repo:      repo,
		snapshots: snapshots,
		notifier:  notifier,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// AddNode inserts a node. Inserting an id that already exists is a no-op,
// leaving the existing node untouched.
func (s *UniverseService) AddNode(ctx context.Context, node *entities.UniverseNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.repo.FindByID(ctx, node.ID().String()); exists {
		s.logger.Debug("Ignoring duplicate node insert", zap.String("nodeID", node.ID().String()))
		return nil
	}

	if limit := s.cfg.MaxNodesPerUniverse(); len(s.repo.FindAll(ctx)) >= limit {
		return pkgerrors.NewConflictError(fmt.Sprintf("universe is full: %d nodes", limit))
	}

	if err := s.repo.Save(ctx, node); err != nil {
		return pkgerrors.Wrap(err, "failed to add node")
	}
	s.commitEvents(node)

	if s.metrics != nil {
		s.metrics.NodesCreated.Inc()
	}

	s.persist(ctx)
	return nil
}

// NodeByID returns a node or a NotFoundError
func (s *UniverseService) NodeByID(ctx context.Context, id string) (*entities.UniverseNode, error) {
	node, found := s.repo.FindByID(ctx, id)
	if !found {
		return nil, pkgerrors.NewNotFoundError("node")
	}
	return node, nil
}

// Nodes returns every node in the universe
func (s *UniverseService) Nodes(ctx context.Context) []*entities.UniverseNode {
	return s.repo.FindAll(ctx)
}

// FusionNodes returns the nodes of fusion type
func (s *UniverseService) FusionNodes(ctx context.Context) []*entities.UniverseNode {
	var out []*entities.UniverseNode
	for _, node := range s.repo.FindAll(ctx) {
		if node.Type() == entities.NodeTypeFusion {
			out = append(out, node)
		}
	}
	return out
}

// RemoveNode deletes a node and strips it from every other node's
// adjacency list. The selection is cleared when it pointed at the removed
// node. A missing id is a NotFoundError.
func (s *UniverseService) RemoveNode(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, found := s.repo.FindByID(ctx, id)
	if !found {
		return pkgerrors.NewNotFoundError("node")
	}

	target := removed.ID()
	for _, other := range s.repo.FindAll(ctx) {
		if other.ID().Equals(target) {
			continue
		}
		if other.IsConnectedTo(target) {
			other.DisconnectFrom(target)
			s.commitEvents(other)
			if err := s.repo.Save(ctx, other); err != nil {
				return pkgerrors.Wrap(err, "failed to detach node")
			}
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "failed to remove node")
	}

	if s.selectedNodeID == id {
		s.selectedNodeID = ""
	}

	s.logEvent(events.NewNodeRemoved(target, time.Now()))

	if s.metrics != nil {
		s.metrics.NodesRemoved.Inc()
	}
	if s.notifier != nil {
		s.notifier.Add(ctx, entities.NotificationNode, fmt.Sprintf("Removed %q from the universe", removed.Name()))
	}

	s.persist(ctx)
	return nil
}

// UpdateNode shallow-merges the patch into the node and refreshes its
// lastModified stamp. A missing id is a NotFoundError.
func (s *UniverseService) UpdateNode(ctx context.Context, id string, update entities.NodeUpdate) (*entities.UniverseNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, found := s.repo.FindByID(ctx, id)
	if !found {
		return nil, pkgerrors.NewNotFoundError("node")
	}

	if err := node.Apply(update); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, node); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to update node")
	}

	s.persist(ctx)
	return node, nil
}

// ConnectNodes adds a directed edge a→b. When either node is missing, the
// edge exists already, or a equals b, nothing happens and no error is
// returned. Symmetric edges take two calls.
func (s *UniverseService) ConnectNodes(ctx context.Context, a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, foundA := s.repo.FindByID(ctx, a)
	targetNode, foundB := s.repo.FindByID(ctx, b)
	if !foundA || !foundB {
		s.logger.Warn("Connect skipped: node missing",
			zap.String("source", a),
			zap.String("target", b),
		)
		return nil
	}

	if !source.ConnectTo(targetNode.ID(), s.cfg) {
		return nil
	}
	s.commitEvents(source)

	if err := s.repo.Save(ctx, source); err != nil {
		return pkgerrors.Wrap(err, "failed to connect nodes")
	}

	if s.metrics != nil {
		s.metrics.EdgesConnected.Inc()
	}

	s.persist(ctx)
	return nil
}

// DisconnectNodes removes the directed edge a→b. Absent edges and unknown
// ids are tolerated silently.
func (s *UniverseService) DisconnectNodes(ctx context.Context, a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, found := s.repo.FindByID(ctx, a)
	if !found {
		return nil
	}

	targetID, err := valueobjects.ParseID(b)
	if err != nil {
		return nil
	}

	if !source.IsConnectedTo(targetID) {
		return nil
	}

	source.DisconnectFrom(targetID)
	s.commitEvents(source)

	if err := s.repo.Save(ctx, source); err != nil {
		return pkgerrors.Wrap(err, "failed to disconnect nodes")
	}

	s.persist(ctx)
	return nil
}

// SelectNode sets the transient node selection; nil clears it. Selecting a
// missing id is a NotFoundError.
func (s *UniverseService) SelectNode(ctx context.Context, id *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.selectedNodeID = ""
		return nil
	}

	if _, found := s.repo.FindByID(ctx, *id); !found {
		return pkgerrors.NewNotFoundError("node")
	}

	s.selectedNodeID = *id
	return nil
}

// SelectedNodeID returns the current selection, if any
func (s *UniverseService) SelectedNodeID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedNodeID, s.selectedNodeID != ""
}

// CreateFusionNode materializes a fusion result as a graph node: a fresh
// fusion-typed node placed inside the fusion volume, with each existing
// source node back-linked to it (source → fusion; the fusion node's own
// adjacency stays empty). Source ids without a matching node are weak
// references and only logged. Returns the new node's id.
func (s *UniverseService) CreateFusionNode(ctx context.Context, name string, sourceDataIDs []string, metadata entities.NodeMetadata) (string, error) {
	if name == "" {
		return "", pkgerrors.NewValidationError("fusion node name cannot be empty")
	}

	fusion, err := entities.NewFusionNode(name, sourceDataIDs, metadata, s.cfg)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, fusion); err != nil {
		return "", pkgerrors.Wrap(err, "failed to create fusion node")
	}
	s.commitEvents(fusion)

	fusionID := fusion.ID()
	for _, sourceID := range sourceDataIDs {
		source, found := s.repo.FindByID(ctx, sourceID)
		if !found {
			s.logger.Warn("Fusion source has no universe node",
				zap.String("sourceID", sourceID),
				zap.String("fusionID", fusionID.String()),
			)
			continue
		}
		if source.ConnectTo(fusionID, s.cfg) {
			s.commitEvents(source)
			if err := s.repo.Save(ctx, source); err != nil {
				return "", pkgerrors.Wrap(err, "failed to back-link fusion source")
			}
		}
	}

	if s.metrics != nil {
		s.metrics.NodesCreated.Inc()
	}
	if s.notifier != nil {
		s.notifier.Add(ctx, entities.NotificationNode, fmt.Sprintf("Fusion %q joined the universe", name))
	}

	s.persist(ctx)
	return fusionID.String(), nil
}

// Restore loads the node slice from the snapshot store, if one exists.
// Invalid records are skipped with a warning rather than failing startup.
func (s *UniverseService) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	var snaps []entities.UniverseNodeSnapshot
	found, err := s.snapshots.Get(ctx, SnapshotKeyUniverseNodes, &snaps)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snaps {
		node, err := entities.RestoreUniverseNode(snap)
		if err != nil {
			s.logger.Warn("Skipping invalid node snapshot",
				zap.String("nodeID", snap.ID),
				zap.Error(err),
			)
			continue
		}
		if _, exists := s.repo.FindByID(ctx, node.ID().String()); exists {
			continue
		}
		if err := s.repo.Save(ctx, node); err != nil {
			return pkgerrors.Wrap(err, "failed to restore node")
		}
	}

	return nil
}

// commitEvents drains the events raised on a node since its last save.
// There is no external bus; the structured log is the event sink.
func (s *UniverseService) commitEvents(node *entities.UniverseNode) {
	for _, event := range node.GetUncommittedEvents() {
		s.logEvent(event)
	}
	node.MarkEventsAsCommitted()
}

func (s *UniverseService) logEvent(event events.DomainEvent) {
	s.logger.Debug("domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Time("occurredAt", event.GetTimestamp()),
	)
}

// persist writes the current node slice to the snapshot store, best effort.
// Callers hold the service mutex.
func (s *UniverseService) persist(ctx context.Context) {
	if s.snapshots == nil {
		return
	}

	nodes := s.repo.FindAll(ctx)
	snaps := make([]entities.UniverseNodeSnapshot, len(nodes))
	for i, node := range nodes {
		snaps[i] = node.Snapshot()
	}

	if err := s.snapshots.Put(ctx, SnapshotKeyUniverseNodes, snaps); err != nil {
		s.logger.Warn("Failed to persist universe nodes", zap.Error(err))
	}
}
