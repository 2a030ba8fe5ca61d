package entities

import (
	"fmt"
	"time"

	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/valueobjects"
	"creativerse-backend/domain/events"
	pkgerrors "creativerse-backend/pkg/errors"
)

// NodeType classifies a universe node
type NodeType string

const (
	NodeTypeProject   NodeType = "project"
	NodeTypeFusion    NodeType = "fusion"
	NodeTypeAI        NodeType = "ai"
	NodeTypeMilestone NodeType = "milestone"
)

// validNodeTypes guards construction and snapshot restore
var validNodeTypes = map[NodeType]bool{
	NodeTypeProject:   true,
	NodeTypeFusion:    true,
	NodeTypeAI:        true,
	NodeTypeMilestone: true,
}

// NodeMetadata carries optional, weakly-referenced extra data.
// SourceDataIDs point into the reality-data catalog by id only; the graph
// never cascades across that boundary.
type NodeMetadata struct {
	SourceDataIDs []string               `json:"sourceDataIds,omitempty"`
	ProjectID     string                 `json:"projectId,omitempty"`
	Description   string                 `json:"description,omitempty"`
	Custom        map[string]interface{} `json:"custom,omitempty"`
}

// UniverseNode is a positioned, typed vertex of the universe graph.
// Connections form a directed adjacency list; symmetry is the caller's
// responsibility except for fusion back-links.
type UniverseNode struct {
	id           valueobjects.ID
	nodeType     NodeType
	name         string
	position     valueobjects.Position
	scale        float64
	color        string
	connections  []valueobjects.ID
	dateCreated  time.Time
	lastModified time.Time
	metadata     NodeMetadata

	events []events.DomainEvent
}

// NewUniverseNode creates a node with business rule validation
func NewUniverseNode(id valueobjects.ID, nodeType NodeType, name string, position valueobjects.Position, scale float64, color string, metadata NodeMetadata) (*UniverseNode, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node id cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("node name cannot be empty")
	}
	if !validNodeTypes[nodeType] {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid node type: %s", nodeType))
	}
	if scale <= 0 {
		scale = 1.0
	}

	now := time.Now()
	node := &UniverseNode{
		id:           id,
		nodeType:     nodeType,
		name:         name,
		position:     position,
		scale:        scale,
		color:        color,
		connections:  []valueobjects.ID{},
		dateCreated:  now,
		lastModified: now,
		metadata:     metadata,
		events:       []events.DomainEvent{},
	}

	node.addEvent(events.NewNodeAdded(id, string(nodeType), name, now))

	return node, nil
}

// NewFusionNode creates a fusion-type node with default placement and styling
func NewFusionNode(name string, sourceDataIDs []string, metadata NodeMetadata, cfg *config.DomainConfig) (*UniverseNode, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	metadata.SourceDataIDs = append([]string{}, sourceDataIDs...)

	position := valueobjects.RandomFusionPosition(
		cfg.FusionPlacementXZ,
		cfg.FusionPlacementYMin,
		cfg.FusionPlacementYMax,
	)

	return NewUniverseNode(
		valueobjects.NewFusionID(),
		NodeTypeFusion,
		name,
		position,
		cfg.FusionScale,
		cfg.FusionColor,
		metadata,
	)
}

// ID returns the node's unique identifier
func (n *UniverseNode) ID() valueobjects.ID {
	return n.id
}

// Type returns the node's type
func (n *UniverseNode) Type() NodeType {
	return n.nodeType
}

// Name returns the node's display name
func (n *UniverseNode) Name() string {
	return n.name
}

// Position returns the node's position in the scene
func (n *UniverseNode) Position() valueobjects.Position {
	return n.position
}

// Scale returns the node's render scale
func (n *UniverseNode) Scale() float64 {
	return n.scale
}

// Color returns the node's render color
func (n *UniverseNode) Color() string {
	return n.color
}

// Metadata returns the node's metadata
func (n *UniverseNode) Metadata() NodeMetadata {
	return n.metadata
}

// DateCreated returns when the node was created
func (n *UniverseNode) DateCreated() time.Time {
	return n.dateCreated
}

// LastModified returns when the node was last modified
func (n *UniverseNode) LastModified() time.Time {
	return n.lastModified
}

// Connections returns a copy of the adjacency list
func (n *UniverseNode) Connections() []valueobjects.ID {
	conns := make([]valueobjects.ID, len(n.connections))
	copy(conns, n.connections)
	return conns
}

// IsConnectedTo reports whether a directed edge to targetID exists
func (n *UniverseNode) IsConnectedTo(targetID valueobjects.ID) bool {
	for _, c := range n.connections {
		if c.Equals(targetID) {
			return true
		}
	}
	return false
}

// ConnectTo adds a directed edge to targetID. Self references, duplicates
// and full adjacency lists make it a no-op; the returned bool reports
// whether an edge was added.
func (n *UniverseNode) ConnectTo(targetID valueobjects.ID, cfg *config.DomainConfig) bool {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if n.id.Equals(targetID) {
		return false
	}
	if n.IsConnectedTo(targetID) {
		return false
	}
	if len(n.connections) >= cfg.MaxConnectionsPerNode() {
		return false
	}

	now := time.Now()
	n.connections = append(n.connections, targetID)
	n.lastModified = now

	n.addEvent(events.NewNodesConnected(n.id, targetID, now))

	return true
}

// DisconnectFrom removes the directed edge to targetID. Removing an absent
// edge is a no-op.
func (n *UniverseNode) DisconnectFrom(targetID valueobjects.ID) {
	found := false
	kept := n.connections[:0]
	for _, c := range n.connections {
		if c.Equals(targetID) {
			found = true
			continue
		}
		kept = append(kept, c)
	}

	if !found {
		return
	}

	now := time.Now()
	n.connections = kept
	n.lastModified = now

	n.addEvent(events.NewNodesDisconnected(n.id, targetID, now))
}

// NodeUpdate is a shallow-merge patch; nil fields are left untouched
type NodeUpdate struct {
	Name     *string
	Position *valueobjects.Position
	Scale    *float64
	Color    *string
	Metadata *NodeMetadata
}

// Apply merges the patch into the node and refreshes lastModified. The
// whole patch is validated before any field is assigned, so a rejected
// patch leaves the node untouched.
func (n *UniverseNode) Apply(update NodeUpdate) error {
	if update.Name != nil && *update.Name == "" {
		return pkgerrors.NewValidationError("node name cannot be empty")
	}
	if update.Scale != nil && *update.Scale <= 0 {
		return pkgerrors.NewValidationError("node scale must be positive")
	}

	if update.Name != nil {
		n.name = *update.Name
	}
	if update.Position != nil {
		n.position = *update.Position
	}
	if update.Scale != nil {
		n.scale = *update.Scale
	}
	if update.Color != nil {
		n.color = *update.Color
	}
	if update.Metadata != nil {
		n.metadata = *update.Metadata
	}

	n.lastModified = time.Now()

	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (n *UniverseNode) GetUncommittedEvents() []events.DomainEvent {
	return n.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (n *UniverseNode) MarkEventsAsCommitted() {
	n.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (n *UniverseNode) addEvent(event events.DomainEvent) {
	n.events = append(n.events, event)
}

// UniverseNodeSnapshot is the serialized form of a node, used for snapshot
// persistence and API responses. The JSON shape is the persisted local
// storage format, so field names are fixed.
type UniverseNodeSnapshot struct {
	ID           string                `json:"id"`
	Type         string                `json:"type"`
	Name         string                `json:"name"`
	Position     valueobjects.Position `json:"position"`
	Scale        float64               `json:"scale"`
	Color        string                `json:"color"`
	Connections  []string              `json:"connections"`
	DateCreated  time.Time             `json:"dateCreated"`
	LastModified time.Time             `json:"lastModified"`
	Metadata     NodeMetadata          `json:"metadata,omitempty"`
}

// Snapshot returns the serialized form of the node
func (n *UniverseNode) Snapshot() UniverseNodeSnapshot {
	conns := make([]string, len(n.connections))
	for i, c := range n.connections {
		conns[i] = c.String()
	}
	return UniverseNodeSnapshot{
		ID:           n.id.String(),
		Type:         string(n.nodeType),
		Name:         n.name,
		Position:     n.position,
		Scale:        n.scale,
		Color:        n.color,
		Connections:  conns,
		DateCreated:  n.dateCreated,
		LastModified: n.lastModified,
		Metadata:     n.metadata,
	}
}

// RestoreUniverseNode reconstructs a node from a snapshot with preserved
// timestamps and adjacency. No creation event is raised.
func RestoreUniverseNode(snap UniverseNodeSnapshot) (*UniverseNode, error) {
	id, err := valueobjects.ParseID(snap.ID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("node id cannot be empty")
	}
	if snap.Name == "" {
		return nil, pkgerrors.NewValidationError("node name cannot be empty")
	}
	if !validNodeTypes[NodeType(snap.Type)] {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid node type: %s", snap.Type))
	}

	conns := make([]valueobjects.ID, 0, len(snap.Connections))
	for _, c := range snap.Connections {
		cid, err := valueobjects.ParseID(c)
		if err != nil {
			continue // drop empty tokens rather than fail the whole restore
		}
		conns = append(conns, cid)
	}

	scale := snap.Scale
	if scale <= 0 {
		scale = 1.0
	}

	return &UniverseNode{
		id:           id,
		nodeType:     NodeType(snap.Type),
		name:         snap.Name,
		position:     snap.Position,
		scale:        scale,
		color:        snap.Color,
		connections:  conns,
		dateCreated:  snap.DateCreated,
		lastModified: snap.LastModified,
		metadata:     snap.Metadata,
		events:       []events.DomainEvent{},
	}, nil
}
