package events

import (
	"time"

	"creativerse-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// Universe node events

// NodeAdded is raised when a node enters the universe graph
type NodeAdded struct {
	BaseEvent
	NodeID   valueobjects.ID `json:"node_id"`
	NodeType string          `json:"node_type"`
	Name     string          `json:"name"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(nodeID valueobjects.ID, nodeType, name string, timestamp time.Time) NodeAdded {
	return NodeAdded{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "universe.node_added",
			Timestamp:   timestamp,
		},
		NodeID:   nodeID,
		NodeType: nodeType,
		Name:     name,
	}
}

// NodeRemoved is raised when a node leaves the universe graph
type NodeRemoved struct {
	BaseEvent
	NodeID valueobjects.ID `json:"node_id"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(nodeID valueobjects.ID, timestamp time.Time) NodeRemoved {
	return NodeRemoved{
		BaseEvent: BaseEvent{
			AggregateID: nodeID.String(),
			EventType:   "universe.node_removed",
			Timestamp:   timestamp,
		},
		NodeID: nodeID,
	}
}

// NodesConnected is raised when a directed connection is made
type NodesConnected struct {
	BaseEvent
	SourceID valueobjects.ID `json:"source_id"`
	TargetID valueobjects.ID `json:"target_id"`
}

// NewNodesConnected creates a NodesConnected event
func NewNodesConnected(sourceID, targetID valueobjects.ID, timestamp time.Time) NodesConnected {
	return NodesConnected{
		BaseEvent: BaseEvent{
			AggregateID: sourceID.String(),
			EventType:   "universe.nodes_connected",
			Timestamp:   timestamp,
		},
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// NodesDisconnected is raised when a directed connection is removed
type NodesDisconnected struct {
	BaseEvent
	SourceID valueobjects.ID `json:"source_id"`
	TargetID valueobjects.ID `json:"target_id"`
}

// NewNodesDisconnected creates a NodesDisconnected event
func NewNodesDisconnected(sourceID, targetID valueobjects.ID, timestamp time.Time) NodesDisconnected {
	return NodesDisconnected{
		BaseEvent: BaseEvent{
			AggregateID: sourceID.String(),
			EventType:   "universe.nodes_disconnected",
			Timestamp:   timestamp,
		},
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// Fusion events

// FusionPerformed is raised when a fusion result is committed
type FusionPerformed struct {
	BaseEvent
	FusionID      valueobjects.ID `json:"fusion_id"`
	SourceDataIDs []string        `json:"source_data_ids"`
	Compatibility int             `json:"compatibility"`
}

// NewFusionPerformed creates a FusionPerformed event
func NewFusionPerformed(fusionID valueobjects.ID, sourceDataIDs []string, compatibility int, timestamp time.Time) FusionPerformed {
	return FusionPerformed{
		BaseEvent: BaseEvent{
			AggregateID: fusionID.String(),
			EventType:   "fusion.performed",
			Timestamp:   timestamp,
		},
		FusionID:      fusionID,
		SourceDataIDs: sourceDataIDs,
		Compatibility: compatibility,
	}
}

// Project events

// ProjectCreated is raised when a project is created
type ProjectCreated struct {
	BaseEvent
	ProjectID valueobjects.ID `json:"project_id"`
	Title     string          `json:"title"`
}

// NewProjectCreated creates a ProjectCreated event
func NewProjectCreated(projectID valueobjects.ID, title string, timestamp time.Time) ProjectCreated {
	return ProjectCreated{
		BaseEvent: BaseEvent{
			AggregateID: projectID.String(),
			EventType:   "project.created",
			Timestamp:   timestamp,
		},
		ProjectID: projectID,
		Title:     title,
	}
}

// ProjectDeleted is raised when a project is deleted
type ProjectDeleted struct {
	BaseEvent
	ProjectID valueobjects.ID `json:"project_id"`
}

// NewProjectDeleted creates a ProjectDeleted event
func NewProjectDeleted(projectID valueobjects.ID, timestamp time.Time) ProjectDeleted {
	return ProjectDeleted{
		BaseEvent: BaseEvent{
			AggregateID: projectID.String(),
			EventType:   "project.deleted",
			Timestamp:   timestamp,
		},
		ProjectID: projectID,
	}
}
