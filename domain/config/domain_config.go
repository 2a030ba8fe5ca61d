package config

import "sync/atomic"

// DomainConfig holds all configurable business rules and constraints.
// The graph and feed limits can be overridden at runtime, so they are read
// through atomic accessors; the remaining fields are fixed at construction.
type DomainConfig struct {
	maxConnectionsPerNode atomic.Int64
	maxNodesPerUniverse   atomic.Int64
	fusionHistoryCap      atomic.Int64
	notificationFeedCap   atomic.Int64

	// Fusion constraints
	MinFusionSources int
	RecentFusionsCap int
	FusionScale      float64
	FusionColor      string

	// Fusion placement volume
	FusionPlacementXZ   float64 // x and z drawn from [-FusionPlacementXZ, FusionPlacementXZ]
	FusionPlacementYMin float64
	FusionPlacementYMax float64

	// Project constraints
	MaxRelatedProjects int
	MaxTitleLength     int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	cfg := &DomainConfig{
		// Fusion constraints
		MinFusionSources: 2,
		RecentFusionsCap: 5,
		FusionScale:      1.2,
		FusionColor:      "#8b5cf6",

		// Fusion placement volume
		FusionPlacementXZ:   5.0,
		FusionPlacementYMin: 3.0,
		FusionPlacementYMax: 6.0,

		// Project constraints
		MaxRelatedProjects: 20,
		MaxTitleLength:     200,
	}

	cfg.maxConnectionsPerNode.Store(50)
	cfg.maxNodesPerUniverse.Store(10000)
	cfg.fusionHistoryCap.Store(100)
	cfg.notificationFeedCap.Store(50)

	return cfg
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	// More permissive for development
	cfg.maxNodesPerUniverse.Store(100000)

	return cfg
}

// MaxConnectionsPerNode returns the per-node connection limit
func (c *DomainConfig) MaxConnectionsPerNode() int {
	return int(c.maxConnectionsPerNode.Load())
}

// MaxNodesPerUniverse returns the universe node count limit
func (c *DomainConfig) MaxNodesPerUniverse() int {
	return int(c.maxNodesPerUniverse.Load())
}

// FusionHistoryCap returns the fusion history length limit
func (c *DomainConfig) FusionHistoryCap() int {
	return int(c.fusionHistoryCap.Load())
}

// NotificationFeedCap returns the notification feed length limit
func (c *DomainConfig) NotificationFeedCap() int {
	return int(c.notificationFeedCap.Load())
}

// SetLimits applies runtime overrides to the tunable limits. Zero values
// keep the current limit.
func (c *DomainConfig) SetLimits(maxConnectionsPerNode, maxNodesPerUniverse, fusionHistoryCap, notificationFeedCap int) {
	if maxConnectionsPerNode > 0 {
		c.maxConnectionsPerNode.Store(int64(maxConnectionsPerNode))
	}
	if maxNodesPerUniverse > 0 {
		c.maxNodesPerUniverse.Store(int64(maxNodesPerUniverse))
	}
	if fusionHistoryCap > 0 {
		c.fusionHistoryCap.Store(int64(fusionHistoryCap))
	}
	if notificationFeedCap > 0 {
		c.notificationFeedCap.Store(int64(notificationFeedCap))
	}
}
