package services

import (
	"context"
	"math/rand"
	"time"
)

// WorkspaceStats mixes real collection counters with display-only pseudo
// metrics. The gauge values are generated per request for the dashboard
// and deliberately do not reflect any real measurement.
type WorkspaceStats struct {
	Projects      int `json:"projects"`
	UniverseNodes int `json:"universeNodes"`
	Fusions       int `json:"fusions"`
	Notifications int `json:"notifications"`

	CPUUsage      int       `json:"cpuUsage"`
	MemoryUsage   int       `json:"memoryUsage"`
	NetworkLoad   int       `json:"networkLoad"`
	RenderLatency int       `json:"renderLatencyMs"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// StatsService assembles the workspace stats dashboard payload
type StatsService struct {
	projects *ProjectService
	universe *UniverseService
	fusion   *FusionService
	notifier *NotificationService
}

// NewStatsService creates a stats service
func NewStatsService(projects *ProjectService, universe *UniverseService, fusion *FusionService, notifier *NotificationService) *StatsService {
	return &StatsService{
		projects: projects,
		universe: universe,
		fusion:   fusion,
		notifier: notifier,
	}
}

// Snapshot returns current counters plus fresh display gauges
func (s *StatsService) Snapshot(ctx context.Context) WorkspaceStats {
	return WorkspaceStats{
		Projects:      len(s.projects.List(ctx)),
		UniverseNodes: len(s.universe.Nodes(ctx)),
		Fusions:       len(s.fusion.History(ctx)),
		Notifications: len(s.notifier.List(ctx)),

		CPUUsage:      20 + rand.Intn(60),
		MemoryUsage:   30 + rand.Intn(50),
		NetworkLoad:   5 + rand.Intn(70),
		RenderLatency: 4 + rand.Intn(28),
		GeneratedAt:   time.Now(),
	}
}
