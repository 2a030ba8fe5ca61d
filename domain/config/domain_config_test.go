package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLimits(t *testing.T) {
	cfg := DefaultDomainConfig()

	assert.Equal(t, 50, cfg.MaxConnectionsPerNode())
	assert.Equal(t, 10000, cfg.MaxNodesPerUniverse())
	assert.Equal(t, 100, cfg.FusionHistoryCap())
	assert.Equal(t, 50, cfg.NotificationFeedCap())

	dev := DevelopmentDomainConfig()
	assert.Equal(t, 100000, dev.MaxNodesPerUniverse())
}

func TestSetLimitsZeroKeepsCurrent(t *testing.T) {
	cfg := DefaultDomainConfig()

	cfg.SetLimits(75, 0, 10, 0)
	assert.Equal(t, 75, cfg.MaxConnectionsPerNode())
	assert.Equal(t, 10000, cfg.MaxNodesPerUniverse())
	assert.Equal(t, 10, cfg.FusionHistoryCap())
	assert.Equal(t, 50, cfg.NotificationFeedCap())

	cfg.SetLimits(0, 20000, 0, 25)
	assert.Equal(t, 75, cfg.MaxConnectionsPerNode())
	assert.Equal(t, 20000, cfg.MaxNodesPerUniverse())
	assert.Equal(t, 10, cfg.FusionHistoryCap())
	assert.Equal(t, 25, cfg.NotificationFeedCap())
}

// Overrides arrive from the config watcher's goroutine while services read
// the limits, so concurrent SetLimits and accessor calls must be safe.
func TestLimitsConcurrentAccess(t *testing.T) {
	cfg := DefaultDomainConfig()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg.SetLimits(n+1, (n+1)*100, n+1, n+1)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = cfg.MaxConnectionsPerNode()
				_ = cfg.MaxNodesPerUniverse()
				_ = cfg.FusionHistoryCap()
				_ = cfg.NotificationFeedCap()
			}
		}()
	}
	wg.Wait()

	assert.Positive(t, cfg.MaxConnectionsPerNode())
}
