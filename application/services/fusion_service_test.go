package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"creativerse-backend/application/ports"
	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/infrastructure/persistence/memory"
	pkgerrors "creativerse-backend/pkg/errors"
)

func testCatalog() []entities.RealityData {
	return []entities.RealityData{
		{ID: "a", Name: "Rain Ambience", Type: entities.DataTypeAudio},
		{ID: "v", Name: "Drone Flyover", Type: entities.DataTypeVideo},
		{ID: "c", Name: "Particle Shader", Type: entities.DataTypeCode},
		{ID: "m", Name: "Neon City Model", Type: entities.DataTypeModel},
	}
}

func newTestFusionService(t *testing.T) (*FusionService, *UniverseService) {
	t.Helper()
	cfg := config.DefaultDomainConfig()
	universe := NewUniverseService(
		memory.NewUniverseRepository(),
		nil,
		nil,
		nil,
		cfg,
		zap.NewNop(),
	)
	fusion := NewFusionService(
		memory.NewRealityDataRepository(testCatalog()),
		memory.NewFusionHistoryRepository(cfg),
		universe,
		nil,
		nil,
		nil,
		cfg,
		zap.NewNop(),
	)
	return fusion, universe
}

func TestSelectionLifecycle(t *testing.T) {
	fusion, _ := newTestFusionService(t)
	ctx := context.Background()

	err := fusion.SelectItem(ctx, "ghost")
	assert.True(t, pkgerrors.IsNotFound(err))

	require.NoError(t, fusion.SelectItem(ctx, "a"))
	require.NoError(t, fusion.SelectItem(ctx, "a"))
	require.NoError(t, fusion.SelectItem(ctx, "v"))
	assert.Equal(t, []string{"a", "v"}, fusion.Selection())

	fusion.DeselectItem("a")
	fusion.DeselectItem("absent")
	assert.Equal(t, []string{"v"}, fusion.Selection())

	fusion.ClearSelection()
	assert.Empty(t, fusion.Selection())
}

func TestPerformFusionValidation(t *testing.T) {
	fusion, _ := newTestFusionService(t)
	ctx := context.Background()

	_, err := fusion.PerformFusion(ctx, []string{"a"}, "Too Few", "")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = fusion.PerformFusion(ctx, []string{"a", "a"}, "Duplicates", "")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = fusion.PerformFusion(ctx, []string{"a", "v"}, "", "")
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = fusion.PerformFusion(ctx, []string{"a", "ghost"}, "Unknown", "")
	require.True(t, pkgerrors.IsValidation(err))
	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, []string{"ghost"}, appErr.Details["unknown_ids"])

	assert.Empty(t, fusion.History(ctx), "rejected fusions must not be recorded")
}

func TestPerformFusionCommits(t *testing.T) {
	fusion, universe := newTestFusionService(t)
	ctx := context.Background()

	result, err := fusion.PerformFusion(ctx, []string{"a", "v"}, "Storm Reel", "rain over coastline")
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "Storm Reel", result.Name)
	assert.Equal(t, []string{"a", "v"}, result.SourceDataIDs)
	assert.Equal(t, entities.FusionStatusCompleted, result.Status)
	assert.False(t, result.DateCreated.IsZero())

	// audio+video pair bonus lands exactly on the ceiling
	assert.Equal(t, 100, result.Compatibility)

	history := fusion.History(ctx)
	require.Len(t, history, 1)
	assert.Equal(t, result.ID, history[0].ID)

	fusionNodes := universe.FusionNodes(ctx)
	require.Len(t, fusionNodes, 1)
	assert.Equal(t, "Storm Reel", fusionNodes[0].Name())
}

func TestPerformFusionScoreMatchesPreview(t *testing.T) {
	fusion, _ := newTestFusionService(t)
	ctx := context.Background()

	sources := []string{"a", "v", "c"}
	for _, id := range sources {
		require.NoError(t, fusion.SelectItem(ctx, id))
	}
	preview := fusion.CompatibilityPreview(ctx)

	result, err := fusion.PerformFusion(ctx, sources, "Triple Blend", "")
	require.NoError(t, err)
	assert.Equal(t, preview, result.Compatibility, "stored score must equal the preview for the same set")

	// committing again with the same sources scores identically
	again, err := fusion.PerformFusion(ctx, sources, "Triple Blend II", "")
	require.NoError(t, err)
	assert.Equal(t, result.Compatibility, again.Compatibility)
}

func TestPerformFusionCancelledContext(t *testing.T) {
	fusion, universe := newTestFusionService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fusion.PerformFusion(ctx, []string{"a", "v"}, "Doomed", "")
	require.Error(t, err)

	assert.Empty(t, fusion.History(context.Background()))
	assert.Empty(t, universe.FusionNodes(context.Background()))
}

func TestHistoryOrderAndRecentCap(t *testing.T) {
	fusion, _ := newTestFusionService(t)
	ctx := context.Background()

	cfg := config.DefaultDomainConfig()
	total := cfg.RecentFusionsCap + 2
	for i := 0; i < total; i++ {
		_, err := fusion.PerformFusion(ctx, []string{"a", "v"}, fmt.Sprintf("Fusion %d", i), "")
		require.NoError(t, err)
	}

	history := fusion.History(ctx)
	require.Len(t, history, total)
	assert.Equal(t, fmt.Sprintf("Fusion %d", total-1), history[0].Name, "history is most recent first")

	recent := fusion.Recent(ctx)
	require.Len(t, recent, cfg.RecentFusionsCap)
	assert.Equal(t, history[0].ID, recent[0].ID)
}

// slowHistoryRepo stalls Append until released so a commit can be held
// mid-flight from the test
type slowHistoryRepo struct {
	inner    ports.FusionHistoryRepository
	entered  chan struct{}
	released chan struct{}
}

func (r *slowHistoryRepo) Append(ctx context.Context, result entities.FusionResult) error {
	r.entered <- struct{}{}
	<-r.released
	return r.inner.Append(ctx, result)
}

func (r *slowHistoryRepo) History(ctx context.Context) []entities.FusionResult {
	return r.inner.History(ctx)
}

func (r *slowHistoryRepo) Recent(ctx context.Context) []entities.FusionResult {
	return r.inner.Recent(ctx)
}

func (r *slowHistoryRepo) Replace(ctx context.Context, history []entities.FusionResult) error {
	return r.inner.Replace(ctx, history)
}

func TestPerformFusionRejectsConcurrentCommit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	history := &slowHistoryRepo{
		inner:    memory.NewFusionHistoryRepository(cfg),
		entered:  make(chan struct{}),
		released: make(chan struct{}),
	}
	fusion := NewFusionService(
		memory.NewRealityDataRepository(testCatalog()),
		history,
		nil,
		nil,
		nil,
		nil,
		cfg,
		zap.NewNop(),
	)
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, err := fusion.PerformFusion(ctx, []string{"a", "v"}, "First", "")
		firstDone <- err
	}()

	// the first commit is now parked inside Append with the guard held
	<-history.entered

	_, err := fusion.PerformFusion(ctx, []string{"c", "m"}, "Second", "")
	assert.True(t, pkgerrors.IsConflict(err))

	close(history.released)
	require.NoError(t, <-firstDone)

	recorded := fusion.History(ctx)
	require.Len(t, recorded, 1)
	assert.Equal(t, "First", recorded[0].Name)

	// the guard is released after the commit finishes
	_, err = fusion.PerformFusion(ctx, []string{"c", "m"}, "Third", "")
	require.NoError(t, err)
}

func TestHistoryEvictsBeyondCap(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	fusion := NewFusionService(
		memory.NewRealityDataRepository(testCatalog()),
		memory.NewFusionHistoryRepository(cfg),
		nil,
		nil,
		nil,
		nil,
		cfg,
		zap.NewNop(),
	)
	ctx := context.Background()

	// a cap override after construction applies to subsequent appends
	historyCap := 6
	cfg.SetLimits(0, 0, historyCap, 0)

	total := historyCap + 2
	for i := 0; i < total; i++ {
		_, err := fusion.PerformFusion(ctx, []string{"a", "v"}, fmt.Sprintf("Fusion %d", i), "")
		require.NoError(t, err)
	}

	history := fusion.History(ctx)
	require.Len(t, history, historyCap, "history must not grow past the cap")
	assert.Equal(t, fmt.Sprintf("Fusion %d", total-1), history[0].Name)
	assert.Equal(t, "Fusion 2", history[historyCap-1].Name, "the oldest entries are evicted first")
}

func TestDataByID(t *testing.T) {
	fusion, _ := newTestFusionService(t)
	ctx := context.Background()

	item, err := fusion.DataByID(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "Neon City Model", item.Name)

	_, err = fusion.DataByID(ctx, "ghost")
	assert.True(t, pkgerrors.IsNotFound(err))
}
