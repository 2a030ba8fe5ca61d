package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/domain/core/valueobjects"
	"creativerse-backend/infrastructure/persistence/memory"
	pkgerrors "creativerse-backend/pkg/errors"
)

func newTestUniverseService(t *testing.T) *UniverseService {
	t.Helper()
	return NewUniverseService(
		memory.NewUniverseRepository(),
		nil,
		nil,
		nil,
		config.DefaultDomainConfig(),
		zap.NewNop(),
	)
}

func mustNode(t *testing.T, id, name string) *entities.UniverseNode {
	t.Helper()
	nodeID, err := valueobjects.ParseID(id)
	require.NoError(t, err)
	node, err := entities.NewUniverseNode(
		nodeID,
		entities.NodeTypeProject,
		name,
		valueobjects.NewPosition(0, 1, 0),
		1.0,
		"#34d399",
		entities.NodeMetadata{},
	)
	require.NoError(t, err)
	return node
}

func TestAddNodeIdempotent(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "Original")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "Imposter")))

	node, err := svc.NodeByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Original", node.Name())
	assert.Len(t, svc.Nodes(ctx), 1)
}

func TestNodeByIDMissing(t *testing.T) {
	svc := newTestUniverseService(t)

	_, err := svc.NodeByID(context.Background(), "ghost")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRemoveNodeCascadesConnections(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p2", "Two")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p3", "Three")))
	require.NoError(t, svc.ConnectNodes(ctx, "p1", "p2"))
	require.NoError(t, svc.ConnectNodes(ctx, "p3", "p2"))

	id := "p2"
	require.NoError(t, svc.SelectNode(ctx, &id))
	require.NoError(t, svc.RemoveNode(ctx, "p2"))

	_, err := svc.NodeByID(ctx, "p2")
	assert.True(t, pkgerrors.IsNotFound(err))

	for _, remaining := range []string{"p1", "p3"} {
		node, err := svc.NodeByID(ctx, remaining)
		require.NoError(t, err)
		assert.Empty(t, node.Connections(), "node %s should have been detached", remaining)
	}

	_, selected := svc.SelectedNodeID()
	assert.False(t, selected)
}

func TestRemoveNodeMissing(t *testing.T) {
	svc := newTestUniverseService(t)

	err := svc.RemoveNode(context.Background(), "ghost")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestConnectNodesEdgeCases(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p2", "Two")))

	// self connection is a silent no-op
	require.NoError(t, svc.ConnectNodes(ctx, "p1", "p1"))
	node, _ := svc.NodeByID(ctx, "p1")
	assert.Empty(t, node.Connections())

	// connecting twice yields a single edge
	require.NoError(t, svc.ConnectNodes(ctx, "p1", "p2"))
	require.NoError(t, svc.ConnectNodes(ctx, "p1", "p2"))
	node, _ = svc.NodeByID(ctx, "p1")
	assert.Len(t, node.Connections(), 1)

	// edges are one-directional
	node, _ = svc.NodeByID(ctx, "p2")
	assert.Empty(t, node.Connections())

	// missing endpoints are tolerated
	require.NoError(t, svc.ConnectNodes(ctx, "p1", "ghost"))
	require.NoError(t, svc.ConnectNodes(ctx, "ghost", "p1"))
}

func TestDisconnectNodesSilent(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p2", "Two")))
	require.NoError(t, svc.ConnectNodes(ctx, "p1", "p2"))

	require.NoError(t, svc.DisconnectNodes(ctx, "p1", "p2"))
	node, _ := svc.NodeByID(ctx, "p1")
	assert.Empty(t, node.Connections())

	// absent edge and unknown ids never error
	require.NoError(t, svc.DisconnectNodes(ctx, "p1", "p2"))
	require.NoError(t, svc.DisconnectNodes(ctx, "ghost", "p2"))
}

func TestSelectNode(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))

	id := "p1"
	require.NoError(t, svc.SelectNode(ctx, &id))
	selected, ok := svc.SelectedNodeID()
	assert.True(t, ok)
	assert.Equal(t, "p1", selected)

	ghost := "ghost"
	err := svc.SelectNode(ctx, &ghost)
	assert.True(t, pkgerrors.IsNotFound(err))

	require.NoError(t, svc.SelectNode(ctx, nil))
	_, ok = svc.SelectedNodeID()
	assert.False(t, ok)
}

func TestUpdateNode(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))

	newName := "Renamed"
	newScale := 2.0
	node, err := svc.UpdateNode(ctx, "p1", entities.NodeUpdate{Name: &newName, Scale: &newScale})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", node.Name())
	assert.Equal(t, 2.0, node.Scale())

	_, err = svc.UpdateNode(ctx, "ghost", entities.NodeUpdate{Name: &newName})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestUpdateNodeRejectedPatchLeavesNodeUntouched(t *testing.T) {
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))

	newName := "Renamed"
	badScale := -1.0
	_, err := svc.UpdateNode(ctx, "p1", entities.NodeUpdate{Name: &newName, Scale: &badScale})
	require.True(t, pkgerrors.IsValidation(err))

	node, err := svc.NodeByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "One", node.Name(), "failed patch must not rename the node")
	assert.Equal(t, 1.0, node.Scale())
}

func TestAddNodeHonorsRuntimeUniverseLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	svc := NewUniverseService(memory.NewUniverseRepository(), nil, nil, nil, cfg, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p2", "Two")))

	// shrinking the limit at runtime takes effect on the next insert
	cfg.SetLimits(0, 2, 0, 0)
	err := svc.AddNode(ctx, mustNode(t, "p3", "Three"))
	assert.True(t, pkgerrors.IsConflict(err))
	assert.Len(t, svc.Nodes(ctx), 2)
}

func TestCreateFusionNodeBackLinks(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	svc := newTestUniverseService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p1", "One")))
	require.NoError(t, svc.AddNode(ctx, mustNode(t, "p2", "Two")))

	fusionID, err := svc.CreateFusionNode(ctx, "Dream Sequence", []string{"p1", "p2", "ghost"}, entities.NodeMetadata{})
	require.NoError(t, err)

	fusion, err := svc.NodeByID(ctx, fusionID)
	require.NoError(t, err)
	assert.Equal(t, entities.NodeTypeFusion, fusion.Type())
	assert.Equal(t, cfg.FusionScale, fusion.Scale())
	assert.Equal(t, cfg.FusionColor, fusion.Color())
	assert.Empty(t, fusion.Connections(), "fusion node starts with no outgoing edges")

	pos := fusion.Position()
	assert.GreaterOrEqual(t, pos.X, -cfg.FusionPlacementXZ)
	assert.LessOrEqual(t, pos.X, cfg.FusionPlacementXZ)
	assert.GreaterOrEqual(t, pos.Y, cfg.FusionPlacementYMin)
	assert.LessOrEqual(t, pos.Y, cfg.FusionPlacementYMax)
	assert.GreaterOrEqual(t, pos.Z, -cfg.FusionPlacementXZ)
	assert.LessOrEqual(t, pos.Z, cfg.FusionPlacementXZ)

	for _, sourceID := range []string{"p1", "p2"} {
		source, err := svc.NodeByID(ctx, sourceID)
		require.NoError(t, err)
		require.Len(t, source.Connections(), 1)
		assert.Equal(t, fusionID, source.Connections()[0].String())
	}

	assert.Len(t, svc.FusionNodes(ctx), 1)
}

func TestCreateFusionNodeRequiresName(t *testing.T) {
	svc := newTestUniverseService(t)

	_, err := svc.CreateFusionNode(context.Background(), "", []string{"p1", "p2"}, entities.NodeMetadata{})
	assert.True(t, pkgerrors.IsValidation(err))
}
