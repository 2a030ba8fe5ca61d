package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"creativerse-backend/domain/config"
	"creativerse-backend/domain/core/entities"
	"creativerse-backend/infrastructure/persistence/memory"
	pkgerrors "creativerse-backend/pkg/errors"
)

func newTestProjectService(t *testing.T) *ProjectService {
	t.Helper()
	return NewProjectService(memory.NewProjectRepository(), nil, nil, nil, zap.NewNop())
}

func TestCreateProjectSelectsIt(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, "Neon Short", "a moody short film", entities.ProjectTypeVideo, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID.String())
	assert.False(t, project.CreatedAt.IsZero())

	selected, ok := svc.SelectedProjectID()
	assert.True(t, ok)
	assert.Equal(t, project.ID.String(), selected)
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "", entities.ProjectTypeVideo, nil)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = svc.Create(ctx, "Bad Type", "", entities.ProjectType("sculpture"), nil)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestProjectLimits(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()
	cfg := config.DefaultDomainConfig()

	longTitle := strings.Repeat("x", cfg.MaxTitleLength+1)
	_, err := svc.Create(ctx, longTitle, "", entities.ProjectTypeVideo, nil)
	assert.True(t, pkgerrors.IsValidation(err))

	crowd := make([]string, cfg.MaxRelatedProjects+1)
	for i := range crowd {
		crowd[i] = fmt.Sprintf("ref-%d", i)
	}
	_, err = svc.Create(ctx, "Crowded", "", entities.ProjectTypeVideo, crowd)
	assert.True(t, pkgerrors.IsValidation(err))

	project, err := svc.Create(ctx, "Within Limits", "", entities.ProjectTypeVideo, nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, project.ID.String(), ProjectUpdate{Title: &longTitle})
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = svc.Update(ctx, project.ID.String(), ProjectUpdate{RelatedProjects: &crowd})
	assert.True(t, pkgerrors.IsValidation(err))

	kept, err := svc.ByID(ctx, project.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Within Limits", kept.Title, "rejected patches must not change the project")
	assert.Empty(t, kept.RelatedProjects)
}

func TestUpdateProject(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, "Draft", "", entities.ProjectTypeAudio, nil)
	require.NoError(t, err)
	created := project.UpdatedAt

	title := "Final Mix"
	updated, err := svc.Update(ctx, project.ID.String(), ProjectUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Final Mix", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(created))

	empty := ""
	_, err = svc.Update(ctx, project.ID.String(), ProjectUpdate{Title: &empty})
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = svc.Update(ctx, "ghost", ProjectUpdate{Title: &title})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDeleteProjectCascadesRelated(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "First", "", entities.ProjectTypeVideo, nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Second", "", entities.ProjectTypeModel, []string{first.ID.String()})
	require.NoError(t, err)
	require.Equal(t, []string{first.ID.String()}, second.RelatedProjects)

	require.NoError(t, svc.Delete(ctx, first.ID.String()))

	_, err = svc.ByID(ctx, first.ID.String())
	assert.True(t, pkgerrors.IsNotFound(err))

	remaining, err := svc.ByID(ctx, second.ID.String())
	require.NoError(t, err)
	assert.Empty(t, remaining.RelatedProjects, "deleted project id must be stripped from related lists")
}

func TestDeleteProjectClearsSelection(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, "Solo", "", entities.ProjectTypeCode, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, project.ID.String()))
	_, ok := svc.SelectedProjectID()
	assert.False(t, ok)

	err = svc.Delete(ctx, project.ID.String())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSelectProject(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, "Pick Me", "", entities.ProjectTypeVideo, nil)
	require.NoError(t, err)

	ghost := "ghost"
	err = svc.Select(ctx, &ghost)
	assert.True(t, pkgerrors.IsNotFound(err))

	// failed select keeps the previous selection
	selected, ok := svc.SelectedProjectID()
	assert.True(t, ok)
	assert.Equal(t, project.ID.String(), selected)

	require.NoError(t, svc.Select(ctx, nil))
	_, ok = svc.SelectedProjectID()
	assert.False(t, ok)
}
