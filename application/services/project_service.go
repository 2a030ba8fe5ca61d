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
	"creativerse-backend/domain/events"
	pkgerrors "creativerse-backend/pkg/errors"
	"creativerse-backend/pkg/observability"
)

// ProjectUpdate is a shallow-merge patch for a project; nil fields are
// left untouched
type ProjectUpdate struct {
	Title           *string
	Description     *string
	Type            *entities.ProjectType
	RelatedProjects *[]string
}

// ProjectService owns the creative project collection and its transient
// selection. Deleting a project strips its id from every remaining
// project's related list; graph nodes referencing the project are weak
// references and untouched.
type ProjectService struct {
	repo     ports.ProjectRepository
	notifier *NotificationService
	metrics  *observability.Collector
	cfg      *config.DomainConfig
	logger   *zap.Logger

	mu                sync.Mutex
	selectedProjectID string
}

// NewProjectService creates a project service
func NewProjectService(
	repo ports.ProjectRepository,
	notifier *NotificationService,
	metrics *observability.Collector,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *ProjectService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &ProjectService{
		repo:     repo,
		notifier: notifier,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
	}
}

// Create adds a project and makes it the current selection
func (s *ProjectService) Create(ctx context.Context, title, description string, projectType entities.ProjectType, related []string) (*entities.Project, error) {
	if len(title) > s.cfg.MaxTitleLength {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("project title exceeds %d characters", s.cfg.MaxTitleLength))
	}
	if len(related) > s.cfg.MaxRelatedProjects {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("a project can reference at most %d related projects", s.cfg.MaxRelatedProjects))
	}

	project, err := entities.NewProject(title, description, projectType)
	if err != nil {
		return nil, err
	}
	for _, id := range related {
		project.AddRelated(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create project")
	}

	s.selectedProjectID = project.ID.String()

	if s.metrics != nil {
		s.metrics.ProjectsCreated.Inc()
	}
	if s.notifier != nil {
		s.notifier.Add(ctx, entities.NotificationProject, fmt.Sprintf("Project %q created", title))
	}

	event := events.NewProjectCreated(project.ID, project.Title, project.CreatedAt)
	s.logger.Debug("domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
	)

	return project, nil
}

// Update applies a patch to the project and refreshes updatedAt. A missing
// id is a NotFoundError.
func (s *ProjectService) Update(ctx context.Context, id string, update ProjectUpdate) (*entities.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, found := s.repo.FindByID(ctx, id)
	if !found {
		return nil, pkgerrors.NewNotFoundError("project")
	}

	// Validate the whole patch before assigning anything, so a rejected
	// patch leaves the stored project untouched.
	if update.Title != nil {
		if *update.Title == "" {
			return nil, pkgerrors.NewValidationError("project title cannot be empty")
		}
		if len(*update.Title) > s.cfg.MaxTitleLength {
			return nil, pkgerrors.NewValidationError(fmt.Sprintf("project title exceeds %d characters", s.cfg.MaxTitleLength))
		}
	}
	if update.Type != nil {
		switch *update.Type {
		case entities.ProjectTypeVideo, entities.ProjectTypeModel, entities.ProjectTypeAudio, entities.ProjectTypeCode:
		default:
			return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid project type: %s", *update.Type))
		}
	}
	if update.RelatedProjects != nil && len(*update.RelatedProjects) > s.cfg.MaxRelatedProjects {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("a project can reference at most %d related projects", s.cfg.MaxRelatedProjects))
	}

	if update.Title != nil {
		project.Title = *update.Title
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Type != nil {
		project.Type = *update.Type
	}
	if update.RelatedProjects != nil {
		project.RelatedProjects = []string{}
		for _, rid := range *update.RelatedProjects {
			project.AddRelated(rid)
		}
	}

	project.Touch()

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to update project")
	}

	return project, nil
}

// Delete removes a project, cascades the reference cleanup across the
// remaining projects, and clears the selection when it pointed at the
// deleted project. A missing id is a NotFoundError.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, found := s.repo.FindByID(ctx, id)
	if !found {
		return pkgerrors.NewNotFoundError("project")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "failed to delete project")
	}

	for _, other := range s.repo.FindAll(ctx) {
		if other.RemoveRelated(id) {
			if err := s.repo.Save(ctx, other); err != nil {
				return pkgerrors.Wrap(err, "failed to clean project references")
			}
		}
	}

	if s.selectedProjectID == id {
		s.selectedProjectID = ""
	}

	if s.notifier != nil {
		s.notifier.Add(ctx, entities.NotificationProject, fmt.Sprintf("Project %q deleted", project.Title))
	}

	event := events.NewProjectDeleted(project.ID, time.Now())
	s.logger.Debug("domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
	)

	return nil
}

// ByID returns a project or a NotFoundError
func (s *ProjectService) ByID(ctx context.Context, id string) (*entities.Project, error) {
	project, found := s.repo.FindByID(ctx, id)
	if !found {
		return nil, pkgerrors.NewNotFoundError("project")
	}
	return project, nil
}

// List returns all projects
func (s *ProjectService) List(ctx context.Context) []*entities.Project {
	return s.repo.FindAll(ctx)
}

// Select sets the transient project selection; nil clears it. Selecting a
// missing id is a NotFoundError.
func (s *ProjectService) Select(ctx context.Context, id *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.selectedProjectID = ""
		return nil
	}

	if _, found := s.repo.FindByID(ctx, *id); !found {
		return pkgerrors.NewNotFoundError("project")
	}

	s.selectedProjectID = *id
	return nil
}

// SelectedProjectID returns the current selection, if any
func (s *ProjectService) SelectedProjectID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProjectID, s.selectedProjectID != ""
}
