package entities

import (
	"fmt"
	"time"

	"creativerse-backend/domain/core/valueobjects"
	pkgerrors "creativerse-backend/pkg/errors"
)

// ProjectType classifies a creative project
type ProjectType string

const (
	ProjectTypeVideo ProjectType = "video"
	ProjectTypeModel ProjectType = "model"
	ProjectTypeAudio ProjectType = "audio"
	ProjectTypeCode  ProjectType = "code"
)

var validProjectTypes = map[ProjectType]bool{
	ProjectTypeVideo: true,
	ProjectTypeModel: true,
	ProjectTypeAudio: true,
	ProjectTypeCode:  true,
}

// Project is a creative workspace project. Related projects are weak
// references by id; deleting a project strips its id from every remaining
// project's related list.
type Project struct {
	ID              valueobjects.ID `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Type            ProjectType     `json:"type"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	RelatedProjects []string        `json:"relatedProjects"`
}

// NewProject creates a project with a fresh id and timestamps
func NewProject(title, description string, projectType ProjectType) (*Project, error) {
	if title == "" {
		return nil, pkgerrors.NewValidationError("project title cannot be empty")
	}
	if !validProjectTypes[projectType] {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid project type: %s", projectType))
	}

	now := time.Now()
	return &Project{
		ID:              valueobjects.NewID(),
		Title:           title,
		Description:     description,
		Type:            projectType,
		CreatedAt:       now,
		UpdatedAt:       now,
		RelatedProjects: []string{},
	}, nil
}

// Touch refreshes the updatedAt timestamp
func (p *Project) Touch() {
	p.UpdatedAt = time.Now()
}

// AddRelated records a weak reference to another project. Self references
// and duplicates are ignored.
func (p *Project) AddRelated(id string) {
	if id == "" || id == p.ID.String() {
		return
	}
	for _, r := range p.RelatedProjects {
		if r == id {
			return
		}
	}
	p.RelatedProjects = append(p.RelatedProjects, id)
}

// RemoveRelated strips a reference; reports whether anything changed
func (p *Project) RemoveRelated(id string) bool {
	kept := p.RelatedProjects[:0]
	removed := false
	for _, r := range p.RelatedProjects {
		if r == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	p.RelatedProjects = kept
	return removed
}
