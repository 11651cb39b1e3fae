package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "taskboard/internal/domain"
	"taskboard/internal/pgerr"
	"taskboard/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultProjectColor = "#3B82F6"

// WorkspaceService manages workspaces, their members, projects and milestones.
type WorkspaceService struct {
	repo  repo.WorkspaceRepo
	users repo.UserRepo
	cache StatsCache
}

// NewWorkspaceService creates a WorkspaceService. c may be nil.
func NewWorkspaceService(repo repo.WorkspaceRepo, users repo.UserRepo, c StatsCache) *WorkspaceService {
	return &WorkspaceService{repo: repo, users: users, cache: c}
}

// Create makes a workspace owned by ownerID, who becomes its first member.
func (s *WorkspaceService) Create(ctx context.Context, ownerID, name string) (dom.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Workspace{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.repo.Create(ctx, dom.Workspace{ID: uuid.NewString(), Name: name, OwnerID: ownerID})
}

func (s *WorkspaceService) List(ctx context.Context, userID string) ([]dom.Workspace, error) {
	return s.repo.ListForUser(ctx, userID)
}

// AddMember adds the user with the given email to a workspace the caller belongs to.
func (s *WorkspaceService) AddMember(ctx context.Context, callerID, workspaceID, email string) (dom.Member, error) {
	if err := s.requireMember(ctx, workspaceID, callerID); err != nil {
		return dom.Member{}, err
	}
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Member{}, ErrUserNotFound
		}
		return dom.Member{}, err
	}
	m, err := s.repo.AddMember(ctx, dom.Member{WorkspaceID: workspaceID, UserID: u.ID, Role: dom.RoleMember})
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return dom.Member{}, ErrAlreadyExists
		}
		return dom.Member{}, err
	}
	// New members see the workspace's project tasks.
	invalidateStats(ctx, s.cache)
	return m, nil
}

// CreateProject adds a project to a workspace the caller belongs to.
func (s *WorkspaceService) CreateProject(ctx context.Context, callerID, workspaceID, name, color string) (dom.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Project{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if color == "" {
		color = defaultProjectColor
	}
	if err := s.requireMember(ctx, workspaceID, callerID); err != nil {
		return dom.Project{}, err
	}
	return s.repo.CreateProject(ctx, dom.Project{ID: uuid.NewString(), WorkspaceID: workspaceID, Name: name, Color: color})
}

func (s *WorkspaceService) ListProjects(ctx context.Context, userID string) ([]dom.Project, error) {
	return s.repo.ListProjectsForUser(ctx, userID)
}

// CreateMilestone adds a milestone to a project visible to the caller.
func (s *WorkspaceService) CreateMilestone(ctx context.Context, callerID, projectID, title string, due *time.Time) (dom.Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Milestone{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	ok, err := s.repo.ProjectVisibleTo(ctx, projectID, callerID)
	if err != nil {
		return dom.Milestone{}, err
	}
	if !ok {
		return dom.Milestone{}, ErrProjectNotFound
	}
	return s.repo.CreateMilestone(ctx, dom.Milestone{ID: uuid.NewString(), ProjectID: projectID, Title: title, DueDate: due})
}

// requireMember hides workspaces the caller cannot see behind ErrNotFound.
func (s *WorkspaceService) requireMember(ctx context.Context, workspaceID, userID string) error {
	ok, err := s.repo.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
