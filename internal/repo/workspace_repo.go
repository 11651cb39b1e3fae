package repo

import (
	"context"
	"fmt"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkspaceRepo persists workspaces, memberships, projects and milestones.
type WorkspaceRepo interface {
	Create(ctx context.Context, ws dom.Workspace) (dom.Workspace, error)
	ListForUser(ctx context.Context, userID string) ([]dom.Workspace, error)
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)
	AddMember(ctx context.Context, m dom.Member) (dom.Member, error)

	CreateProject(ctx context.Context, p dom.Project) (dom.Project, error)
	ListProjectsForUser(ctx context.Context, userID string) ([]dom.Project, error)
	// ProjectVisibleTo reports whether the project exists and userID is a member of its workspace.
	ProjectVisibleTo(ctx context.Context, projectID, userID string) (bool, error)
	CreateMilestone(ctx context.Context, m dom.Milestone) (dom.Milestone, error)
}

type PGWorkspaceRepo struct {
	db *pgxpool.Pool
}

func NewPGWorkspaceRepo(db *pgxpool.Pool) *PGWorkspaceRepo {
	return &PGWorkspaceRepo{db: db}
}

// Create inserts the workspace and its owner membership in one transaction.
func (r *PGWorkspaceRepo) Create(ctx context.Context, ws dom.Workspace) (dom.Workspace, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Workspace{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var out dom.Workspace
	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (id, name, owner_id) VALUES ($1, $2, $3)
		RETURNING id, name, owner_id, created_at`, ws.ID, ws.Name, ws.OwnerID,
	).Scan(&out.ID, &out.Name, &out.OwnerID, &out.CreatedAt)
	if err != nil {
		return dom.Workspace{}, fmt.Errorf("insert workspace: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3)`,
		out.ID, out.OwnerID, dom.RoleOwner,
	); err != nil {
		return dom.Workspace{}, fmt.Errorf("insert owner membership: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Workspace{}, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func (r *PGWorkspaceRepo) ListForUser(ctx context.Context, userID string) ([]dom.Workspace, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.name, w.owner_id, w.created_at
		FROM workspaces w JOIN workspace_members wm ON wm.workspace_id = w.id
		WHERE wm.user_id = $1 ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Workspace{}
	for rows.Next() {
		var w dom.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.OwnerID, &w.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *PGWorkspaceRepo) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND user_id = $2)`,
		workspaceID, userID,
	).Scan(&ok)
	return ok, err
}

func (r *PGWorkspaceRepo) AddMember(ctx context.Context, m dom.Member) (dom.Member, error) {
	var out dom.Member
	err := r.db.QueryRow(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3)
		RETURNING workspace_id, user_id, role, joined_at`, m.WorkspaceID, m.UserID, m.Role,
	).Scan(&out.WorkspaceID, &out.UserID, &out.Role, &out.JoinedAt)
	return out, err
}

func (r *PGWorkspaceRepo) CreateProject(ctx context.Context, p dom.Project) (dom.Project, error) {
	var out dom.Project
	err := r.db.QueryRow(ctx, `
		INSERT INTO projects (id, workspace_id, name, color) VALUES ($1, $2, $3, $4)
		RETURNING id, workspace_id, name, color, created_at`, p.ID, p.WorkspaceID, p.Name, p.Color,
	).Scan(&out.ID, &out.WorkspaceID, &out.Name, &out.Color, &out.CreatedAt)
	return out, err
}

func (r *PGWorkspaceRepo) ListProjectsForUser(ctx context.Context, userID string) ([]dom.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.workspace_id, p.name, p.color, p.created_at
		FROM projects p JOIN workspace_members wm ON wm.workspace_id = p.workspace_id
		WHERE wm.user_id = $1 ORDER BY p.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Project{}
	for rows.Next() {
		var p dom.Project
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Color, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PGWorkspaceRepo) ProjectVisibleTo(ctx context.Context, projectID, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM projects p JOIN workspace_members wm ON wm.workspace_id = p.workspace_id
			WHERE p.id = $1 AND wm.user_id = $2)`, projectID, userID,
	).Scan(&ok)
	return ok, err
}

func (r *PGWorkspaceRepo) CreateMilestone(ctx context.Context, m dom.Milestone) (dom.Milestone, error) {
	var out dom.Milestone
	err := r.db.QueryRow(ctx, `
		INSERT INTO milestones (id, project_id, title, due_date) VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, title, due_date, status, created_at`, m.ID, m.ProjectID, m.Title, m.DueDate,
	).Scan(&out.ID, &out.ProjectID, &out.Title, &out.DueDate, &out.Status, &out.CreatedAt)
	return out, err
}
