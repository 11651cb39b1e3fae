package repo

import (
	"context"
	"fmt"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepo persists the child records of a task. Callers check task access first.
type ActivityRepo interface {
	AddComment(ctx context.Context, c dom.Comment) (dom.Comment, error)
	AddTimeEntry(ctx context.Context, e dom.TimeEntry) (dom.TimeEntry, error)
	AddDependency(ctx context.Context, id, blockingID, dependentID string) (dom.Dependency, error)
}

type PGActivityRepo struct {
	db *pgxpool.Pool
}

func NewPGActivityRepo(db *pgxpool.Pool) *PGActivityRepo {
	return &PGActivityRepo{db: db}
}

func (r *PGActivityRepo) AddComment(ctx context.Context, c dom.Comment) (dom.Comment, error) {
	var out dom.Comment
	err := r.db.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO comments (id, task_id, author_id, content) VALUES ($1, $2, $3, $4)
			RETURNING id, task_id, author_id, content, created_at
		)
		SELECT ins.id, ins.task_id, ins.content, ins.created_at, u.id, u.name, u.email
		FROM ins JOIN users u ON u.id = ins.author_id`,
		c.ID, c.TaskID, c.Author.ID, c.Content,
	).Scan(&out.ID, &out.TaskID, &out.Content, &out.CreatedAt, &out.Author.ID, &out.Author.Name, &out.Author.Email)
	if err != nil {
		return dom.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return out, nil
}

func (r *PGActivityRepo) AddTimeEntry(ctx context.Context, e dom.TimeEntry) (dom.TimeEntry, error) {
	var out dom.TimeEntry
	err := r.db.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO time_entries (id, task_id, user_id, description, start_time, end_time, duration)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, task_id, user_id, description, start_time, end_time, duration, created_at
		)
		SELECT ins.id, ins.task_id, ins.description, ins.start_time, ins.end_time, ins.duration, ins.created_at,
			u.id, u.name, u.email
		FROM ins JOIN users u ON u.id = ins.user_id`,
		e.ID, e.TaskID, e.User.ID, e.Description, e.StartTime, e.EndTime, e.Duration,
	).Scan(&out.ID, &out.TaskID, &out.Description, &out.StartTime, &out.EndTime, &out.Duration, &out.CreatedAt,
		&out.User.ID, &out.User.Name, &out.User.Email)
	if err != nil {
		return dom.TimeEntry{}, fmt.Errorf("insert time entry: %w", err)
	}
	return out, nil
}

func (r *PGActivityRepo) AddDependency(ctx context.Context, id, blockingID, dependentID string) (dom.Dependency, error) {
	var d dom.Dependency
	err := r.db.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO task_dependencies (id, blocking_task_id, dependent_task_id) VALUES ($1, $2, $3)
			RETURNING id, blocking_task_id, dependent_task_id, created_at
		)
		SELECT ins.id, ins.created_at,
			bt.id, bt.title, bt.status, bt.priority,
			dt.id, dt.title, dt.status, dt.priority
		FROM ins
		JOIN tasks bt ON bt.id = ins.blocking_task_id
		JOIN tasks dt ON dt.id = ins.dependent_task_id`,
		id, blockingID, dependentID,
	).Scan(&d.ID, &d.CreatedAt,
		&d.Blocking.ID, &d.Blocking.Title, &d.Blocking.Status, &d.Blocking.Priority,
		&d.Dependent.ID, &d.Dependent.Title, &d.Dependent.Status, &d.Dependent.Priority)
	if err != nil {
		return dom.Dependency{}, fmt.Errorf("insert dependency: %w", err)
	}
	return d, nil
}
