package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"taskboard/internal/cache"
	dom "taskboard/internal/domain"
	"taskboard/internal/pgerr"
	"taskboard/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// StatsCache is the subset of cache.StatsCache the services need.
type StatsCache interface {
	Get(ctx context.Context, k cache.StatsKey) (st dom.TaskStats, gen int64, ok bool, err error)
	Set(ctx context.Context, k cache.StatsKey, gen int64, st dom.TaskStats) error
	Invalidate(ctx context.Context) error
}

func invalidateStats(ctx context.Context, c StatsCache) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		log.Printf("stats cache invalidate: %v", err)
	}
}

type TaskService struct {
	tasks      repo.TaskRepo
	users      repo.UserRepo
	workspaces repo.WorkspaceRepo
	cache      StatsCache
	sf         singleflight.Group
	now        func() time.Time
}

// NewTaskService creates a TaskService. If c is nil, stats caching is disabled.
func NewTaskService(tasks repo.TaskRepo, users repo.UserRepo, workspaces repo.WorkspaceRepo, c StatsCache) *TaskService {
	return &TaskService{
		tasks:      tasks,
		users:      users,
		workspaces: workspaces,
		cache:      c,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks      []dom.TaskSummary
	Pagination dom.Pagination
}

func (s *TaskService) List(ctx context.Context, userID string, q dom.TaskQuery) (TaskPage, error) {
	if q.Page.Number < 1 {
		q.Page.Number = 1
	}
	if q.Page.Limit < 1 {
		q.Page.Limit = dom.DefaultPageLimit
	}
	if q.Page.Limit > dom.MaxPageLimit {
		q.Page.Limit = dom.MaxPageLimit
	}
	if len(q.Order) == 0 {
		q.Order = dom.TaskOrder(dom.SortCreatedAt, dom.Desc)
	}
	list, total, err := s.tasks.List(ctx, userID, q)
	if err != nil {
		return TaskPage{}, err
	}
	return TaskPage{Tasks: list, Pagination: dom.NewPagination(q.Page, total)}, nil
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (dom.TaskDetail, error) {
	d, err := s.tasks.Detail(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskDetail{}, ErrNotFound
		}
		return dom.TaskDetail{}, err
	}
	return d, nil
}

// Create validates references and stores a task created by userID.
func (s *TaskService) Create(ctx context.Context, userID string, t dom.Task, tagIDs []string) (dom.TaskSummary, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if t.Title == "" {
		return dom.TaskSummary{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if t.Status == "" {
		t.Status = dom.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = dom.PriorityMedium
	}
	if !t.Status.Valid() || !t.Priority.Valid() {
		return dom.TaskSummary{}, fmt.Errorf("%w: unknown status or priority", ErrInvalidInput)
	}

	if t.ProjectID != nil {
		ok, err := s.workspaces.ProjectVisibleTo(ctx, *t.ProjectID, userID)
		if err != nil {
			return dom.TaskSummary{}, err
		}
		if !ok {
			return dom.TaskSummary{}, ErrProjectNotFound
		}
	}
	if t.AssigneeID != nil {
		if err := s.requireUser(ctx, *t.AssigneeID); err != nil {
			return dom.TaskSummary{}, err
		}
	}
	if t.ParentID != nil {
		if _, err := s.tasks.GetVisible(ctx, userID, *t.ParentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return dom.TaskSummary{}, ErrParentNotFound
			}
			return dom.TaskSummary{}, err
		}
	}

	t.ID = uuid.NewString()
	t.CreatorID = userID
	t.CompletedAt = nil
	t.ActualHours = nil
	if t.Status == dom.StatusDone {
		now := s.now()
		zero := 0.0
		t.CompletedAt = &now
		t.ActualHours = &zero
	}

	created, err := s.tasks.Create(ctx, t, dedupe(tagIDs))
	if err != nil {
		return dom.TaskSummary{}, mapWriteErr(err)
	}
	s.invalidateStats(ctx)
	return s.summary(ctx, created.ID)
}

func (s *TaskService) requireUser(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAssigneeNotFound
		}
		return err
	}
	return nil
}

// Update applies a partial update to a task visible to userID. Status transitions
// into done stamp CompletedAt and recompute ActualHours; transitions out clear CompletedAt.
func (s *TaskService) Update(ctx context.Context, userID, id string, p dom.TaskPatch) (dom.TaskSummary, error) {
	existing, err := s.tasks.GetVisible(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskSummary{}, ErrNotFound
		}
		return dom.TaskSummary{}, err
	}

	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if v == "" {
			return dom.TaskSummary{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		p.Title = &v
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		p.Description = &v
	}
	if p.Status != nil && !p.Status.Valid() || p.Priority != nil && !p.Priority.Valid() {
		return dom.TaskSummary{}, fmt.Errorf("%w: unknown status or priority", ErrInvalidInput)
	}
	if p.ParentID != nil && *p.ParentID == id {
		return dom.TaskSummary{}, fmt.Errorf("%w: a task cannot be its own parent", ErrInvalidInput)
	}
	if p.AssigneeID != nil {
		if err := s.requireUser(ctx, *p.AssigneeID); err != nil {
			return dom.TaskSummary{}, err
		}
	}

	p.CompletedAt, p.ClearCompletedAt, p.ActualHours = nil, false, nil
	if p.Status != nil {
		switch {
		case *p.Status == dom.StatusDone && existing.Status != dom.StatusDone:
			now := s.now()
			secs, err := s.tasks.TrackedSeconds(ctx, id)
			if err != nil {
				return dom.TaskSummary{}, err
			}
			hours := float64(secs) / 3600
			p.CompletedAt = &now
			p.ActualHours = &hours
		case *p.Status != dom.StatusDone && existing.Status == dom.StatusDone:
			p.ClearCompletedAt = true
		}
	}
	p.TagIDs = dedupe(p.TagIDs)

	if _, err := s.tasks.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskSummary{}, ErrNotFound
		}
		return dom.TaskSummary{}, mapWriteErr(err)
	}
	s.invalidateStats(ctx)
	return s.summary(ctx, id)
}

// Delete removes a task. Only its creator may delete it.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.tasks.DeleteOwned(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// BulkUpdate applies p to every task in ids. If any id is missing or not visible
// to userID nothing is updated and ErrForbidden is returned.
func (s *TaskService) BulkUpdate(ctx context.Context, userID string, ids []string, p dom.BulkPatch) (int, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one task id is required", ErrInvalidInput)
	}
	if p.Status != nil && !p.Status.Valid() || p.Priority != nil && !p.Priority.Valid() {
		return 0, fmt.Errorf("%w: unknown status or priority", ErrInvalidInput)
	}
	if p.AssigneeID != nil {
		if err := s.requireUser(ctx, *p.AssigneeID); err != nil {
			return 0, err
		}
	}
	p.TagIDs = dedupe(p.TagIDs)

	n, err := s.tasks.BulkUpdate(ctx, userID, ids, p)
	if err != nil {
		if errors.Is(err, repo.ErrSomeInaccessible) {
			return 0, ErrForbidden
		}
		return 0, mapWriteErr(err)
	}
	s.invalidateStats(ctx)
	return n, nil
}

const (
	DefaultStatsDays = 30
	MaxStatsDays     = 365
)

// Stats aggregates the tasks visible to userID over the last days days.
func (s *TaskService) Stats(ctx context.Context, userID string, projectID *string, days int) (dom.TaskStats, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	load := func(ctx context.Context) (dom.TaskStats, error) {
		since := s.now().AddDate(0, 0, -days)
		st, err := s.tasks.Stats(ctx, userID, projectID, since)
		if err != nil {
			return dom.TaskStats{}, err
		}
		st.AverageCompletionDays = round1(st.AverageCompletionDays)
		st.CompletionRate = 0
		if st.TotalTasks > 0 {
			st.CompletionRate = round1(float64(st.CompletedInPeriod) / float64(st.TotalTasks) * 100)
		}
		return st, nil
	}
	if s.cache == nil {
		return load(ctx)
	}

	key := cache.StatsKey{UserID: userID, Days: days}
	if projectID != nil {
		key.ProjectID = *projectID
	}
	// The shared load outlives any single caller.
	ch := s.sf.DoChan(key.String(), func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		st, gen, ok, err := s.cache.Get(ctx, key)
		if err == nil && ok {
			return st, nil
		}
		if err != nil {
			log.Printf("stats cache get %s: %v", key, err)
		}
		cacheable := err == nil
		st, err = load(ctx)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if err := s.cache.Set(ctx, key, gen, st); err != nil {
				log.Printf("stats cache set %s: %v", key, err)
			}
		}
		return st, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return dom.TaskStats{}, res.Err
		}
		return res.Val.(dom.TaskStats), nil
	case <-ctx.Done():
		return dom.TaskStats{}, ctx.Err()
	}
}

func (s *TaskService) summary(ctx context.Context, id string) (dom.TaskSummary, error) {
	sum, err := s.tasks.Summary(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskSummary{}, ErrNotFound
		}
		return dom.TaskSummary{}, err
	}
	return sum, nil
}

func (s *TaskService) invalidateStats(ctx context.Context) {
	invalidateStats(ctx, s.cache)
}

// mapWriteErr turns constraint violations into input errors.
func mapWriteErr(err error) error {
	switch {
	case pgerr.IsForeignKeyViolation(err):
		return fmt.Errorf("%w (%s)", ErrInvalidReference, pgerr.Constraint(err))
	case pgerr.IsCheckViolation(err):
		return fmt.Errorf("%w: %s", ErrInvalidInput, pgerr.Constraint(err))
	case pgerr.IsUniqueViolation(err):
		return ErrAlreadyExists
	}
	return err
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
