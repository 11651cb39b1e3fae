package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/cache"
	dom "taskboard/internal/domain"
	"taskboard/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func ptr[T any](v T) *T { return &v }

// fakeTasks keeps tasks in memory. A task is visible to its creator and its assignee.
type fakeTasks struct {
	tasks   map[string]dom.Task
	tags    map[string][]string
	tracked map[string]int64
	err     error

	lastQuery dom.TaskQuery
	lastPatch dom.TaskPatch
	lastBulk  dom.BulkPatch
	statsArgs []time.Time
	statsN    int
	onStats   func()
}

func newFakeTasks(ts ...dom.Task) *fakeTasks {
	f := &fakeTasks{tasks: map[string]dom.Task{}, tags: map[string][]string{}, tracked: map[string]int64{}}
	for _, t := range ts {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeTasks) visible(userID string, t dom.Task) bool {
	return t.CreatorID == userID || (t.AssigneeID != nil && *t.AssigneeID == userID)
}

func (f *fakeTasks) Create(_ context.Context, t dom.Task, tagIDs []string) (dom.Task, error) {
	if f.err != nil {
		return dom.Task{}, f.err
	}
	f.tasks[t.ID] = t
	f.tags[t.ID] = tagIDs
	return t, nil
}

func (f *fakeTasks) GetVisible(_ context.Context, userID, id string) (dom.Task, error) {
	t, ok := f.tasks[id]
	if !ok || !f.visible(userID, t) {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeTasks) Summary(_ context.Context, id string) (dom.TaskSummary, error) {
	t, ok := f.tasks[id]
	if !ok {
		return dom.TaskSummary{}, pgx.ErrNoRows
	}
	return dom.TaskSummary{Task: t}, nil
}

func (f *fakeTasks) Detail(ctx context.Context, userID, id string) (dom.TaskDetail, error) {
	t, err := f.GetVisible(ctx, userID, id)
	if err != nil {
		return dom.TaskDetail{}, err
	}
	return dom.TaskDetail{TaskSummary: dom.TaskSummary{Task: t}}, nil
}

func (f *fakeTasks) List(_ context.Context, userID string, q dom.TaskQuery) ([]dom.TaskSummary, int, error) {
	f.lastQuery = q
	var out []dom.TaskSummary
	for _, t := range f.tasks {
		if f.visible(userID, t) {
			out = append(out, dom.TaskSummary{Task: t})
		}
	}
	return out, len(out), nil
}

func (f *fakeTasks) Update(_ context.Context, id string, p dom.TaskPatch) (dom.Task, error) {
	if f.err != nil {
		return dom.Task{}, f.err
	}
	f.lastPatch = p
	t, ok := f.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.CompletedAt != nil {
		t.CompletedAt = p.CompletedAt
	}
	if p.ClearCompletedAt {
		t.CompletedAt = nil
	}
	if p.ActualHours != nil {
		t.ActualHours = p.ActualHours
	}
	f.tasks[id] = t
	return t, nil
}

func (f *fakeTasks) DeleteOwned(_ context.Context, userID, id string) error {
	t, ok := f.tasks[id]
	if !ok || t.CreatorID != userID {
		return pgx.ErrNoRows
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) BulkUpdate(_ context.Context, userID string, ids []string, p dom.BulkPatch) (int, error) {
	for _, id := range ids {
		t, ok := f.tasks[id]
		if !ok || !f.visible(userID, t) {
			return 0, repo.ErrSomeInaccessible
		}
	}
	f.lastBulk = p
	for _, id := range ids {
		t := f.tasks[id]
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		f.tasks[id] = t
	}
	return len(ids), nil
}

func (f *fakeTasks) TrackedSeconds(_ context.Context, id string) (int64, error) {
	return f.tracked[id], nil
}

func (f *fakeTasks) Stats(ctx context.Context, _ string, _ *string, since time.Time) (dom.TaskStats, error) {
	f.statsN++
	f.statsArgs = append(f.statsArgs, since)
	if f.onStats != nil {
		f.onStats()
	}
	if err := ctx.Err(); err != nil {
		return dom.TaskStats{}, err
	}
	return dom.TaskStats{
		TotalTasks:            8,
		CompletedInPeriod:     3,
		AverageCompletionDays: 2.36,
		ByStatus:              map[dom.Status]int{dom.StatusDone: 3, dom.StatusTodo: 5},
		ByPriority:            map[dom.Priority]int{dom.PriorityMedium: 8},
	}, nil
}

type fakeUsers struct {
	byID map[string]dom.User
}

func newFakeUsers(us ...dom.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]dom.User{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (dom.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (dom.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) ExistsByEmailOrUsername(_ context.Context, email string, username *string) (bool, error) {
	for _, u := range f.byID {
		if u.Email == email || (username != nil && u.Username != nil && *u.Username == *username) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(_ context.Context, u dom.User) (dom.User, error) {
	f.byID[u.ID] = u
	return u, nil
}

// fakeWorkspaces tracks memberships as workspaceID -> set of user ids.
type fakeWorkspaces struct {
	members  map[string]map[string]bool
	projects map[string]string // project -> workspace
}

func newFakeWorkspaces() *fakeWorkspaces {
	return &fakeWorkspaces{members: map[string]map[string]bool{}, projects: map[string]string{}}
}

func (f *fakeWorkspaces) Create(_ context.Context, ws dom.Workspace) (dom.Workspace, error) {
	f.members[ws.ID] = map[string]bool{ws.OwnerID: true}
	return ws, nil
}

func (f *fakeWorkspaces) ListForUser(_ context.Context, userID string) ([]dom.Workspace, error) {
	var out []dom.Workspace
	for id, m := range f.members {
		if m[userID] {
			out = append(out, dom.Workspace{ID: id})
		}
	}
	return out, nil
}

func (f *fakeWorkspaces) IsMember(_ context.Context, workspaceID, userID string) (bool, error) {
	return f.members[workspaceID][userID], nil
}

func (f *fakeWorkspaces) AddMember(_ context.Context, m dom.Member) (dom.Member, error) {
	if f.members[m.WorkspaceID][m.UserID] {
		return dom.Member{}, &pgconn.PgError{Code: "23505"}
	}
	f.members[m.WorkspaceID][m.UserID] = true
	return m, nil
}

func (f *fakeWorkspaces) CreateProject(_ context.Context, p dom.Project) (dom.Project, error) {
	f.projects[p.ID] = p.WorkspaceID
	return p, nil
}

func (f *fakeWorkspaces) ListProjectsForUser(context.Context, string) ([]dom.Project, error) {
	return nil, nil
}

func (f *fakeWorkspaces) ProjectVisibleTo(_ context.Context, projectID, userID string) (bool, error) {
	ws, ok := f.projects[projectID]
	return ok && f.members[ws][userID], nil
}

func (f *fakeWorkspaces) CreateMilestone(_ context.Context, m dom.Milestone) (dom.Milestone, error) {
	return m, nil
}

// memStatsCache mirrors the Redis cache: entries live under a generation and
// Invalidate only moves the generation forward.
type memStatsCache struct {
	gen         int64
	entries     map[string]dom.TaskStats
	invalidated int
	setErr      error
}

func newMemStatsCache() *memStatsCache {
	return &memStatsCache{entries: map[string]dom.TaskStats{}}
}

func memEntry(gen int64, k cache.StatsKey) string {
	return fmt.Sprintf("%d:%s", gen, k)
}

func (m *memStatsCache) Get(_ context.Context, k cache.StatsKey) (dom.TaskStats, int64, bool, error) {
	st, ok := m.entries[memEntry(m.gen, k)]
	return st, m.gen, ok, nil
}

func (m *memStatsCache) Set(_ context.Context, k cache.StatsKey, gen int64, st dom.TaskStats) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[memEntry(gen, k)] = st
	return nil
}

func (m *memStatsCache) Invalidate(context.Context) error {
	m.invalidated++
	m.gen++
	return nil
}
