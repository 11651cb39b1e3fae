package service

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func newTestTaskService(tasks *fakeTasks, ws *fakeWorkspaces, c StatsCache) *TaskService {
	users := newFakeUsers(dom.User{ID: "alice"}, dom.User{ID: "bob"})
	if ws == nil {
		ws = newFakeWorkspaces()
	}
	s := NewTaskService(tasks, users, ws, c)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestCreateDoneSetsCompletedAt(t *testing.T) {
	tasks := newFakeTasks()
	s := newTestTaskService(tasks, nil, nil)

	got, err := s.Create(context.Background(), "alice", dom.Task{Title: "  ship it ", Status: dom.StatusDone}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Title != "ship it" || got.CreatorID != "alice" || got.Priority != dom.PriorityMedium {
		t.Fatalf("task = %+v", got.Task)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(fixedNow) {
		t.Fatalf("CompletedAt = %v, want %v", got.CompletedAt, fixedNow)
	}
}

func TestCreateDefaultsAndIgnoresClientCompletion(t *testing.T) {
	tasks := newFakeTasks()
	s := newTestTaskService(tasks, nil, nil)
	stamp := fixedNow.Add(-time.Hour)

	got, err := s.Create(context.Background(), "alice", dom.Task{Title: "x", CompletedAt: &stamp}, []string{"t1", "t1", "t2"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Status != dom.StatusTodo || got.CompletedAt != nil {
		t.Fatalf("task = %+v", got.Task)
	}
	if tags := tasks.tags[got.ID]; len(tags) != 2 {
		t.Fatalf("tags = %v, want deduped", tags)
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	ws := newFakeWorkspaces()
	ws.members["w1"] = map[string]bool{"alice": true}
	ws.projects["p1"] = "w1"
	tasks := newFakeTasks(dom.Task{ID: "parent", CreatorID: "bob"})
	s := newTestTaskService(tasks, ws, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		task dom.Task
		want error
	}{
		{"empty title", dom.Task{Title: "  "}, ErrInvalidInput},
		{"bad status", dom.Task{Title: "a", Status: "later"}, ErrInvalidInput},
		{"foreign project", dom.Task{Title: "a", ProjectID: ptr("p2")}, ErrProjectNotFound},
		{"unknown assignee", dom.Task{Title: "a", AssigneeID: ptr("carol")}, ErrAssigneeNotFound},
		{"hidden parent", dom.Task{Title: "a", ParentID: ptr("parent")}, ErrParentNotFound},
	}
	for _, tt := range tests {
		if _, err := s.Create(ctx, "alice", tt.task, nil); !errors.Is(err, tt.want) {
			t.Fatalf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}

	if _, err := s.Create(ctx, "alice", dom.Task{Title: "ok", ProjectID: ptr("p1"), AssigneeID: ptr("bob")}, nil); err != nil {
		t.Fatalf("valid create: %v", err)
	}
}

func TestCreateMapsForeignKeyViolation(t *testing.T) {
	tasks := newFakeTasks()
	tasks.err = &pgconn.PgError{Code: "23503", ConstraintName: "tasks_milestone_id_fkey"}
	s := newTestTaskService(tasks, nil, nil)
	if _, err := s.Create(context.Background(), "alice", dom.Task{Title: "a", MilestoneID: ptr("m")}, nil); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateIntoDoneRecomputesHours(t *testing.T) {
	tasks := newFakeTasks(dom.Task{ID: "t1", CreatorID: "alice", Status: dom.StatusInProgress})
	tasks.tracked["t1"] = 5400
	s := newTestTaskService(tasks, nil, nil)

	got, err := s.Update(context.Background(), "alice", "t1", dom.TaskPatch{Status: ptr(dom.StatusDone)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(fixedNow) {
		t.Fatalf("CompletedAt = %v", got.CompletedAt)
	}
	if got.ActualHours == nil || *got.ActualHours != 1.5 {
		t.Fatalf("ActualHours = %v, want 1.5", got.ActualHours)
	}
}

func TestUpdateOutOfDoneClearsCompletion(t *testing.T) {
	done := fixedNow.Add(-24 * time.Hour)
	tasks := newFakeTasks(dom.Task{ID: "t1", CreatorID: "alice", Status: dom.StatusDone, CompletedAt: &done})
	s := newTestTaskService(tasks, nil, nil)

	got, err := s.Update(context.Background(), "alice", "t1", dom.TaskPatch{Status: ptr(dom.StatusTodo)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.CompletedAt != nil {
		t.Fatalf("CompletedAt = %v, want nil", got.CompletedAt)
	}
}

func TestUpdateWithoutStatusKeepsCompletion(t *testing.T) {
	done := fixedNow.Add(-24 * time.Hour)
	tasks := newFakeTasks(dom.Task{ID: "t1", CreatorID: "alice", Status: dom.StatusDone, CompletedAt: &done})
	s := newTestTaskService(tasks, nil, nil)

	if _, err := s.Update(context.Background(), "alice", "t1", dom.TaskPatch{Title: ptr("renamed")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p := tasks.lastPatch; p.ClearCompletedAt || p.CompletedAt != nil {
		t.Fatalf("patch touched completion: %+v", p)
	}
}

func TestUpdateHiddenTaskIsNotFound(t *testing.T) {
	tasks := newFakeTasks(dom.Task{ID: "t1", CreatorID: "alice"})
	s := newTestTaskService(tasks, nil, nil)
	if _, err := s.Update(context.Background(), "bob", "t1", dom.TaskPatch{Title: ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.Update(context.Background(), "alice", "t1", dom.TaskPatch{ParentID: ptr("t1")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self parent err = %v", err)
	}
}

func TestDeleteOnlyByCreator(t *testing.T) {
	tasks := newFakeTasks(dom.Task{ID: "t1", CreatorID: "alice", AssigneeID: ptr("bob")})
	s := newTestTaskService(tasks, nil, nil)
	ctx := context.Background()

	if err := s.Delete(ctx, "bob", "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("assignee delete err = %v", err)
	}
	if err := s.Delete(ctx, "alice", "t1"); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
	if _, ok := tasks.tasks["t1"]; ok {
		t.Fatal("task still present")
	}
}

func TestBulkUpdateAllOrNothing(t *testing.T) {
	tasks := newFakeTasks(
		dom.Task{ID: "a", CreatorID: "alice", Priority: dom.PriorityLow},
		dom.Task{ID: "b", CreatorID: "bob", Priority: dom.PriorityLow},
		dom.Task{ID: "c", CreatorID: "alice", Priority: dom.PriorityLow},
	)
	s := newTestTaskService(tasks, nil, nil)
	ctx := context.Background()
	patch := dom.BulkPatch{Priority: ptr(dom.PriorityHigh)}

	if _, err := s.BulkUpdate(ctx, "alice", []string{"a", "b", "c"}, patch); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	for _, id := range []string{"a", "b", "c"} {
		if tasks.tasks[id].Priority != dom.PriorityLow {
			t.Fatalf("task %s updated despite failure", id)
		}
	}

	n, err := s.BulkUpdate(ctx, "alice", []string{"a", "c", "a"}, patch)
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if n != 2 {
		t.Fatalf("updated = %d, want 2", n)
	}
}

func TestBulkUpdateRejectsEmptyIDs(t *testing.T) {
	s := newTestTaskService(newFakeTasks(), nil, nil)
	if _, err := s.BulkUpdate(context.Background(), "alice", nil, dom.BulkPatch{Priority: ptr(dom.PriorityHigh)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestListClampsPage(t *testing.T) {
	tasks := newFakeTasks()
	s := newTestTaskService(tasks, nil, nil)
	page, err := s.List(context.Background(), "alice", dom.TaskQuery{Page: dom.Page{Number: 0, Limit: 500}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if q := tasks.lastQuery; q.Page.Number != 1 || q.Page.Limit != dom.MaxPageLimit || len(q.Order) == 0 {
		t.Fatalf("query = %+v", q)
	}
	if page.Pagination.Page != 1 || page.Pagination.TotalCount != 0 {
		t.Fatalf("pagination = %+v", page.Pagination)
	}
}

func TestStatsRoundsAndComputesRate(t *testing.T) {
	tasks := newFakeTasks()
	s := newTestTaskService(tasks, nil, nil)

	st, err := s.Stats(context.Background(), "alice", nil, 0)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.AverageCompletionDays != 2.4 {
		t.Fatalf("avg = %v, want 2.4", st.AverageCompletionDays)
	}
	if st.CompletionRate != 37.5 {
		t.Fatalf("rate = %v, want 37.5", st.CompletionRate)
	}
	if want := fixedNow.AddDate(0, 0, -DefaultStatsDays); !tasks.statsArgs[0].Equal(want) {
		t.Fatalf("since = %v, want %v", tasks.statsArgs[0], want)
	}
}

func TestStatsCachedUntilWrite(t *testing.T) {
	tasks := newFakeTasks(dom.Task{ID: "t1", CreatorID: "alice", Status: dom.StatusTodo})
	c := newMemStatsCache()
	s := newTestTaskService(tasks, nil, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Stats(ctx, "alice", nil, 7); err != nil {
			t.Fatalf("Stats: %v", err)
		}
	}
	if tasks.statsN != 1 {
		t.Fatalf("repo hit %d times, want 1", tasks.statsN)
	}

	if _, err := s.Update(ctx, "alice", "t1", dom.TaskPatch{Title: ptr("new")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if c.invalidated != 1 {
		t.Fatalf("invalidated = %d", c.invalidated)
	}
	if _, err := s.Stats(ctx, "alice", nil, 7); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if tasks.statsN != 2 {
		t.Fatalf("repo hit %d times after write, want 2", tasks.statsN)
	}
}

func TestStatsLoadedBeforeWriteAreNotServedAfterIt(t *testing.T) {
	tasks := newFakeTasks()
	c := newMemStatsCache()
	s := newTestTaskService(tasks, nil, c)
	ctx := context.Background()

	// A write lands between the cache miss and the store.
	tasks.onStats = func() {
		tasks.onStats = nil
		s.invalidateStats(ctx)
	}
	if _, err := s.Stats(ctx, "alice", nil, 30); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if _, err := s.Stats(ctx, "alice", nil, 30); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if tasks.statsN != 2 {
		t.Fatalf("repo hit %d times, want 2: pre-write stats were served", tasks.statsN)
	}
	if _, err := s.Stats(ctx, "alice", nil, 30); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if tasks.statsN != 2 {
		t.Fatalf("repo hit %d times, want 2 once the generation settled", tasks.statsN)
	}
}

func TestStatsSharedLoadSurvivesCallerCancel(t *testing.T) {
	tasks := newFakeTasks()
	c := newMemStatsCache()
	s := newTestTaskService(tasks, nil, c)

	ctx, cancel := context.WithCancel(context.Background())
	tasks.onStats = func() {
		tasks.onStats = nil
		cancel()
	}
	_, _ = s.Stats(ctx, "alice", nil, 30)

	st, err := s.Stats(context.Background(), "alice", nil, 30)
	if err != nil {
		t.Fatalf("second caller: %v", err)
	}
	if st.TotalTasks != 8 {
		t.Fatalf("stats = %+v", st)
	}
	if tasks.statsN != 1 {
		t.Fatalf("repo hit %d times, want 1: canceled load was not cached", tasks.statsN)
	}
}

func TestStatsCacheSetFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c := newMemStatsCache()
	c.setErr = errors.New("redis: connection refused")
	s := newTestTaskService(newFakeTasks(), nil, c)

	if _, err := s.Stats(context.Background(), "alice", nil, 30); err != nil {
		t.Fatalf("Stats should not fail on a cache write error: %v", err)
	}
	if !strings.Contains(logs.String(), "stats cache set") || !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("log = %q", logs.String())
	}
}
