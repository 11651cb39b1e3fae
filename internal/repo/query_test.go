package repo

import (
	"reflect"
	"strings"
	"testing"
	"time"

	dom "taskboard/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestAccessPredicateReusesOnePlaceholder(t *testing.T) {
	b := &builder{}
	accessPredicate(b, "u-1")
	sql := b.whereSQL()

	if len(b.args) != 1 || b.args[0] != "u-1" {
		t.Fatalf("args = %v, want [u-1]", b.args)
	}
	for _, want := range []string{"t.creator_id = $1", "t.assignee_id = $1", "awm.user_id = $1", "ap.id = t.project_id"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("predicate %q missing %q", sql, want)
		}
	}
	if !strings.HasPrefix(sql, " WHERE (") {
		t.Fatalf("predicate not wrapped: %q", sql)
	}
}

func TestApplyTaskFilterEmpty(t *testing.T) {
	b := &builder{}
	applyTaskFilter(b, dom.TaskFilter{}, time.Now())
	if len(b.conds) != 0 || len(b.args) != 0 {
		t.Fatalf("empty filter produced conds=%v args=%v", b.conds, b.args)
	}
	if b.whereSQL() != "" {
		t.Fatalf("whereSQL = %q, want empty", b.whereSQL())
	}
}

func TestApplyTaskFilterEqualities(t *testing.T) {
	b := &builder{}
	applyTaskFilter(b, dom.TaskFilter{
		Status:      ptr(dom.StatusInReview),
		Priority:    ptr(dom.PriorityHigh),
		AssigneeID:  ptr("a"),
		ProjectID:   ptr("p"),
		MilestoneID: ptr("m"),
		CreatedBy:   ptr("c"),
	}, time.Now())

	wantConds := []string{
		"t.status = $1",
		"t.priority = $2",
		"t.assignee_id = $3",
		"t.project_id = $4",
		"t.milestone_id = $5",
		"t.creator_id = $6",
	}
	if !reflect.DeepEqual(b.conds, wantConds) {
		t.Fatalf("conds = %v, want %v", b.conds, wantConds)
	}
	wantArgs := []any{"in_review", "high", "a", "p", "m", "c"}
	if !reflect.DeepEqual(b.args, wantArgs) {
		t.Fatalf("args = %v, want %v", b.args, wantArgs)
	}
}

func TestApplyTaskFilterSearchEscapes(t *testing.T) {
	b := &builder{}
	applyTaskFilter(b, dom.TaskFilter{Search: `50%_off\`}, time.Now())
	if len(b.conds) != 1 || !strings.Contains(b.conds[0], "t.title ILIKE $1 OR t.description ILIKE $1") {
		t.Fatalf("search cond = %v", b.conds)
	}
	if got := b.args[0]; got != `%50\%\_off\\%` {
		t.Fatalf("pattern = %q", got)
	}
}

func TestApplyTaskFilterDueRange(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	b := &builder{}
	applyTaskFilter(b, dom.TaskFilter{DueDateFrom: &from, DueDateTo: &to}, time.Now())
	want := []string{"t.due_date >= $1", "t.due_date <= $2"}
	if !reflect.DeepEqual(b.conds, want) {
		t.Fatalf("conds = %v, want %v", b.conds, want)
	}
	if b.args[0] != from || b.args[1] != to {
		t.Fatalf("args = %v", b.args)
	}
}

func TestApplyTaskFilterOverdueOverridesDueAndStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	from := now.Add(-48 * time.Hour)
	b := &builder{}
	applyTaskFilter(b, dom.TaskFilter{
		Status:      ptr(dom.StatusDone),
		DueDateFrom: &from,
		IsOverdue:   true,
	}, now)

	want := []string{"t.due_date < $1", "t.status <> $2"}
	if !reflect.DeepEqual(b.conds, want) {
		t.Fatalf("conds = %v, want %v", b.conds, want)
	}
	if b.args[0] != now || b.args[1] != "done" {
		t.Fatalf("args = %v", b.args)
	}
}

func TestApplyTaskFilterSubtasksAndTags(t *testing.T) {
	b := &builder{}
	applyTaskFilter(b, dom.TaskFilter{HasSubtasks: ptr(false), Tags: []string{"bug", "ui"}}, time.Now())
	if len(b.conds) != 2 {
		t.Fatalf("conds = %v", b.conds)
	}
	if !strings.HasPrefix(b.conds[0], "NOT EXISTS (SELECT 1 FROM tasks st WHERE st.parent_id = t.id)") {
		t.Fatalf("subtask cond = %q", b.conds[0])
	}
	if !strings.Contains(b.conds[1], "ftg.name = ANY($1)") {
		t.Fatalf("tag cond = %q", b.conds[1])
	}
	if !reflect.DeepEqual(b.args[0], []string{"bug", "ui"}) {
		t.Fatalf("tag arg = %v", b.args[0])
	}

	b = &builder{}
	applyTaskFilter(b, dom.TaskFilter{HasSubtasks: ptr(true)}, time.Now())
	if !strings.HasPrefix(b.conds[0], "EXISTS") {
		t.Fatalf("has subtasks cond = %q", b.conds[0])
	}
}

func TestFilterComposesAfterAccess(t *testing.T) {
	b := &builder{}
	accessPredicate(b, "u")
	applyTaskFilter(b, dom.TaskFilter{Priority: ptr(dom.PriorityLow)}, time.Now())
	sql := b.whereSQL()
	if !strings.Contains(sql, ") AND t.priority = $2") {
		t.Fatalf("filter not ANDed after access predicate: %q", sql)
	}
}

func TestOrderBySQL(t *testing.T) {
	tests := []struct {
		field dom.SortField
		order dom.SortOrder
		want  string
	}{
		{dom.SortCreatedAt, dom.Desc, " ORDER BY t.created_at DESC"},
		{dom.SortTitle, dom.Asc, " ORDER BY t.title ASC, t.created_at DESC"},
		{dom.SortDueDate, dom.Asc, " ORDER BY t.due_date ASC NULLS LAST, t.created_at DESC"},
		{dom.SortUpdatedAt, dom.Asc, " ORDER BY t.updated_at ASC, t.created_at DESC"},
	}
	for _, tt := range tests {
		got := orderBySQL(dom.TaskOrder(tt.field, tt.order))
		if got != tt.want {
			t.Fatalf("orderBySQL(%s %s) = %q, want %q", tt.field, tt.order, got, tt.want)
		}
	}
	if got := orderBySQL(nil); got != " ORDER BY t.created_at DESC" {
		t.Fatalf("default order = %q", got)
	}
}

func TestOrderByPriorityUsesSeverity(t *testing.T) {
	got := orderBySQL(dom.TaskOrder(dom.SortPriority, dom.Asc))
	want := " ORDER BY CASE t.priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'critical' THEN 4 ELSE 0 END ASC, t.created_at DESC"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestOrderByStatusUsesDeclarationOrder(t *testing.T) {
	got := orderBySQL([]dom.OrderKey{{Field: dom.SortStatus, Order: dom.Desc}})
	want := " ORDER BY CASE t.status WHEN 'todo' THEN 1 WHEN 'in_progress' THEN 2 WHEN 'in_review' THEN 3" +
		" WHEN 'done' THEN 4 WHEN 'canceled' THEN 5 WHEN 'backlog' THEN 6 ELSE 0 END DESC"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}
