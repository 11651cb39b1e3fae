package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// builder accumulates positional arguments and AND-ed conditions for one statement.
type builder struct {
	args  []any
	conds []string
}

// arg registers v and returns its placeholder.
func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *builder) whereSQL() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// accessPredicate restricts t to tasks the user created, is assigned to, or can see
// through membership of the workspace owning the task's project.
func accessPredicate(b *builder, userID string) {
	u := b.arg(userID)
	b.where(fmt.Sprintf(`(t.creator_id = %[1]s OR t.assignee_id = %[1]s OR EXISTS (
		SELECT 1 FROM projects ap
		JOIN workspace_members awm ON awm.workspace_id = ap.workspace_id
		WHERE ap.id = t.project_id AND awm.user_id = %[1]s))`, u))
}

// creatorPredicate is the narrower predicate used for deletion.
func creatorPredicate(b *builder, userID string) {
	b.where("t.creator_id = " + b.arg(userID))
}

// applyTaskFilter adds one condition per present filter field.
// IsOverdue replaces both the due-date bounds and any status equality.
func applyTaskFilter(b *builder, f dom.TaskFilter, now time.Time) {
	if f.Status != nil && !f.IsOverdue {
		b.where("t.status = " + b.arg(string(*f.Status)))
	}
	if f.Priority != nil {
		b.where("t.priority = " + b.arg(string(*f.Priority)))
	}
	if f.AssigneeID != nil {
		b.where("t.assignee_id = " + b.arg(*f.AssigneeID))
	}
	if f.ProjectID != nil {
		b.where("t.project_id = " + b.arg(*f.ProjectID))
	}
	if f.MilestoneID != nil {
		b.where("t.milestone_id = " + b.arg(*f.MilestoneID))
	}
	if f.CreatedBy != nil {
		b.where("t.creator_id = " + b.arg(*f.CreatedBy))
	}

	if f.Search != "" {
		p := b.arg("%" + escapeLike(f.Search) + "%")
		b.where(fmt.Sprintf("(t.title ILIKE %[1]s OR t.description ILIKE %[1]s)", p))
	}

	if f.IsOverdue {
		b.where("t.due_date < " + b.arg(now))
		b.where("t.status <> " + b.arg(string(dom.StatusDone)))
	} else {
		if f.DueDateFrom != nil {
			b.where("t.due_date >= " + b.arg(*f.DueDateFrom))
		}
		if f.DueDateTo != nil {
			b.where("t.due_date <= " + b.arg(*f.DueDateTo))
		}
	}

	if f.HasSubtasks != nil {
		exists := "EXISTS (SELECT 1 FROM tasks st WHERE st.parent_id = t.id)"
		if *f.HasSubtasks {
			b.where(exists)
		} else {
			b.where("NOT " + exists)
		}
	}

	if len(f.Tags) > 0 {
		b.where(`EXISTS (SELECT 1 FROM task_tags ftt JOIN tags ftg ON ftg.id = ftt.tag_id
			WHERE ftt.task_id = t.id AND ftg.name = ANY(` + b.arg(f.Tags) + `))`)
	}
}

// escapeLike quotes LIKE metacharacters so the term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// orderBySQL renders keys as an ORDER BY clause. Priority orders by severity rank and
// status by declaration order; null due dates come last in either direction.
func orderBySQL(keys []dom.OrderKey) string {
	if len(keys) == 0 {
		keys = dom.TaskOrder(dom.SortCreatedAt, dom.Desc)
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		dir := "DESC"
		if k.Order == dom.Asc {
			dir = "ASC"
		}
		switch k.Field {
		case dom.SortUpdatedAt:
			parts = append(parts, "t.updated_at "+dir)
		case dom.SortDueDate:
			parts = append(parts, "t.due_date "+dir+" NULLS LAST")
		case dom.SortPriority:
			parts = append(parts, priorityRankSQL+" "+dir)
		case dom.SortTitle:
			parts = append(parts, "t.title "+dir)
		case dom.SortStatus:
			parts = append(parts, statusRankSQL+" "+dir)
		default:
			parts = append(parts, "t.created_at "+dir)
		}
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

var (
	priorityRankSQL = rankCase("t.priority", func() []string {
		out := make([]string, 0, len(dom.Priorities))
		for _, p := range dom.Priorities {
			out = append(out, string(p))
		}
		return out
	}(), func(i int, v string) int { return dom.PriorityRank(dom.Priority(v)) })

	statusRankSQL = rankCase("t.status", func() []string {
		out := make([]string, 0, len(dom.Statuses))
		for _, s := range dom.Statuses {
			out = append(out, string(s))
		}
		return out
	}(), func(i int, _ string) int { return i + 1 })
)

func rankCase(col string, values []string, rank func(i int, v string) int) string {
	var sb strings.Builder
	sb.WriteString("CASE " + col)
	for i, v := range values {
		fmt.Fprintf(&sb, " WHEN '%s' THEN %d", v, rank(i, v))
	}
	sb.WriteString(" ELSE 0 END")
	return sb.String()
}
