package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSomeInaccessible is returned by BulkUpdate when at least one id is missing or not visible.
var ErrSomeInaccessible = errors.New("some tasks not found or access denied")

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task, tagIDs []string) (dom.Task, error)
	GetVisible(ctx context.Context, userID, id string) (dom.Task, error)
	Summary(ctx context.Context, id string) (dom.TaskSummary, error)
	Detail(ctx context.Context, userID, id string) (dom.TaskDetail, error)
	List(ctx context.Context, userID string, q dom.TaskQuery) ([]dom.TaskSummary, int, error)
	Update(ctx context.Context, id string, p dom.TaskPatch) (dom.Task, error)
	DeleteOwned(ctx context.Context, userID, id string) error
	BulkUpdate(ctx context.Context, userID string, ids []string, p dom.BulkPatch) (int, error)
	TrackedSeconds(ctx context.Context, id string) (int64, error)
	Stats(ctx context.Context, userID string, projectID *string, since time.Time) (dom.TaskStats, error)
}

type PGTaskRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.start_date, t.due_date,
	t.estimated_hours, t.actual_hours, t.completed_at, t.position, t.creator_id, t.assignee_id,
	t.project_id, t.milestone_id, t.parent_id, t.created_at, t.updated_at`

func taskDest(t *dom.Task) []any {
	return []any{
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.StartDate, &t.DueDate,
		&t.EstimatedHours, &t.ActualHours, &t.CompletedAt, &t.Position, &t.CreatorID, &t.AssigneeID,
		&t.ProjectID, &t.MilestoneID, &t.ParentID, &t.CreatedAt, &t.UpdatedAt,
	}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task, tagIDs []string) (dom.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tasks AS t (id, title, description, status, priority, start_date, due_date,
			estimated_hours, actual_hours, completed_at, position, creator_id, assignee_id,
			project_id, milestone_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + taskColumns
	var out dom.Task
	err = tx.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), t.StartDate, t.DueDate,
		t.EstimatedHours, t.ActualHours, t.CompletedAt, t.Position, t.CreatorID, t.AssigneeID,
		t.ProjectID, t.MilestoneID, t.ParentID,
	).Scan(taskDest(&out)...)
	if err != nil {
		return dom.Task{}, fmt.Errorf("insert task: %w", err)
	}
	if err := attachTags(ctx, tx, []string{out.ID}, tagIDs); err != nil {
		return dom.Task{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Task{}, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// attachTags links every task to every tag, ignoring links that already exist.
func attachTags(ctx context.Context, q querier, taskIDs, tagIDs []string) error {
	if len(taskIDs) == 0 || len(tagIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO task_tags (task_id, tag_id)
		SELECT task_id, tag_id FROM unnest($1::uuid[]) AS task_id CROSS JOIN unnest($2::uuid[]) AS tag_id
		ON CONFLICT DO NOTHING`, taskIDs, tagIDs)
	if err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}
	return nil
}

func (r *PGTaskRepo) GetVisible(ctx context.Context, userID, id string) (dom.Task, error) {
	b := &builder{}
	b.where("t.id = " + b.arg(id))
	accessPredicate(b, userID)
	var t dom.Task
	err := r.db.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks t"+b.whereSQL(), b.args...).Scan(taskDest(&t)...)
	return t, err
}

const summaryFrom = `
	FROM tasks t
	JOIN users c ON c.id = t.creator_id
	LEFT JOIN users a ON a.id = t.assignee_id
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN workspaces w ON w.id = p.workspace_id
	LEFT JOIN milestones m ON m.id = t.milestone_id`

const summaryColumns = taskColumns + `,
	c.id, c.name, c.email,
	a.id, a.name, a.email,
	p.id, p.name, p.color, w.id, w.name,
	m.id, m.title, m.due_date, m.status,
	(SELECT count(*) FROM tasks st WHERE st.parent_id = t.id),
	(SELECT count(*) FROM comments cm WHERE cm.task_id = t.id),
	(SELECT count(*) FROM attachments atc WHERE atc.task_id = t.id),
	(SELECT count(*) FROM time_entries te WHERE te.task_id = t.id)`

func scanSummary(row pgx.Row) (dom.TaskSummary, error) {
	var (
		s                           dom.TaskSummary
		aID, aName, aEmail          *string
		pID, pName, pColor, wID, wN *string
		mID, mTitle, mStatus        *string
		mDue                        *time.Time
	)
	dest := append(taskDest(&s.Task),
		&s.Creator.ID, &s.Creator.Name, &s.Creator.Email,
		&aID, &aName, &aEmail,
		&pID, &pName, &pColor, &wID, &wN,
		&mID, &mTitle, &mDue, &mStatus,
		&s.Counts.Subtasks, &s.Counts.Comments, &s.Counts.Attachments, &s.Counts.TimeEntries,
	)
	if err := row.Scan(dest...); err != nil {
		return dom.TaskSummary{}, err
	}
	if aID != nil {
		s.Assignee = &dom.UserBrief{ID: *aID, Name: aName, Email: deref(aEmail)}
	}
	if pID != nil {
		s.Project = &dom.ProjectBrief{
			ID: *pID, Name: deref(pName), Color: deref(pColor),
			Workspace: dom.WorkspaceBrief{ID: deref(wID), Name: deref(wN)},
		}
	}
	if mID != nil {
		s.Milestone = &dom.MilestoneBrief{ID: *mID, Title: deref(mTitle), DueDate: mDue, Status: deref(mStatus)}
	}
	return s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Summary loads one task with its summary relations, without access checks.
func (r *PGTaskRepo) Summary(ctx context.Context, id string) (dom.TaskSummary, error) {
	s, err := scanSummary(r.db.QueryRow(ctx, "SELECT "+summaryColumns+summaryFrom+" WHERE t.id = $1", id))
	if err != nil {
		return dom.TaskSummary{}, err
	}
	tags, err := loadTags(ctx, r.db, []string{id})
	if err != nil {
		return dom.TaskSummary{}, err
	}
	s.Tags = tags[id]
	return s, nil
}

func (r *PGTaskRepo) List(ctx context.Context, userID string, q dom.TaskQuery) ([]dom.TaskSummary, int, error) {
	b := &builder{}
	accessPredicate(b, userID)
	applyTaskFilter(b, q.Filter, r.now())

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM tasks t"+b.whereSQL(), b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query := "SELECT " + summaryColumns + summaryFrom + b.whereSQL() + orderBySQL(q.Order) +
		" LIMIT " + b.arg(q.Page.Limit) + " OFFSET " + b.arg(q.Page.Offset())
	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	list := []dom.TaskSummary{}
	ids := []string{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	tags, err := loadTags(ctx, r.db, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].Tags = tags[list[i].ID]
	}
	return list, total, nil
}

func loadTags(ctx context.Context, q querier, taskIDs []string) (map[string][]dom.Tag, error) {
	out := make(map[string][]dom.Tag, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT tt.task_id, tg.id, tg.name, tg.color
		FROM task_tags tt JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.task_id = ANY($1)
		ORDER BY tg.name`, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var taskID string
		var tg dom.Tag
		if err := rows.Scan(&taskID, &tg.ID, &tg.Name, &tg.Color); err != nil {
			return nil, err
		}
		out[taskID] = append(out[taskID], tg)
	}
	return out, rows.Err()
}

func (r *PGTaskRepo) Detail(ctx context.Context, userID, id string) (dom.TaskDetail, error) {
	b := &builder{}
	b.where("t.id = " + b.arg(id))
	accessPredicate(b, userID)
	s, err := scanSummary(r.db.QueryRow(ctx, "SELECT "+summaryColumns+summaryFrom+b.whereSQL(), b.args...))
	if err != nil {
		return dom.TaskDetail{}, err
	}
	d := dom.TaskDetail{TaskSummary: s}

	tags, err := loadTags(ctx, r.db, []string{id})
	if err != nil {
		return dom.TaskDetail{}, err
	}
	d.Tags = tags[id]

	if s.ParentID != nil {
		var p dom.TaskRef
		err := r.db.QueryRow(ctx, `SELECT id, title, status, priority FROM tasks WHERE id = $1`, *s.ParentID).
			Scan(&p.ID, &p.Title, &p.Status, &p.Priority)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return dom.TaskDetail{}, fmt.Errorf("load parent: %w", err)
		}
		if err == nil {
			d.Parent = &p
		}
	}

	if d.Subtasks, err = r.subtasks(ctx, id); err != nil {
		return dom.TaskDetail{}, err
	}
	if d.Comments, err = r.comments(ctx, id); err != nil {
		return dom.TaskDetail{}, err
	}
	if d.Attachments, err = r.attachments(ctx, id); err != nil {
		return dom.TaskDetail{}, err
	}
	if d.TimeEntries, err = r.timeEntries(ctx, id); err != nil {
		return dom.TaskDetail{}, err
	}
	if d.Dependencies, err = r.dependencies(ctx, "d.dependent_task_id = $1", id); err != nil {
		return dom.TaskDetail{}, err
	}
	if d.Dependents, err = r.dependencies(ctx, "d.blocking_task_id = $1", id); err != nil {
		return dom.TaskDetail{}, err
	}
	return d, nil
}

func (r *PGTaskRepo) subtasks(ctx context.Context, id string) ([]dom.TaskRef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, status, priority FROM tasks
		WHERE parent_id = $1 ORDER BY position ASC, created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("load subtasks: %w", err)
	}
	defer rows.Close()
	list := []dom.TaskRef{}
	for rows.Next() {
		var s dom.TaskRef
		if err := rows.Scan(&s.ID, &s.Title, &s.Status, &s.Priority); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) comments(ctx context.Context, id string) ([]dom.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cm.id, cm.task_id, cm.content, cm.created_at, u.id, u.name, u.email
		FROM comments cm JOIN users u ON u.id = cm.author_id
		WHERE cm.task_id = $1 ORDER BY cm.created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()
	list := []dom.Comment{}
	for rows.Next() {
		var c dom.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Content, &c.CreatedAt, &c.Author.ID, &c.Author.Name, &c.Author.Email); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) attachments(ctx context.Context, id string) ([]dom.Attachment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, filename, original_name, size, url, created_at
		FROM attachments WHERE task_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("load attachments: %w", err)
	}
	defer rows.Close()
	list := []dom.Attachment{}
	for rows.Next() {
		var a dom.Attachment
		if err := rows.Scan(&a.ID, &a.Filename, &a.OriginalName, &a.Size, &a.URL, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) timeEntries(ctx context.Context, id string) ([]dom.TimeEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT te.id, te.task_id, te.description, te.start_time, te.end_time, te.duration, te.created_at,
			u.id, u.name, u.email
		FROM time_entries te JOIN users u ON u.id = te.user_id
		WHERE te.task_id = $1 ORDER BY te.start_time DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("load time entries: %w", err)
	}
	defer rows.Close()
	list := []dom.TimeEntry{}
	for rows.Next() {
		var e dom.TimeEntry
		if err := rows.Scan(&e.ID, &e.TaskID, &e.Description, &e.StartTime, &e.EndTime, &e.Duration, &e.CreatedAt,
			&e.User.ID, &e.User.Name, &e.User.Email); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) dependencies(ctx context.Context, cond, id string) ([]dom.Dependency, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.created_at,
			bt.id, bt.title, bt.status, bt.priority,
			dt.id, dt.title, dt.status, dt.priority
		FROM task_dependencies d
		JOIN tasks bt ON bt.id = d.blocking_task_id
		JOIN tasks dt ON dt.id = d.dependent_task_id
		WHERE `+cond+` ORDER BY d.created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("load dependencies: %w", err)
	}
	defer rows.Close()
	list := []dom.Dependency{}
	for rows.Next() {
		var d dom.Dependency
		if err := rows.Scan(&d.ID, &d.CreatedAt,
			&d.Blocking.ID, &d.Blocking.Title, &d.Blocking.Status, &d.Blocking.Priority,
			&d.Dependent.ID, &d.Dependent.Title, &d.Dependent.Status, &d.Dependent.Priority); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update applies p to the task. Callers check access first.
func (r *PGTaskRepo) Update(ctx context.Context, id string, p dom.TaskPatch) (dom.Task, error) {
	b := &builder{}
	sets := []string{"updated_at = NOW()"}
	set := func(col string, v any) { sets = append(sets, col+" = "+b.arg(v)) }

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Status != nil {
		set("status", string(*p.Status))
	}
	if p.Priority != nil {
		set("priority", string(*p.Priority))
	}
	if p.StartDate != nil {
		set("start_date", *p.StartDate)
	}
	if p.DueDate != nil {
		set("due_date", *p.DueDate)
	}
	if p.EstimatedHours != nil {
		set("estimated_hours", *p.EstimatedHours)
	}
	if p.AssigneeID != nil {
		set("assignee_id", *p.AssigneeID)
	}
	if p.ProjectID != nil {
		set("project_id", *p.ProjectID)
	}
	if p.MilestoneID != nil {
		set("milestone_id", *p.MilestoneID)
	}
	if p.ParentID != nil {
		set("parent_id", *p.ParentID)
	}
	if p.Position != nil {
		set("position", *p.Position)
	}
	switch {
	case p.CompletedAt != nil:
		set("completed_at", *p.CompletedAt)
	case p.ClearCompletedAt:
		sets = append(sets, "completed_at = NULL")
	}
	if p.ActualHours != nil {
		set("actual_hours", *p.ActualHours)
	}
	b.where("t.id = " + b.arg(id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var t dom.Task
	query := "UPDATE tasks t SET " + strings.Join(sets, ", ") + b.whereSQL() + " RETURNING " + taskColumns
	if err := tx.QueryRow(ctx, query, b.args...).Scan(taskDest(&t)...); err != nil {
		return dom.Task{}, err
	}
	if err := attachTags(ctx, tx, []string{id}, p.TagIDs); err != nil {
		return dom.Task{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return dom.Task{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// DeleteOwned removes the task only if userID created it. Returns pgx.ErrNoRows otherwise.
func (r *PGTaskRepo) DeleteOwned(ctx context.Context, userID, id string) error {
	b := &builder{}
	b.where("t.id = " + b.arg(id))
	creatorPredicate(b, userID)
	tag, err := r.db.Exec(ctx, "DELETE FROM tasks t"+b.whereSQL(), b.args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// BulkUpdate locks every visible row among ids and applies p only if all ids are visible.
// ids must be distinct.
func (r *PGTaskRepo) BulkUpdate(ctx context.Context, userID string, ids []string, p dom.BulkPatch) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	check := &builder{}
	check.where("t.id = ANY(" + check.arg(ids) + ")")
	accessPredicate(check, userID)
	rows, err := tx.Query(ctx, "SELECT t.id FROM tasks t"+check.whereSQL()+" FOR UPDATE OF t", check.args...)
	if err != nil {
		return 0, fmt.Errorf("lock tasks: %w", err)
	}
	visible := 0
	for rows.Next() {
		visible++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("lock tasks: %w", err)
	}
	if visible != len(ids) {
		return 0, ErrSomeInaccessible
	}

	b := &builder{}
	sets := []string{"updated_at = NOW()"}
	if p.Status != nil {
		s := b.arg(string(*p.Status))
		done := b.arg(string(dom.StatusDone))
		now := b.arg(r.now())
		sets = append(sets,
			"status = "+s,
			fmt.Sprintf(`completed_at = CASE
				WHEN %[1]s::text = %[2]s::text AND t.status <> %[2]s::text THEN %[3]s::timestamptz
				WHEN %[1]s::text <> %[2]s::text THEN NULL
				ELSE t.completed_at END`, s, done, now),
			fmt.Sprintf(`actual_hours = CASE
				WHEN %[1]s::text = %[2]s::text AND t.status <> %[2]s::text
				THEN COALESCE((SELECT SUM(te.duration) FROM time_entries te WHERE te.task_id = t.id), 0) / 3600.0
				ELSE t.actual_hours END`, s, done),
		)
	}
	if p.Priority != nil {
		sets = append(sets, "priority = "+b.arg(string(*p.Priority)))
	}
	if p.AssigneeID != nil {
		sets = append(sets, "assignee_id = "+b.arg(*p.AssigneeID))
	}
	if p.ProjectID != nil {
		sets = append(sets, "project_id = "+b.arg(*p.ProjectID))
	}
	if p.MilestoneID != nil {
		sets = append(sets, "milestone_id = "+b.arg(*p.MilestoneID))
	}
	b.where("t.id = ANY(" + b.arg(ids) + ")")

	tag, err := tx.Exec(ctx, "UPDATE tasks t SET "+strings.Join(sets, ", ")+b.whereSQL(), b.args...)
	if err != nil {
		return 0, fmt.Errorf("bulk update: %w", err)
	}
	if err := attachTags(ctx, tx, ids, p.TagIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PGTaskRepo) TrackedSeconds(ctx context.Context, id string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(duration), 0) FROM time_entries WHERE task_id = $1`, id).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum time entries: %w", err)
	}
	return total, nil
}

const upcomingWindow = 7 * 24 * time.Hour

// Stats aggregates the tasks visible to userID, optionally within one project.
// since bounds the completed-in-period and average-completion figures.
func (r *PGTaskRepo) Stats(ctx context.Context, userID string, projectID *string, since time.Time) (dom.TaskStats, error) {
	now := r.now()
	base := func() *builder {
		b := &builder{}
		accessPredicate(b, userID)
		if projectID != nil {
			b.where("t.project_id = " + b.arg(*projectID))
		}
		return b
	}

	b := base()
	nowArg := b.arg(now)
	sinceArg := b.arg(since)
	untilArg := b.arg(now.Add(upcomingWindow))
	closed := b.arg([]string{string(dom.StatusDone), string(dom.StatusCanceled)})
	done := b.arg(string(dom.StatusDone))
	query := fmt.Sprintf(`
		SELECT
			count(*),
			count(*) FILTER (WHERE t.due_date < %[1]s AND NOT (t.status = ANY(%[4]s))),
			count(*) FILTER (WHERE t.status = %[5]s AND t.completed_at >= %[2]s),
			count(*) FILTER (WHERE t.due_date >= %[1]s AND t.due_date <= %[3]s AND NOT (t.status = ANY(%[4]s))),
			COALESCE(AVG(EXTRACT(EPOCH FROM (t.completed_at - t.created_at)) / 86400.0)
				FILTER (WHERE t.status = %[5]s AND t.completed_at IS NOT NULL AND t.created_at >= %[2]s), 0)::float8
		FROM tasks t`, nowArg, sinceArg, untilArg, closed, done) + b.whereSQL()

	st := dom.TaskStats{ByStatus: map[dom.Status]int{}, ByPriority: map[dom.Priority]int{}}
	err := r.db.QueryRow(ctx, query, b.args...).Scan(
		&st.TotalTasks, &st.OverdueTasks, &st.CompletedInPeriod, &st.UpcomingTasks, &st.AverageCompletionDays,
	)
	if err != nil {
		return dom.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}

	if err := r.groupCount(ctx, base(), "t.status", func(k string, n int) { st.ByStatus[dom.Status(k)] = n }); err != nil {
		return dom.TaskStats{}, err
	}
	if err := r.groupCount(ctx, base(), "t.priority", func(k string, n int) { st.ByPriority[dom.Priority(k)] = n }); err != nil {
		return dom.TaskStats{}, err
	}
	return st, nil
}

func (r *PGTaskRepo) groupCount(ctx context.Context, b *builder, col string, add func(string, int)) error {
	rows, err := r.db.Query(ctx, "SELECT "+col+", count(*) FROM tasks t"+b.whereSQL()+" GROUP BY "+col, b.args...)
	if err != nil {
		return fmt.Errorf("group by %s: %w", col, err)
	}
	defer rows.Close()
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return err
		}
		add(k, n)
	}
	return rows.Err()
}
