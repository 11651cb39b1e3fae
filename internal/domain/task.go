package domain

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
	StatusCanceled   Status = "canceled"
	StatusBacklog    Status = "backlog"
)

// Statuses lists every status in declaration order. Sorting by status follows this order.
var Statuses = []Status{
	StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusCanceled, StatusBacklog,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) Valid() bool {
	return PriorityRank(p) > 0
}

// PriorityRank maps a priority to its severity, 1 (low) to 4 (critical). Unknown values are 0.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	}
	return 0
}

// Task is a unit of work. Subtasks are tasks whose ParentID points at another task.
type Task struct {
	ID             string
	Title          string
	Description    string
	Status         Status
	Priority       Priority
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	CompletedAt    *time.Time
	Position       int

	CreatorID   string
	AssigneeID  *string
	ProjectID   *string
	MilestoneID *string
	ParentID    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskRef is a minimal reference to another task (parent, subtask, dependency end).
type TaskRef struct {
	ID       string
	Title    string
	Status   Status
	Priority Priority
}

type TaskCounts struct {
	Subtasks    int
	Comments    int
	Attachments int
	TimeEntries int
}

// TaskSummary is a task row as returned by list endpoints.
type TaskSummary struct {
	Task
	Creator   UserBrief
	Assignee  *UserBrief
	Project   *ProjectBrief
	Milestone *MilestoneBrief
	Tags      []Tag
	Counts    TaskCounts
}

// TaskDetail is a task with every related record loaded.
type TaskDetail struct {
	TaskSummary
	Parent       *TaskRef
	Subtasks     []TaskRef
	Comments     []Comment
	Attachments  []Attachment
	TimeEntries  []TimeEntry
	Dependencies []Dependency // edges where this task is the dependent
	Dependents   []Dependency // edges where this task is the blocker
}

// TaskPatch is a partial update. Nil fields are left unchanged.
// CompletedAt, ClearCompletedAt and ActualHours are derived by the service from status
// transitions and are never taken from request input.
type TaskPatch struct {
	Title          *string
	Description    *string
	Status         *Status
	Priority       *Priority
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
	AssigneeID     *string
	ProjectID      *string
	MilestoneID    *string
	ParentID       *string
	Position       *int
	TagIDs         []string

	CompletedAt      *time.Time
	ClearCompletedAt bool
	ActualHours      *float64
}

// BulkPatch is the subset of fields that can be applied to many tasks at once.
type BulkPatch struct {
	Status      *Status
	Priority    *Priority
	AssigneeID  *string
	ProjectID   *string
	MilestoneID *string
	TagIDs      []string
}

func (p BulkPatch) Empty() bool {
	return p.Status == nil && p.Priority == nil && p.AssigneeID == nil &&
		p.ProjectID == nil && p.MilestoneID == nil && len(p.TagIDs) == 0
}

// TaskStats are aggregates over the tasks visible to one user.
type TaskStats struct {
	TotalTasks            int
	ByStatus              map[Status]int
	ByPriority            map[Priority]int
	OverdueTasks          int
	CompletedInPeriod     int
	UpcomingTasks         int
	AverageCompletionDays float64
	CompletionRate        float64
}
