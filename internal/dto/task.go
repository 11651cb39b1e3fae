package dto

import (
	"strings"
	"time"

	dom "taskboard/internal/domain"
)

type CreateTaskRequest struct {
	Title          string   `json:"title" binding:"required,min=1,max=200"`
	Description    string   `json:"description" binding:"max=5000"`
	Status         string   `json:"status" binding:"omitempty,taskstatus"`
	Priority       string   `json:"priority" binding:"omitempty,taskpriority"`
	StartDate      Date     `json:"startDate"`
	DueDate        Date     `json:"dueDate"` // "2026-02-19" or RFC3339
	EstimatedHours *float64 `json:"estimatedHours" binding:"omitempty,min=0"`
	AssigneeID     *string  `json:"assigneeId" binding:"omitempty,uuid"`
	ProjectID      *string  `json:"projectId" binding:"omitempty,uuid"`
	MilestoneID    *string  `json:"milestoneId" binding:"omitempty,uuid"`
	ParentID       *string  `json:"parentId" binding:"omitempty,uuid"`
	Position       int      `json:"position" binding:"min=0"`
	Tags           []string `json:"tags" binding:"omitempty,max=50,dive,uuid"`
}

func (r CreateTaskRequest) Task() dom.Task {
	return dom.Task{
		Title:          r.Title,
		Description:    r.Description,
		Status:         dom.Status(r.Status),
		Priority:       dom.Priority(r.Priority),
		StartDate:      r.StartDate.Ptr(),
		DueDate:        r.DueDate.Ptr(),
		EstimatedHours: r.EstimatedHours,
		AssigneeID:     r.AssigneeID,
		ProjectID:      r.ProjectID,
		MilestoneID:    r.MilestoneID,
		ParentID:       r.ParentID,
		Position:       r.Position,
	}
}

// UpdateTaskRequest is a partial update; omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title          *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string  `json:"description" binding:"omitempty,max=5000"`
	Status         *string  `json:"status" binding:"omitempty,taskstatus"`
	Priority       *string  `json:"priority" binding:"omitempty,taskpriority"`
	StartDate      *Date    `json:"startDate"`
	DueDate        *Date    `json:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours" binding:"omitempty,min=0"`
	AssigneeID     *string  `json:"assigneeId" binding:"omitempty,uuid"`
	ProjectID      *string  `json:"projectId" binding:"omitempty,uuid"`
	MilestoneID    *string  `json:"milestoneId" binding:"omitempty,uuid"`
	ParentID       *string  `json:"parentId" binding:"omitempty,uuid"`
	Position       *int     `json:"position" binding:"omitempty,min=0"`
	Tags           []string `json:"tags" binding:"omitempty,max=50,dive,uuid"`
}

func (r UpdateTaskRequest) Patch() dom.TaskPatch {
	p := dom.TaskPatch{
		Title:          r.Title,
		Description:    r.Description,
		StartDate:      DatePtr(r.StartDate),
		DueDate:        DatePtr(r.DueDate),
		EstimatedHours: r.EstimatedHours,
		AssigneeID:     r.AssigneeID,
		ProjectID:      r.ProjectID,
		MilestoneID:    r.MilestoneID,
		ParentID:       r.ParentID,
		Position:       r.Position,
		TagIDs:         r.Tags,
	}
	if r.Status != nil {
		s := dom.Status(*r.Status)
		p.Status = &s
	}
	if r.Priority != nil {
		pr := dom.Priority(*r.Priority)
		p.Priority = &pr
	}
	return p
}

type BulkUpdates struct {
	Status      *string  `json:"status" binding:"omitempty,taskstatus"`
	Priority    *string  `json:"priority" binding:"omitempty,taskpriority"`
	AssigneeID  *string  `json:"assigneeId" binding:"omitempty,uuid"`
	ProjectID   *string  `json:"projectId" binding:"omitempty,uuid"`
	MilestoneID *string  `json:"milestoneId" binding:"omitempty,uuid"`
	Tags        []string `json:"tags" binding:"omitempty,max=50,dive,uuid"`
}

type BulkUpdateRequest struct {
	TaskIDs []string    `json:"taskIds" binding:"required,min=1,max=100,dive,uuid"`
	Updates BulkUpdates `json:"updates"`
}

func (u BulkUpdates) Patch() dom.BulkPatch {
	p := dom.BulkPatch{
		AssigneeID:  u.AssigneeID,
		ProjectID:   u.ProjectID,
		MilestoneID: u.MilestoneID,
		TagIDs:      u.Tags,
	}
	if u.Status != nil {
		s := dom.Status(*u.Status)
		p.Status = &s
	}
	if u.Priority != nil {
		pr := dom.Priority(*u.Priority)
		p.Priority = &pr
	}
	return p
}

type BulkUpdateResponse struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updatedCount"`
}

// ListTasksQuery is the query string of GET /tasks.
type ListTasksQuery struct {
	Status      string `form:"status" json:"status,omitempty" binding:"omitempty,taskstatus"`
	Priority    string `form:"priority" json:"priority,omitempty" binding:"omitempty,taskpriority"`
	AssigneeID  string `form:"assigneeId" json:"assigneeId,omitempty" binding:"omitempty,uuid"`
	ProjectID   string `form:"projectId" json:"projectId,omitempty" binding:"omitempty,uuid"`
	MilestoneID string `form:"milestoneId" json:"milestoneId,omitempty" binding:"omitempty,uuid"`
	CreatedBy   string `form:"createdBy" json:"createdBy,omitempty" binding:"omitempty,uuid"`
	Tags        string `form:"tags" json:"tags,omitempty" binding:"max=1000"`
	Search      string `form:"search" json:"search,omitempty" binding:"max=200"`
	DueDateFrom string `form:"dueDateFrom" json:"dueDateFrom,omitempty" binding:"omitempty,flexdate"`
	DueDateTo   string `form:"dueDateTo" json:"dueDateTo,omitempty" binding:"omitempty,flexdate"`
	IsOverdue   string `form:"isOverdue" json:"isOverdue,omitempty" binding:"omitempty,oneof=true false"`
	HasSubtasks string `form:"hasSubtasks" json:"hasSubtasks,omitempty" binding:"omitempty,oneof=true false"`
	SortBy      string `form:"sortBy" json:"sortBy,omitempty" binding:"omitempty,oneof=createdAt updatedAt dueDate priority title status"`
	SortOrder   string `form:"sortOrder" json:"sortOrder,omitempty" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page,default=1" json:"-" binding:"min=1"`
	Limit       int    `form:"limit,default=20" json:"-" binding:"min=1"`
}

// Query converts a validated ListTasksQuery. Limits above the maximum are clamped.
func (q ListTasksQuery) Query() dom.TaskQuery {
	f := dom.TaskFilter{
		Search:    strings.TrimSpace(q.Search),
		IsOverdue: q.IsOverdue == "true",
	}
	if q.Status != "" {
		s := dom.Status(q.Status)
		f.Status = &s
	}
	if q.Priority != "" {
		p := dom.Priority(q.Priority)
		f.Priority = &p
	}
	f.AssigneeID = nonEmpty(q.AssigneeID)
	f.ProjectID = nonEmpty(q.ProjectID)
	f.MilestoneID = nonEmpty(q.MilestoneID)
	f.CreatedBy = nonEmpty(q.CreatedBy)
	for _, tag := range strings.Split(q.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	f.DueDateFrom = parsedOrNil(q.DueDateFrom)
	f.DueDateTo = parsedOrNil(q.DueDateTo)
	if q.HasSubtasks != "" {
		v := q.HasSubtasks == "true"
		f.HasSubtasks = &v
	}

	limit := q.Limit
	if limit > dom.MaxPageLimit {
		limit = dom.MaxPageLimit
	}
	return dom.TaskQuery{
		Filter: f,
		Order:  dom.TaskOrder(dom.SortField(q.SortBy), dom.SortOrder(q.SortOrder)),
		Page:   dom.Page{Number: q.Page, Limit: limit},
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parsedOrNil(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

type TaskStatsQuery struct {
	ProjectID string `form:"projectId" binding:"omitempty,uuid"`
	TimeRange int    `form:"timeRange,default=30" binding:"min=1,max=365"`
}

type UserBriefResponse struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type WorkspaceBriefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProjectBriefResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Color     string                 `json:"color"`
	Workspace WorkspaceBriefResponse `json:"workspace"`
}

type MilestoneBriefResponse struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate"`
	Status  string     `json:"status"`
}

type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TaskCountsResponse struct {
	Subtasks    int `json:"subtasks"`
	Comments    int `json:"comments"`
	Attachments int `json:"attachments"`
	TimeEntries int `json:"timeEntries"`
}

type TaskResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	StartDate      *time.Time `json:"startDate"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
	ActualHours    *float64   `json:"actualHours"`
	CompletedAt    *time.Time `json:"completedAt"`
	Position       int        `json:"position"`
	CreatorID      string     `json:"creatorId"`
	AssigneeID     *string    `json:"assigneeId"`
	ProjectID      *string    `json:"projectId"`
	MilestoneID    *string    `json:"milestoneId"`
	ParentID       *string    `json:"parentId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Creator   UserBriefResponse       `json:"creator"`
	Assignee  *UserBriefResponse      `json:"assignee"`
	Project   *ProjectBriefResponse   `json:"project"`
	Milestone *MilestoneBriefResponse `json:"milestone"`
	Tags      []TagResponse           `json:"tags"`
	Count     TaskCountsResponse      `json:"_count"`
}

type TaskRefResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type TaskDetailResponse struct {
	TaskResponse
	Parent       *TaskRefResponse     `json:"parent"`
	Subtasks     []TaskRefResponse    `json:"subtasks"`
	Comments     []CommentResponse    `json:"comments"`
	Attachments  []AttachmentResponse `json:"attachments"`
	TimeEntries  []TimeEntryResponse  `json:"timeEntries"`
	Dependencies []DependencyResponse `json:"dependencies"`
	Dependents   []DependencyResponse `json:"dependents"`
}

type PaginationResponse struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type ListTasksResponse struct {
	Tasks      []TaskResponse     `json:"tasks"`
	Pagination PaginationResponse `json:"pagination"`
	Filters    ListTasksQuery     `json:"filters"`
}

type GetTaskResponse struct {
	Task TaskDetailResponse `json:"task"`
}

type TaskMessageResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

type TaskStatsResponse struct {
	TotalTasks            int            `json:"totalTasks"`
	TasksByStatus         map[string]int `json:"tasksByStatus"`
	TasksByPriority       map[string]int `json:"tasksByPriority"`
	OverdueTasks          int            `json:"overdueTasks"`
	CompletedInPeriod     int            `json:"completedInPeriod"`
	UpcomingTasks         int            `json:"upcomingTasks"`
	AverageCompletionDays float64        `json:"averageCompletionDays"`
	CompletionRate        float64        `json:"completionRate"`
}

type StatsResponse struct {
	Stats TaskStatsResponse `json:"stats"`
}
