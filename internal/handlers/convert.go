package handlers

import (
	dom "taskboard/internal/domain"
	"taskboard/internal/dto"
)

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email, Username: u.Username, Name: u.Name, CreatedAt: u.CreatedAt}
}

func briefToResponse(u dom.UserBrief) dto.UserBriefResponse {
	return dto.UserBriefResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func refToResponse(r dom.TaskRef) dto.TaskRefResponse {
	return dto.TaskRefResponse{ID: r.ID, Title: r.Title, Status: string(r.Status), Priority: string(r.Priority)}
}

func tagToResponse(t dom.Tag) dto.TagResponse {
	return dto.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
}

func taskToResponse(t dom.TaskSummary) dto.TaskResponse {
	out := dto.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		StartDate:      t.StartDate,
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CompletedAt:    t.CompletedAt,
		Position:       t.Position,
		CreatorID:      t.CreatorID,
		AssigneeID:     t.AssigneeID,
		ProjectID:      t.ProjectID,
		MilestoneID:    t.MilestoneID,
		ParentID:       t.ParentID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Creator:        briefToResponse(t.Creator),
		Tags:           make([]dto.TagResponse, 0, len(t.Tags)),
		Count: dto.TaskCountsResponse{
			Subtasks:    t.Counts.Subtasks,
			Comments:    t.Counts.Comments,
			Attachments: t.Counts.Attachments,
			TimeEntries: t.Counts.TimeEntries,
		},
	}
	if t.Assignee != nil {
		a := briefToResponse(*t.Assignee)
		out.Assignee = &a
	}
	if t.Project != nil {
		out.Project = &dto.ProjectBriefResponse{
			ID:    t.Project.ID,
			Name:  t.Project.Name,
			Color: t.Project.Color,
			Workspace: dto.WorkspaceBriefResponse{
				ID:   t.Project.Workspace.ID,
				Name: t.Project.Workspace.Name,
			},
		}
	}
	if t.Milestone != nil {
		out.Milestone = &dto.MilestoneBriefResponse{
			ID:      t.Milestone.ID,
			Title:   t.Milestone.Title,
			DueDate: t.Milestone.DueDate,
			Status:  t.Milestone.Status,
		}
	}
	for _, tag := range t.Tags {
		out.Tags = append(out.Tags, tagToResponse(tag))
	}
	return out
}

func tasksToResponses(list []dom.TaskSummary) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}

func commentToResponse(c dom.Comment) dto.CommentResponse {
	return dto.CommentResponse{ID: c.ID, Content: c.Content, Author: briefToResponse(c.Author), CreatedAt: c.CreatedAt}
}

func timeEntryToResponse(e dom.TimeEntry) dto.TimeEntryResponse {
	return dto.TimeEntryResponse{
		ID:          e.ID,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Duration:    e.Duration,
		User:        briefToResponse(e.User),
		CreatedAt:   e.CreatedAt,
	}
}

func dependencyToResponse(d dom.Dependency) dto.DependencyResponse {
	return dto.DependencyResponse{
		ID:            d.ID,
		BlockingTask:  refToResponse(d.Blocking),
		DependentTask: refToResponse(d.Dependent),
		CreatedAt:     d.CreatedAt,
	}
}

func detailToResponse(d dom.TaskDetail) dto.TaskDetailResponse {
	out := dto.TaskDetailResponse{
		TaskResponse: taskToResponse(d.TaskSummary),
		Subtasks:     make([]dto.TaskRefResponse, 0, len(d.Subtasks)),
		Comments:     make([]dto.CommentResponse, 0, len(d.Comments)),
		Attachments:  make([]dto.AttachmentResponse, 0, len(d.Attachments)),
		TimeEntries:  make([]dto.TimeEntryResponse, 0, len(d.TimeEntries)),
		Dependencies: make([]dto.DependencyResponse, 0, len(d.Dependencies)),
		Dependents:   make([]dto.DependencyResponse, 0, len(d.Dependents)),
	}
	if d.Parent != nil {
		p := refToResponse(*d.Parent)
		out.Parent = &p
	}
	for _, s := range d.Subtasks {
		out.Subtasks = append(out.Subtasks, refToResponse(s))
	}
	for _, c := range d.Comments {
		out.Comments = append(out.Comments, commentToResponse(c))
	}
	for _, a := range d.Attachments {
		out.Attachments = append(out.Attachments, dto.AttachmentResponse{
			ID: a.ID, Filename: a.Filename, OriginalName: a.OriginalName, Size: a.Size, URL: a.URL, CreatedAt: a.CreatedAt,
		})
	}
	for _, e := range d.TimeEntries {
		out.TimeEntries = append(out.TimeEntries, timeEntryToResponse(e))
	}
	for _, dep := range d.Dependencies {
		out.Dependencies = append(out.Dependencies, dependencyToResponse(dep))
	}
	for _, dep := range d.Dependents {
		out.Dependents = append(out.Dependents, dependencyToResponse(dep))
	}
	return out
}

func statsToResponse(st dom.TaskStats) dto.TaskStatsResponse {
	out := dto.TaskStatsResponse{
		TotalTasks:            st.TotalTasks,
		TasksByStatus:         make(map[string]int, len(dom.Statuses)),
		TasksByPriority:       make(map[string]int, len(dom.Priorities)),
		OverdueTasks:          st.OverdueTasks,
		CompletedInPeriod:     st.CompletedInPeriod,
		UpcomingTasks:         st.UpcomingTasks,
		AverageCompletionDays: st.AverageCompletionDays,
		CompletionRate:        st.CompletionRate,
	}
	for _, s := range dom.Statuses {
		out.TasksByStatus[string(s)] = st.ByStatus[s]
	}
	for _, p := range dom.Priorities {
		out.TasksByPriority[string(p)] = st.ByPriority[p]
	}
	return out
}

func paginationToResponse(p dom.Pagination) dto.PaginationResponse {
	return dto.PaginationResponse{
		Page:        p.Page,
		Limit:       p.Limit,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}
}

func workspaceToResponse(w dom.Workspace) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{ID: w.ID, Name: w.Name, OwnerID: w.OwnerID, CreatedAt: w.CreatedAt}
}

func projectToResponse(p dom.Project) dto.ProjectResponse {
	return dto.ProjectResponse{ID: p.ID, WorkspaceID: p.WorkspaceID, Name: p.Name, Color: p.Color, CreatedAt: p.CreatedAt}
}

func milestoneToResponse(m dom.Milestone) dto.MilestoneResponse {
	return dto.MilestoneResponse{ID: m.ID, ProjectID: m.ProjectID, Title: m.Title, DueDate: m.DueDate, Status: m.Status, CreatedAt: m.CreatedAt}
}
