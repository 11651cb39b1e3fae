package handlers

import (
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary      List visible tasks
// @Description  Tasks the caller created, is assigned to, or can see through workspace membership.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Status"
// @Param        priority     query  string  false  "Priority"
// @Param        assigneeId   query  string  false  "Assignee id"
// @Param        projectId    query  string  false  "Project id"
// @Param        milestoneId  query  string  false  "Milestone id"
// @Param        createdBy    query  string  false  "Creator id"
// @Param        tags         query  string  false  "Comma separated tag names"
// @Param        search       query  string  false  "Search in title and description"
// @Param        dueDateFrom  query  string  false  "Due on or after"
// @Param        dueDateTo    query  string  false  "Due on or before"
// @Param        isOverdue    query  bool    false  "Only overdue tasks"
// @Param        hasSubtasks  query  bool    false  "With or without subtasks"
// @Param        sortBy       query  string  false  "createdAt, updatedAt, dueDate, priority, title or status"
// @Param        sortOrder    query  string  false  "asc or desc"
// @Param        page         query  int     false  "Page, from 1"
// @Param        limit        query  int     false  "Page size, at most 100"
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      400  {object}  dto.ValidationErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var q dto.ListTasksQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), q.Query())
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{
		Tasks:      tasksToResponses(page.Tasks),
		Pagination: paginationToResponse(page.Pagination),
		Filters:    q,
	})
}

// Get godoc
// @Summary      Get a task with related records
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.GetTaskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, dto.GetTaskResponse{Task: detailToResponse(d)})
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task"
// @Success      201   {object}  dto.TaskMessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Task(), req.Tags)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusCreated, dto.TaskMessageResponse{Message: "Task created successfully", Task: taskToResponse(t)})
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.TaskMessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, req.Patch())
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, dto.TaskMessageResponse{Message: "Task updated successfully", Task: taskToResponse(t)})
}

// Delete godoc
// @Summary      Delete a task
// @Description  Only the creator may delete a task.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// BulkUpdate godoc
// @Summary      Update many tasks at once
// @Description  Fails with 403 and changes nothing if any task is missing or not visible.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.BulkUpdateRequest  true  "Task ids and updates"
// @Success      200   {object}  dto.BulkUpdateResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /tasks/bulk [put]
func (h *TaskHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	patch := req.Updates.Patch()
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:   "Validation failed",
			Details: []dto.FieldError{{Field: "updates", Message: "at least one field is required"}},
		})
		return
	}
	n, err := h.svc.BulkUpdate(c.Request.Context(), auth.UserIDFromContext(c), req.TaskIDs, patch)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, dto.BulkUpdateResponse{Message: "Tasks updated successfully", UpdatedCount: n})
}

// Stats godoc
// @Summary      Task statistics
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  query     string  false  "Project id"
// @Param        timeRange  query     int     false  "Window in days (1-365, default 30)"
// @Success      200        {object}  dto.StatsResponse
// @Failure      400        {object}  dto.ValidationErrorResponse
// @Failure      500        {object}  dto.ErrorResponse
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	var q dto.TaskStatsQuery
	if !bindQuery(c, &q) {
		return
	}
	var projectID *string
	if q.ProjectID != "" {
		projectID = &q.ProjectID
	}
	st, err := h.svc.Stats(c.Request.Context(), auth.UserIDFromContext(c), projectID, q.TimeRange)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{Stats: statsToResponse(st)})
}
