package handlers

import (
	"net/http"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves comments, time entries and dependencies under /tasks/{id}.
type ActivityHandler struct {
	svc *service.ActivityService
}

func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// AddComment godoc
// @Summary      Comment on a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Task ID"
// @Param        body  body      dto.CreateCommentRequest  true  "Comment"
// @Success      201   {object}  dto.CommentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/comments [post]
func (h *ActivityHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := h.svc.AddComment(c.Request.Context(), auth.UserIDFromContext(c), id, req.Content)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusCreated, commentToResponse(cm))
}

// AddTimeEntry godoc
// @Summary      Log time on a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Task ID"
// @Param        body  body      dto.CreateTimeEntryRequest  true  "Time entry"
// @Success      201   {object}  dto.TimeEntryResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/time-entries [post]
func (h *ActivityHandler) AddTimeEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateTimeEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	var start time.Time
	if p := req.StartTime.Ptr(); p != nil {
		start = *p
	}
	e, err := h.svc.AddTimeEntry(c.Request.Context(), auth.UserIDFromContext(c), id, req.Description, start, req.EndTime.Ptr(), req.Duration)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusCreated, timeEntryToResponse(e))
}

// AddDependency godoc
// @Summary      Mark a task as blocked by another
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Dependent task ID"
// @Param        body  body      dto.CreateDependencyRequest  true  "Blocking task"
// @Success      201   {object}  dto.DependencyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/dependencies [post]
func (h *ActivityHandler) AddDependency(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateDependencyRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.svc.AddDependency(c.Request.Context(), auth.UserIDFromContext(c), id, req.BlockingTaskID)
	if err != nil {
		respondError(c, err, "Task")
		return
	}
	c.JSON(http.StatusCreated, dependencyToResponse(d))
}
