package handlers

import (
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkspaceHandler serves workspaces, members, projects, milestones and tags.
type WorkspaceHandler struct {
	svc  *service.WorkspaceService
	tags *service.TagService
}

func NewWorkspaceHandler(svc *service.WorkspaceService, tags *service.TagService) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc, tags: tags}
}

// CreateWorkspace godoc
// @Summary      Create a workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateWorkspaceRequest  true  "Workspace"
// @Success      201   {object}  dto.WorkspaceResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if !bindJSON(c, &req) {
		return
	}
	w, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name)
	if err != nil {
		respondError(c, err, "Workspace")
		return
	}
	c.JSON(http.StatusCreated, workspaceToResponse(w))
}

// ListWorkspaces godoc
// @Summary      Workspaces the caller belongs to
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.WorkspaceResponse
// @Router       /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		internalError(c, err)
		return
	}
	out := make([]dto.WorkspaceResponse, len(list))
	for i := range list {
		out[i] = workspaceToResponse(list[i])
	}
	c.JSON(http.StatusOK, out)
}

// AddMember godoc
// @Summary      Add a member to a workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Workspace ID"
// @Param        body  body      dto.AddMemberRequest  true  "Member email"
// @Success      201   {object}  dto.MemberResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /workspaces/{id}/members [post]
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.svc.AddMember(c.Request.Context(), auth.UserIDFromContext(c), id, req.Email)
	if err != nil {
		respondError(c, err, "Workspace")
		return
	}
	c.JSON(http.StatusCreated, dto.MemberResponse{WorkspaceID: m.WorkspaceID, UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt})
}

// CreateProject godoc
// @Summary      Create a project in a workspace
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateProjectRequest  true  "Project"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /projects [post]
func (h *WorkspaceHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.svc.CreateProject(c.Request.Context(), auth.UserIDFromContext(c), req.WorkspaceID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Workspace")
		return
	}
	c.JSON(http.StatusCreated, projectToResponse(p))
}

// ListProjects godoc
// @Summary      Projects in the caller's workspaces
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ProjectResponse
// @Router       /projects [get]
func (h *WorkspaceHandler) ListProjects(c *gin.Context) {
	list, err := h.svc.ListProjects(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		internalError(c, err)
		return
	}
	out := make([]dto.ProjectResponse, len(list))
	for i := range list {
		out[i] = projectToResponse(list[i])
	}
	c.JSON(http.StatusOK, out)
}

// CreateMilestone godoc
// @Summary      Add a milestone to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Project ID"
// @Param        body  body      dto.CreateMilestoneRequest  true  "Milestone"
// @Success      201   {object}  dto.MilestoneResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /projects/{id}/milestones [post]
func (h *WorkspaceHandler) CreateMilestone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateMilestoneRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.svc.CreateMilestone(c.Request.Context(), auth.UserIDFromContext(c), id, req.Title, req.DueDate.Ptr())
	if err != nil {
		respondError(c, err, "Project")
		return
	}
	c.JSON(http.StatusCreated, milestoneToResponse(m))
}

// CreateTag godoc
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTagRequest  true  "Tag"
// @Success      201   {object}  dto.TagResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /tags [post]
func (h *WorkspaceHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.tags.Create(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Tag")
		return
	}
	c.JSON(http.StatusCreated, tagToResponse(t))
}

// ListTags godoc
// @Summary      All tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TagResponse
// @Router       /tags [get]
func (h *WorkspaceHandler) ListTags(c *gin.Context) {
	list, err := h.tags.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	out := make([]dto.TagResponse, len(list))
	for i := range list {
		out[i] = tagToResponse(list[i])
	}
	c.JSON(http.StatusOK, out)
}
