package handlers

import (
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login, logout and the current user.
type AuthHandler struct {
	issuer  *auth.Issuer
	revoked auth.RevocationList
	userSvc *service.UserService
}

// NewAuthHandler returns a new AuthHandler. revoked may be nil, in which case logout is a no-op.
func NewAuthHandler(issuer *auth.Issuer, revoked auth.RevocationList, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{issuer: issuer, revoked: revoked, userSvc: userSvc}
}

// Signup godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignupRequest  true  "Account"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Email, req.Password, req.Username, req.Name)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	h.respondWithToken(c, http.StatusCreated, "User created successfully", userToResponse(user))
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "User")
		return
	}
	h.respondWithToken(c, http.StatusOK, "Login successful", userToResponse(user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, msg string, user dto.UserResponse) {
	username := ""
	if user.Username != nil {
		username = *user.Username
	}
	token, exp, err := h.issuer.Issue(user.ID, user.Email, username)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(status, dto.AuthResponse{Message: msg, User: user, Token: token, ExpiresAt: exp})
}

// Logout godoc
// @Summary      Revoke the presented token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if ok && h.revoked != nil {
		if err := h.revoked.Revoke(c.Request.Context(), id.TokenID, id.Expires); err != nil {
			internalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /user/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}
