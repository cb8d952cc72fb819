package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/user"
	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/internal/shared/utils"
	"bookshelf-backend/pkg/logger"
)

// UserHandler serves account and profile endpoints.
type UserHandler struct {
	service   user.Service
	uploadDir string
}

func NewUserHandler(service user.Service, uploadDir string) *UserHandler {
	return &UserHandler{service: service, uploadDir: uploadDir}
}

// SignUp handles POST /auth/sign-up
func (h *UserHandler) SignUp(c *gin.Context) {
	var req user.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	resp, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// SignIn handles POST /auth/sign-in
func (h *UserHandler) SignIn(c *gin.Context) {
	var req user.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// SignOut handles POST /auth/sign-out. Tokens are stateless, so sign-out
// is a client-side discard; the endpoint exists for API symmetry.
func (h *UserHandler) SignOut(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

// Profile handles GET /users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	dto, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": dto})
}

// EditProfile handles POST /users/profile/edit
func (h *UserHandler) EditProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	dto, err := h.service.EditProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": dto})
}

// DeleteAccount handles POST /users/delete
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account deleted"})
}

// UploadImage handles POST /users/profile/upload-image. The stored
// path is returned for the client to submit via profile/edit.
func (h *UserHandler) UploadImage(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required", err.Error())
		return
	}

	path, err := utils.SaveUploadedImage(c, file, h.uploadDir)
	if err != nil {
		response.BadRequest(c, "Could not store image", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"image_url": path})
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrIncorrectPassword):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, user.ErrUsernameTaken), errors.Is(err, user.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		logger.Error("user handler error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
