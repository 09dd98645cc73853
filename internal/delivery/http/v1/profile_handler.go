package v1

import (
	"net/http"

	"go-recruitment-platform/internal/delivery/http/middleware"
	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/pkg/apperror"
	"go-recruitment-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewProfileHandler registers the self-service profile routes and the
// migrated-user endpoint.
func NewProfileHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ProfileHandler{applicationUC: applicationUC}

	r.PUT("/profile", middleware.RequireUserID(), handler.UpdateProfile)
	r.POST("/migrated-user", handler.MigratedUser)
}

// UpdateProfileRequest is a partial update; empty fields are left untouched.
type UpdateProfileRequest struct {
	Email          string `json:"email" binding:"omitempty,email"`
	PersonalNumber string `json:"pnr"`
}

// MigratedUserRequest asks for password-reset instructions for a legacy
// account identified by email.
type MigratedUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := middleware.UserID(c)
	if err := h.applicationUC.UpdateOwnProfile(c.Request.Context(), userID, req.Email, req.PersonalNumber); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", nil)
}

// MigratedUser always answers with the same generic message so the response
// never reveals whether an email is registered.
func (h *ProfileHandler) MigratedUser(c *gin.Context) {
	var req MigratedUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	exists, err := h.applicationUC.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		c.Error(err)
		return
	}
	if exists {
		// Mock dispatch; a real mail integration would hang off this branch
		logger.Log.Info("password reset requested for migrated user", "email", req.Email)
	}

	response.Success(c, http.StatusOK,
		"If this email exists in our system, you will receive password reset instructions shortly.", nil)
}
