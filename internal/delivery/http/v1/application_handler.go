package v1

import (
	"net/http"
	"strconv"

	"go-recruitment-platform/internal/delivery/http/middleware"
	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers the application routes. Routes acting on
// behalf of the caller require the trusted identity header; recruiter-facing
// routes address applications by person id.
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := r.Group("/applications")
	{
		apps.GET("", handler.ListApplications)
		apps.POST("", middleware.RequireUserID(), handler.SubmitApplication)
		apps.GET("/me", middleware.RequireUserID(), handler.GetMyApplication)
		apps.PUT("/me", middleware.RequireUserID(), handler.ReplaceMyApplication)
		apps.GET("/:id", handler.GetApplication)
		apps.PUT("/:id/status", handler.UpdateApplicationStatus)
	}
}

// ApplicationRequest is the payload for submitting or replacing an
// application. Dates use the YYYY-MM-DD wire format.
type ApplicationRequest struct {
	Name           string `json:"name" binding:"required"`
	Surname        string `json:"surname" binding:"required"`
	Competences    []struct {
		CompetenceID      int64   `json:"competence_id" binding:"required"`
		YearsOfExperience float64 `json:"years_of_experience" binding:"gte=0"`
	} `json:"competences"`
	Availabilities []struct {
		FromDate string `json:"from_date" binding:"required,datetime=2006-01-02"`
		ToDate   string `json:"to_date" binding:"required,datetime=2006-01-02"`
	} `json:"availabilities"`
}

func (r *ApplicationRequest) toInput() domain.ApplicationInput {
	in := domain.ApplicationInput{
		Name:    r.Name,
		Surname: r.Surname,
	}
	for _, c := range r.Competences {
		in.Competences = append(in.Competences, domain.CompetenceInput{
			CompetenceID:      c.CompetenceID,
			YearsOfExperience: c.YearsOfExperience,
		})
	}
	for _, a := range r.Availabilities {
		in.Availabilities = append(in.Availabilities, domain.AvailabilityInput{
			FromDate: a.FromDate,
			ToDate:   a.ToDate,
		})
	}
	return in
}

// StatusUpdateRequest carries the new status and the version the client
// loaded, used for optimistic locking.
type StatusUpdateRequest struct {
	Status  string `json:"status" binding:"required"`
	Version *int64 `json:"version" binding:"required"`
}

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	summaries, err := h.applicationUC.ListApplicationSummaries(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", summaries)
}

func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := middleware.UserID(c)
	if err := h.applicationUC.CreateOrUpdateApplication(c.Request.Context(), userID, req.toInput()); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", nil)
}

func (h *ApplicationHandler) GetMyApplication(c *gin.Context) {
	userID := middleware.UserID(c)

	detail, err := h.applicationUC.GetApplicationDetail(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", detail)
}

// ReplaceMyApplication fully supersedes the caller's stored competences and
// availabilities; empty lists clear them.
func (h *ApplicationHandler) ReplaceMyApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := middleware.UserID(c)
	if err := h.applicationUC.ReplaceApplication(c.Request.Context(), userID, req.toInput()); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	detail, err := h.applicationUC.GetApplicationDetail(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", detail)
}

func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.UpdateStatus(c.Request.Context(), id, req.Status, *req.Version); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", nil)
}
