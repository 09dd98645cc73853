package v1

import (
	"net/http"

	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewPersonHandler registers the internal person-provisioning route used by
// the auth service during the registration saga.
func NewPersonHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &PersonHandler{applicationUC: applicationUC}

	r.POST("/persons", handler.CreatePerson)
}

// CreatePersonRequest is the saga payload sent by the auth service.
type CreatePersonRequest struct {
	PersonID       int64  `json:"person_id" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	PersonalNumber string `json:"pnr" binding:"required"`
}

func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.CreateProfile(c.Request.Context(), req.PersonID, req.Email, req.PersonalNumber); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Person created", nil)
}
