package v1

import (
	"net/http"

	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewCatalogHandler registers the public read-only listings.
func NewCatalogHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &CatalogHandler{applicationUC: applicationUC}

	r.GET("/competences", handler.ListCompetences)
	r.GET("/availabilities", handler.ListAvailabilities)
}

func (h *CatalogHandler) ListCompetences(c *gin.Context) {
	competences, err := h.applicationUC.ListCompetences(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Competences retrieved", competences)
}

func (h *CatalogHandler) ListAvailabilities(c *gin.Context) {
	availabilities, err := h.applicationUC.ListAvailabilities(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Availabilities retrieved", availabilities)
}
