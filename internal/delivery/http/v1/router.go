package v1

import (
	"net/http"

	"go-recruitment-platform/config"
	"go-recruitment-platform/internal/delivery/http/middleware"
	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthRouterDeps struct {
	AuthUC domain.AuthUsecase
	Config *config.Config
}

// NewAuthRouter builds the auth service's engine.
func NewAuthRouter(deps AuthRouterDeps) *gin.Engine {
	r := newEngine()

	r.GET("/health", healthCheck)

	auth := r.Group("/auth")
	NewAuthHandler(auth, deps.AuthUC, deps.Config)

	return r
}

type RecruitmentRouterDeps struct {
	ApplicationUC domain.ApplicationUsecase
}

// NewRecruitmentRouter builds the recruitment service's engine.
func NewRecruitmentRouter(deps RecruitmentRouterDeps) *gin.Engine {
	r := newEngine()

	r.GET("/health", healthCheck)

	api := r.Group("/api/recruitment")
	NewPersonHandler(api, deps.ApplicationUC)
	NewApplicationHandler(api, deps.ApplicationUC)
	NewProfileHandler(api, deps.ApplicationUC)
	NewCatalogHandler(api, deps.ApplicationUC)

	return r
}

func newEngine() *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	return r
}

func healthCheck(c *gin.Context) {
	response.Success(c, http.StatusOK, "System operational", nil)
}
