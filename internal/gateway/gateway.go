// Package gateway is the edge of the platform. It terminates client
// authentication: tokens are verified here and the verified identity is
// forwarded to the downstream services as the trusted X-User-ID header.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"go-recruitment-platform/config"
	"go-recruitment-platform/internal/delivery/http/middleware"
	"go-recruitment-platform/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// Routes open to unauthenticated clients behind /api/recruitment.
var publicRecruitmentPaths = map[string]bool{
	"/api/recruitment/competences":    true,
	"/api/recruitment/availabilities": true,
	"/api/recruitment/migrated-user":  true,
}

// NewRouter builds the gateway engine routing /auth to the auth service and
// /api/recruitment to the recruitment service.
func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	authProxy, err := newProxy(cfg.AuthServiceURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid auth service URL: %w", err)
	}
	recruitmentProxy, err := newProxy(cfg.RecruitmentServiceURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid recruitment service URL: %w", err)
	}

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Gateway operational", nil)
	})

	// Auth service routes are public; login gets a stricter limit
	loginLimit := onPath("/auth/login",
		middleware.RateLimit(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)))
	auth := r.Group("/auth")
	auth.Use(loginLimit)
	auth.Any("/*any", authProxy)

	// Recruitment routes require a verified token except for the public set
	api := r.Group("/api/recruitment")
	api.Use(middleware.GatewayAuth(cfg.JWTSecret, publicRecruitmentPaths))
	api.Any("/*any", recruitmentProxy)

	return r, nil
}

func newProxy(rawURL string) (gin.HandlerFunc, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, _ *http.Request, _ error) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"Upstream service unavailable"}`))
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}

// onPath applies h only to requests for the given path.
func onPath(path string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path != path {
			c.Next()
			return
		}
		h(c)
	}
}
