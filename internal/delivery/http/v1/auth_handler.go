package v1

import (
	"net/http"
	"time"

	"go-recruitment-platform/config"
	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/internal/domain"
	"go-recruitment-platform/pkg/apperror"
	"go-recruitment-platform/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	cfg    *config.Config
}

// NewAuthHandler registers the auth service routes.
func NewAuthHandler(r *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{authUC: authUC, cfg: cfg}

	r.POST("/register", handler.Register)
	r.POST("/register/recruiter", handler.RegisterRecruiter)
	r.POST("/login", handler.Login)
}

// RegisterRequest is the applicant registration payload.
type RegisterRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Password       string `json:"password" binding:"required,min=8"`
	Email          string `json:"email" binding:"required,email"`
	PersonalNumber string `json:"pnr" binding:"required"`
}

// RecruiterRegisterRequest adds the secret registration code.
type RecruiterRegisterRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Password       string `json:"password" binding:"required,min=8"`
	Email          string `json:"email" binding:"required,email"`
	PersonalNumber string `json:"pnr" binding:"required"`
	SecretCode     string `json:"secret_code" binding:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	identityID, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		PersonalNumber: req.PersonalNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{"id": identityID})
}

func (h *AuthHandler) RegisterRecruiter(c *gin.Context) {
	var req RecruiterRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	identityID, err := h.authUC.RegisterRecruiter(c.Request.Context(), domain.RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		Email:          req.Email,
		PersonalNumber: req.PersonalNumber,
	}, req.SecretCode)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Recruiter registered successfully", gin.H{"id": identityID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	identity, err := h.authUC.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	ttl := time.Duration(h.cfg.TokenTTLHours) * time.Hour
	signed, err := token.Generate(h.cfg.JWTSecret, identity.ID, identity.RoleID, identity.Username, ttl)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{"token": signed})
}
