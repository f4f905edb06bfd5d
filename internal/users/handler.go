package users

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Samyakjain08/AeroJobs/internal/shared/auth"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server/middleware"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	Env string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, env string) *Handler {
	return &Handler{Svc: svc, Env: env}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/register", h.register)
	rg.POST("/users/login", h.login)
	rg.GET("/users/logout", h.logout)
	rg.GET("/users/me", h.me)
	rg.POST("/users/profile/update", h.updateProfile)
}

type registerRequest struct {
	FullName    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "User already exists with this email", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to create account", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Incorrect email or password.", nil)
		case errors.Is(err, ErrRoleMismatch):
			respond.Error(c, http.StatusBadRequest, "role_mismatch", "Account doesn't exist with current role.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to log in", nil)
		}
		return
	}

	h.setSessionCookie(c, token, int(auth.TokenTTL.Seconds()))
	respond.OK(c, gin.H{
		"success": true,
		"message": fmt.Sprintf("Welcome back %s", user.FullName),
		"user":    user,
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	respond.OK(c, gin.H{
		"success": true,
		"message": "Logged out successfully.",
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.Repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found.", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load user", nil)
		return
	}
	respond.OK(c, gin.H{"success": true, "user": user})
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	upd := ProfileUpdate{
		FullName:    c.PostForm("fullname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Bio:         c.PostForm("bio"),
		Skills:      c.PostForm("skills"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		defer file.Close()
		upd.Resume = file
		upd.ResumeFileName = fileHeader.Filename
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "User not found.", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "Email already in use", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update profile", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"message": "Profile updated successfully.",
		"user":    user,
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := h.Env == "production"
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", secure, true)
}
