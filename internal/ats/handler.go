package ats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Samyakjain08/AeroJobs/internal/shared/server/middleware"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server/respond"
	"github.com/Samyakjain08/AeroJobs/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/profile/ats-score", h.score)
}

func (h *Handler) score(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	result, err := h.Svc.Score(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "User not found.", nil)
		case errors.Is(err, ErrNoResume):
			respond.Error(c, http.StatusBadRequest, "no_resume", "No resume uploaded.", nil)
		case errors.Is(err, ErrResumeFetch):
			respond.Error(c, http.StatusBadGateway, "resume_fetch_failed", "Failed to download resume.", nil)
		case errors.Is(err, ErrAIService):
			respond.Error(c, http.StatusBadGateway, "ai_service_error", "AI service error.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to score resume", nil)
		}
		return
	}
	respond.OK(c, result)
}
