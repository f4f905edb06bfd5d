package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Samyakjain08/AeroJobs/internal/ats"
	"github.com/Samyakjain08/AeroJobs/internal/llm"
	"github.com/Samyakjain08/AeroJobs/internal/shared/config"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server/middleware"
	"github.com/Samyakjain08/AeroJobs/internal/shared/server/respond"
	"github.com/Samyakjain08/AeroJobs/internal/shared/storage/object"
	"github.com/Samyakjain08/AeroJobs/internal/users"
)

const resumeFetchTimeout = 30 * time.Second

// Dependencies bundles everything the router needs.
type Dependencies struct {
	Config config.Config
	Users  users.Repo
	Store  object.ObjectStore
	LLM    llm.Client
}

// NewRouter builds the gin engine with the full middleware chain and all
// API routes mounted under /api/v1.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))
	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 20},
			"SCORING": {Rate: 0.2, Burst: 2},
		},
		GroupFor: func(c *gin.Context) string {
			if strings.HasSuffix(c.FullPath(), "/ats-score") {
				return "SCORING"
			}
			return ""
		},
	}))

	api := r.Group("/api/v1")
	api.GET("/health", health)
	api.GET("/files/*key", serveFile(deps.Store))

	userSvc := &users.Service{
		Repo:        deps.Users,
		Store:       deps.Store,
		FileBaseURL: deps.Config.FileBaseURL,
	}
	users.NewHandler(userSvc, deps.Config.Env).RegisterRoutes(api)

	atsSvc := ats.NewService(deps.Users, deps.LLM, ats.NewResumeFetcher(resumeFetchTimeout))
	ats.NewHandler(atsSvc).RegisterRoutes(api)

	return r
}

func health(c *gin.Context) {
	respond.OK(c, gin.H{"status": "ok"})
}

// serveFile streams a stored object back to the caller. Resume URLs on
// profiles point here, so the scoring pipeline fetches through this
// route as well.
func serveFile(store object.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" || strings.Contains(key, "..") {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file key", nil)
			return
		}
		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		defer rc.Close()

		contentType := "application/octet-stream"
		if strings.HasSuffix(strings.ToLower(key), ".pdf") {
			contentType = "application/pdf"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, rc)
	}
}
