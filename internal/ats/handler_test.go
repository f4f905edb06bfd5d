package ats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Samyakjain08/AeroJobs/internal/llm"
	"github.com/Samyakjain08/AeroJobs/internal/users"
)

func newTestRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func TestScoreEndpointHappyPath(t *testing.T) {
	repo := users.NewMemoryRepo()
	seedUser(t, repo, "http://files.local/resume.pdf")
	client := &stubLLM{responses: []stubResponse{
		{body: geminiReply(`{"score": 77, "summary": "Good.", "recommendations": ["Trim"]}`)},
	}}
	svc := newTestService(repo, client, &stubFetcher{data: []byte("resume"), mime: "text/plain"})

	r := newTestRouter(svc, "u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile/ats-score", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Success bool     `json:"success"`
		Score   *int     `json:"score"`
		Reply   string   `json:"reply"`
		Recs    []string `json:"recommendations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Score == nil || *body.Score != 77 {
		t.Fatalf("body = %+v", body)
	}
	if body.Reply == "" || len(body.Recs) != 1 {
		t.Fatalf("body = %+v", body)
	}
}

func TestScoreEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		resume     string
		fetcher    *stubFetcher
		llm        *stubLLM
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unauthenticated",
			userID:     "",
			resume:     "http://files.local/resume.pdf",
			fetcher:    &stubFetcher{},
			llm:        &stubLLM{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "no resume",
			userID:     "u-1",
			resume:     "",
			fetcher:    &stubFetcher{},
			llm:        &stubLLM{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "no_resume",
		},
		{
			name:       "resume fetch failure",
			userID:     "u-1",
			resume:     "http://files.local/resume.pdf",
			fetcher:    &stubFetcher{err: ErrResumeFetch},
			llm:        &stubLLM{},
			wantStatus: http.StatusBadGateway,
			wantCode:   "resume_fetch_failed",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := users.NewMemoryRepo()
			seedUser(t, repo, tc.resume)
			svc := newTestService(repo, tc.llm, tc.fetcher)

			r := newTestRouter(svc, tc.userID)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile/ats-score", nil)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Fatal("success true on error response")
			}
			if body.Error.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", body.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestScoreEndpointAIServiceError(t *testing.T) {
	repo := users.NewMemoryRepo()
	seedUser(t, repo, "http://files.local/resume.pdf")
	client := &stubLLM{responses: []stubResponse{
		{err: &llm.StatusError{StatusCode: 503, Body: "overloaded"}},
	}}
	svc := newTestService(repo, client, &stubFetcher{data: []byte("resume"), mime: "text/plain"})

	r := newTestRouter(svc, "u-1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile/ats-score", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
