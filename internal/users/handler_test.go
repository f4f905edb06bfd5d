package users

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newHandlerRouter(t *testing.T, svc *Service, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc, "test").RegisterRoutes(api)
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	svc, _ := newTestService()
	r := newHandlerRouter(t, svc, "")

	w := postJSON(r, "/api/v1/users/register", gin.H{
		"fullname":    "Ada Lovelace",
		"email":       "ada@example.com",
		"phoneNumber": "555-0100",
		"password":    "s3cret-pass",
		"role":        "student",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Account created successfully.") {
		t.Fatalf("body = %s", w.Body.String())
	}

	// same email again
	w = postJSON(r, "/api/v1/users/register", gin.H{
		"fullname":    "Ada Again",
		"email":       "ada@example.com",
		"phoneNumber": "555-0101",
		"password":    "other-pass",
		"role":        "student",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "email_taken") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestLoginEndpointSetsSessionCookie(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := newHandlerRouter(t, svc, "")

	w := postJSON(r, "/api/v1/users/login", gin.H{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
		"role":     "student",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("no session cookie set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("session cookie not httpOnly")
	}
	if sessionCookie.Secure {
		t.Fatal("session cookie secure outside production")
	}
	if sessionCookie.MaxAge != 24*60*60 {
		t.Fatalf("maxAge = %d, want one day", sessionCookie.MaxAge)
	}
	if !strings.Contains(w.Body.String(), "Welcome back Ada Lovelace") {
		t.Fatalf("body = %s", w.Body.String())
	}
	// password hash never leaves the server
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Fatal("password hash leaked in response")
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := newHandlerRouter(t, svc, "")

	w := postJSON(r, "/api/v1/users/login", gin.H{
		"email":    "ada@example.com",
		"password": "wrong",
		"role":     "student",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_credentials") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestLogoutEndpointClearsCookie(t *testing.T) {
	svc, _ := newTestService()
	r := newHandlerRouter(t, svc, "u-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/logout", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}

func TestUpdateProfileEndpointMultipart(t *testing.T) {
	svc, store := newTestService()
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := newHandlerRouter(t, svc, user.ID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("bio", "Backend engineer")
	mw.WriteField("skills", "go,sql")
	part, _ := mw.CreateFormFile("file", "resume.pdf")
	part.Write([]byte("%PDF-1.4 body"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/profile/update", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if store.savedName != "resume.pdf" {
		t.Fatalf("stored name = %q", store.savedName)
	}

	var body struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User.Profile.Bio != "Backend engineer" {
		t.Fatalf("bio = %q", body.User.Profile.Bio)
	}
	if !strings.Contains(body.User.Profile.Resume, "/api/v1/files/") {
		t.Fatalf("resume url = %q", body.User.Profile.Resume)
	}
}

func TestUpdateProfileEndpointRejectsNonPDF(t *testing.T) {
	svc, _ := newTestService()
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := newHandlerRouter(t, svc, user.ID)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "resume.docx")
	part.Write([]byte("not a pdf"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/profile/update", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestMeEndpoint(t *testing.T) {
	svc, _ := newTestService()
	user, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := newHandlerRouter(t, svc, user.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), user.ID) {
		t.Fatalf("body = %s", w.Body.String())
	}
}
