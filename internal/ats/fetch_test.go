package ats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResumeFetcherOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	f := NewResumeFetcher(5 * time.Second)
	data, mimeType, err := f.Fetch(context.Background(), srv.URL+"/resume.pdf")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("data = %q", data)
	}
	if mimeType != "application/pdf" {
		t.Fatalf("mime = %q", mimeType)
	}
}

func TestResumeFetcherNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewResumeFetcher(5 * time.Second)
	_, _, err := f.Fetch(context.Background(), srv.URL+"/resume.pdf")
	if !errors.Is(err, ErrResumeFetch) {
		t.Fatalf("err = %v, want ErrResumeFetch", err)
	}
}

func TestResumeFetcherUnreachable(t *testing.T) {
	f := NewResumeFetcher(500 * time.Millisecond)
	_, _, err := f.Fetch(context.Background(), "http://127.0.0.1:1/resume.pdf")
	if !errors.Is(err, ErrResumeFetch) {
		t.Fatalf("err = %v, want ErrResumeFetch", err)
	}
}
