package ats

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads a stored resume by URL and returns its bytes and
// reported content type.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// ResumeFetcher retrieves resumes over HTTP.
type ResumeFetcher struct {
	client *resty.Client
}

func NewResumeFetcher(timeout time.Duration) *ResumeFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "*/*")
	return &ResumeFetcher{client: client}
}

func (f *ResumeFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrResumeFetch, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("%w: status %d", ErrResumeFetch, resp.StatusCode())
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
