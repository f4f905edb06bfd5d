package ats

import "errors"

var (
	// ErrNoResume means the profile has no stored resume URL.
	ErrNoResume = errors.New("no resume uploaded")
	// ErrResumeFetch means the stored resume URL was unreachable or non-2xx.
	ErrResumeFetch = errors.New("failed to download resume")
	// ErrAIService means the generation service answered with a non-2xx status.
	ErrAIService = errors.New("ai service error")
)
