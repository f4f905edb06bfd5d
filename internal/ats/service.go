package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Samyakjain08/AeroJobs/internal/extract"
	"github.com/Samyakjain08/AeroJobs/internal/llm"
	"github.com/Samyakjain08/AeroJobs/internal/shared/telemetry"
	"github.com/Samyakjain08/AeroJobs/internal/users"
)

const (
	maxResumeChars = 40000
	followupChars  = 1400
	answerTokens   = 800
	followupTokens = 120
	attemptPause   = 250 * time.Millisecond
)

type attemptConfig struct {
	chunkChars      int
	maxOutputTokens int
}

// Shrinking chunks: a second, smaller attempt often succeeds when the
// first comes back empty because of output truncation.
var scoringAttempts = []attemptConfig{
	{chunkChars: 8000, maxOutputTokens: answerTokens},
	{chunkChars: 2000, maxOutputTokens: answerTokens},
}

// Result is the outcome of one scoring request.
type Result struct {
	Success         bool            `json:"success"`
	Score           *int            `json:"score"`
	Reply           string          `json:"reply"`
	Parsed          json.RawMessage `json:"parsed,omitempty"`
	Recommendations []string        `json:"recommendations"`
	Heuristic       bool            `json:"heuristic"`
	Notice          string          `json:"notice,omitempty"`
	Raw             json.RawMessage `json:"raw,omitempty"`
}

// Service runs the resume scoring pipeline and persists the outcome on
// the user's profile.
type Service struct {
	Users   users.Repo
	LLM     llm.Client
	Fetcher Fetcher

	// Pause separates retry attempts. Tests set it to zero.
	Pause time.Duration
	// Now is overridable for tests.
	Now func() time.Time
}

func NewService(repo users.Repo, client llm.Client, fetcher Fetcher) *Service {
	return &Service{
		Users:   repo,
		LLM:     client,
		Fetcher: fetcher,
		Pause:   attemptPause,
		Now:     time.Now,
	}
}

// Score fetches the user's resume, asks the generation service for an
// ATS review, falls back to the rule-based scorer when no numeric score
// can be derived, and stores the resulting record on the profile.
func (s *Service) Score(ctx context.Context, userID string) (Result, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if user.Profile.Resume == "" {
		return Result{}, ErrNoResume
	}

	data, mimeType, err := s.Fetcher.Fetch(ctx, user.Profile.Resume)
	if err != nil {
		return Result{}, err
	}

	text := s.resumeText(ctx, user, data, mimeType)

	reply, rawPayload, err := s.generateReply(ctx, text)
	if err != nil {
		return Result{}, err
	}

	parsed := ParseReply(reply, rawPayload)

	score := parsed.Score
	heuristic := false
	if score == nil {
		v := HeuristicScore(text, user.Profile.Skills)
		score = &v
		heuristic = true
	}

	recs := parsed.Recommendations
	if len(recs) == 0 {
		recs = HeuristicRecommendations(text, user.Profile.Skills)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	record := users.ScoringRecord{
		ComputedAt:      now().UTC(),
		Raw:             rawPayload,
		Reply:           reply,
		Parsed:          parsed.JSON,
		Score:           score,
		Heuristic:       heuristic,
		Recommendations: recs,
	}
	user.Profile.ATSScore = &record
	if err := s.Users.Update(ctx, user); err != nil {
		return Result{}, fmt.Errorf("persist scoring record: %w", err)
	}

	res := Result{
		Success:         true,
		Score:           score,
		Reply:           reply,
		Parsed:          parsed.JSON,
		Recommendations: recs,
		Heuristic:       heuristic,
	}
	if heuristic {
		res.Notice = "Returned heuristic ATS score because AI did not provide numeric score."
	}
	if score == nil {
		res.Raw = rawPayload
		res.Notice = "AI response did not contain a numeric score."
	}
	return res, nil
}

func (s *Service) resumeText(ctx context.Context, user users.User, data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	text, err := extract.TextFromBytes(ctx, data, mimeType, user.Profile.ResumeOriginalName)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			telemetry.Warn("ats.extract_failed", map[string]any{
				"userId": user.ID,
				"error":  err.Error(),
			})
		}
		text = profileFallbackText(user)
	}
	if len(text) > maxResumeChars {
		text = text[:maxResumeChars]
	}
	return text
}

func profileFallbackText(user users.User) string {
	return fmt.Sprintf("Profile fallback: Fullname: %s\nEmail: %s\nPhone: %s\nSkills: %s\nBio: %s",
		user.FullName,
		user.Email,
		user.PhoneNumber,
		strings.Join(user.Profile.Skills, ", "),
		user.Profile.Bio,
	)
}

// generateReply runs the shrinking-chunk attempts and, when both come
// back empty, a short follow-up asking for the score alone. A non-2xx
// from the generation service is fatal on the main attempts; follow-up
// failures are absorbed.
func (s *Service) generateReply(ctx context.Context, text string) (string, json.RawMessage, error) {
	if s.LLM == nil {
		return "", nil, fmt.Errorf("%w: generation client not configured", ErrAIService)
	}
	var rawPayload json.RawMessage
	for i, attempt := range scoringAttempts {
		raw, err := s.LLM.GenerateContent(ctx, llm.GenerateInput{
			Contents:          []string{truncate(text, attempt.chunkChars)},
			SystemInstruction: systemPrompt,
			Temperature:       0,
			MaxOutputTokens:   attempt.maxOutputTokens,
		})
		if err != nil {
			var statusErr *llm.StatusError
			if errors.As(err, &statusErr) {
				return "", nil, fmt.Errorf("%w: status %d", ErrAIService, statusErr.StatusCode)
			}
			return "", nil, fmt.Errorf("%w: %v", ErrAIService, err)
		}
		rawPayload = raw
		if reply := strings.TrimSpace(ReplyFromPayload(raw)); reply != "" {
			return reply, rawPayload, nil
		}
		telemetry.Warn("ats.empty_reply", map[string]any{"attempt": i + 1})
		if i < len(scoringAttempts)-1 {
			s.pause(ctx)
		}
	}

	raw, err := s.LLM.GenerateContent(ctx, llm.GenerateInput{
		Contents:          []string{followupInstruction, truncate(text, followupChars)},
		SystemInstruction: followupSystem,
		Temperature:       0,
		MaxOutputTokens:   followupTokens,
	})
	if err != nil {
		telemetry.Warn("ats.followup_failed", map[string]any{"error": err.Error()})
		return "", rawPayload, nil
	}
	if reply := strings.TrimSpace(ReplyFromPayload(raw)); reply != "" {
		return reply, raw, nil
	}
	return "", rawPayload, nil
}

func (s *Service) pause(ctx context.Context) {
	if s.Pause <= 0 {
		return
	}
	t := time.NewTimer(s.Pause)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
