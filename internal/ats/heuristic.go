package ats

import (
	"regexp"
	"strings"
)

// Rule-based fallback scorer, used when no numeric score can be
// recovered from the generation service.

var (
	wordRe         = regexp.MustCompile(`\b\w+\b`)
	experienceRe   = regexp.MustCompile(`\b(work experience|experience|employment|professional experience)\b`)
	educationSecRe = regexp.MustCompile(`\b(education|degrees|academic)\b`)
	educationRe    = regexp.MustCompile(`\b(education|degree|university|school)\b`)
	skillsSecRe    = regexp.MustCompile(`\b(skills?|technical skills|competencies)\b`)
	contactRe      = regexp.MustCompile(`\b(contact|email|phone|linkedin)\b`)
)

// HeuristicScore grades resume text on section presence, length and the
// number of declared skills. Results always land in [10, 95].
func HeuristicScore(text string, skills []string) int {
	t := strings.ToLower(text)
	words := len(wordRe.FindAllString(t, -1))

	score := 50

	lengthBonus := words / 200
	if lengthBonus > 20 {
		lengthBonus = 20
	}
	score += lengthBonus

	if experienceRe.MatchString(t) {
		score += 10
	}
	if educationSecRe.MatchString(t) {
		score += 8
	}
	if skillsSecRe.MatchString(t) {
		score += 10
	}
	if contactRe.MatchString(t) {
		score += 5
	}

	if n := len(skills); n > 0 {
		if n > 10 {
			n = 10
		}
		score += n
	}

	if words < 100 {
		score -= 15
	}

	if score < 10 {
		score = 10
	}
	if score > 95 {
		score = 95
	}
	return score
}

// HeuristicRecommendations derives improvement tips from the same signals
// the heuristic scorer looks at. At most six, duplicates removed.
func HeuristicRecommendations(text string, skills []string) []string {
	t := strings.ToLower(text)
	words := len(wordRe.FindAllString(t, -1))

	var recs []string
	if !experienceRe.MatchString(t) {
		recs = append(recs, `Add a "Work Experience" section with company, role, dates and 2-4 bullet achievements per role (use metrics).`)
	} else if words < 400 {
		recs = append(recs, "Expand each role with 2-4 achievement-focused bullet points that include measurable results (%, numbers).")
	}
	if !educationRe.MatchString(t) {
		recs = append(recs, "Include an Education section with degree, institution and graduation year (if recent).")
	}
	if !skillsSecRe.MatchString(t) && len(skills) == 0 {
		recs = append(recs, "List relevant technical and soft skills near the top (comma-separated or short bullets).")
	}
	recs = append(recs, "Tailor the resume for the target job: add keywords from the job description to improve ATS match.")
	recs = append(recs, "Use simple formatting: plain text, bullet points, standard headings and avoid images/complex tables so ATS can parse your resume.")
	if words < 200 {
		recs = append(recs, "Resume is short - add more detail about responsibilities and outcomes to help ATS and recruiters.")
	}

	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}
