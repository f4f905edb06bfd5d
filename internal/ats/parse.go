package ats

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	braceRe     = regexp.MustCompile(`(?s)\{.*\}`)
	scoreJSONRe = regexp.MustCompile(`(?i)"score"\s*:\s*(\d{1,3})`)
	scoreKVRe   = regexp.MustCompile(`(?i)score\s*[:=]\s*(\d{1,3})`)
	scoreIsRe   = regexp.MustCompile(`(?i)\bscore\s+is\s+(\d{1,3})\b`)
)

// ParsedReply is what could be recovered from one generation round:
// a JSON document if the model produced one, plus the derived fields.
type ParsedReply struct {
	JSON            json.RawMessage
	Score           *int
	Summary         string
	Recommendations []string
}

// ParseReply recovers structure from a model reply. The reply is tried
// as strict JSON first, then as prose wrapping a JSON object, then the
// score is hunted with regexes over the reply and finally over the raw
// payload. Scores are rounded and clamped to [0, 100].
func ParseReply(reply string, raw []byte) ParsedReply {
	var out ParsedReply
	out.JSON = extractJSONDoc(reply)
	if out.JSON != nil {
		doc := gjson.ParseBytes(out.JSON)
		if s := doc.Get("summary"); s.Type == gjson.String {
			out.Summary = s.Str
		}
		if recs := doc.Get("recommendations"); recs.IsArray() {
			for _, r := range recs.Array() {
				if r.Type == gjson.String && strings.TrimSpace(r.Str) != "" {
					out.Recommendations = append(out.Recommendations, r.Str)
				}
			}
		}
	}
	out.Score = deriveScore(out.JSON, reply, raw)
	return out
}

func extractJSONDoc(reply string) json.RawMessage {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	if span := braceRe.FindString(reply); span != "" && json.Valid([]byte(span)) {
		return json.RawMessage(span)
	}
	return nil
}

func deriveScore(parsed json.RawMessage, reply string, raw []byte) *int {
	if parsed != nil {
		if v := gjson.GetBytes(parsed, "score"); v.Exists() && v.Type != gjson.Null {
			switch v.Type {
			case gjson.Number:
				return clampScore(v.Num)
			case gjson.String:
				if f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64); err == nil {
					return clampScore(f)
				}
			}
		}
	}
	for _, re := range []*regexp.Regexp{scoreJSONRe, scoreKVRe, scoreIsRe} {
		if m := re.FindStringSubmatch(reply); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				return clampScore(f)
			}
		}
	}
	if m := scoreJSONRe.FindSubmatch(raw); m != nil {
		if f, err := strconv.ParseFloat(string(m[1]), 64); err == nil {
			return clampScore(f)
		}
	}
	return nil
}

func clampScore(f float64) *int {
	n := int(math.Round(f))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return &n
}
