package ats

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ReplyFromPayload pulls the generated text out of an arbitrary
// generation payload. Providers disagree on response shape, so the
// lookup walks the known layouts in order and returns "" when nothing
// matches. It never fails.
func ReplyFromPayload(raw []byte) string {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return ""
	}
	doc := gjson.ParseBytes(raw)

	if cands := doc.Get("candidates"); cands.IsArray() {
		if arr := cands.Array(); len(arr) > 0 {
			if text := replyFromCandidate(arr[0]); text != "" {
				return text
			}
		}
	}

	if out := doc.Get("outputs.0.content.0.text"); out.Type == gjson.String && out.Str != "" {
		return out.Str
	}

	if choices := doc.Get("choices"); choices.IsArray() {
		if arr := choices.Array(); len(arr) > 0 {
			if msg := arr[0].Get("message.content"); msg.Type == gjson.String && msg.Str != "" {
				return msg.Str
			}
			if txt := arr[0].Get("text"); txt.Type == gjson.String && txt.Str != "" {
				return txt.Str
			}
		}
	}

	for _, key := range []string{"reply", "outputText", "text"} {
		if v := doc.Get(key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}

	if doc.Type == gjson.String {
		return doc.Str
	}
	return ""
}

func replyFromCandidate(cand gjson.Result) string {
	content := cand.Get("content")
	switch {
	case content.Type == gjson.String:
		if strings.TrimSpace(content.Str) != "" {
			return content.Str
		}
	case content.IsArray():
		for _, entry := range content.Array() {
			if text := textFromParts(entry.Get("parts")); text != "" {
				return text
			}
			if t := entry.Get("text"); t.Type == gjson.String && t.Str != "" {
				return t.Str
			}
		}
	case content.IsObject():
		if text := textFromParts(content.Get("parts")); text != "" {
			return text
		}
		var found string
		content.ForEach(func(_, val gjson.Result) bool {
			switch {
			case val.Type == gjson.String && strings.TrimSpace(val.Str) != "":
				found = val.Str
				return false
			case val.IsArray():
				for _, sub := range val.Array() {
					if text := textFromParts(sub.Get("parts")); text != "" {
						found = text
						return false
					}
					if t := sub.Get("text"); t.Type == gjson.String && t.Str != "" {
						found = t.Str
						return false
					}
				}
			}
			return true
		})
		return found
	}
	return ""
}

func textFromParts(parts gjson.Result) string {
	if !parts.IsArray() {
		return ""
	}
	for _, p := range parts.Array() {
		if t := p.Get("text"); t.Type == gjson.String && t.Str != "" {
			return t.Str
		}
	}
	return ""
}
