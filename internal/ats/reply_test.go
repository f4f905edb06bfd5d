package ats

import "testing"

func TestReplyFromPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "gemini candidates parts",
			payload: `{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`,
			want:    "hello",
		},
		{
			name:    "candidate content string",
			payload: `{"candidates":[{"content":"plain text"}]}`,
			want:    "plain text",
		},
		{
			name:    "candidate content list of parts entries",
			payload: `{"candidates":[{"content":[{"parts":[{"text":"from list"}]}]}]}`,
			want:    "from list",
		},
		{
			name:    "candidate content keyed string value",
			payload: `{"candidates":[{"content":{"role":"model","output":"keyed"}}]}`,
			want:    "model",
		},
		{
			name:    "outputs shape",
			payload: `{"outputs":[{"content":[{"text":"from outputs"}]}]}`,
			want:    "from outputs",
		},
		{
			name:    "chat choices message content",
			payload: `{"choices":[{"message":{"content":"chat style"}}]}`,
			want:    "chat style",
		},
		{
			name:    "completion choices text",
			payload: `{"choices":[{"text":"completion style"}]}`,
			want:    "completion style",
		},
		{
			name:    "top level reply",
			payload: `{"reply":"direct reply"}`,
			want:    "direct reply",
		},
		{
			name:    "top level outputText",
			payload: `{"outputText":"bedrock style"}`,
			want:    "bedrock style",
		},
		{
			name:    "top level text",
			payload: `{"text":"bare text"}`,
			want:    "bare text",
		},
		{
			name:    "string payload",
			payload: `"just a string"`,
			want:    "just a string",
		},
		{
			name:    "empty candidates falls through to reply",
			payload: `{"candidates":[],"reply":"fallback"}`,
			want:    "fallback",
		},
		{
			name:    "empty object",
			payload: `{}`,
			want:    "",
		},
		{
			name:    "null",
			payload: `null`,
			want:    "",
		},
		{
			name:    "empty candidates",
			payload: `{"candidates":[]}`,
			want:    "",
		},
		{
			name:    "empty input",
			payload: ``,
			want:    "",
		},
		{
			name:    "malformed json",
			payload: `{"candidates":[{`,
			want:    "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReplyFromPayload([]byte(tc.payload)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
