package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{input: "debug", want: DebugLevel},
		{input: " INFO ", want: InfoLevel},
		{input: "warn", want: WarnLevel},
		{input: "error", want: ErrorLevel},
		{input: "", want: WarnLevel},
		{input: "verbose", want: WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestInitFiltersBelowLevel(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf})

	Debug().Msg("hidden")
	Info().Str("endpoint", "projects").Msg("page fetched")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug message to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"endpoint":"projects"`) || !strings.Contains(out, "page fetched") {
		t.Fatalf("expected structured info message, got %s", out)
	}
}
