package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbose bool
		want    zerolog.Level
	}{
		{false, zerolog.InfoLevel},
		{true, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		if got := New(tt.verbose).GetLevel(); got != tt.want {
			t.Errorf("New(%v).GetLevel() = %v, want %v", tt.verbose, got, tt.want)
		}
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("year", "2010/11").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, `"year":"2010/11"`) {
		t.Errorf("output = %s, want the message and its field", output)
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	log := FromContext(ctx)
	log.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_Default(t *testing.T) {
	log := FromContext(context.Background())
	if got := log.GetLevel(); got != zerolog.Disabled {
		t.Errorf("default logger level = %v, want %v", got, zerolog.Disabled)
	}
}
