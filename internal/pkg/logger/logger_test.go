package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DebugLevel,
		" WARN ":  WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	ctx := WithContext(context.Background(), WithField("request_id", "abc"))
	FromContext(ctx).Info().Msg("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["request_id"] != "abc" || entry["message"] != "hello" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() returned nil")
	}
}

func TestConfigure_Service(t *testing.T) {
	var buf bytes.Buffer
	lgr := Configure(Config{Level: WarnLevel, Output: &buf, Service: "unischedule"})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	lgr.Info().Msg("dropped")
	Warn().Msg("kept")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line: %v (%q)", err, buf.String())
	}
	if entry["service"] != "unischedule" || entry["message"] != "kept" {
		t.Errorf("unexpected entry %v", entry)
	}
}
