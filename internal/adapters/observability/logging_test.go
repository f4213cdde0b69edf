package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "warn")
	l.Info().Msg("dropped")
	l.Warn().Str("path", "/sitemap.xml").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal(lines[0], &ev); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if ev["message"] != "kept" || ev["level"] != "warn" || ev["path"] != "/sitemap.xml" {
		t.Fatalf("unexpected event %v", ev)
	}
	if _, ok := ev["time"]; !ok {
		t.Fatalf("missing timestamp")
	}
}

func TestNewLogger_DevConsole(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "dev", "")
	l.Info().Msg("hello")
	if json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Fatalf("dev logger should not emit JSON: %s", buf.String())
	}
}
