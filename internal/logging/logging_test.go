package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("debug", "  ")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatalf("nop logger reports debug enabled")
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orderdesk.log")

	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"visible"`) {
		t.Fatalf("log = %q, want visible entry", text)
	}
	if strings.Contains(text, "hidden") {
		t.Fatalf("log = %q, debug entry should be filtered at info", text)
	}
	if !strings.Contains(text, `"app":"orderdesk"`) {
		t.Fatalf("log = %q, want app field", text)
	}
}

func TestNew_InvalidLevelFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orderdesk.log")
	if _, err := New("loud", path); err == nil {
		t.Fatalf("New returned nil error for invalid level")
	}
}
