package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestWriterLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatJSON, InfoLevel)

	logger.Info(context.Background(), "run complete", Fields{"files": 42})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["message"] != "run complete" {
		t.Errorf("message = %v, want 'run complete'", entry["message"])
	}
	if entry["files"] != float64(42) {
		t.Errorf("files = %v, want 42", entry["files"])
	}
}

func TestWriterLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, DebugLevel)

	logger.Error(context.Background(), "stat failed", errors.New("permission denied"),
		Fields{"path": "/data", "attempt": 1})

	line := buf.String()
	if !strings.Contains(line, "[ERROR] stat failed") {
		t.Errorf("line missing level and message: %s", line)
	}
	if !strings.Contains(line, `error="permission denied"`) {
		t.Errorf("line missing error: %s", line)
	}
	// Field keys are emitted sorted
	if strings.Index(line, "attempt=1") > strings.Index(line, "path=/data") {
		t.Errorf("fields not in sorted order: %s", line)
	}
}

func TestWriterLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, FormatText, WarnLevel)

	logger.Debug(context.Background(), "noise", nil)
	logger.Info(context.Background(), "noise", nil)
	if buf.Len() != 0 {
		t.Errorf("below-threshold messages were written: %s", buf.String())
	}

	logger.Warn(context.Background(), "signal", nil)
	if buf.Len() == 0 {
		t.Error("warn message was filtered at warn level")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf, FormatJSON, InfoLevel)
	scoped := base.WithFields(Fields{"run_id": "abc"})

	scoped.Info(context.Background(), "scoped", Fields{"extra": true})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id = %v, want abc", entry["run_id"])
	}
	if entry["extra"] != true {
		t.Errorf("extra = %v, want true", entry["extra"])
	}

	// The parent logger must not inherit the scoped fields
	buf.Reset()
	base.Info(context.Background(), "base", nil)
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("parent logger leaked scoped fields: %s", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hashdiff.log")
	logger, err := NewFileLogger(path, FormatJSON, InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Info(context.Background(), "to file", nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing message: %s", data)
	}
}
