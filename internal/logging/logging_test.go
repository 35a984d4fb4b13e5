package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("with default output", func(t *testing.T) {
		logger := NewLogger(Config{Level: InfoLevel})
		if logger == nil {
			t.Fatal("NewLogger returned nil")
		}
	})

	t.Run("with custom output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(Config{Level: InfoLevel, Output: buf})
		if logger == nil {
			t.Fatal("NewLogger returned nil")
		}
		if logger.writer != buf {
			t.Error("Logger should use provided output writer")
		}
	})
}

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		configLvl LogLevel
		logLvl    LogLevel
		shouldLog bool
	}{
		{"debug logs debug", DebugLevel, DebugLevel, true},
		{"debug logs error", DebugLevel, ErrorLevel, true},
		{"info skips debug", InfoLevel, DebugLevel, false},
		{"info logs info", InfoLevel, InfoLevel, true},
		{"info logs warn", InfoLevel, WarnLevel, true},
		{"warn skips info", WarnLevel, InfoLevel, false},
		{"warn logs error", WarnLevel, ErrorLevel, true},
		{"error skips warn", ErrorLevel, WarnLevel, false},
		{"error logs error", ErrorLevel, ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLogger(Config{Level: tt.configLvl, Output: buf})

			logger.log(tt.logLvl, "test message", nil)

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldLog {
				t.Errorf("shouldLog = %v, but hasOutput = %v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: JSONFormat, Level: DebugLevel, Output: buf})

	logger.Info("query issued", map[string]interface{}{"subject": "mm: fix oops"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "query issued" {
		t.Errorf("message = %v", entry["message"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok || fields["subject"] != "mm: fix oops" {
		t.Errorf("fields = %v", entry["fields"])
	}
}

func TestHumanFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: HumanFormat, Level: DebugLevel, Output: buf})

	logger.Warn("traversal failed", map[string]interface{}{"subject": "net: fix leak"})

	output := buf.String()
	if !strings.Contains(output, "[warn]") {
		t.Errorf("output should contain level marker, got %q", output)
	}
	if !strings.Contains(output, "traversal failed") {
		t.Errorf("output should contain message, got %q", output)
	}
	if !strings.Contains(output, "subject=net: fix leak") {
		t.Errorf("output should contain fields, got %q", output)
	}
}

func TestLogLevelMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{Format: HumanFormat, Level: DebugLevel, Output: buf})

	logger.Debug("d", nil)
	logger.Info("i", nil)
	logger.Warn("w", nil)
	logger.Error("e", nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, level := range []string{"debug", "info", "warn", "error"} {
		if !strings.Contains(lines[i], "["+level+"]") {
			t.Errorf("line %d should be %s level: %q", i, level, lines[i])
		}
	}
}
