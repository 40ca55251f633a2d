package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := bolt.New(bolt.NewJSONHandler(buf)).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Level != "warn" {
		t.Errorf("Level = %s, want warn", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Format = %s, want console", config.Format)
	}
	if config.Output != os.Stderr {
		t.Errorf("Output = %v, want os.Stderr", config.Output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"WARNING", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO},
		{"", bolt.INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(Config{Level: "warn", Format: "json", Output: buf})

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info message written at warn level: %s", buf.String())
	}
	logger.Warn().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("warn message missing: %s", buf.String())
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		field Field
		want  string
	}{
		{Component("plot"), `"component":"plot"`},
		{Series("temperature"), `"series":"temperature"`},
		{Scale("y", "log"), `"scale":"log"`},
		{File("chart.yaml"), `"file":"chart.yaml"`},
		{Count("dropped", 3), `"dropped":3`},
		{Duration(100 * time.Millisecond), `"duration_ms":100`},
		{Str("custom", "value"), `"custom":"value"`},
	}
	for _, tt := range tests {
		logger, buf := testLogger()
		NewEvent(logger.Info()).Add(tt.field).Msg("test")
		if !bytes.Contains(buf.Bytes(), []byte(tt.want)) {
			t.Errorf("expected %s in output: %s", tt.want, buf.String())
		}
	}
}

func TestErrorField(t *testing.T) {
	logger, buf := testLogger()
	NewEvent(logger.Error()).Add(ErrorField(errors.New("boom"))).Msg("failed")
	if !bytes.Contains(buf.Bytes(), []byte("boom")) {
		t.Errorf("expected error in output: %s", buf.String())
	}

	logger, buf = testLogger()
	NewEvent(logger.Error()).Add(ErrorField(nil)).Msg("no error")
	if bytes.Contains(buf.Bytes(), []byte(`"error":`)) {
		t.Errorf("nil error must not add a field: %s", buf.String())
	}
}

func TestInitReplacesDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Config{Level: "debug", Format: "json", Output: buf})
	defer Init(DefaultConfig())

	Debug().Add(Component("test")).Msg("hello")
	if !bytes.Contains(buf.Bytes(), []byte(`"component":"test"`)) {
		t.Errorf("default logger not replaced: %s", buf.String())
	}
}
