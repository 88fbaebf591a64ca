package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetVerbosity(0)
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetTraceEnabled(false)
	})
	return &buf
}

func TestTraceRespectsToggle(t *testing.T) {
	buf := capture(t)

	Trace("ignored", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output while tracing disabled, got %q", buf.String())
	}

	SetTraceEnabled(true)
	Trace("action.performed", map[string]interface{}{"label": "OK"})
	line := strings.TrimSpace(buf.String())
	if got := gjson.Get(line, "event").String(); got != "action.performed" {
		t.Fatalf("expected event action.performed, got %q", got)
	}
	if got := gjson.Get(line, "payload.label").String(); got != "OK" {
		t.Fatalf("expected payload label OK, got %q", got)
	}
}

func TestLoggerTagsComponentAndFiltersLevel(t *testing.T) {
	buf := capture(t)

	log := Logger("dispatcher")
	log.Info().Msg("hidden at warn level")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed at verbosity 0, got %q", buf.String())
	}

	SetVerbosity(1)
	log = Logger("dispatcher")
	log.Info().Msg("visible")
	line := strings.TrimSpace(buf.String())
	if got := gjson.Get(line, "component").String(); got != "dispatcher" {
		t.Fatalf("expected component dispatcher, got %q", got)
	}
	if got := gjson.Get(line, "level").String(); got != "info" {
		t.Fatalf("expected info level, got %q", got)
	}
}

func TestErrorIgnoresNil(t *testing.T) {
	buf := capture(t)
	Error(nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nil error to be ignored")
	}
	Error(errors.New("boom"))
	if got := gjson.Get(buf.String(), "error").String(); got != "boom" {
		t.Fatalf("expected error field boom, got %q", got)
	}
}

func TestConfigureCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "remote.log")
	Configure(path)
	t.Cleanup(func() { SetOutput(nil) })

	if Path() != path {
		t.Fatalf("expected path %q, got %q", path, Path())
	}
	Error(errors.New("written"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "written") {
		t.Fatalf("expected log file to contain entry, got %q", string(data))
	}
}
