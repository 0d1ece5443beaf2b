package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("writes JSON with component field", func(t *testing.T) {
		var buf bytes.Buffer
		log := Component(NewWithWriter(config.LogConfig{Level: "debug", Format: "json"}, &buf), "http")

		log.Debug().Str("path", "/api/trade").Msg("request")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
		}
		for field, want := range map[string]string{"level": "debug", "component": "http", "path": "/api/trade"} {
			if entry[field] != want {
				t.Errorf("Expected %s %q, got %v", field, want, entry[field])
			}
		}
		if _, ok := entry["time"]; !ok {
			t.Error("Expected a time field")
		}
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: "chatty"}, &buf)

		log.Debug().Msg("hidden")
		if buf.Len() != 0 {
			t.Errorf("Expected debug to be filtered, got %q", buf.String())
		}

		log.Info().Msg("shown")
		if buf.Len() == 0 {
			t.Error("Expected info to be written")
		}
	})

	t.Run("disabled level writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: "disabled"}, &buf)

		log.Error().Msg("hidden")
		if buf.Len() != 0 {
			t.Errorf("Expected no output, got %q", buf.String())
		}
	})

	t.Run("console format is human readable", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: "info", Format: "console"}, &buf)

		log.Info().Msg("snapshot captured")
		if !strings.Contains(buf.String(), "snapshot captured") {
			t.Errorf("Expected message in output, got %q", buf.String())
		}
		if json.Valid(bytes.TrimSpace(buf.Bytes())) {
			t.Errorf("Expected console output, got JSON %q", buf.String())
		}
	})
}
