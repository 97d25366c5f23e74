// ABOUTME: Tests for command line value parsing, formatting and the log handler
// ABOUTME: Covers JSON fallback rules, absent/null rendering and stderr logging

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coven-settings/internal/config"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"bare word", "dark", "dark"},
		{"words with spaces", "hello world", "hello world"},
		{"empty", "", ""},
		{"integer", "42", json.Number("42")},
		{"float", "1.5", json.Number("1.5")},
		{"boolean", "true", true},
		{"null", "null", nil},
		{"quoted string", `"quoted"`, "quoted"},
		{"object", `{"a": [1, "b"]}`, map[string]any{"a": []any{json.Number("1"), "b"}}},
		{"leading zero", "007", "007"},
		{"trailing data", `{"a":1} extra`, `{"a":1} extra`},
		{"two documents", "1 2", "1 2"},
		{"unterminated", "[1, 2", "[1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseValue(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseValue(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestValueArg(t *testing.T) {
	args := []string{"key", "42"}

	assert.Equal(t, json.Number("42"), valueArg(args, 1, false))
	assert.Equal(t, "42", valueArg(args, 1, true))
	assert.Nil(t, valueArg(args, 2, false), "missing value stores null")
}

func TestFormatValue(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "(absent)", formatValue(nil, false))
	assert.Equal(t, "null", formatValue(nil, true))
	assert.Equal(t, `"x"`, formatValue("x", true))
	assert.Equal(t, `{"n":1}`, formatValue(map[string]any{"n": json.Number("1")}, true))
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	logger.Debug("opened settings store", "component", "settings", "file", "/tmp/x.db")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "opened settings store", rec["msg"])
	assert.Equal(t, "settings", rec["component"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestSetupLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestColorHandler_AttrsAndGroups(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.With("component", "store").WithGroup("db").Info("closed", "path", "a.db")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "INF closed")
	assert.Contains(t, line, "component=store")
	assert.Contains(t, line, "db.path=a.db")
}
