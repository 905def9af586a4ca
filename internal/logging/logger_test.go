package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/MikiCRO/SpaceX-Project/internal/config"
)

func TestNew_releaseBuildLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}, "1.2.3", "server")

	logger.Info("hello", "site", "KSC LC-39A")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	want := map[string]string{"msg": "hello", "app": "server", "version": "1.2.3", "env": "prod", "site": "KSC LC-39A"}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v; want %q", k, rec[k], v)
		}
	}
}

func TestNew_devBuildUsesTint(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}, "dev", "server")

	logger.Info("hello")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Fatalf("dev build should not log JSON; got %q", out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "app=server") {
		t.Errorf("output = %q; want message and app attribute", out)
	}
}

func TestNew_levelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelWarn}, "1.0.0", "server")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing; got %q", buf.String())
	}
}
