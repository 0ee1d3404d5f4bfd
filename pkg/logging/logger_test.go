// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo}, // Unknown defaults to Info
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := tt.level.toSlogLevel()
			if got != tt.want {
				t.Errorf("Level.toSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_DefaultConfig(t *testing.T) {
	logger := New(Config{})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.slog == nil {
		t.Error("logger.slog is nil")
	}
	defer logger.Close()
}

func TestNew_FileLogging(t *testing.T) {
	tempDir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  tempDir,
		Service: "trainer",
		Quiet:   true,
	})

	logger.Info("model persisted", "predicates", 42)

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	filename := "trainer_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(tempDir, filename))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "model persisted") {
		t.Errorf("log file missing message, got: %s", content)
	}
	if !strings.Contains(content, `"service":"trainer"`) {
		t.Errorf("log file missing service attribute, got: %s", content)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tempDir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  tempDir,
		Service: "indexer",
		Quiet:   true,
	})

	logger.Debug("should be filtered")
	logger.Info("should be filtered")
	logger.Warn("cutoff dropped all predicates")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	filename := "indexer_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(tempDir, filename))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	content := string(data)
	if strings.Contains(content, "should be filtered") {
		t.Errorf("filtered levels leaked into log file: %s", content)
	}
	if !strings.Contains(content, "cutoff dropped all predicates") {
		t.Errorf("warn entry missing from log file: %s", content)
	}
}

func TestLogger_With(t *testing.T) {
	tempDir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  tempDir,
		Service: "trainer",
		Quiet:   true,
	})
	defer logger.Close()

	child := logger.With("run_id", "abc-123")
	child.Info("iteration complete")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	filename := "trainer_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(tempDir, filename))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	if !strings.Contains(string(data), "abc-123") {
		t.Errorf("child logger attribute missing: %s", data)
	}
}

func TestLogger_CloseIdempotent(t *testing.T) {
	logger := New(Config{Quiet: true})
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got := expandPath("~/logs")
	want := filepath.Join(home, "logs")
	if got != want {
		t.Errorf("expandPath(~/logs) = %q, want %q", got, want)
	}

	if got := expandPath("/var/log"); got != "/var/log" {
		t.Errorf("expandPath(/var/log) = %q, want unchanged", got)
	}
}
