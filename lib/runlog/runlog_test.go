// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package runlog

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var lineFormat = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[(DEBUG|INFO|WARN|ERROR)\] `)

func TestLineFormat(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(&console, &file, Options{})

	logger.Info("group created", "group", "backend")

	line := console.String()
	if !lineFormat.MatchString(line) {
		t.Fatalf("console line %q does not match format", line)
	}
	if !strings.Contains(line, "group created group=backend") {
		t.Fatalf("console line %q missing message/attrs", line)
	}
	if console.String() != file.String() {
		t.Fatalf("sinks differ:\nconsole: %q\nfile:    %q", console.String(), file.String())
	}
}

func TestLevelFilter(t *testing.T) {
	var console bytes.Buffer
	logger := New(&console, nil, Options{Level: slog.LevelWarn})

	logger.Info("not emitted")
	logger.Warn("emitted")

	if strings.Contains(console.String(), "not emitted") {
		t.Fatal("info record leaked past warn filter")
	}
	if !strings.Contains(console.String(), "emitted") {
		t.Fatal("warn record missing")
	}
}

func TestColoredConsolePlainFile(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(&console, &file, Options{ForceColor: true})

	logger.Error("mutation failed", "user", "alice")

	if !strings.Contains(console.String(), "\x1b[") {
		t.Fatal("console output should carry ANSI escapes with ForceColor")
	}
	if strings.Contains(file.String(), "\x1b[") {
		t.Fatal("file sink must stay plain")
	}
	if !strings.Contains(file.String(), "[ERROR] mutation failed user=alice") {
		t.Fatalf("file line = %q", file.String())
	}
}

func TestAttrQuoting(t *testing.T) {
	var console bytes.Buffer
	logger := New(&console, nil, Options{})

	logger.Info("user created", "comment", "Alice Johnson")

	if !strings.Contains(console.String(), `comment="Alice Johnson"`) {
		t.Fatalf("line = %q", console.String())
	}
}

func TestWithAttrsAndGroup(t *testing.T) {
	var console bytes.Buffer
	logger := New(&console, nil, Options{}).With("team", "backend").WithGroup("sweep")

	logger.Info("directory removed", "path", "/projects/backend")

	line := console.String()
	if !strings.Contains(line, "team=backend") {
		t.Fatalf("line %q missing inherited attr", line)
	}
	if !strings.Contains(line, "sweep.path=/projects/backend") {
		t.Fatalf("line %q missing grouped attr", line)
	}
}

func TestOpenFile_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "roster.log")

	for _, message := range []string{"first run", "second run"} {
		file, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		logger := New(&bytes.Buffer{}, file, Options{})
		logger.Info(message)
		if err := file.Close(); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first run") || !strings.Contains(string(data), "second run") {
		t.Fatalf("log content = %q", data)
	}
}
