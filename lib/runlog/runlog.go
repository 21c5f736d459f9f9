// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package runlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Options configures a run logger.
type Options struct {
	// Level is the minimum level emitted. Nil means slog.LevelInfo.
	Level slog.Leveler

	// ForceColor enables colored console output regardless of whether
	// the console writer is a terminal. Used by tests.
	ForceColor bool
}

// New builds a logger that writes every record to console (colored when
// it is a terminal) and, when file is non-nil, mirrors a plain copy to
// file.
func New(console io.Writer, file io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	profile := termenv.Ascii
	if opts.ForceColor || isTerminal(console) {
		profile = termenv.ANSI
	}
	renderer := lipgloss.NewRenderer(console, termenv.WithProfile(profile))
	// The renderer re-detects the profile from the environment unless it
	// is set explicitly; without this, ForceColor has no effect on
	// non-terminal writers.
	renderer.SetColorProfile(profile)

	return slog.New(&handler{
		mu:      &sync.Mutex{},
		console: console,
		file:    file,
		level:   level,
		styles: map[slog.Level]lipgloss.Style{
			slog.LevelDebug: renderer.NewStyle().Foreground(lipgloss.Color("8")),
			slog.LevelInfo:  renderer.NewStyle().Foreground(lipgloss.Color("2")),
			slog.LevelWarn:  renderer.NewStyle().Foreground(lipgloss.Color("3")),
			slog.LevelError: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	})
}

// OpenFile opens the log file for appending, creating it (and its
// parent directory) if needed. Mode 0600: the run log names accounts
// and teams and belongs to the administrator alone.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return file, nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// handler renders records into the fixed line format and fans them out
// to both sinks under a shared mutex, so concurrent logging from a
// future parallel engine cannot interleave partial lines.
type handler struct {
	mu      *sync.Mutex
	console io.Writer
	file    io.Writer
	level   slog.Leveler
	styles  map[slog.Level]lipgloss.Style
	attrs   []slog.Attr
	group   string
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var attrs strings.Builder
	for _, attr := range h.attrs {
		writeAttr(&attrs, h.group, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&attrs, h.group, attr)
		return true
	})

	label := record.Level.String()
	plainLine := fmt.Sprintf("[%s] [%s] %s%s\n",
		timestamp.Format("2006-01-02 15:04:05"), label, record.Message, attrs.String())

	styledLabel := label
	if style, ok := h.styles[record.Level]; ok {
		styledLabel = style.Render(label)
	}
	consoleLine := fmt.Sprintf("[%s] [%s] %s%s\n",
		timestamp.Format("2006-01-02 15:04:05"), styledLabel, record.Message, attrs.String())

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.console, consoleLine); err != nil {
		return err
	}
	if h.file != nil {
		if _, err := io.WriteString(h.file, plainLine); err != nil {
			return err
		}
	}
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *handler) WithGroup(name string) slog.Handler {
	clone := *h
	if name != "" {
		if clone.group != "" {
			clone.group += "."
		}
		clone.group += name
	}
	return &clone
}

func writeAttr(builder *strings.Builder, group string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	value := attr.Value.String()
	if strings.ContainsAny(value, " \t\"") {
		value = fmt.Sprintf("%q", value)
	}
	fmt.Fprintf(builder, " %s=%s", key, value)
}
