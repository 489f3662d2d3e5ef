package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{input: "trace", want: LevelTrace},
		{input: "TRACE", want: LevelTrace},
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "bogus", want: DefaultLevel},
		{input: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{input: "json", want: FormatJSON},
		{input: "text", want: FormatText},
		{input: " JSON ", want: FormatJSON},
		{input: "yaml", want: DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestZeroLogger(t *testing.T) {
	var l Logger

	// Must not panic, must not emit.
	l.Trace("hidden")
	l.Error("hidden")

	if l.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v, want %v", l.Level(), DefaultLevel)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelInfo),
		WithFormat(FormatText),
		WithTimeLayout(""),
	)

	l.Trace("below")
	l.Debug("below")
	l.Info("visible")

	out := buf.String()
	if strings.Contains(out, "below") {
		t.Errorf("suppressed levels leaked: %q", out)
	}

	if !strings.Contains(out, "visible") {
		t.Errorf("expected info message, got %q", out)
	}
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatText),
		WithTimeLayout(""),
	)

	l.Trace("deep", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, "TRACE") {
		t.Errorf("expected TRACE level name, got %q", out)
	}

	if !strings.Contains(out, "key=value") {
		t.Errorf("expected attribute, got %q", out)
	}
}

func TestWrapOverrides(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))
	if l.Level() != LevelError {
		t.Fatalf("expected error level, got %v", l.Level())
	}

	w := l.Wrap(WithLevel(LevelTrace), WithFormat(FormatJSON))
	if w.Level() != LevelTrace {
		t.Errorf("expected trace level after wrap, got %v", w.Level())
	}

	if w.Format() != FormatJSON {
		t.Errorf("expected json format after wrap, got %v", w.Format())
	}

	// The original is unchanged.
	if l.Level() != LevelError {
		t.Errorf("wrap mutated original: %v", l.Level())
	}
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithTimeLayout("")).
		With(slog.String("component", "expander"))

	l.Info("ready")

	if !strings.Contains(buf.String(), "component=expander") {
		t.Errorf("expected bound attribute, got %q", buf.String())
	}
}

func TestIterators(t *testing.T) {
	var levels []string
	for name := range Levels() {
		levels = append(levels, name)
	}

	if len(levels) != 5 || levels[0] != "trace" {
		t.Errorf("unexpected levels: %v", levels)
	}

	var formats []string
	for name := range Formats() {
		formats = append(formats, name)
	}

	if len(formats) != 2 {
		t.Errorf("unexpected formats: %v", formats)
	}
}
