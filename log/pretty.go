package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Pretty output styles. Level styles are keyed by the rendered level name.
var (
	styleTime  = lipgloss.NewStyle().Faint(true)
	styleMsg   = lipgloss.NewStyle().Bold(true)
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleLevel = map[string]lipgloss.Style{
		"TRACE": lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// prettyHandler is a slog.Handler that renders human-oriented colorized
// lines: timestamp, level, message, then key=value attributes.
type prettyHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	opts  *slog.HandlerOptions
	attrs []slog.Attr
	group []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &prettyHandler{
		mu:   &sync.Mutex{},
		out:  w,
		opts: opts,
	}
}

// Enabled implements slog.Handler.
func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

// Handle implements slog.Handler.
func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	if ts := h.replaced(slog.Time(slog.TimeKey, r.Time)); ts.Key != "" {
		buf.WriteString(styleTime.Render(ts.Value.String()))
		buf.WriteByte(' ')
	}

	level := h.replaced(slog.Any(slog.LevelKey, r.Level)).Value.String()
	if style, ok := styleLevel[level]; ok {
		level = style.Render(level)
	}

	buf.WriteString(level)
	buf.WriteByte(' ')
	buf.WriteString(styleMsg.Render(r.Message))

	for _, attr := range h.attrs {
		h.writeAttr(&buf, attr)
	}

	r.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&buf, attr)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.out, buf.String())

	return err
}

// WithAttrs implements slog.Handler.
func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

// WithGroup implements slog.Handler.
func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.group = append(append([]string{}, h.group...), name)

	return &clone
}

// replaced applies the configured ReplaceAttr, if any, to a built-in attr.
func (h *prettyHandler) replaced(attr slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return attr
	}

	return h.opts.ReplaceAttr(nil, attr)
}

// writeAttr appends one key=value pair, expanding groups and resolving
// LogValuer values.
func (h *prettyHandler) writeAttr(buf *strings.Builder, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()

	if attr.Value.Kind() == slog.KindGroup {
		for _, nested := range attr.Value.Group() {
			nested.Key = attr.Key + "." + nested.Key
			h.writeAttr(buf, nested)
		}

		return
	}

	key := attr.Key
	if len(h.group) > 0 {
		key = strings.Join(h.group, ".") + "." + key
	}

	buf.WriteByte(' ')
	buf.WriteString(styleKey.Render(key + "="))
	buf.WriteString(fmt.Sprint(attr.Value.Any()))
}
