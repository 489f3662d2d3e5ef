package comb

import (
	"log/slog"
	"strconv"
	"strings"
)

// ParseError reports a match failure at a position in the input.
// It implements both error and slog.LogValuer.
type ParseError struct {
	Pos      int    // rune offset where the failure occurred
	Expected string // what the failing parser was looking for
	Actual   string // what the input held instead, possibly truncated
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at offset ")
	buf.WriteString(strconv.Itoa(e.Pos))

	if e.Expected != "" {
		buf.WriteString(": expected ")
		buf.WriteString(strconv.Quote(e.Expected))
	}

	if e.Actual != "" {
		buf.WriteString(", found ")
		buf.WriteString(strconv.Quote(e.Actual))
	}

	return buf.String()
}

// LogValue implements slog.LogValuer for structured logging.
func (e *ParseError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.Int("pos", e.Pos))

	if e.Expected != "" {
		attrs = append(attrs, slog.String("expected", e.Expected))
	}

	if e.Actual != "" {
		attrs = append(attrs, slog.String("actual", e.Actual))
	}

	return slog.GroupValue(attrs...)
}
