package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDoc        = "doc"
	KeyPath       = "path"
	KeyNodeKind   = "node_kind"
	KeyComponent  = "component"
	KeySession    = "session_id"
	KeySource     = "source"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Doc(name string) slog.Attr         { return slog.String(KeyDoc, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func NodeKind(k string) slog.Attr       { return slog.String(KeyNodeKind, k) }
func Component(c string) slog.Attr      { return slog.String(KeyComponent, c) }
func Session(id string) slog.Attr       { return slog.String(KeySession, id) }
func Source(s string) slog.Attr         { return slog.String(KeySource, s) }
func Output(o string) slog.Attr         { return slog.String(KeyOutput, o) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
