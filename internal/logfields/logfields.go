package logfields

import "log/slog"

// Canonical log field names shared by every package that logs.
const (
	KeyRunID        = "run_id"
	KeyTemplate     = "template"
	KeyStage        = "stage"
	KeyDurationMS   = "duration_ms"
	KeyPageID       = "page_id"
	KeyURL          = "url"
	KeyFeature      = "feature"
	KeyPath         = "path"
	KeyCount        = "count"
	KeyOutputFormat = "output_format"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func PageID(id string) slog.Attr      { return slog.String(KeyPageID, id) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Feature(id string) slog.Attr     { return slog.String(KeyFeature, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func OutputFormat(f string) slog.Attr { return slog.String(KeyOutputFormat, f) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
