package crawl

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/obrtools/obrdocs"
)

// ContentHash returns the xxhash of content as a fixed-width hex string,
// recorded in the manifest so downstream consumers can detect changed pages.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// NewRunLogger builds a slog logger whose timestamps are rendered in the
// fixed log timezone, matching the manifest's generated_at format.
func NewRunLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(obrdocs.LogZone).Format("2006-01-02T15:04:05-07:00"))
				}
			}
			return a
		},
	}))
}

// TruncateURL shortens a URL for display, keeping the end which is more
// informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
