package crawl_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/obrtools/obrdocs/crawl"
	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	t.Parallel()

	a := crawl.ContentHash("# Action\n")
	b := crawl.ContentHash("# Action\n")
	c := crawl.ContentHash("# Player\n")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestNewRunLogger_TimezoneOffset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := crawl.NewRunLogger(&buf, slog.LevelInfo)
	logger.Info("page done", "url", "https://docs.owlbear.rodeo/extensions/apis/action")

	assert.Contains(t, buf.String(), "+08:00")
	assert.Contains(t, buf.String(), "page done")
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", crawl.TruncateURL("https://example.com", 0))
	assert.Equal(t, "https://example.com", crawl.TruncateURL("https://example.com", 30))
	assert.Equal(t, "...apis/action", crawl.TruncateURL("https://docs.owlbear.rodeo/extensions/apis/action", 14))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}
