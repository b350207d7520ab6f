package http_test

import (
	"testing"

	obrhttp "github.com/obrtools/obrdocs/http"
	"github.com/stretchr/testify/assert"
)

func TestChallengeDetector_Detect(t *testing.T) {
	t.Parallel()

	d := obrhttp.NewChallengeDetector()

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"interstitial title", "<title>Just a moment...</title>", true},
		{"mixed case marker", "<p>CHECKING YOUR BROWSER before accessing</p>", true},
		{"verification div", "<div id='cf-browser-verification'></div>", true},
		{"challenge platform script", "<script src='/cdn-cgi/challenge-platform/h/b'></script>", true},
		{"real content", "<article><h1>Action</h1><p>The action API.</p></article>", false},
		{"empty body", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.Detect([]byte(tt.body)))
		})
	}
}

func TestChallengeDetector_ExtraMarkers(t *testing.T) {
	t.Parallel()

	d := obrhttp.NewChallengeDetector("Access Denied By WAF")

	assert.True(t, d.Detect([]byte("<h1>access denied by waf</h1>")))
	assert.False(t, d.Detect([]byte("<h1>welcome</h1>")))
}
