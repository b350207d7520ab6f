package htmltomarkdown_test

import (
	"testing"

	"github.com/obrtools/obrdocs"
	"github.com/obrtools/obrdocs/htmltomarkdown"
	"github.com/stretchr/testify/assert"
)

func TestPostProcessor_Process(t *testing.T) {
	t.Parallel()

	site := obrdocs.Site{}
	post := htmltomarkdown.NewPostProcessor(site)
	task := obrdocs.PageTask{
		URL:      "https://docs.owlbear.rodeo/extensions/apis/action",
		Category: obrdocs.CategoryAPIs,
		Slug:     "action",
	}

	t.Run("strips heading anchor artifacts", func(t *testing.T) {
		t.Parallel()

		in := "## Setup[​](#setup \"Direct link to Setup\")\n\nBody."
		out := post.Process(in, task)
		assert.Equal(t, "## Setup\n\nBody.", out)
	})

	t.Run("drops image references", func(t *testing.T) {
		t.Parallel()

		in := "Before ![action popover](https://docs.owlbear.rodeo/img/action.png) after."
		out := post.Process(in, task)
		assert.Equal(t, "Before  after.", out)
	})

	t.Run("strips residual known tags but keeps text", func(t *testing.T) {
		t.Parallel()

		in := `A <span class="badge">tagged</span> word and a <br/> break.`
		out := post.Process(in, task)
		assert.Equal(t, "A tagged word and a  break.", out)
		assert.False(t, htmltomarkdown.HasStrayTags(out))
	})

	t.Run("leaves generic type parameters alone", func(t *testing.T) {
		t.Parallel()

		in := "Returns Promise<Item[]> resolving to the items."
		out := post.Process(in, task)
		assert.Equal(t, in, out)
	})

	t.Run("ignores fenced code blocks", func(t *testing.T) {
		t.Parallel()

		in := "```html\n<div class=\"x\">![img](u)</div>\n```"
		out := post.Process(in, task)
		assert.Equal(t, in, out)
	})

	t.Run("ignores inline code spans", func(t *testing.T) {
		t.Parallel()

		in := "Use `<div>` as the container."
		out := post.Process(in, task)
		assert.Equal(t, in, out)
	})

	t.Run("rewrites links only for in-scope URLs", func(t *testing.T) {
		t.Parallel()

		in := "[player](https://docs.owlbear.rodeo/extensions/apis/player/) and [guide](https://docs.owlbear.rodeo/guides/start)"
		out := post.Process(in, task)
		assert.Contains(t, out, "[player](player.md)")
		assert.Contains(t, out, "(https://docs.owlbear.rodeo/guides/start)")
	})
}

func TestHasStrayTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"clean markdown", "# Title\n\nJust text.", false},
		{"stray div", "text <div> text", true},
		{"stray closing tag", "text </span>", true},
		{"tag inside fence", "```\n<div>\n```", false},
		{"tag inside inline code", "use `<span>` here", false},
		{"unknown tag-like text", "Promise<ItemFilter>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, htmltomarkdown.HasStrayTags(tt.in))
		})
	}
}
