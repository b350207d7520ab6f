package obrdocs_test

import (
	"testing"

	"github.com/obrtools/obrdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing slash stripped", "https://docs.owlbear.rodeo/extensions/apis/action/", "https://docs.owlbear.rodeo/extensions/apis/action"},
		{"fragment stripped", "https://docs.owlbear.rodeo/extensions/apis/action#methods", "https://docs.owlbear.rodeo/extensions/apis/action"},
		{"both stripped", "https://docs.owlbear.rodeo/extensions/apis/action/#methods", "https://docs.owlbear.rodeo/extensions/apis/action"},
		{"already normalized", "https://docs.owlbear.rodeo/extensions/apis/action", "https://docs.owlbear.rodeo/extensions/apis/action"},
		{"whitespace trimmed", "  https://docs.owlbear.rodeo/extensions/apis/action\n", "https://docs.owlbear.rodeo/extensions/apis/action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, obrdocs.NormalizeURL(tt.in))
		})
	}
}

func TestSlugFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "https://docs.owlbear.rodeo/extensions/apis/action", "action"},
		{"trailing slash", "https://docs.owlbear.rodeo/extensions/apis/action/", "action"},
		{"unsafe characters replaced", "https://docs.owlbear.rodeo/extensions/apis/scene%20items", "scene_items"},
		{"root", "https://docs.owlbear.rodeo/", "index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, obrdocs.SlugFromURL(tt.in))
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Scene Items", obrdocs.TitleFromSlug("scene-items"))
	assert.Equal(t, "Local Storage", obrdocs.TitleFromSlug("local_storage"))
	assert.Equal(t, "Action", obrdocs.TitleFromSlug("action"))
}

func TestSite_TaskFromURL(t *testing.T) {
	t.Parallel()

	site := obrdocs.Site{}

	t.Run("apis page", func(t *testing.T) {
		t.Parallel()

		task, err := site.TaskFromURL("https://docs.owlbear.rodeo/extensions/apis/action/")
		require.NoError(t, err)
		assert.Equal(t, obrdocs.CategoryAPIs, task.Category)
		assert.Equal(t, "action", task.Slug)
		assert.Equal(t, "https://docs.owlbear.rodeo/extensions/apis/action", task.URL)
	})

	t.Run("reference page", func(t *testing.T) {
		t.Parallel()

		task, err := site.TaskFromURL("https://docs.owlbear.rodeo/extensions/reference/theme")
		require.NoError(t, err)
		assert.Equal(t, obrdocs.CategoryReference, task.Category)
		assert.Equal(t, "theme", task.Slug)
	})

	t.Run("category root becomes index", func(t *testing.T) {
		t.Parallel()

		task, err := site.TaskFromURL("https://docs.owlbear.rodeo/extensions/apis/")
		require.NoError(t, err)
		assert.Equal(t, "index", task.Slug)
	})

	t.Run("outside configured prefixes", func(t *testing.T) {
		t.Parallel()

		_, err := site.TaskFromURL("https://docs.owlbear.rodeo/extensions/tutorials/intro")
		require.Error(t, err)
		assert.Equal(t, obrdocs.EINVALID, obrdocs.ErrorCode(err))
	})

	t.Run("different host rejected", func(t *testing.T) {
		t.Parallel()

		_, err := site.TaskFromURL("https://example.com/extensions/apis/action")
		require.Error(t, err)
		assert.Equal(t, obrdocs.EINVALID, obrdocs.ErrorCode(err))
	})

	t.Run("custom base URL", func(t *testing.T) {
		t.Parallel()

		custom := obrdocs.Site{BaseURL: "http://127.0.0.1:8080"}
		task, err := custom.TaskFromURL("http://127.0.0.1:8080/extensions/apis/player")
		require.NoError(t, err)
		assert.Equal(t, "player", task.Slug)
	})
}

func TestPageTask_Validate(t *testing.T) {
	t.Parallel()

	valid := obrdocs.PageTask{
		URL:      "https://docs.owlbear.rodeo/extensions/apis/action",
		Category: obrdocs.CategoryAPIs,
		Slug:     "action",
	}
	require.NoError(t, valid.Validate())

	missingURL := valid
	missingURL.URL = ""
	assert.Equal(t, obrdocs.EINVALID, obrdocs.ErrorCode(missingURL.Validate()))

	badCategory := valid
	badCategory.Category = "guides"
	assert.Equal(t, obrdocs.EINVALID, obrdocs.ErrorCode(badCategory.Validate()))

	missingSlug := valid
	missingSlug.Slug = ""
	assert.Equal(t, obrdocs.EINVALID, obrdocs.ErrorCode(missingSlug.Validate()))
}
