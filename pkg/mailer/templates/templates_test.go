package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML_Welcome(t *testing.T) {
	html, err := RenderHTML(Welcome, map[string]any{
		"AppName": "book-catalog-api",
		"Name":    "Alice",
		"Email":   "alice@x.com",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome to book-catalog-api, Alice!")
	assert.Contains(t, html, "alice@x.com")
}

func TestRenderHTML_LoginNotification(t *testing.T) {
	html, err := RenderHTML(LoginNotification, map[string]any{
		"AppName": "book-catalog-api",
		"Name":    "Alice",
		"Email":   "alice@x.com",
		"IP":      "203.0.113.7",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "203.0.113.7")
}

func TestRenderHTML_UnknownTemplate(t *testing.T) {
	_, err := RenderHTML("no_such_template", nil)
	assert.Error(t, err)
}

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "Welcome to your book catalog", SubjectFor(Welcome))
	assert.Equal(t, "New login to your account", SubjectFor(LoginNotification))
	assert.Equal(t, "Notification", SubjectFor("mystery"))
}
