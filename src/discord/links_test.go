package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("see https://example.com/a, and also https://example.com/b.")
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)
}

func TestFirstImageURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain jpg", "here https://cdn.example.com/x.jpg ok", "https://cdn.example.com/x.jpg"},
		{"uppercase extension", "https://cdn.example.com/X.PNG", "https://cdn.example.com/X.PNG"},
		{"gif with query", "https://cdn.example.com/x.gif?size=large", "https://cdn.example.com/x.gif?size=large"},
		{"non-image url", "https://example.com/page", ""},
		{"no urls", "nothing here", ""},
		{"first of several", "https://example.com/doc https://cdn.example.com/a.jpeg https://cdn.example.com/b.png", "https://cdn.example.com/a.jpeg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FirstImageURL(tc.text))
		})
	}
}

func TestMessageLink(t *testing.T) {
	assert.Equal(t,
		"https://discord.com/channels/1/2/3",
		MessageLink("1", "2", "3"))
}

func TestFormatURLsNoEmbed(t *testing.T) {
	assert.Equal(t, "", FormatURLsNoEmbed(nil))
	assert.Equal(t,
		"<https://a.example> <https://b.example>",
		FormatURLsNoEmbed([]string{"https://a.example", "https://b.example"}))
}
