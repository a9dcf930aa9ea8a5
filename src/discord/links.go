package discord

import (
	"fmt"
	"regexp"
	"strings"
)

var urlRegex = regexp.MustCompile(`https?://[^\s\[\]()<>]+`)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// ExtractURLs returns every URL found in the text, trimmed of trailing
// punctuation.
func ExtractURLs(text string) []string {
	var urls []string
	for _, u := range urlRegex.FindAllString(text, -1) {
		urls = append(urls, strings.TrimRight(u, ".,;:!?)"))
	}
	return urls
}

// FirstImageURL returns the first URL in the text that carries one of the
// common image extensions, or "" when none does.
func FirstImageURL(text string) string {
	for _, u := range ExtractURLs(text) {
		lower := strings.ToLower(u)
		for _, ext := range imageExtensions {
			if strings.Contains(lower, ext) {
				return u
			}
		}
	}
	return ""
}

// MessageLink builds the canonical jump link for a guild message.
func MessageLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}

// FormatURLsNoEmbed formats a slice of URLs, wrapped in angle brackets to
// prevent Discord embeds.
func FormatURLsNoEmbed(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	var formatted []string
	for _, u := range urls {
		formatted = append(formatted, fmt.Sprintf("<%s>", u))
	}
	return strings.Join(formatted, " ")
}
