package starboard

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseMessage() *discordgo.Message {
	return &discordgo.Message{
		ID:        testMessageID,
		ChannelID: testChannelID,
		Content:   "hello there",
		Author:    &discordgo.User{ID: testAuthorID, Username: "author"},
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildStarMessageBasics(t *testing.T) {
	parts := BuildStarMessage(baseMessage(), testGuildID, "⭐", 5, 5)

	assert.Equal(t,
		"https://discord.com/channels/"+testGuildID+"/"+testChannelID+"/"+testMessageID,
		parts.Content)

	require.NotNil(t, parts.Embed)
	assert.Equal(t, "author", parts.Embed.Author.Name)
	assert.Equal(t, "⭐ 5 • "+testMessageID, parts.Embed.Footer.Text)
	assert.Equal(t, "hello there", parts.Embed.Description)
	assert.Equal(t, "2025-03-01T12:00:00Z", parts.Embed.Timestamp)
}

func TestTierColors(t *testing.T) {
	tests := []struct {
		count int64
		want  int
	}{
		{7, colorTierOne},
		{9, colorTierOne},
		{10, colorTierTwo},
		{12, colorTierTwo},
		{15, colorTierThree},
		{20, colorTierThree},
	}
	for _, tc := range tests {
		parts := BuildStarMessage(baseMessage(), testGuildID, "⭐", tc.count, 5)
		assert.Equalf(t, tc.want, parts.Embed.Color, "count=%d", tc.count)
	}
}

func TestImageAttachmentBeatsTextURL(t *testing.T) {
	msg := baseMessage()
	msg.Content = "check https://cdn.example.com/pic.png out"
	msg.Attachments = []*discordgo.MessageAttachment{
		{URL: "https://cdn.example.com/attached.jpg", ContentType: "image/jpeg"},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.NotNil(t, parts.Embed.Image)
	assert.Equal(t, "https://cdn.example.com/attached.jpg", parts.Embed.Image.URL)
}

func TestNonImageAttachmentsListedAsLinks(t *testing.T) {
	msg := baseMessage()
	msg.Attachments = []*discordgo.MessageAttachment{
		{URL: "https://cdn.example.com/report.pdf", ContentType: "application/pdf"},
		{URL: "https://cdn.example.com/notes.txt", ContentType: "text/plain"},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	assert.Nil(t, parts.Embed.Image)
	require.Len(t, parts.Embed.Fields, 1)
	assert.Equal(t, "Attachments", parts.Embed.Fields[0].Name)
	assert.Contains(t, parts.Embed.Fields[0].Value, "<https://cdn.example.com/report.pdf>")
	assert.Contains(t, parts.Embed.Fields[0].Value, "<https://cdn.example.com/notes.txt>")
}

func TestNonImageAttachmentsFallThroughToTextImage(t *testing.T) {
	msg := baseMessage()
	msg.Content = "diagram at https://cdn.example.com/diagram.png"
	msg.Attachments = []*discordgo.MessageAttachment{
		{URL: "https://cdn.example.com/report.pdf", ContentType: "application/pdf"},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.Len(t, parts.Embed.Fields, 1)
	assert.Equal(t, "Attachments", parts.Embed.Fields[0].Name)
	require.NotNil(t, parts.Embed.Image)
	assert.Equal(t, "https://cdn.example.com/diagram.png", parts.Embed.Image.URL)
}

func TestTextImageURLUsedWithoutAttachments(t *testing.T) {
	msg := baseMessage()
	msg.Content = "look https://cdn.example.com/PIC.JPG here"

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.NotNil(t, parts.Embed.Image)
	assert.Equal(t, "https://cdn.example.com/PIC.JPG", parts.Embed.Image.URL)
}

func TestEmbedImageFallback(t *testing.T) {
	msg := baseMessage()
	msg.Embeds = []*discordgo.MessageEmbed{
		{Image: &discordgo.MessageEmbedImage{URL: "https://cdn.example.com/embedded.png"}},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.NotNil(t, parts.Embed.Image)
	assert.Equal(t, "https://cdn.example.com/embedded.png", parts.Embed.Image.URL)
}

func TestReplyTruncation(t *testing.T) {
	msg := baseMessage()
	msg.ReferencedMessage = &discordgo.Message{
		Content: strings.Repeat("a", 600),
		Author:  &discordgo.User{ID: "42", Username: "replied"},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.Len(t, parts.Embed.Fields, 1)
	field := parts.Embed.Fields[0]
	assert.Equal(t, "In reply to replied's message", field.Name)
	assert.Equal(t, strings.Repeat("a", 524)+"...", field.Value)
}

func TestReplyWithoutTextUsesPlaceholder(t *testing.T) {
	msg := baseMessage()
	msg.ReferencedMessage = &discordgo.Message{
		Author: &discordgo.User{ID: "42", Username: "replied"},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.Len(t, parts.Embed.Fields, 1)
	assert.Equal(t, replyNoTextPlaceholder, parts.Embed.Fields[0].Value)
}

func TestShortReplyNotTruncated(t *testing.T) {
	msg := baseMessage()
	msg.ReferencedMessage = &discordgo.Message{
		Content: "short reply",
		Author:  &discordgo.User{ID: "42", Username: "replied"},
	}

	parts := BuildStarMessage(msg, testGuildID, "⭐", 5, 5)
	require.Len(t, parts.Embed.Fields, 1)
	assert.Equal(t, "short reply", parts.Embed.Fields[0].Value)
}
