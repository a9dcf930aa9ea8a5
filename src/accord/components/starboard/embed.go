package starboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	shareddiscord "github.com/accordbot/accord/src/discord"
)

// Severity banding for the embed color, relative to the board threshold.
const (
	colorTierOne   = 0xF9A825 // below 2x threshold
	colorTierTwo   = 0xFB8C00 // below 3x threshold
	colorTierThree = 0xE53935
)

const replyPreviewLimit = 524

const replyNoTextPlaceholder = "*no text content*"

// MessageParts is the renderable form of a star message: the jump link as
// the body plus the summary embed.
type MessageParts struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// BuildStarMessage produces the star message for an original message at the
// given qualifying count. Pure; recomputed on every reconciliation so color
// and footer always reflect the current count.
func BuildStarMessage(msg *discordgo.Message, guildID, emoji string, count, threshold int64) MessageParts {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    msg.Author.Username,
			IconURL: msg.Author.AvatarURL(""),
		},
		Color: tierColor(count, threshold),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s %d • %s", emoji, count, msg.ID),
		},
		Timestamp: msg.Timestamp.Format(time.RFC3339),
	}

	if msg.Content != "" {
		embed.Description = msg.Content
	}

	attachImage(embed, msg)
	attachReplyContext(embed, msg)

	return MessageParts{
		Content: shareddiscord.MessageLink(guildID, msg.ChannelID, msg.ID),
		Embed:   embed,
	}
}

func tierColor(count, threshold int64) int {
	switch {
	case count < 2*threshold:
		return colorTierOne
	case count < 3*threshold:
		return colorTierTwo
	default:
		return colorTierThree
	}
}

// attachImage picks the embed image. Precedence: an image attachment, else
// an image URL in the message text, else an image carried by one of the
// original message's own embeds. Non-image attachments are listed as links
// without consuming the image pick.
func attachImage(embed *discordgo.MessageEmbed, msg *discordgo.Message) {
	for _, a := range msg.Attachments {
		if strings.HasPrefix(a.ContentType, "image/") {
			embed.Image = &discordgo.MessageEmbedImage{URL: a.URL}
			return
		}
	}

	if len(msg.Attachments) > 0 {
		urls := make([]string, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			urls = append(urls, a.URL)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Attachments",
			Value: shareddiscord.FormatURLsNoEmbed(urls),
		})
	}

	if u := shareddiscord.FirstImageURL(msg.Content); u != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: u}
		return
	}

	for _, e := range msg.Embeds {
		if e.Image != nil && e.Image.URL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: e.Image.URL}
			return
		}
		if e.Thumbnail != nil && e.Thumbnail.URL != "" {
			embed.Image = &discordgo.MessageEmbedImage{URL: e.Thumbnail.URL}
			return
		}
	}
}

func attachReplyContext(embed *discordgo.MessageEmbed, msg *discordgo.Message) {
	ref := msg.ReferencedMessage
	if ref == nil || ref.Author == nil {
		return
	}

	preview := replyNoTextPlaceholder
	if ref.Content != "" {
		preview = truncate(ref.Content, replyPreviewLimit)
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("In reply to %s's message", ref.Author.Username),
		Value: preview,
	})
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
