package starboard

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Messenger is the slice of the Discord REST surface the engine needs.
// *discordgo.Session satisfies it through SessionMessenger; tests supply
// fakes.
type Messenger interface {
	Message(channelID, messageID string) (*discordgo.Message, error)
	Reactors(channelID, messageID, emoji string, limit int, afterID string) ([]*discordgo.User, error)
	Send(channelID string, parts MessageParts) (*discordgo.Message, error)
	Edit(channelID, messageID string, parts MessageParts) error
	Delete(channelID, messageID string) error
}

// SessionMessenger adapts a discordgo session to the Messenger interface.
// Star messages are sent and edited with notifications suppressed.
type SessionMessenger struct {
	Session *discordgo.Session
}

func (m SessionMessenger) Message(channelID, messageID string) (*discordgo.Message, error) {
	return m.Session.ChannelMessage(channelID, messageID)
}

func (m SessionMessenger) Reactors(channelID, messageID, emoji string, limit int, afterID string) ([]*discordgo.User, error) {
	return m.Session.MessageReactions(channelID, messageID, emoji, limit, "", afterID)
}

func (m SessionMessenger) Send(channelID string, parts MessageParts) (*discordgo.Message, error) {
	return m.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: parts.Content,
		Embeds:  []*discordgo.MessageEmbed{parts.Embed},
		Flags:   discordgo.MessageFlagsSuppressNotifications,
	})
}

func (m SessionMessenger) Edit(channelID, messageID string, parts MessageParts) error {
	embeds := []*discordgo.MessageEmbed{parts.Embed}
	_, err := m.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: channelID,
		ID:      messageID,
		Content: &parts.Content,
		Embeds:  &embeds,
		Flags:   discordgo.MessageFlagsSuppressNotifications,
	})
	return err
}

// Delete is idempotent: deleting a message that is already gone succeeds.
func (m SessionMessenger) Delete(channelID, messageID string) error {
	err := m.Session.ChannelMessageDelete(channelID, messageID)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// IsNotFound reports whether the error is a Discord 404 response.
func IsNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
