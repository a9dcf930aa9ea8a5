package starboard

import "github.com/bwmarrin/discordgo"

// EventKind discriminates the reaction events the engine consumes.
type EventKind int

const (
	// A user added a reaction.
	ReactionAdded EventKind = iota
	// A user removed their reaction.
	ReactionRemoved
	// Every reaction of one emoji was stripped from a message.
	ReactionEmojiCleared
	// Every reaction was stripped from a message.
	ReactionsCleared
)

// ReactionEvent is the transport-independent form of a reaction gateway
// event. Gateway adapters map their SDK's event structs onto it.
type ReactionEvent struct {
	Kind      EventKind
	GuildID   string
	ChannelID string
	MessageID string
	// Reacting user. Empty for the cleared kinds.
	UserID string
	// Unicode emoji. Empty for ReactionsCleared.
	Emoji string
	// Custom/animated emoji reactions are not supported and are dropped.
	Custom bool
	// Super reactions are not supported and are dropped.
	Burst bool
}

// FromReactionAdd maps a discordgo reaction-add gateway event.
// discordgo does not decode the super-reaction flag, so Burst stays false
// here; the engine still enforces the guard for transports that carry it.
func FromReactionAdd(r *discordgo.MessageReactionAdd) ReactionEvent {
	return fromMessageReaction(ReactionAdded, r.MessageReaction)
}

// FromReactionRemove maps a discordgo reaction-remove gateway event.
func FromReactionRemove(r *discordgo.MessageReactionRemove) ReactionEvent {
	return fromMessageReaction(ReactionRemoved, r.MessageReaction)
}

// FromReactionRemoveAll maps a discordgo remove-all gateway event. The
// payload carries no emoji or user.
func FromReactionRemoveAll(r *discordgo.MessageReactionRemoveAll) ReactionEvent {
	ev := fromMessageReaction(ReactionsCleared, r.MessageReaction)
	ev.UserID = ""
	ev.Emoji = ""
	ev.Custom = false
	return ev
}

func fromMessageReaction(kind EventKind, r *discordgo.MessageReaction) ReactionEvent {
	return ReactionEvent{
		Kind:      kind,
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.Name,
		Custom:    r.Emoji.ID != "" || r.Emoji.Animated,
	}
}
