package starboard

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/accordbot/accord/src/accord/types"
)

// BoardSource resolves the starboards configured for a (guild, emoji) pair.
// Disabled boards are included; the engine filters them per board.
type BoardSource interface {
	Match(guildID, emoji string) ([]types.Starboard, error)
}

// EntryStore is the persisted mapping from (starboard channel, original
// message) to the star message the bot maintains. Upsert must be atomic on
// the composite key: it is the only serialization point between concurrent
// reconciliations of the same pair.
type EntryStore interface {
	Find(boardChannelID, originalMessageID string) (*types.StarredMessage, error)
	Upsert(boardChannelID, originalMessageID, starMessageID, authorID, sourceChannelID string, count int64) error
	DeleteByStarMessage(starMessageID string) error
	Delete(boardChannelID, originalMessageID string) error
	ListForOriginal(originalMessageID string) ([]types.StarredMessage, error)
}

// AuditPublisher receives a record of every star message mutation the
// engine commits. Publishing is best effort.
type AuditPublisher interface {
	Publish(values map[string]interface{}) error
}

// Engine reconciles one reaction event against every applicable starboard:
// it recounts qualifying reactors, creates/edits/deletes the star message,
// and commits the outcome to the entry store.
type Engine struct {
	boards  BoardSource
	entries EntryStore
	msgr    Messenger
	audit   AuditPublisher
}

func NewEngine(boards BoardSource, entries EntryStore, msgr Messenger, audit AuditPublisher) *Engine {
	return &Engine{boards: boards, entries: entries, msgr: msgr, audit: audit}
}

// ProcessReactionAdd reconciles a reaction-add event.
func (e *Engine) ProcessReactionAdd(ev ReactionEvent) error {
	return e.reconcile(ev)
}

// ProcessReactionRemove reconciles a reaction-remove event.
func (e *Engine) ProcessReactionRemove(ev ReactionEvent) error {
	return e.reconcile(ev)
}

// ProcessEmojiCleared reconciles a bulk clear of one emoji. The post-clear
// reactor count for that emoji is zero, so this normally drives the delete
// path. There is no single reacting user, so the selfstar guard does not
// apply.
func (e *Engine) ProcessEmojiCleared(ev ReactionEvent) error {
	return e.reconcile(ev)
}

// ProcessReactionsCleared handles a bulk clear of every reaction on a
// message. Counting is bypassed: every recorded entry for the message is
// removed, across all starboards, and each star message is deleted if it
// still exists.
func (e *Engine) ProcessReactionsCleared(ev ReactionEvent) error {
	entries, err := e.entries.ListForOriginal(ev.MessageID)
	if err != nil {
		return err
	}

	var errs []error
	for _, entry := range entries {
		boardChannel := formatID(entry.StarboardChannelID)
		starID := formatID(entry.StarboardMessageID)

		if err := e.msgr.Delete(boardChannel, starID); err != nil {
			log.Printf("starboard: delete star message %s in %s: %v", starID, boardChannel, err)
		}
		if err := e.entries.DeleteByStarMessage(starID); err != nil {
			errs = append(errs, err)
			continue
		}
		e.publish("removed", boardChannel, formatID(entry.OriginalMessageID), starID, 0)
	}
	return errors.Join(errs...)
}

// reconcile runs the shared add/remove/emoji-cleared flow: drop events the
// bot does not handle, re-fetch the reacted message, and process every
// matching board independently.
func (e *Engine) reconcile(ev ReactionEvent) error {
	// Events outside guilds are ignored, as are custom/animated emoji and
	// super reactions.
	if ev.GuildID == "" || ev.Emoji == "" || ev.Custom || ev.Burst {
		return nil
	}

	// Always work from the current message state, never cached fields. A
	// message that is gone drops the whole event.
	msg, err := e.msgr.Message(ev.ChannelID, ev.MessageID)
	if err != nil {
		log.Printf("starboard: fetch reacted message %s: %v", ev.MessageID, err)
		return nil
	}
	if msg.Author == nil {
		return fmt.Errorf("message %s has no author", ev.MessageID)
	}

	boards, err := e.boards.Match(ev.GuildID, ev.Emoji)
	if err != nil {
		return err
	}
	if len(boards) == 0 {
		return nil
	}

	var errs []error
	for _, board := range boards {
		if err := e.reconcileBoard(ev, msg, board); err != nil {
			// An unknown reactor count poisons every board on the event, so
			// counting failures abandon the remaining boards. Edit/delete
			// failures stop only the board they happened on.
			var cerr countError
			if errors.As(err, &cerr) {
				return fmt.Errorf("starboard %d: %w", board.ChannelID, err)
			}
			errs = append(errs, fmt.Errorf("starboard %d: %w", board.ChannelID, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) reconcileBoard(ev ReactionEvent, msg *discordgo.Message, board types.Starboard) error {
	boardChannel := formatID(board.ChannelID)

	// A disabled board skips only itself; other boards on the same emoji
	// still get processed.
	if !board.Enabled {
		log.Printf("starboard: skip react on %s - starboard %s not enabled", ev.MessageID, boardChannel)
		return nil
	}

	// Reactions inside the starboard channel itself never qualify.
	if ev.ChannelID == boardChannel {
		log.Printf("starboard: skip react on %s - inside starboard channel %s", ev.MessageID, boardChannel)
		return nil
	}

	// People reacting to their own message are ignored unless allowed. Bulk
	// clears carry no user and bypass this guard.
	if ev.UserID != "" && ev.UserID == msg.Author.ID && !board.AllowSelfstar {
		log.Printf("starboard: skip react on %s - selfstar not enabled for %s", ev.MessageID, boardChannel)
		return nil
	}

	count, err := CountReactors(e.msgr, ev.ChannelID, ev.MessageID, ev.Emoji,
		reactorFilter(msg.Author.ID, board.AllowSelfstar))
	if err != nil {
		return countError{err}
	}

	entry, err := e.entries.Find(boardChannel, ev.MessageID)
	if err != nil {
		return err
	}

	parts := BuildStarMessage(msg, ev.GuildID, board.Emoji, count, board.Threshold)

	if entry == nil {
		if count < board.Threshold {
			return nil
		}
		return e.create(boardChannel, ev, msg, parts, count)
	}

	starID := formatID(entry.StarboardMessageID)

	// The star message can disappear independently of the bot (manual
	// moderation). That is not an error: drop the stale entry when the
	// count no longer qualifies, or recreate the message when it does.
	if _, err := e.msgr.Message(boardChannel, starID); err != nil {
		if count < board.Threshold {
			if err := e.entries.Delete(boardChannel, ev.MessageID); err != nil {
				return err
			}
			e.publish("removed", boardChannel, ev.MessageID, starID, count)
			return nil
		}
		log.Printf("starboard: star message %s missing from %s, recreating: %v", starID, boardChannel, err)
		return e.create(boardChannel, ev, msg, parts, count)
	}

	if count < board.Threshold {
		if err := e.msgr.Delete(boardChannel, starID); err != nil {
			return fmt.Errorf("delete star message: %w", err)
		}
		if err := e.entries.Delete(boardChannel, ev.MessageID); err != nil {
			return err
		}
		e.publish("removed", boardChannel, ev.MessageID, starID, count)
		return nil
	}

	if err := e.msgr.Edit(boardChannel, starID, parts); err != nil {
		return fmt.Errorf("edit star message: %w", err)
	}
	if err := e.entries.Upsert(boardChannel, ev.MessageID, starID, msg.Author.ID, msg.ChannelID, count); err != nil {
		return err
	}
	e.publish("updated", boardChannel, ev.MessageID, starID, count)
	return nil
}

func (e *Engine) create(boardChannel string, ev ReactionEvent, msg *discordgo.Message, parts MessageParts, count int64) error {
	sent, err := e.msgr.Send(boardChannel, parts)
	if err != nil {
		return fmt.Errorf("send star message: %w", err)
	}
	if err := e.entries.Upsert(boardChannel, ev.MessageID, sent.ID, msg.Author.ID, msg.ChannelID, count); err != nil {
		return err
	}

	e.publish("created", boardChannel, ev.MessageID, sent.ID, count)
	return nil
}

func (e *Engine) publish(action string, boardChannelID, originalMessageID, starMessageID string, count int64) {
	if e.audit == nil {
		return
	}
	err := e.audit.Publish(map[string]interface{}{
		"action":               action,
		"starboard_channel_id": boardChannelID,
		"original_message_id":  originalMessageID,
		"star_message_id":      starMessageID,
		"react_count":          count,
	})
	if err != nil {
		log.Printf("starboard: publish audit event: %v", err)
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
