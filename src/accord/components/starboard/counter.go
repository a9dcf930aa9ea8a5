package starboard

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord caps reactor listing at 100 per request.
const reactorPageSize = 100

// countError marks a reactor-listing failure. The count applies to the
// original message, not to one board, so a failed count aborts the whole
// event instead of a single pairing.
type countError struct{ err error }

func (e countError) Error() string { return e.err.Error() }
func (e countError) Unwrap() error { return e.err }

// CountReactors pages through every user that reacted with the emoji and
// returns how many satisfy keep. A retrieval error aborts the count; no
// partial total is returned.
func CountReactors(m Messenger, channelID, messageID, emoji string, keep func(*discordgo.User) bool) (int64, error) {
	var total int64
	afterID := ""

	for {
		users, err := m.Reactors(channelID, messageID, emoji, reactorPageSize, afterID)
		if err != nil {
			return 0, fmt.Errorf("list reactors: %w", err)
		}

		for _, u := range users {
			if keep(u) {
				total++
			}
		}

		if len(users) < reactorPageSize {
			return total, nil
		}
		afterID = users[len(users)-1].ID
	}
}

// reactorFilter builds the qualifying-reactor predicate for a board: bots
// never count, and the author only counts when selfstar is allowed.
func reactorFilter(authorID string, allowSelfstar bool) func(*discordgo.User) bool {
	return func(u *discordgo.User) bool {
		return (allowSelfstar || u.ID != authorID) && !u.Bot
	}
}
