package data

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/accordbot/accord/src/accord/types"
	"gorm.io/gorm"
)

// ParseSnowflake converts a Discord snowflake string into the signed 64-bit
// form used for storage keys. Malformed or overflowing ids are surfaced as
// errors rather than truncated.
func ParseSnowflake(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse snowflake %q: %w", id, err)
	}
	return n, nil
}

// BoardStore reads and writes starboard configuration.
type BoardStore struct {
	db *gorm.DB
}

func NewBoardStore(db *gorm.DB) *BoardStore {
	return &BoardStore{db: db}
}

// Match returns every starboard configured for the guild and emoji,
// including disabled ones. Enablement is filtered per board by the engine so
// that disabling mid-flight is observed uniformly.
func (s *BoardStore) Match(guildID, emoji string) ([]types.Starboard, error) {
	gid, err := ParseSnowflake(guildID)
	if err != nil {
		return nil, err
	}

	var boards []types.Starboard
	if err := s.db.Where("guild_id = ? AND emoji = ?", gid, emoji).Find(&boards).Error; err != nil {
		return nil, fmt.Errorf("match starboards: %w", err)
	}
	return boards, nil
}

// ForChannel returns the starboard configured in the channel, or nil.
func (s *BoardStore) ForChannel(channelID string) (*types.Starboard, error) {
	cid, err := ParseSnowflake(channelID)
	if err != nil {
		return nil, err
	}

	var board types.Starboard
	if err := s.db.First(&board, "channel_id = ?", cid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load starboard: %w", err)
	}
	return &board, nil
}

func (s *BoardStore) Create(guildID, channelID, emoji string, threshold int64, allowSelfstar bool) error {
	gid, err := ParseSnowflake(guildID)
	if err != nil {
		return err
	}
	cid, err := ParseSnowflake(channelID)
	if err != nil {
		return err
	}

	board := types.Starboard{
		ChannelID:     cid,
		GuildID:       gid,
		Enabled:       true,
		Emoji:         emoji,
		Threshold:     threshold,
		AllowSelfstar: allowSelfstar,
	}
	if err := s.db.Create(&board).Error; err != nil {
		return fmt.Errorf("create starboard: %w", err)
	}
	return nil
}

// Delete removes the starboard and, cascading, every starred entry recorded
// against it. The star messages themselves are left in place.
func (s *BoardStore) Delete(channelID string) error {
	cid, err := ParseSnowflake(channelID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("starboard_channel_id = ?", cid).Delete(&types.StarredMessage{}).Error; err != nil {
			return fmt.Errorf("delete starred entries: %w", err)
		}
		if err := tx.Delete(&types.Starboard{}, "channel_id = ?", cid).Error; err != nil {
			return fmt.Errorf("delete starboard: %w", err)
		}
		return nil
	})
}

func (s *BoardStore) SetEnabled(channelID string, enabled bool) error {
	return s.updateColumn(channelID, "enabled", enabled)
}

func (s *BoardStore) SetThreshold(channelID string, threshold int64) error {
	return s.updateColumn(channelID, "threshold", threshold)
}

func (s *BoardStore) SetEmoji(channelID, emoji string) error {
	return s.updateColumn(channelID, "emoji", emoji)
}

func (s *BoardStore) SetAllowSelfstar(channelID string, allow bool) error {
	return s.updateColumn(channelID, "allow_selfstar", allow)
}

func (s *BoardStore) updateColumn(channelID, column string, value interface{}) error {
	cid, err := ParseSnowflake(channelID)
	if err != nil {
		return err
	}
	if err := s.db.Model(&types.Starboard{}).Where("channel_id = ?", cid).Update(column, value).Error; err != nil {
		return fmt.Errorf("update starboard %s: %w", column, err)
	}
	return nil
}
