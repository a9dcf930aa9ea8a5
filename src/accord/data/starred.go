package data

import (
	"errors"
	"fmt"

	"github.com/accordbot/accord/src/accord/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StarStore owns the starred_messages table: the persisted mapping from
// (starboard channel, original message) to the message posted in the
// starboard. The unique composite key is the serialization point for
// concurrent reconciliations of the same pair; the upsert collapses racing
// creates to a single retained starboard message id.
type StarStore struct {
	db *gorm.DB
}

func NewStarStore(db *gorm.DB) *StarStore {
	return &StarStore{db: db}
}

// Find returns the entry for the pair, or nil when none is recorded.
func (s *StarStore) Find(boardChannelID, originalMessageID string) (*types.StarredMessage, error) {
	bid, err := ParseSnowflake(boardChannelID)
	if err != nil {
		return nil, err
	}
	mid, err := ParseSnowflake(originalMessageID)
	if err != nil {
		return nil, err
	}

	var entry types.StarredMessage
	err = s.db.First(&entry, "starboard_channel_id = ? AND original_message_id = ?", bid, mid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find starred entry: %w", err)
	}
	return &entry, nil
}

// Upsert records the entry, overwriting only the starboard message id and
// count when the pair already exists. Author and source channel keep their
// originally recorded values.
func (s *StarStore) Upsert(boardChannelID, originalMessageID, starMessageID, authorID, sourceChannelID string, count int64) error {
	bid, err := ParseSnowflake(boardChannelID)
	if err != nil {
		return err
	}
	mid, err := ParseSnowflake(originalMessageID)
	if err != nil {
		return err
	}
	sid, err := ParseSnowflake(starMessageID)
	if err != nil {
		return err
	}
	aid, err := ParseSnowflake(authorID)
	if err != nil {
		return err
	}
	cid, err := ParseSnowflake(sourceChannelID)
	if err != nil {
		return err
	}

	entry := types.StarredMessage{
		StarboardChannelID:       bid,
		OriginalMessageID:        mid,
		StarboardMessageID:       sid,
		OriginalMessageAuthorID:  aid,
		OriginalMessageChannelID: cid,
		ReactCount:               count,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "starboard_channel_id"},
			{Name: "original_message_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"starboard_message_id", "react_count"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert starred entry: %w", err)
	}
	return nil
}

// DeleteByStarMessage removes the entry by the starboard message id. Used
// when the original row cannot be re-derived from the event alone.
func (s *StarStore) DeleteByStarMessage(starMessageID string) error {
	sid, err := ParseSnowflake(starMessageID)
	if err != nil {
		return err
	}
	if err := s.db.Where("starboard_message_id = ?", sid).Delete(&types.StarredMessage{}).Error; err != nil {
		return fmt.Errorf("delete starred entry: %w", err)
	}
	return nil
}

// Delete removes the entry by its composite key.
func (s *StarStore) Delete(boardChannelID, originalMessageID string) error {
	bid, err := ParseSnowflake(boardChannelID)
	if err != nil {
		return err
	}
	mid, err := ParseSnowflake(originalMessageID)
	if err != nil {
		return err
	}
	err = s.db.Where("starboard_channel_id = ? AND original_message_id = ?", bid, mid).
		Delete(&types.StarredMessage{}).Error
	if err != nil {
		return fmt.Errorf("delete starred entry: %w", err)
	}
	return nil
}

// ListForOriginal returns every entry recorded for the original message,
// across all starboards.
func (s *StarStore) ListForOriginal(originalMessageID string) ([]types.StarredMessage, error) {
	mid, err := ParseSnowflake(originalMessageID)
	if err != nil {
		return nil, err
	}
	var entries []types.StarredMessage
	if err := s.db.Where("original_message_id = ?", mid).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list starred entries: %w", err)
	}
	return entries, nil
}
