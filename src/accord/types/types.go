package types

import "time"

// Starboards. One per watch channel; the channel id is the key.
type Starboard struct {
	ChannelID     int64  `gorm:"primaryKey;autoIncrement:false"`
	GuildID       int64  `gorm:"index:idx_starboards_guild_emoji;not null"`
	Enabled       bool   `gorm:"default:true"`
	Emoji         string `gorm:"size:32;index:idx_starboards_guild_emoji;not null"`
	Threshold     int64  `gorm:"not null"`
	AllowSelfstar bool   `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Starred messages: links a starboard and an original message to the
// message posted in the starboard channel.
type StarredMessage struct {
	StarboardChannelID       int64 `gorm:"primaryKey;autoIncrement:false"`
	OriginalMessageID        int64 `gorm:"primaryKey;autoIncrement:false"`
	StarboardMessageID       int64 `gorm:"uniqueIndex;not null"`
	OriginalMessageAuthorID  int64
	OriginalMessageChannelID int64
	ReactCount               int64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
