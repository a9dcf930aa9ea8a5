package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/accordbot/accord/src/accord/types"
)

// New builds the read-only status webserver: a health probe plus a view of
// the configured starboards and how many messages each has collected.
func New(db *gorm.DB) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, db)
	return g
}

func attachRoutes(g *gin.Engine, db *gorm.DB) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g.GET("/starboards", func(c *gin.Context) {
		var boards []types.Starboard
		if err := db.Find(&boards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load starboards"})
			return
		}

		out := make([]gin.H, 0, len(boards))
		for _, b := range boards {
			var entries int64
			if err := db.Model(&types.StarredMessage{}).
				Where("starboard_channel_id = ?", b.ChannelID).
				Count(&entries).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count entries"})
				return
			}
			out = append(out, gin.H{
				"channel_id":     b.ChannelID,
				"guild_id":       b.GuildID,
				"enabled":        b.Enabled,
				"emoji":          b.Emoji,
				"threshold":      b.Threshold,
				"allow_selfstar": b.AllowSelfstar,
				"entries":        entries,
			})
		}
		c.JSON(http.StatusOK, gin.H{"starboards": out})
	})
}
