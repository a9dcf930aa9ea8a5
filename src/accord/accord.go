package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/accordbot/accord/src/accord/bot"
	"github.com/accordbot/accord/src/accord/components/web"
	"github.com/accordbot/accord/src/accord/data"
	"github.com/accordbot/accord/src/accord/types"
)

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_TOKEN not set")
	}

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		log.Fatal("MYSQL_DSN not set")
	}

	db := data.MustMySQL(dsn)
	if err := db.AutoMigrate(&types.Starboard{}, &types.StarredMessage{}); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rdb = data.MustRedis(redisURL)
	} else {
		log.Println("REDIS_URL not set, audit stream disabled")
	}

	b, err := bot.New(bot.Config{
		Token:   token,
		GuildID: os.Getenv("GUILD_ID"),
		Status:  os.Getenv("BOT_STATUS"),
		DB:      db,
		Redis:   rdb,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	if port := os.Getenv("HTTP_PORT"); port != "" {
		srv := web.New(db)
		go func() {
			if err := srv.Run(":" + port); err != nil {
				log.Printf("web: %v", err)
			}
		}()
	}

	log.Println("Accord is running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
}
