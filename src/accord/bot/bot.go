package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/accordbot/accord/src/accord/components/settings"
	"github.com/accordbot/accord/src/accord/components/starboard"
	"github.com/accordbot/accord/src/accord/data"
)

type Config struct {
	Token string
	// When set, slash commands are registered for this guild only (instant
	// propagation during development). Empty registers them globally.
	GuildID string
	Status  string
	DB      *gorm.DB
	Redis   *redis.Client
}

type Bot struct {
	session  *discordgo.Session
	db       *gorm.DB
	rdb      *redis.Client
	config   Config
	engine   *starboard.Engine
	settings *settings.Handler
}

func New(config Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		session: dg,
		db:      config.DB,
		rdb:     config.Redis,
		config:  config,
	}

	bot.initializeComponents()
	bot.registerHandlers()

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	return bot, nil
}

func (b *Bot) initializeComponents() {
	boards := data.NewBoardStore(b.db)
	entries := data.NewStarStore(b.db)

	var audit starboard.AuditPublisher
	if b.rdb != nil {
		audit = data.StreamPublisher{RDB: b.rdb}
	}

	b.engine = starboard.NewEngine(boards, entries,
		starboard.SessionMessenger{Session: b.session}, audit)
	b.settings = settings.NewHandler(boards)
}

func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleReactionAdd)
	b.session.AddHandler(b.handleReactionRemove)
	b.session.AddHandler(b.handleReactionRemoveAll)
	b.session.AddHandler(b.settings.HandleInteraction)
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("bot: logged in as %s", event.User.Username)

	if err := settings.Register(s, b.config.GuildID); err != nil {
		log.Printf("bot: %v", err)
	}

	if b.config.Status != "" {
		if err := s.UpdateCustomStatus(b.config.Status); err != nil {
			log.Printf("bot: set status: %v", err)
		}
	}
}

// discordgo dispatches each gateway event on its own goroutine, so every
// reaction event below is reconciled as an independent task. Ordering
// between events for the same message is not guaranteed; the entry store's
// unique-key upsert is the serialization point.

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if err := b.engine.ProcessReactionAdd(starboard.FromReactionAdd(r)); err != nil {
		log.Printf("bot: reaction add on %s: %v", r.MessageID, err)
	}
}

func (b *Bot) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if err := b.engine.ProcessReactionRemove(starboard.FromReactionRemove(r)); err != nil {
		log.Printf("bot: reaction remove on %s: %v", r.MessageID, err)
	}
}

func (b *Bot) handleReactionRemoveAll(s *discordgo.Session, r *discordgo.MessageReactionRemoveAll) {
	if err := b.engine.ProcessReactionsCleared(starboard.FromReactionRemoveAll(r)); err != nil {
		log.Printf("bot: reaction clear on %s: %v", r.MessageID, err)
	}
}
