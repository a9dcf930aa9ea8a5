package settings

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/accordbot/accord/src/accord/data"
)

const CommandStarboard = "starboard"

const (
	subCreate        = "create"
	subDelete        = "delete"
	subEnable        = "enable"
	subThreshold     = "threshold"
	subEmoji         = "emoji"
	subAllowSelfstar = "allow-selfstar"
)

var manageChannels int64 = discordgo.PermissionManageChannels

var commandDefinition = &discordgo.ApplicationCommand{
	Name:                     CommandStarboard,
	Description:              "Configure starboards for this server",
	DefaultMemberPermissions: &manageChannels,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subCreate,
			Description: "Create a new starboard",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("channel", "The channel to create the starboard in"),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "threshold",
					Description: "The amount of reactions needed to post to the starboard",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "The emoji to use as the 'star'",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "allow-selfstar",
					Description: "Count users reacting to their own messages",
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subDelete,
			Description: "Delete a starboard and all of its recorded messages",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("starboard", "The starboard to delete"),
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subEnable,
			Description: "Enable or disable a starboard",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("starboard", "The starboard to configure"),
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether or not to enable the starboard",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subThreshold,
			Description: "Change the trigger threshold for a starboard",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("starboard", "The starboard to configure"),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "threshold",
					Description: "The amount of reactions needed to post in the starboard",
					Required:    true,
					MinValue:    float64Ptr(1),
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subEmoji,
			Description: "Change the 'star' emoji for a starboard",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("starboard", "The starboard to configure"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "The new emoji to use as the 'star'",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        subAllowSelfstar,
			Description: "Change the selfstar setting for a starboard",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("starboard", "The starboard to configure"),
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "allow-selfstar",
					Description: "Allow users to 'star' their own messages",
					Required:    true,
				},
			},
		},
	},
}

func channelOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		Required:     true,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

// Register registers the /starboard command. With a guild id the command is
// registered for that guild only (fast propagation during development);
// otherwise globally.
func Register(s *discordgo.Session, guildID string) error {
	_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, commandDefinition)
	if err != nil {
		return fmt.Errorf("settings: register %s command: %w", CommandStarboard, err)
	}
	return nil
}

// Handler serves the /starboard configuration subcommands.
type Handler struct {
	Boards *data.BoardStore
}

func NewHandler(boards *data.BoardStore) *Handler {
	return &Handler{Boards: boards}
}

func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	cmd := i.ApplicationCommandData()
	if cmd.Name != CommandStarboard || len(cmd.Options) == 0 {
		return
	}

	if i.GuildID == "" {
		respond(s, i, "This command can only be used in a guild.")
		return
	}

	sub := cmd.Options[0]
	opts := optionMap(sub.Options)

	var reply string
	var err error
	switch sub.Name {
	case subCreate:
		reply, err = h.create(s, i.GuildID, opts)
	case subDelete:
		reply, err = h.delete(s, opts)
	case subEnable:
		reply, err = h.enable(s, opts)
	case subThreshold:
		reply, err = h.threshold(s, opts)
	case subEmoji:
		reply, err = h.emoji(s, opts)
	case subAllowSelfstar:
		reply, err = h.allowSelfstar(s, opts)
	default:
		return
	}

	if err != nil {
		log.Printf("settings: %s %s: %v", CommandStarboard, sub.Name, err)
		reply = "Something went wrong while updating the starboard configuration."
	}
	respond(s, i, reply)
}

func (h *Handler) create(s *discordgo.Session, guildID string, opts optionValues) (string, error) {
	channel := opts.channel(s, "channel")
	if channel == nil {
		return "Missing channel option.", nil
	}

	emoji := opts.str("emoji")
	if !IsUnicodeEmoji(emoji) {
		return "Invalid or unknown emoji. You can only use Discord's default emojis for the starboard.", nil
	}

	existing, err := h.Boards.ForChannel(channel.ID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "A starboard is already configured for that channel! Either remove the starboard or use another channel instead.", nil
	}

	allowSelfstar := opts.boolean("allow-selfstar")
	if err := h.Boards.Create(guildID, channel.ID, emoji, opts.integer("threshold"), allowSelfstar); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully created starboard for <#%s>.", channel.ID), nil
}

func (h *Handler) delete(s *discordgo.Session, opts optionValues) (string, error) {
	channel := opts.channel(s, "starboard")
	if channel == nil {
		return "Missing channel option.", nil
	}

	existing, err := h.Boards.ForChannel(channel.ID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "A starboard does not exist for that channel.", nil
	}

	if err := h.Boards.Delete(channel.ID); err != nil {
		return "", err
	}
	return "The starboard in that channel has been deleted successfully and all recorded messages have been removed from storage.", nil
}

func (h *Handler) enable(s *discordgo.Session, opts optionValues) (string, error) {
	channel := opts.channel(s, "starboard")
	if channel == nil {
		return "Missing channel option.", nil
	}

	existing, err := h.Boards.ForChannel(channel.ID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "A starboard does not exist for that channel.", nil
	}

	enabled := opts.boolean("enabled")
	if err := h.Boards.SetEnabled(channel.ID, enabled); err != nil {
		return "", err
	}
	if enabled {
		return fmt.Sprintf("The starboard in <#%s> has been enabled.", channel.ID), nil
	}
	return fmt.Sprintf("The starboard in <#%s> has been disabled - no new entries will be made.", channel.ID), nil
}

func (h *Handler) threshold(s *discordgo.Session, opts optionValues) (string, error) {
	channel := opts.channel(s, "starboard")
	if channel == nil {
		return "Missing channel option.", nil
	}

	existing, err := h.Boards.ForChannel(channel.ID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "A starboard does not exist for that channel.", nil
	}

	threshold := opts.integer("threshold")
	if threshold < 1 {
		return "The threshold must be at least 1.", nil
	}
	if err := h.Boards.SetThreshold(channel.ID, threshold); err != nil {
		return "", err
	}
	return fmt.Sprintf("Set the amount of reactions needed to post in the starboard to **%d**.", threshold), nil
}

func (h *Handler) emoji(s *discordgo.Session, opts optionValues) (string, error) {
	channel := opts.channel(s, "starboard")
	if channel == nil {
		return "Missing channel option.", nil
	}

	existing, err := h.Boards.ForChannel(channel.ID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "A starboard does not exist for that channel.", nil
	}

	emoji := opts.str("emoji")
	if !IsUnicodeEmoji(emoji) {
		return "Invalid or unknown emoji. You can only use Discord's default emojis for the starboard.", nil
	}
	if err := h.Boards.SetEmoji(channel.ID, emoji); err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated starboard emoji to %s.", emoji), nil
}

func (h *Handler) allowSelfstar(s *discordgo.Session, opts optionValues) (string, error) {
	channel := opts.channel(s, "starboard")
	if channel == nil {
		return "Missing channel option.", nil
	}

	existing, err := h.Boards.ForChannel(channel.ID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "A starboard does not exist for that channel.", nil
	}

	allow := opts.boolean("allow-selfstar")
	if err := h.Boards.SetAllowSelfstar(channel.ID, allow); err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated starboard setting 'allow selfstar' to **%t**.", allow), nil
}

// IsUnicodeEmoji reports whether the string is exactly one Discord-native
// unicode emoji, checked against the unicode emoji catalog. Custom emoji
// syntax (<:name:id>) and plain text are rejected; multi-codepoint
// sequences (skin tones, ZWJ joins) form a single grapheme and are
// accepted.
func IsUnicodeEmoji(s string) bool {
	if s == "" || uniseg.GraphemeClusterCount(s) != 1 {
		return false
	}
	return gomoji.ContainsEmoji(s)
}

type optionValues map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) optionValues {
	m := make(optionValues, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func (v optionValues) channel(s *discordgo.Session, name string) *discordgo.Channel {
	opt, ok := v[name]
	if !ok {
		return nil
	}
	return opt.ChannelValue(s)
}

func (v optionValues) str(name string) string {
	if opt, ok := v[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (v optionValues) integer(name string) int64 {
	if opt, ok := v[name]; ok {
		return opt.IntValue()
	}
	return 0
}

func (v optionValues) boolean(name string) bool {
	if opt, ok := v[name]; ok {
		return opt.BoolValue()
	}
	return false
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("settings: respond to interaction: %v", err)
	}
}
