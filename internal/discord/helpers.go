package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// interactionContext bounds the API calls made for one interaction
func interactionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), interactionTimeout)
}

// respondError replaces the deferred response with a plain message.
// Use for system-level errors or when the detailed message would confuse users.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// ResponseConfig defines the visual properties of a command response embed
type ResponseConfig struct {
	Title string
	Color int
}

// handleEmbedResponse encapsulates the common logic of:
// 1. Deferring the response
// 2. Resolving the caller's user ID
// 3. Executing an action (API call)
// 4. Sending a success embed or a friendly error
func handleEmbedResponse(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	action func(ctx context.Context, userID int64) (string, error),
	config ResponseConfig,
) {
	if !deferResponse(s, i) {
		return
	}

	userID, err := interactionUserID(i)
	if err != nil {
		respondError(s, i, MsgGenericError)
		return
	}

	ctx, cancel := interactionContext()
	defer cancel()

	msg, err := action(ctx, userID)
	if err != nil {
		slog.Error(LogMsgActionFailed, "title", config.Title, "error", err)
		respondFriendlyError(s, i, err)
		return
	}

	sendEmbed(s, i, createEmbed(config.Title, msg, config.Color, ""))
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any API call that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// interactionUserID returns the caller's snowflake as a game user ID
func interactionUserID(i *discordgo.InteractionCreate) (int64, error) {
	user := getInteractionUser(i)
	if user == nil {
		return 0, errors.New("interaction has no user")
	}
	return parseUserID(user.ID)
}

// parseUserID converts a Discord snowflake to the game's 64-bit user ID
func parseUserID(snowflake string) (int64, error) {
	id, err := strconv.ParseInt(snowflake, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", snowflake)
	}
	return id, nil
}

// mentionUser renders a user ID as a Discord mention
func mentionUser(userID int64) string {
	return "<@" + strconv.FormatInt(userID, 10) + ">"
}

// getOptions extracts command options from an interaction
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionMap indexes options by name
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

// stringOption returns a string option or "" when absent
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// userOption returns the snowflake of a user option as a game user ID
func userOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	opt, ok := opts[name]
	if !ok {
		return 0, false
	}
	// UserValue(nil) only fills the ID, which is all we need
	u := opt.UserValue(nil)
	if u == nil {
		return 0, false
	}
	id, err := parseUserID(u.ID)
	if err != nil {
		return 0, false
	}
	return id, true
}

// respondFriendlyError formats the error before responding.
// Use for API errors users can understand and act on.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err.Error()))
}

// formatFriendlyError cleans up technical error messages
func formatFriendlyError(msg string) string {
	msg = strings.TrimPrefix(msg, apiErrorPrefix)

	// Containment checks: API messages may carry a wrapped cause
	switch {
	case strings.Contains(msg, domain.ErrMsgOnCooldown):
		// "on cooldown: 4m 3s remaining", possibly behind a more specific cause
		if parts := strings.Split(msg, domain.ErrMsgOnCooldown+": "); len(parts) > 1 {
			remaining := strings.TrimSuffix(parts[len(parts)-1], " remaining")
			if remaining != "" {
				return fmt.Sprintf("%s\nWait for: **%s**", MsgCooldownActive, remaining)
			}
		}
		return MsgCooldownActive
	case strings.Contains(msg, domain.ErrMsgInsufficientExperience):
		return MsgNotEnoughExperience
	case strings.Contains(msg, domain.ErrMsgInsufficientInventory):
		return MsgNotEnoughItems
	case strings.Contains(msg, domain.ErrMsgPlantLimitReached):
		return MsgNoFreePots
	case strings.Contains(msg, domain.ErrMsgPotCapReached):
		return MsgPotCapReached
	case strings.Contains(msg, domain.ErrMsgNotInRoster):
		return MsgNotInRoster
	case strings.Contains(msg, domain.ErrMsgShopNotViewed):
		return MsgShopNotViewed
	case strings.Contains(msg, domain.ErrMsgPlantNotFound):
		return MsgPlantNotFound
	case strings.Contains(msg, domain.ErrMsgPlantIsDead):
		return MsgPlantDead
	case strings.Contains(msg, domain.ErrMsgNameCollisionAfterSwap):
		return "❌ " + msg
	case strings.Contains(msg, domain.ErrMsgNameCollision):
		return MsgNameCollision
	case strings.Contains(msg, domain.ErrMsgNotOriginalOwner):
		return MsgNotOwner
	case strings.Contains(msg, domain.ErrMsgInvalidPlantName):
		return MsgInvalidName
	case strings.Contains(msg, domain.ErrMsgNotAuthorizedGuest):
		return MsgNoKey
	case strings.Contains(msg, domain.ErrMsgUserNotFound):
		return MsgUserNotFound
	case strings.Contains(msg, domain.ErrMsgSelfTarget):
		return MsgSelfTarget
	case strings.Contains(msg, domain.ErrMsgTradeBusy):
		return MsgTradeBusy
	case strings.Contains(msg, domain.ErrMsgNoAlivePlants):
		return MsgNoAlivePlants
	case strings.Contains(msg, domain.ErrMsgTradeNotFound):
		return MsgTradeNotFound
	case strings.Contains(msg, domain.ErrMsgFatal):
		return MsgTemporarilyUnavailable
	default:
		return "❌ " + msg
	}
}

// sendEmbed replaces the deferred response with an embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgResponseFailed, "error", err)
	}
}

// sendImageEmbed replaces the deferred response with an embed showing an
// attached PNG
func sendImageEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, filename string, png []byte) {
	embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + filename}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        filename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	}); err != nil {
		slog.Error(LogMsgResponseFailed, "error", err)
	}
}

// createEmbed creates a standard embed; an empty footer defaults to FooterGardenBot
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterGardenBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}
