package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
)

// messageSender is the part of a discordgo session the notifier needs
type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// SSENotifier posts garden notifications to a Discord channel
type SSENotifier struct {
	session            messageSender
	notificationChanID string
}

// NewSSENotifier creates a new SSE notifier
func NewSSENotifier(session messageSender, notificationChanID string) *SSENotifier {
	return &SSENotifier{
		session:            session,
		notificationChanID: notificationChanID,
	}
}

// RegisterHandlers registers all SSE event handlers with the client
func (n *SSENotifier) RegisterHandlers(client *SSEClient) {
	client.OnEvent(event.PlantWilting, n.handlePlantWilting)
	client.OnEvent(event.PlantDied, n.handlePlantDied)
	client.OnEvent(event.TradeCommitted, n.handleTradeCommitted)
	client.OnEvent(event.TradeAborted, n.handleTradeAborted)
}

func (n *SSENotifier) handlePlantWilting(evt SSEEvent) error {
	var payload event.PlantWiltingPayloadV1
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", evt.Type)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "🍂 A plant is wilting!",
		Description: fmt.Sprintf("%s, **%s** is thirsty and will die %s unless someone waters it.",
			mentionUser(payload.UserID), payload.PlantName, discordTimestamp(payload.DiesAt)),
		Color: ColorWarning,
	}
	return n.send(evt, embed, payload.UserID)
}

func (n *SSENotifier) handlePlantDied(evt SSEEvent) error {
	var payload event.PlantDiedPayloadV1
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", evt.Type)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "🥀 A plant has died",
		Description: fmt.Sprintf("%s, **%s** went too long without water. A revival token can bring it back with `/revive`.",
			mentionUser(payload.UserID), payload.PlantName),
		Color: ColorDanger,
	}
	return n.send(evt, embed, payload.UserID)
}

func (n *SSENotifier) handleTradeCommitted(evt SSEEvent) error {
	var payload event.TradeCommittedPayloadV1
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", evt.Type)
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "🤝 Trade complete",
		Description: fmt.Sprintf("%s received **%s**.\n%s received **%s**.",
			mentionUser(payload.InitiatorID), payload.InitiatorGets,
			mentionUser(payload.RecipientID), payload.RecipientGets),
		Color: ColorSuccess,
	}
	return n.send(evt, embed, payload.InitiatorID, payload.RecipientID)
}

func (n *SSENotifier) handleTradeAborted(evt SSEEvent) error {
	var payload event.TradeAbortedPayloadV1
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "event_type", evt.Type)
		return nil
	}

	reason := domain.TradeAbortReason(payload.Reason)
	// The participant who declined or cancelled already saw it on the trade message
	if reason == domain.TradeAbortDeclined || reason == domain.TradeAbortCancelled {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title: "🔁 Trade ended",
		Description: fmt.Sprintf("The trade between %s and %s ended without a swap: %s",
			mentionUser(payload.InitiatorID), mentionUser(payload.RecipientID), abortReasonLabel(reason)),
		Color: ColorNeutral,
	}
	return n.send(evt, embed, payload.InitiatorID, payload.RecipientID)
}

// send posts embed and pings the users it concerns
func (n *SSENotifier) send(evt SSEEvent, embed *discordgo.MessageEmbed, userIDs ...int64) error {
	if n.notificationChanID == "" {
		return nil
	}

	embed.Footer = &discordgo.MessageEmbedFooter{Text: FooterGardenBot}
	embed.Timestamp = time.Now().Format(time.RFC3339)
	if evt.Timestamp > 0 {
		embed.Timestamp = time.Unix(evt.Timestamp, 0).UTC().Format(time.RFC3339)
	}

	users := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		users = append(users, fmt.Sprint(id))
	}

	_, err := n.session.ChannelMessageSendComplex(n.notificationChanID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{Users: users},
	})
	if err != nil {
		slog.Error(sseLogMsgNotificationError, "error", err, "event_type", evt.Type)
		return err
	}

	slog.Info(sseLogMsgNotificationSent, "event_type", evt.Type, "event_id", evt.ID)
	return nil
}
