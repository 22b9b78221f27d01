package discord

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

const cmdTrade = "trade"

// TradeCommand opens a plant trade with another user. The remaining steps
// run through the buttons and selects on the trade message.
func TradeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdTrade,
		Description: "Offer to swap a plant with someone",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optUser,
				Description: "Who to trade with",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		initiatorID, err := interactionUserID(i)
		if err != nil {
			respondError(s, i, MsgGenericError)
			return
		}
		recipientID, ok := userOption(optionMap(getOptions(i)), optUser)
		if !ok {
			respondError(s, i, MsgUserNotFound)
			return
		}

		ctx, cancel := interactionContext()
		defer cancel()

		t, err := client.TradeOffer(ctx, initiatorID, recipientID)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		embed, components := tradeView(t, nil)
		editTradeMessage(s, i, embed, components)
	}

	return cmd, handler
}

// RegisterTradeComponents wires the trade buttons and selects
func RegisterTradeComponents(r *CommandRegistry) {
	r.RegisterComponent(CustomIDTradeAccept, handleTradeAccept)
	r.RegisterComponent(CustomIDTradeDecline, handleTradeDecline)
	r.RegisterComponent(CustomIDTradeSelect, handleTradeSelect)
	r.RegisterComponent(CustomIDTradeConfirm, handleTradeConfirm)
	r.RegisterComponent(CustomIDTradeCancel, handleTradeCancel)
}

func handleTradeAccept(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, tradeID string) {
	runTradeStep(s, i, client, func(ctx context.Context, userID int64) (*domain.Trade, error) {
		return client.TradeAccept(ctx, tradeID, userID)
	})
}

func handleTradeDecline(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, tradeID string) {
	runTradeStep(s, i, client, func(ctx context.Context, userID int64) (*domain.Trade, error) {
		return client.TradeDecline(ctx, tradeID, userID)
	})
}

// handleTradeSelect's arg is "<trade id>:<user id>"; each participant has
// their own select listing only their plants
func handleTradeSelect(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, arg string) {
	tradeID, owner, _ := strings.Cut(arg, customIDSeparator)
	values := i.MessageComponentData().Values
	runTradeStep(s, i, client, func(ctx context.Context, userID int64) (*domain.Trade, error) {
		if strconv.FormatInt(userID, 10) != owner {
			return nil, &APIError{StatusCode: http.StatusForbidden, Message: domain.ErrMsgNotTradeParticipant}
		}
		if len(values) == 0 {
			return client.GetTrade(ctx, tradeID)
		}
		return client.TradeSelect(ctx, tradeID, userID, values[0])
	})
}

func handleTradeConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, tradeID string) {
	if !deferComponentUpdate(s, i) {
		return
	}
	userID, err := interactionUserID(i)
	if err != nil {
		followupError(s, i, MsgGenericError)
		return
	}

	ctx, cancel := interactionContext()
	defer cancel()

	resp, err := client.TradeConfirm(ctx, tradeID, userID)
	if err != nil {
		followupError(s, i, formatFriendlyError(err.Error()))
		return
	}
	if resp.Result != nil {
		editTradeMessage(s, i, tradeCommittedEmbed(resp.Result), nil)
		return
	}
	embed, components := tradeView(resp.Trade, nil)
	editTradeMessage(s, i, embed, components)
}

func handleTradeCancel(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, tradeID string) {
	if !deferComponentUpdate(s, i) {
		return
	}
	userID, err := interactionUserID(i)
	if err != nil {
		followupError(s, i, MsgGenericError)
		return
	}

	ctx, cancel := interactionContext()
	defer cancel()

	if err := client.TradeCancel(ctx, tradeID, userID); err != nil {
		followupError(s, i, formatFriendlyError(err.Error()))
		return
	}
	embed := createEmbed("🔁 Trade Cancelled", mentionUser(userID)+" cancelled the trade.", ColorNeutral, FooterTrade)
	editTradeMessage(s, i, embed, nil)
}

// runTradeStep performs one protocol step and redraws the trade message,
// loading both gardens when the plant selects are needed
func runTradeStep(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient,
	step func(ctx context.Context, userID int64) (*domain.Trade, error)) {
	if !deferComponentUpdate(s, i) {
		return
	}
	userID, err := interactionUserID(i)
	if err != nil {
		followupError(s, i, MsgGenericError)
		return
	}

	ctx, cancel := interactionContext()
	defer cancel()

	t, err := step(ctx, userID)
	if err != nil {
		followupError(s, i, formatFriendlyError(err.Error()))
		return
	}

	var choices map[int64][]string
	if t.State == domain.TradeStateSelecting {
		choices = make(map[int64][]string, 2)
		for _, side := range []domain.TradeSide{t.Initiator, t.Recipient} {
			if side.PlantName != "" {
				continue
			}
			names, err := tradablePlants(ctx, client, side.UserID)
			if err != nil {
				slog.Error(LogMsgActionFailed, "title", "trade plants", "error", err)
				continue
			}
			choices[side.UserID] = names
		}
	}

	embed, components := tradeView(t, choices)
	editTradeMessage(s, i, embed, components)
}

func tradablePlants(ctx context.Context, client *APIClient, userID int64) ([]string, error) {
	plants, err := client.ListPlants(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(plants))
	for _, p := range plants {
		if p.State != plant.StateDead {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// tradeView renders a trade snapshot as an embed plus the components for
// its next step. choices holds each still-choosing participant's plants.
func tradeView(t *domain.Trade, choices map[int64][]string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	initiator, recipient := mentionUser(t.Initiator.UserID), mentionUser(t.Recipient.UserID)
	embed := createEmbed("🔁 Plant Trade", "", ColorTrade, FooterTrade)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "From", Value: sideSummary(initiator, t.Initiator), Inline: true},
		{Name: "To", Value: sideSummary(recipient, t.Recipient), Inline: true},
	}

	cancelButton := discordgo.Button{
		Label:    "Cancel",
		Style:    discordgo.SecondaryButton,
		CustomID: customID(CustomIDTradeCancel, t.ID),
	}

	switch t.State {
	case domain.TradeStateOffered:
		embed.Description = fmt.Sprintf("%s wants to trade plants with %s.\nExpires %s",
			initiator, recipient, discordTimestamp(t.Deadline))
		return embed, []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Accept", Style: discordgo.SuccessButton, CustomID: customID(CustomIDTradeAccept, t.ID)},
				discordgo.Button{Label: "Decline", Style: discordgo.DangerButton, CustomID: customID(CustomIDTradeDecline, t.ID)},
			}},
		}

	case domain.TradeStateSelecting:
		embed.Description = fmt.Sprintf("Both of you pick a plant to swap.\nExpires %s", discordTimestamp(t.Deadline))
		var rows []discordgo.MessageComponent
		for _, side := range []struct {
			domain.TradeSide
			label string
		}{{t.Initiator, "From"}, {t.Recipient, "To"}} {
			if side.PlantName != "" {
				continue
			}
			if menu, ok := plantSelect(t.ID, side.UserID, side.label, choices[side.UserID]); ok {
				rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}})
			}
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{cancelButton}})
		return embed, rows

	case domain.TradeStateConfirming:
		embed.Description = fmt.Sprintf("Both plants are chosen. Confirm to swap.\nExpires %s", discordTimestamp(t.Deadline))
		return embed, []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Confirm", Style: discordgo.SuccessButton, CustomID: customID(CustomIDTradeConfirm, t.ID)},
				cancelButton,
			}},
		}

	case domain.TradeStateAborted:
		embed.Color = ColorNeutral
		embed.Description = "This trade ended without a swap: " + abortReasonLabel(t.AbortReason)
		return embed, nil

	default:
		embed.Description = "This trade is complete."
		return embed, nil
	}
}

func plantSelect(tradeID string, userID int64, label string, names []string) (discordgo.SelectMenu, bool) {
	if len(names) == 0 {
		return discordgo.SelectMenu{}, false
	}
	if len(names) > maxSelectOptions {
		names = names[:maxSelectOptions]
	}
	options := make([]discordgo.SelectMenuOption, 0, len(names))
	for _, n := range names {
		options = append(options, discordgo.SelectMenuOption{Label: n, Value: n})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customID(CustomIDTradeSelect, tradeID+customIDSeparator+strconv.FormatInt(userID, 10)),
		Placeholder: "Pick a plant (" + label + ")",
		Options:     options,
	}, true
}

func sideSummary(mention string, side domain.TradeSide) string {
	plantName := "_choosing…_"
	if side.PlantName != "" {
		plantName = "**" + side.PlantName + "**"
	}
	status := ""
	if side.Confirmed {
		status = " ✅"
	}
	return mention + "\n" + plantName + status
}

func abortReasonLabel(r domain.TradeAbortReason) string {
	switch r {
	case domain.TradeAbortTimeout:
		return "it timed out."
	case domain.TradeAbortDeclined:
		return "the offer was declined."
	case domain.TradeAbortCancelled:
		return "it was cancelled."
	case domain.TradeAbortNoAlivePlants:
		return "someone has no living plant to trade."
	case domain.TradeAbortNameCollision:
		return "a swapped plant's name clashed with one the receiver owns."
	case domain.TradeAbortPlantGone:
		return "a chosen plant is no longer alive."
	default:
		return "something went wrong."
	}
}

func tradeCommittedEmbed(r *domain.TradeCommitResult) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("%s received **%s**.\n%s received **%s**.",
		mentionUser(r.InitiatorID), r.InitiatorGets.Name,
		mentionUser(r.RecipientID), r.RecipientGets.Name)
	return createEmbed("🤝 Trade Complete", desc, ColorSuccess, FooterTrade)
}

// deferComponentUpdate acknowledges a component click; the trade message is
// edited afterwards
func deferComponentUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

func editTradeMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}); err != nil {
		slog.Error(LogMsgResponseFailed, "error", err)
	}
}

// followupError tells only the clicking user what went wrong
func followupError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		slog.Error(LogMsgResponseFailed, "error", err)
	}
}
