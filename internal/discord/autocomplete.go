package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

// plantFilter narrows a plant-name autocomplete to plants the command accepts
type plantFilter func(p garden.PlantStatus) bool

func alivePlants(p garden.PlantStatus) bool { return p.State != plant.StateDead }
func deadPlants(p garden.PlantStatus) bool { return p.State == plant.StateDead }
func mortalPlants(p garden.PlantStatus) bool {
	return p.State != plant.StateDead && !p.Immortal
}

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	ctx, cancel := interactionContext()
	defer cancel()

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch data.Name {
	case cmdWater:
		choices = plantChoices(ctx, i, client, optOwner, alivePlants)
	case cmdPlant, cmdRename, cmdDelete:
		choices = plantChoices(ctx, i, client, "", nil)
	case cmdImmortalize:
		choices = plantChoices(ctx, i, client, "", mortalPlants)
	case cmdRevive:
		choices = plantChoices(ctx, i, client, "", deadPlants)
	case cmdBuyPlant:
		choices = shopPlantChoices(ctx, i, client)
	case cmdBuyItem:
		choices = shopItemChoices(ctx, i, client)
	case cmdGive:
		choices = inventoryChoices(ctx, i, client)
	case cmdHerbiary:
		choices = herbiaryChoices(ctx, i, client)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}

	respondAutocomplete(s, i, choices)
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
	}
	return ""
}

// plantChoices lists the plants of the caller, or of the user given in
// ownerOpt when that option is filled
func plantChoices(ctx context.Context, i *discordgo.InteractionCreate, client *APIClient, ownerOpt string, filter plantFilter) []*discordgo.ApplicationCommandOptionChoice {
	userID, err := interactionUserID(i)
	if err != nil {
		return nil
	}
	opts := i.ApplicationCommandData().Options
	if ownerOpt != "" {
		if ownerID, ok := userOption(optionMap(opts), ownerOpt); ok {
			userID = ownerID
		}
	}

	plants, err := client.ListPlants(ctx, userID)
	if err != nil {
		slog.Error(LogMsgAutocompleteFail, "error", err, "user_id", userID)
		return nil
	}

	focused := getFocusedOptionValue(opts)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, p := range plants {
		if filter != nil && !filter(p) {
			continue
		}
		if focused != "" && !strings.Contains(strings.ToLower(p.Name), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%s, %s)", p.Name, p.DisplayName, stateLabel(p.State)),
			Value: p.Name,
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}

func shopPlantChoices(ctx context.Context, i *discordgo.InteractionCreate, client *APIClient) []*discordgo.ApplicationCommandOptionChoice {
	userID, err := interactionUserID(i)
	if err != nil {
		return nil
	}
	state, err := client.ViewShop(ctx, userID)
	if err != nil {
		slog.Error(LogMsgAutocompleteFail, "error", err, "user_id", userID)
		return nil
	}

	focused := getFocusedOptionValue(i.ApplicationCommandData().Options)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, offer := range state.Offers {
		if focused != "" && !strings.Contains(strings.ToLower(offer.Plant.DisplayName), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%d XP)", offer.Plant.DisplayName, offer.Price),
			Value: offer.Plant.Name,
		})
	}
	return choices
}

func shopItemChoices(ctx context.Context, i *discordgo.InteractionCreate, client *APIClient) []*discordgo.ApplicationCommandOptionChoice {
	userID, err := interactionUserID(i)
	if err != nil {
		return nil
	}
	state, err := client.ViewShop(ctx, userID)
	if err != nil {
		slog.Error(LogMsgAutocompleteFail, "error", err, "user_id", userID)
		return nil
	}

	focused := getFocusedOptionValue(i.ApplicationCommandData().Options)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, item := range state.Items {
		if focused != "" && !strings.Contains(strings.ToLower(item.DisplayName), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%d XP)", item.DisplayName, item.Price),
			Value: item.Name,
		})
	}
	return choices
}

func inventoryChoices(ctx context.Context, i *discordgo.InteractionCreate, client *APIClient) []*discordgo.ApplicationCommandOptionChoice {
	userID, err := interactionUserID(i)
	if err != nil {
		return nil
	}
	items, err := client.Inventory(ctx, userID)
	if err != nil {
		slog.Error(LogMsgAutocompleteFail, "error", err, "user_id", userID)
		return nil
	}

	focused := getFocusedOptionValue(i.ApplicationCommandData().Options)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, item := range items {
		if item.Amount <= 0 {
			continue
		}
		if focused != "" && !strings.Contains(strings.ToLower(item.ItemName), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (x%d)", item.ItemName, item.Amount),
			Value: item.ItemName,
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}

func herbiaryChoices(ctx context.Context, i *discordgo.InteractionCreate, client *APIClient) []*discordgo.ApplicationCommandOptionChoice {
	plants, err := client.Herbiary(ctx)
	if err != nil {
		slog.Error(LogMsgAutocompleteFail, "error", err)
		return nil
	}

	focused := getFocusedOptionValue(i.ApplicationCommandData().Options)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, p := range plants {
		if focused != "" && !strings.Contains(strings.ToLower(p.DisplayName), focused) &&
			!strings.Contains(p.Name, focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  p.DisplayName,
			Value: p.Name,
		})
		if len(choices) >= maxAutocompleteChoices {
			break
		}
	}
	return choices
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
