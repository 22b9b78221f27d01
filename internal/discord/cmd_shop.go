package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/shop"
)

const (
	cmdShop        = "shop"
	cmdBuyPlant    = "buy-plant"
	cmdBuyItem     = "buy-item"
	cmdBuyPot      = "buy-pot"
	cmdRefreshShop = "refresh-shop"
)

// ShopCommand shows this month's roster
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdShop,
		Description: "See the plants and items you can buy this month",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
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

		state, err := client.ViewShop(ctx, userID)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		sendEmbed(s, i, shopEmbed(state))
	}

	return cmd, handler
}

func shopEmbed(state *domain.ShopState) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("You have **%d XP** · %d/%d pots used\nNew plants arrive %s",
		state.User.Experience, state.PlantCount, state.User.PlantLimit, discordTimestamp(state.NextRotation))
	embed := createEmbed("🛒 Plant Shop", desc, ColorGarden, "")

	var plants strings.Builder
	for _, offer := range state.Offers {
		fmt.Fprintf(&plants, "**%s** · %d XP\n", offer.Plant.DisplayName, offer.Price)
	}
	if plants.Len() == 0 {
		plants.WriteString("Nothing on offer right now.")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Plants (`/buy-plant`)",
		Value: plants.String(),
	})

	var items strings.Builder
	for _, item := range state.Items {
		fmt.Fprintf(&items, "**%s** · %d XP\n", item.DisplayName, item.Price)
	}
	if state.PotPurchasable {
		fmt.Fprintf(&items, "**Plant pot** · %d XP (`/buy-pot`)\n", state.PotPrice)
	}
	if items.Len() > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Items (`/buy-item`)",
			Value: items.String(),
		})
	}
	return embed
}

// BuyPlantCommand adopts a plant from the roster
func BuyPlantCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdBuyPlant,
		Description: "Adopt a plant from this month's shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optPlant,
				Description:  "Plant to adopt",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optName,
				Description: "Name for your new plant",
				Required:    true,
				MaxLength:   domain.MaxPlantNameLength,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			p, err := client.PurchasePlant(ctx, userID, stringOption(opts, optPlant), stringOption(opts, optName))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Say hello to **%s**! Water it with `/water`.", p.Name), nil
		}, ResponseConfig{
			Title: "🌱 Plant Adopted",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// BuyItemCommand buys one catalog item
func BuyItemCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdBuyItem,
		Description: "Buy an item with experience",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optItem,
				Description:  "Item to buy",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			receipt, err := client.PurchaseItem(ctx, userID, stringOption(opts, optItem))
			if err != nil {
				return "", err
			}
			return formatReceipt(receipt), nil
		}, ResponseConfig{
			Title: "💰 Purchase Complete",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// BuyPotCommand buys one more plant pot
func BuyPotCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdBuyPot,
		Description: "Buy another plant pot",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			receipt, err := client.PurchasePot(ctx, userID)
			if err != nil {
				return "", err
			}
			return formatReceipt(receipt) + fmt.Sprintf("\nYou can now grow **%d** plants.", receipt.PlantLimit), nil
		}, ResponseConfig{
			Title: "🪴 Pot Purchased",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

func formatReceipt(r *shop.Receipt) string {
	return fmt.Sprintf("Bought **%s** for %d XP. You have %d XP left.", r.ItemName, r.Price, r.RemainingExperience)
}

// RefreshShopCommand spends a refresh token on a new roster
func RefreshShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdRefreshShop,
		Description: "Use a shop refresh token to get new plants",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			if err := client.RefreshShop(ctx, userID); err != nil {
				return "", err
			}
			return "Fresh plants are waiting in `/shop`.", nil
		}, ResponseConfig{
			Title: "🔄 Shop Refreshed",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}
