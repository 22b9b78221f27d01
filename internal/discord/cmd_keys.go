package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	cmdKeys       = "keys"
	subKeysGive   = "give"
	subKeysRevoke = "revoke"
	subKeysList   = "list"
)

// KeysCommand manages who may water the caller's garden
func KeysCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	guestOption := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        optUser,
			Description: "Friend",
			Required:    true,
		},
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        cmdKeys,
		Description: "Share your garden with friends",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subKeysGive,
				Description: "Let a friend water your plants",
				Options:     guestOption,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subKeysRevoke,
				Description: "Take a key back",
				Options:     guestOption,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subKeysList,
				Description: "See who holds a key",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		options := getOptions(i)
		if len(options) == 0 {
			return
		}
		sub := options[0]
		opts := optionMap(sub.Options)

		handleEmbedResponse(s, i, func(ctx context.Context, ownerID int64) (string, error) {
			switch sub.Name {
			case subKeysList:
				guests, err := client.ListKeys(ctx, ownerID)
				if err != nil {
					return "", err
				}
				if len(guests) == 0 {
					return "Nobody holds a key to your garden.", nil
				}
				mentions := make([]string, 0, len(guests))
				for _, g := range guests {
					mentions = append(mentions, mentionUser(g))
				}
				return "Key holders: " + strings.Join(mentions, ", "), nil
			case subKeysGive, subKeysRevoke:
				guestID, ok := userOption(opts, optUser)
				if !ok {
					return "", fmt.Errorf("missing required user argument")
				}
				if sub.Name == subKeysGive {
					if err := client.GiveKey(ctx, ownerID, guestID); err != nil {
						return "", err
					}
					return fmt.Sprintf("%s can now water your plants.", mentionUser(guestID)), nil
				}
				if err := client.RevokeKey(ctx, ownerID, guestID); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s no longer has a key.", mentionUser(guestID)), nil
			default:
				return "", fmt.Errorf("unknown subcommand %q", sub.Name)
			}
		}, ResponseConfig{
			Title: "🔑 Garden Keys",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}
