package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

// Command names
const (
	cmdWater       = "water"
	cmdPlants      = "plants"
	cmdPlant       = "plant"
	cmdRename      = "rename"
	cmdDelete      = "delete"
	cmdImmortalize = "immortalize"
	cmdRevive      = "revive"
	cmdGive        = "give"
	cmdHerbiary    = "herbiary"
)

// Option names
const (
	optPlant   = "plant"
	optOwner   = "owner"
	optNewName = "new_name"
	optItem    = "item"
	optUser    = "user"
	optName    = "name"
)

func plantNameOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         optPlant,
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

// WaterCommand returns the water command definition and handler
func WaterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdWater,
		Description: "Water one of your plants, or a friend's if you hold their key",
		Options: []*discordgo.ApplicationCommandOption{
			plantNameOption("Plant to water"),
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optOwner,
				Description: "Whose garden (default: yours)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			ownerID := userID
			if id, ok := userOption(opts, optOwner); ok {
				ownerID = id
			}
			result, err := client.Water(ctx, userID, ownerID, stringOption(opts, optPlant))
			if err != nil {
				return "", err
			}
			return formatWaterResult(result, userID, ownerID), nil
		}, ResponseConfig{
			Title: "💧 Watered!",
			Color: ColorInfo,
		})
	}

	return cmd, handler
}

func formatWaterResult(r *domain.WaterResult, userID, ownerID int64) string {
	var sb strings.Builder
	if userID != ownerID {
		fmt.Fprintf(&sb, "You watered **%s** in %s's garden.\n", r.PlantName, mentionUser(ownerID))
	} else {
		fmt.Fprintf(&sb, "You watered **%s**.\n", r.PlantName)
	}
	fmt.Fprintf(&sb, "Nourishment: **%d**/%d\n", r.NewNourishment, domain.MaxNourishmentLevel)
	fmt.Fprintf(&sb, "Experience: +**%d**", r.GainedExperience)
	if len(r.Multipliers) > 0 {
		parts := make([]string, 0, len(r.Multipliers))
		for _, m := range r.Multipliers {
			parts = append(parts, fmt.Sprintf("%s ×%g", m.Name, m.Factor))
		}
		fmt.Fprintf(&sb, " (base %d; %s)", r.OriginalExperience, strings.Join(parts, ", "))
	}
	return sb.String()
}

// PlantsCommand lists the caller's plants and shows the whole garden
func PlantsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdPlants,
		Description: "Show your garden",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optUser,
				Description: "Whose garden (default: yours)",
				Required:    false,
			},
		},
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
		if id, ok := userOption(optionMap(getOptions(i)), optUser); ok {
			userID = id
		}

		ctx, cancel := interactionContext()
		defer cancel()

		plants, err := client.ListPlants(ctx, userID)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		if len(plants) == 0 {
			respondError(s, i, MsgNoPlantsListed)
			return
		}

		embed := createEmbed("🌻 Garden", mentionUser(userID), ColorGarden, "")
		embed.Fields = plantFields(plants, time.Now())

		img, err := client.GardenImage(ctx, userID)
		if err != nil {
			// The listing is still useful without the picture
			sendEmbed(s, i, embed)
			return
		}
		sendImageEmbed(s, i, embed, attachmentGarden, img)
	}

	return cmd, handler
}

func plantFields(plants []garden.PlantStatus, now time.Time) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, len(plants))
	for _, p := range plants {
		if len(fields) == maxEmbedFields {
			break
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   p.Name,
			Value:  plantSummary(p, now),
			Inline: true,
		})
	}
	return fields
}

func plantSummary(p garden.PlantStatus, now time.Time) string {
	lines := []string{
		p.DisplayName,
		fmt.Sprintf("%s · %d/%d", stateLabel(p.State), max(p.Nourishment, 0), domain.MaxNourishmentLevel),
	}
	switch {
	case p.State == plant.StateDead:
	case !p.NextWaterAt.After(now):
		lines = append(lines, "💧 Thirsty")
	default:
		lines = append(lines, "💧 "+discordTimestamp(p.NextWaterAt))
	}
	if p.DiesAt != nil && p.State == plant.StateWilting {
		lines = append(lines, "⚠️ Dies "+discordTimestamp(*p.DiesAt))
	}
	return strings.Join(lines, "\n")
}

// discordTimestamp renders a relative timestamp in the reader's locale
func discordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}

func stateLabel(s plant.State) string {
	switch s {
	case plant.StateSeeded:
		return "🌰 Seeded"
	case plant.StateGrowing:
		return "🌿 Growing"
	case plant.StateWilting:
		return "🍂 Wilting"
	case plant.StateDead:
		return "🥀 Dead"
	case plant.StateImmortalGrowing:
		return "✨ Immortal"
	default:
		return string(s)
	}
}

// PlantCommand shows one plant's picture and status
func PlantCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdPlant,
		Description: "Look at one of your plants",
		Options: []*discordgo.ApplicationCommandOption{
			plantNameOption("Plant to show"),
		},
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
		name := stringOption(optionMap(getOptions(i)), optPlant)

		ctx, cancel := interactionContext()
		defer cancel()

		plants, err := client.ListPlants(ctx, userID)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		var found *garden.PlantStatus
		for idx := range plants {
			if plants[idx].Name == name {
				found = &plants[idx]
				break
			}
		}
		if found == nil {
			respondError(s, i, MsgPlantNotFound)
			return
		}

		img, err := client.PlantImage(ctx, userID, name)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		embed := createEmbed("🪴 "+found.Name, plantSummary(*found, time.Now()), ColorGarden, "")
		sendImageEmbed(s, i, embed, attachmentPlant, img)
	}

	return cmd, handler
}

// RenameCommand returns the rename command definition and handler
func RenameCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdRename,
		Description: "Give one of your plants a new name",
		Options: []*discordgo.ApplicationCommandOption{
			plantNameOption("Plant to rename"),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optNewName,
				Description: "New name",
				Required:    true,
				MaxLength:   domain.MaxPlantNameLength,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			p, err := client.Rename(ctx, userID, stringOption(opts, optPlant), stringOption(opts, optNewName))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Your plant is now called **%s**.", p.Name), nil
		}, ResponseConfig{
			Title: "📛 Renamed",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// DeleteCommand returns the delete command definition and handler
func DeleteCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdDelete,
		Description: "Compost one of your plants to free its pot",
		Options: []*discordgo.ApplicationCommandOption{
			plantNameOption("Plant to delete"),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			name := stringOption(opts, optPlant)
			if err := client.Delete(ctx, userID, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("**%s** has been removed from your garden.", name), nil
		}, ResponseConfig{
			Title: "🗑️ Plant Deleted",
			Color: ColorNeutral,
		})
	}

	return cmd, handler
}

// ImmortalizeCommand spends an immortal plant juice
func ImmortalizeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdImmortalize,
		Description: "Use an immortal plant juice so a plant never dies",
		Options: []*discordgo.ApplicationCommandOption{
			plantNameOption("Plant to immortalize"),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			p, err := client.Immortalize(ctx, userID, stringOption(opts, optPlant))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("**%s** will never wilt again.", p.Name), nil
		}, ResponseConfig{
			Title: "✨ Immortalized",
			Color: ColorWarning,
		})
	}

	return cmd, handler
}

// ReviveCommand spends a revival token on a dead plant
func ReviveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdRevive,
		Description: "Use a revival token to bring a dead plant back",
		Options: []*discordgo.ApplicationCommandOption{
			plantNameOption("Plant to revive"),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			p, err := client.Revive(ctx, userID, stringOption(opts, optPlant))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("**%s** is back as a seed. Water it soon!", p.Name), nil
		}, ResponseConfig{
			Title: "🌱 Revived",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// GiveCommand hands one item to another user
func GiveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdGive,
		Description: "Give one of your items to someone",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        optUser,
				Description: "Who receives the item",
				Required:    true,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optItem,
				Description:  "Item to give",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		handleEmbedResponse(s, i, func(ctx context.Context, userID int64) (string, error) {
			toID, ok := userOption(opts, optUser)
			if !ok {
				return "", fmt.Errorf("missing required user argument")
			}
			item := stringOption(opts, optItem)
			if err := client.GiveItem(ctx, userID, toID, item); err != nil {
				return "", err
			}
			return fmt.Sprintf("You gave **%s** to %s.", item, mentionUser(toID)), nil
		}, ResponseConfig{
			Title: "🎁 Gift Sent",
			Color: ColorSuccess,
		})
	}

	return cmd, handler
}

// HerbiaryCommand lists the catalog or shows one plant type
func HerbiaryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        cmdHerbiary,
		Description: "Browse every plant in the garden",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         optName,
				Description:  "Plant type to show",
				Required:     false,
				Autocomplete: true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		ctx, cancel := interactionContext()
		defer cancel()

		name := stringOption(optionMap(getOptions(i)), optName)
		if name == "" {
			plants, err := client.Herbiary(ctx)
			if err != nil {
				respondFriendlyError(s, i, err)
				return
			}
			names := make([]string, 0, len(plants))
			for _, p := range plants {
				names = append(names, p.DisplayName)
			}
			sendEmbed(s, i, createEmbed("📖 Herbiary", strings.Join(names, ", "), ColorGarden, ""))
			return
		}

		entry, err := client.HerbiaryEntry(ctx, name)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		embed := createEmbed("📖 "+entry.Plant.DisplayName, herbiaryDescription(entry), ColorGarden, "")

		img, err := client.HerbiaryImage(ctx, name)
		if err != nil {
			sendEmbed(s, i, embed)
			return
		}
		sendImageEmbed(s, i, embed, attachmentHerbiary, img)
	}

	return cmd, handler
}

func herbiaryDescription(e *garden.HerbiaryEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Level %d · needs %d XP\n", e.Plant.PlantLevel, e.Plant.RequiredExperience)
	fmt.Fprintf(&sb, "Gives %d–%d XP per watering", e.Plant.ExperienceGain.Min, e.Plant.ExperienceGain.Max)
	if e.Artist != nil {
		if e.Artist.URL != "" {
			fmt.Fprintf(&sb, "\nArt by [%s](%s)", e.Artist.Name, e.Artist.URL)
		} else {
			fmt.Fprintf(&sb, "\nArt by %s", e.Artist.Name)
		}
	}
	return sb.String()
}
