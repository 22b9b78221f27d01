package discord

import (
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenBot_Go/internal/handler"
)

func TestCommandsEqual(t *testing.T) {
	keys, _ := KeysCommand()
	water, _ := WaterCommand()

	assert.True(t, commandsEqual(
		[]*discordgo.ApplicationCommand{water, keys},
		[]*discordgo.ApplicationCommand{keys, water},
	))
	assert.False(t, commandsEqual(
		[]*discordgo.ApplicationCommand{water},
		[]*discordgo.ApplicationCommand{water, keys},
	))

	t.Run("subcommand option change is detected", func(t *testing.T) {
		changed, _ := KeysCommand()
		changed.Options[0].Options[0].Description = "Someone else"
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{keys},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("autocomplete flag change is detected", func(t *testing.T) {
		changed, _ := WaterCommand()
		changed.Options[0].Autocomplete = !changed.Options[0].Autocomplete
		assert.False(t, commandEqual(water, changed))
	})
}

func TestSplitCustomID(t *testing.T) {
	prefix, arg := splitCustomID(customID(CustomIDTradeSelect, "abc:42"))
	assert.Equal(t, CustomIDTradeSelect, prefix)
	assert.Equal(t, "abc:42", arg)

	prefix, arg = splitCustomID("bare")
	assert.Equal(t, "bare", prefix)
	assert.Empty(t, arg)
}

func TestRegistry_RoutesComponents(t *testing.T) {
	ctx := SetupTestContext(t)
	registry := NewCommandRegistry()

	var gotArg string
	registry.RegisterComponent(CustomIDTradeAccept, func(_ *discordgo.Session, _ *discordgo.InteractionCreate, _ *APIClient, arg string) {
		gotArg = arg
	})

	before := commandCounter.Load()
	registry.Handle(ctx.Session, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: customID(CustomIDTradeAccept, "trade-1")},
		},
	}, ctx.APIClient)

	assert.Equal(t, "trade-1", gotArg)
	assert.Equal(t, before+1, commandCounter.Load())

	// Unknown prefixes are ignored
	registry.Handle(ctx.Session, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: "nope:1"},
		},
	}, ctx.APIClient)
	assert.Equal(t, before+1, commandCounter.Load())
}

func TestKeysCommand_List(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handle := KeysCommand()

	ctx.Mux.HandleFunc("/api/v1/keys", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, testUserID, r.URL.Query().Get("owner_id"))
		WriteJSON(w, handler.KeysResponse{Guests: []int64{42}})
	})

	edit := ctx.DiscordMocks.captureEdit(t)
	handle(ctx.Session, commandInteraction(cmd.Name, &discordgo.ApplicationCommandInteractionDataOption{
		Name: subKeysList,
		Type: discordgo.ApplicationCommandOptionSubCommand,
	}), ctx.APIClient)

	require.NotNil(t, edit.Embeds)
	require.Len(t, *edit.Embeds, 1)
	embed := (*edit.Embeds)[0]
	assert.Equal(t, "🔑 Garden Keys", embed.Title)
	assert.Contains(t, embed.Description, "<@42>")
}

func TestWaterCommand_Cooldown(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handle := WaterCommand()

	ctx.Mux.HandleFunc("/api/v1/plants/water", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(handler.HeaderRetryAfter, "60")
		w.Header().Set("Content-Type", handler.ContentTypeJSON)
		w.WriteHeader(http.StatusTooManyRequests)
		WriteJSON(w, handler.ErrorResponse{Error: "on cooldown: 1m 0s remaining", RetryAfterSeconds: 60})
	})

	edit := ctx.DiscordMocks.captureEdit(t)
	handle(ctx.Session, commandInteraction(cmd.Name, &discordgo.ApplicationCommandInteractionDataOption{
		Name:  optPlant,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: "Fern",
	}), ctx.APIClient)

	require.NotNil(t, edit.Content)
	assert.Contains(t, *edit.Content, MsgCooldownActive)
	assert.Contains(t, *edit.Content, "1m 0s")
}
