package discord

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/plant"
)

func newTestTrade(state domain.TradeState) *domain.Trade {
	return &domain.Trade{
		ID:        "t1",
		State:     state,
		Initiator: domain.TradeSide{UserID: 1},
		Recipient: domain.TradeSide{UserID: 2},
		Deadline:  time.Unix(1700000000, 0),
	}
}

// customIDs flattens the custom IDs of every component in rows
func customIDs(t *testing.T, rows []discordgo.MessageComponent) []string {
	t.Helper()
	var ids []string
	for _, row := range rows {
		r, ok := row.(discordgo.ActionsRow)
		require.True(t, ok)
		for _, c := range r.Components {
			switch v := c.(type) {
			case discordgo.Button:
				ids = append(ids, v.CustomID)
			case discordgo.SelectMenu:
				ids = append(ids, v.CustomID)
			}
		}
	}
	return ids
}

func TestTradeView(t *testing.T) {
	t.Run("offered shows accept and decline", func(t *testing.T) {
		embed, rows := tradeView(newTestTrade(domain.TradeStateOffered), nil)
		assert.Contains(t, embed.Description, "<@1>")
		assert.Equal(t, []string{"trade_accept:t1", "trade_decline:t1"}, customIDs(t, rows))
	})

	t.Run("selecting shows a select per unchosen side", func(t *testing.T) {
		tr := newTestTrade(domain.TradeStateSelecting)
		tr.Initiator.PlantName = "Fern"
		_, rows := tradeView(tr, map[int64][]string{2: {"Rose", "Tulip"}})
		assert.Equal(t, []string{"trade_select:t1:2", "trade_cancel:t1"}, customIDs(t, rows))

		menu := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
		assert.Len(t, menu.Options, 2)
		assert.Contains(t, menu.Placeholder, "To")
	})

	t.Run("selecting without choices only offers cancel", func(t *testing.T) {
		_, rows := tradeView(newTestTrade(domain.TradeStateSelecting), nil)
		assert.Equal(t, []string{"trade_cancel:t1"}, customIDs(t, rows))
	})

	t.Run("confirming shows confirm and cancel", func(t *testing.T) {
		tr := newTestTrade(domain.TradeStateConfirming)
		tr.Initiator.PlantName, tr.Recipient.PlantName = "Fern", "Rose"
		tr.Initiator.Confirmed = true
		embed, rows := tradeView(tr, nil)
		assert.Equal(t, []string{"trade_confirm:t1", "trade_cancel:t1"}, customIDs(t, rows))
		assert.Contains(t, embed.Fields[0].Value, "✅")
	})

	t.Run("aborted has no components", func(t *testing.T) {
		tr := newTestTrade(domain.TradeStateAborted)
		tr.AbortReason = domain.TradeAbortTimeout
		embed, rows := tradeView(tr, nil)
		assert.Empty(t, rows)
		assert.Equal(t, ColorNeutral, embed.Color)
	})
}

func TestPlantSelect_CapsOptions(t *testing.T) {
	names := make([]string, maxSelectOptions+5)
	for i := range names {
		names[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	menu, ok := plantSelect("t1", 1, "From", names)
	require.True(t, ok)
	assert.Len(t, menu.Options, maxSelectOptions)

	_, ok = plantSelect("t1", 1, "From", nil)
	assert.False(t, ok)
}

func TestTradablePlants_SkipsDead(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.Mux.HandleFunc("/api/v1/plants", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, []garden.PlantStatus{
			{UserPlant: domain.UserPlant{Name: "Fern"}, State: plant.StateGrowing},
			{UserPlant: domain.UserPlant{Name: "Husk"}, State: plant.StateDead},
			{UserPlant: domain.UserPlant{Name: "Rose"}, State: plant.StateWilting},
		})
	})

	names, err := tradablePlants(context.Background(), ctx.APIClient, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fern", "Rose"}, names)
}
