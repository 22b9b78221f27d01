package event

import (
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

// Garden event types
const (
	PlantWatered   = Type(domain.EventTypePlantWatered)
	PlantPurchased = Type(domain.EventTypePlantPurchased)
	PlantDied      = Type(domain.EventTypePlantDied)
	PlantWilting   = Type(domain.EventTypePlantWilting)
	PlantRevived   = Type(domain.EventTypePlantRevived)
	ItemPurchased  = Type(domain.EventTypeItemPurchased)
	TradeCommitted = Type(domain.EventTypeTradeCommitted)
	TradeAborted   = Type(domain.EventTypeTradeAborted)
)

// PlantWateredPayloadV1 is the typed payload for plant.watered
type PlantWateredPayloadV1 struct {
	UserID           int64  `json:"user_id"`
	OwnerID          int64  `json:"owner_id"`
	PlantID          int64  `json:"plant_id"`
	PlantName        string `json:"plant_name"`
	PlantType        string `json:"plant_type"`
	NewNourishment   int    `json:"new_nourishment"`
	GainedExperience int    `json:"gained_experience"`
	Guest            bool   `json:"guest"`
}

// PlantDiedPayloadV1 is the typed payload for plant.died
type PlantDiedPayloadV1 struct {
	UserID    int64  `json:"user_id"`
	PlantID   int64  `json:"plant_id"`
	PlantName string `json:"plant_name"`
	PlantType string `json:"plant_type"`
}

// PlantWiltingPayloadV1 is the typed payload for plant.wilting
type PlantWiltingPayloadV1 struct {
	UserID    int64     `json:"user_id"`
	PlantID   int64     `json:"plant_id"`
	PlantName string    `json:"plant_name"`
	DiesAt    time.Time `json:"dies_at"`
}

// PlantPurchasedPayloadV1 is the typed payload for plant.purchased
type PlantPurchasedPayloadV1 struct {
	UserID    int64  `json:"user_id"`
	PlantName string `json:"plant_name"`
	PlantType string `json:"plant_type"`
	Price     int    `json:"price"`
}

// PlantRevivedPayloadV1 is the typed payload for plant.revived
type PlantRevivedPayloadV1 struct {
	UserID    int64  `json:"user_id"`
	PlantName string `json:"plant_name"`
}

// ItemPurchasedPayloadV1 is the typed payload for item.purchased
type ItemPurchasedPayloadV1 struct {
	UserID   int64  `json:"user_id"`
	ItemName string `json:"item_name"`
	Price    int    `json:"price"`
}

// TradeCommittedPayloadV1 is the typed payload for trade.committed
type TradeCommittedPayloadV1 struct {
	TradeID        string `json:"trade_id"`
	InitiatorID    int64  `json:"initiator_id"`
	RecipientID    int64  `json:"recipient_id"`
	InitiatorGets  string `json:"initiator_gets"`
	RecipientGets  string `json:"recipient_gets"`
	CommittedAtUTC int64  `json:"committed_at"`
}

// TradeAbortedPayloadV1 is the typed payload for trade.aborted
type TradeAbortedPayloadV1 struct {
	TradeID     string `json:"trade_id"`
	InitiatorID int64  `json:"initiator_id"`
	RecipientID int64  `json:"recipient_id"`
	Reason      string `json:"reason"`
}

func newEvent(t Type, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// NewPlantWateredEvent creates a plant.watered event
func NewPlantWateredEvent(userID int64, plant domain.UserPlant, result domain.WaterResult) Event {
	return newEvent(PlantWatered, PlantWateredPayloadV1{
		UserID:           userID,
		OwnerID:          plant.UserID,
		PlantID:          plant.ID,
		PlantName:        plant.Name,
		PlantType:        plant.PlantType,
		NewNourishment:   result.NewNourishment,
		GainedExperience: result.GainedExperience,
		Guest:            userID != plant.UserID,
	})
}

// NewPlantDiedEvent creates a plant.died event
func NewPlantDiedEvent(dead domain.DeadPlant) Event {
	return newEvent(PlantDied, PlantDiedPayloadV1{
		UserID:    dead.UserID,
		PlantID:   dead.PlantID,
		PlantName: dead.Name,
		PlantType: dead.PlantType,
	})
}

// NewPlantWiltingEvent creates a plant.wilting event
func NewPlantWiltingEvent(plant domain.UserPlant, diesAt time.Time) Event {
	return newEvent(PlantWilting, PlantWiltingPayloadV1{
		UserID:    plant.UserID,
		PlantID:   plant.ID,
		PlantName: plant.Name,
		DiesAt:    diesAt,
	})
}

// NewPlantPurchasedEvent creates a plant.purchased event
func NewPlantPurchasedEvent(userID int64, plantName, plantType string, price int) Event {
	return newEvent(PlantPurchased, PlantPurchasedPayloadV1{
		UserID:    userID,
		PlantName: plantName,
		PlantType: plantType,
		Price:     price,
	})
}

// NewPlantRevivedEvent creates a plant.revived event
func NewPlantRevivedEvent(userID int64, plantName string) Event {
	return newEvent(PlantRevived, PlantRevivedPayloadV1{UserID: userID, PlantName: plantName})
}

// NewItemPurchasedEvent creates an item.purchased event
func NewItemPurchasedEvent(userID int64, itemName string, price int) Event {
	return newEvent(ItemPurchased, ItemPurchasedPayloadV1{UserID: userID, ItemName: itemName, Price: price})
}

// NewTradeCommittedEvent creates a trade.committed event
func NewTradeCommittedEvent(result domain.TradeCommitResult) Event {
	return newEvent(TradeCommitted, TradeCommittedPayloadV1{
		TradeID:        result.TradeID,
		InitiatorID:    result.InitiatorID,
		RecipientID:    result.RecipientID,
		InitiatorGets:  result.InitiatorGets.Name,
		RecipientGets:  result.RecipientGets.Name,
		CommittedAtUTC: result.CommittedAt.Unix(),
	})
}

// NewTradeAbortedEvent creates a trade.aborted event
func NewTradeAbortedEvent(trade domain.Trade) Event {
	return newEvent(TradeAborted, TradeAbortedPayloadV1{
		TradeID:     trade.ID,
		InitiatorID: trade.Initiator.UserID,
		RecipientID: trade.Recipient.UserID,
		Reason:      string(trade.AbortReason),
	})
}
