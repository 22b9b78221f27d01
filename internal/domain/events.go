package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "plant.watered")
const (
	// EventTypePlantWatered is published after a successful watering
	EventTypePlantWatered = "plant.watered"

	// EventTypePlantPurchased is published when a plant is adopted from the shop
	EventTypePlantPurchased = "plant.purchased"

	// EventTypePlantDied is published by the lifecycle worker for each killed plant
	EventTypePlantDied = "plant.died"

	// EventTypePlantWilting is published once per plant when death is imminent
	EventTypePlantWilting = "plant.wilting"

	// EventTypePlantRevived is published when a revival token is spent
	EventTypePlantRevived = "plant.revived"

	// EventTypeItemPurchased is published for item and pot purchases
	EventTypeItemPurchased = "item.purchased"

	// EventTypeTradeCommitted is published when a swap commits
	EventTypeTradeCommitted = "trade.committed"

	// EventTypeTradeAborted is published when a trade ends without a swap
	EventTypeTradeAborted = "trade.aborted"
)
