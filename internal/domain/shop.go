package domain

import "time"

// ShopRoster is the per-user monthly selection of plants: seven name slots,
// the first VisibleRosterLevels of which are offered
type ShopRoster struct {
	UserID            int64                   `json:"user_id"`
	LastShopTimestamp time.Time               `json:"last_shop_timestamp"`
	PlantLevels       [PlantLevelCount]string `json:"plant_levels"`
}

// Contains reports whether the roster offers the named plant at a visible level
func (r ShopRoster) Contains(plantName string) bool {
	for _, name := range r.Visible() {
		if name == plantName {
			return true
		}
	}
	return false
}

// Visible returns the slots that are currently offered
func (r ShopRoster) Visible() []string {
	out := make([]string, 0, VisibleRosterLevels)
	for _, name := range r.PlantLevels[:VisibleRosterLevels] {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Names returns all non-empty slots, including the stored hidden levels
func (r ShopRoster) Names() []string {
	out := make([]string, 0, PlantLevelCount)
	for _, name := range r.PlantLevels {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ShopOffer is one plant shown in the shop
type ShopOffer struct {
	Level int       `json:"level"`
	Plant PlantType `json:"plant"`
	Price int       `json:"price"`
}

// ShopState is everything the shop view needs to render
type ShopState struct {
	User           UserInfo    `json:"user"`
	PlantCount     int         `json:"plant_count"`
	Offers         []ShopOffer `json:"offers"`
	Items          []Item      `json:"items"`
	PotPrice       int         `json:"pot_price"`
	PotPurchasable bool        `json:"pot_purchasable"`
	NextRotation   time.Time   `json:"next_rotation"`
}

// InventoryEntry is an (item, amount) pair
type InventoryEntry struct {
	ItemName string `json:"item_name"`
	Amount   int    `json:"amount"`
}
