package shop

import "time"

// ==================== Pot Pricing ====================

const (
	potQuadraticBase  = 5_000
	potLinearStep     = 45_000
	potLinearOffset   = 405_000
	potQuadraticLimit = 10
)

// DefaultPurchaseCooldown mirrors the water cooldown
const DefaultPurchaseCooldown = 15 * time.Minute

const shopLockPrefix = "shop:"

// ==================== Error Messages ====================

const (
	ErrMsgGetUserFailed       = "failed to get user"
	ErrMsgUpdateUserFailed    = "failed to update user"
	ErrMsgGetRosterFailed     = "failed to get shop roster"
	ErrMsgSaveRosterFailed    = "failed to save shop roster"
	ErrMsgCountPlantsFailed   = "failed to count plants"
	ErrMsgCheckNameFailed     = "failed to check plant name"
	ErrMsgInsertPlantFailed   = "failed to insert plant"
	ErrMsgBeginTxFailed       = "failed to begin transaction"
	ErrMsgCommitTxFailed      = "failed to commit transaction"
	ErrMsgAddExperienceFailed = "failed to debit experience"
	ErrMsgInventoryFailed     = "failed to update inventory"
	ErrMsgAchievementFailed   = "failed to increment achievement"
)

// ==================== Log Messages ====================

const (
	LogMsgViewShopCalled      = "ViewShop called"
	LogMsgPurchasePlantCalled = "PurchasePlant called"
	LogMsgPurchaseItemCalled  = "PurchaseItem called"
	LogMsgPurchasePotCalled   = "PurchasePot called"
	LogMsgRefreshShopCalled   = "RefreshShop called"
	LogMsgRosterGenerated     = "Shop roster generated"
	LogMsgRosterRotated       = "Shop roster rotated"
	LogMsgRosterForced        = "Shop roster marked for rotation"
	LogMsgPlantPurchased      = "Plant purchased"
	LogMsgItemPurchased       = "Item purchased"
	LogMsgPotPurchased        = "Plant pot purchased"
	LogMsgRosterUnknownPlant  = "Roster references a plant type missing from the catalog"
	LogMsgPremiumChanged      = "Premium status changed"
	LogMsgPublishFailed       = "Failed to publish event"
)
