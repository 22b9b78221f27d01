package garden

import "time"

// ==================== Experience Multipliers ====================

const (
	FactorPremium    = 2.0
	FactorQuickWater = 1.5
	FactorGuest      = 1.1
	FactorVoted      = 1.1
	FactorMature     = 1.2
	FactorImmortal   = 0.5
)

// floorEpsilon absorbs binary rounding of products that are exact integers
const floorEpsilon = 1e-9

// GardenSeedWindow keeps the garden strip layout stable for a while
const GardenSeedWindow = time.Hour

// ==================== Error Messages ====================

const (
	ErrMsgGetUserFailed       = "failed to get user"
	ErrMsgGetPlantFailed      = "failed to get plant"
	ErrMsgListPlantsFailed    = "failed to list plants"
	ErrMsgCheckKeyFailed      = "failed to check garden key"
	ErrMsgBeginTxFailed       = "failed to begin transaction"
	ErrMsgCommitTxFailed      = "failed to commit transaction"
	ErrMsgSavePlantFailed     = "failed to save plant"
	ErrMsgDeletePlantFailed   = "failed to delete plant"
	ErrMsgAddExperienceFailed = "failed to add experience"
	ErrMsgInventoryFailed     = "failed to update inventory"
	ErrMsgAchievementFailed   = "failed to increment achievement"
	ErrMsgRenderFailed        = "failed to render plant"
	ErrMsgKeyFailed           = "failed to update garden key"
	ErrMsgUnknownRowType      = "stored plant has unknown type"
)

// ==================== Log Messages ====================

const (
	LogMsgWaterCalled       = "Water called"
	LogMsgPlantWatered      = "Plant watered"
	LogMsgRenameCalled      = "Rename called"
	LogMsgPlantRenamed      = "Plant renamed"
	LogMsgDeleteCalled      = "Delete called"
	LogMsgPlantDeleted      = "Plant deleted"
	LogMsgImmortalizeCalled = "Immortalize called"
	LogMsgPlantImmortalized = "Plant immortalized"
	LogMsgReviveCalled      = "Revive called"
	LogMsgPlantRevived      = "Plant revived"
	LogMsgGiveItemCalled    = "GiveItem called"
	LogMsgItemGiven         = "Item given"
	LogMsgKeyGranted        = "Garden key granted"
	LogMsgKeyRevoked        = "Garden key revoked"
	LogMsgUnknownRowType    = "Plant row references a plant type missing from the catalog"
	LogMsgPublishFailed     = "Failed to publish event"
	LogMsgTxFailed          = "Garden transaction failed"
)
