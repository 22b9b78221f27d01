package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Taxonomy classes
	ErrMsgNotFound           = "not found"
	ErrMsgPreconditionFailed = "precondition failed"
	ErrMsgInvalidInput       = "invalid input"
	ErrMsgTimeout            = "timed out"
	ErrMsgConflict           = "conflict"
	ErrMsgExternal           = "external service unavailable"
	ErrMsgFatal              = "temporarily unavailable"

	// Lookup errors
	ErrMsgPlantNotFound = "plant not found"
	ErrMsgUserNotFound  = "user not found"
	ErrMsgItemNotFound  = "item not found"

	// Plant state errors
	ErrMsgPlantIsDead      = "plant is dead"
	ErrMsgPlantNotDead     = "plant is not dead"
	ErrMsgPlantImmortal    = "plant is already immortal"
	ErrMsgPlantNotAlive    = "plant is not alive"
	ErrMsgOnCooldown       = "on cooldown"
	ErrMsgNotOriginalOwner = "only the original owner can rename this plant"

	// Economy errors
	ErrMsgInsufficientExperience = "not enough experience"
	ErrMsgInsufficientInventory  = "not enough items"
	ErrMsgPotCapReached          = "plant pot limit reached"
	ErrMsgPlantLimitReached      = "no free plant pots"
	ErrMsgNotInRoster            = "plant is not in this month's shop"
	ErrMsgPurchaseCooldown       = "plant purchase on cooldown"
	ErrMsgShopNotViewed          = "open the shop before refreshing it"

	// Naming errors
	ErrMsgNameCollision      = "you already have a plant with that name"
	ErrMsgInvalidPlantName   = "invalid plant name"
	ErrMsgUnknownPlantType   = "unknown plant type"
	ErrMsgUnknownItem        = "unknown item"
	ErrMsgSelfTarget         = "cannot target yourself"
	ErrMsgNotAuthorizedGuest = "you do not have a key to this garden"

	// Trade errors
	ErrMsgTradeNotFound          = "trade not found"
	ErrMsgTradeTimeout           = "trade timed out"
	ErrMsgTradeDeclined          = "trade declined"
	ErrMsgTradeBusy              = "already in a trade"
	ErrMsgNotTradeParticipant    = "not a participant of this trade"
	ErrMsgTradeWrongState        = "trade is not expecting that action"
	ErrMsgNoAlivePlants          = "no alive plants to trade"
	ErrMsgNameCollisionAfterSwap = "a traded plant's name collides with one the receiver owns"

	// Asset errors
	ErrMsgSpriteMissing = "sprite missing"

	// Database errors
	ErrMsgTxClosed = "tx is closed"
)

// Error taxonomy. Every specific error below wraps exactly one class so that
// callers can branch on either the cause or the class with errors.Is.
var (
	ErrNotFound           = errors.New(ErrMsgNotFound)
	ErrPreconditionFailed = errors.New(ErrMsgPreconditionFailed)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
	ErrTimeout            = errors.New(ErrMsgTimeout)
	ErrConflict           = errors.New(ErrMsgConflict)
	ErrExternal           = errors.New(ErrMsgExternal)
	ErrFatal              = errors.New(ErrMsgFatal)
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// NotFound
	ErrPlantNotFound = classed(ErrNotFound, ErrMsgPlantNotFound)
	ErrUserNotFound  = classed(ErrNotFound, ErrMsgUserNotFound)
	ErrItemNotFound  = classed(ErrNotFound, ErrMsgItemNotFound)
	ErrTradeNotFound = classed(ErrNotFound, ErrMsgTradeNotFound)

	// PreconditionFailed
	ErrOnCooldown             = classed(ErrPreconditionFailed, ErrMsgOnCooldown)
	ErrPlantIsDead            = classed(ErrPreconditionFailed, ErrMsgPlantIsDead)
	ErrPlantNotDead           = classed(ErrPreconditionFailed, ErrMsgPlantNotDead)
	ErrPlantImmortal          = classed(ErrPreconditionFailed, ErrMsgPlantImmortal)
	ErrPlantNotAlive          = classed(ErrPreconditionFailed, ErrMsgPlantNotAlive)
	ErrNotOriginalOwner       = classed(ErrPreconditionFailed, ErrMsgNotOriginalOwner)
	ErrInsufficientExperience = classed(ErrPreconditionFailed, ErrMsgInsufficientExperience)
	ErrInsufficientInventory  = classed(ErrPreconditionFailed, ErrMsgInsufficientInventory)
	ErrPotCapReached          = classed(ErrPreconditionFailed, ErrMsgPotCapReached)
	ErrPlantLimitReached      = classed(ErrPreconditionFailed, ErrMsgPlantLimitReached)
	ErrNotInRoster            = classed(ErrPreconditionFailed, ErrMsgNotInRoster)
	ErrPurchaseCooldown       = classed(ErrPreconditionFailed, ErrMsgPurchaseCooldown)
	ErrShopNotViewed          = classed(ErrPreconditionFailed, ErrMsgShopNotViewed)
	ErrNameCollision          = classed(ErrPreconditionFailed, ErrMsgNameCollision)
	ErrNotAuthorizedGuest     = classed(ErrPreconditionFailed, ErrMsgNotAuthorizedGuest)
	ErrTradeBusy              = classed(ErrPreconditionFailed, ErrMsgTradeBusy)
	ErrNotTradeParticipant    = classed(ErrPreconditionFailed, ErrMsgNotTradeParticipant)
	ErrTradeWrongState        = classed(ErrPreconditionFailed, ErrMsgTradeWrongState)
	ErrNoAlivePlants          = classed(ErrPreconditionFailed, ErrMsgNoAlivePlants)
	ErrTradeDeclined          = classed(ErrPreconditionFailed, ErrMsgTradeDeclined)

	// InvalidInput
	ErrInvalidPlantName = classed(ErrInvalidInput, ErrMsgInvalidPlantName)
	ErrUnknownPlantType = classed(ErrInvalidInput, ErrMsgUnknownPlantType)
	ErrUnknownItem      = classed(ErrInvalidInput, ErrMsgUnknownItem)
	ErrSelfTarget       = classed(ErrInvalidInput, ErrMsgSelfTarget)

	// Timeout
	ErrTradeTimeout = classed(ErrTimeout, ErrMsgTradeTimeout)

	// Conflict
	ErrNameCollisionAfterSwap = classed(ErrConflict, ErrMsgNameCollisionAfterSwap)

	// Fatal
	ErrSpriteMissing = classed(ErrFatal, ErrMsgSpriteMissing)
)

// classedError is a leaf error that also matches its taxonomy class.
type classedError struct {
	class error
	msg   string
}

func classed(class error, msg string) error {
	return &classedError{class: class, msg: msg}
}

func (e *classedError) Error() string { return e.msg }

func (e *classedError) Unwrap() error { return e.class }

// CooldownError is returned when an action is still on cooldown.
type CooldownError struct {
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("%s: %s remaining", ErrMsgOnCooldown, formatRemaining(e.Remaining))
}

// Is lets errors.Is match both ErrOnCooldown and its class.
func (e CooldownError) Is(target error) bool {
	return target == ErrOnCooldown || target == ErrPreconditionFailed
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
