package domain

import "time"

// TradeState is a step of the trade protocol
type TradeState string

const (
	TradeStateOffered    TradeState = "offered"
	TradeStateSelecting  TradeState = "selecting"
	TradeStateConfirming TradeState = "confirming"
	TradeStateCommitted  TradeState = "committed"
	TradeStateAborted    TradeState = "aborted"
)

// TradeAbortReason explains why a trade ended without a swap
type TradeAbortReason string

const (
	TradeAbortTimeout       TradeAbortReason = "timeout"
	TradeAbortDeclined      TradeAbortReason = "declined"
	TradeAbortCancelled     TradeAbortReason = "cancelled"
	TradeAbortNoAlivePlants TradeAbortReason = "no_alive_plants"
	TradeAbortNameCollision TradeAbortReason = "name_collision_after_swap"
	TradeAbortPlantGone     TradeAbortReason = "plant_not_alive"
	TradeAbortFailed        TradeAbortReason = "failed"
)

// TradeSide is one participant's view of a trade
type TradeSide struct {
	UserID    int64  `json:"user_id"`
	PlantName string `json:"plant_name,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

// Trade is a snapshot of a trade session
type Trade struct {
	ID          string           `json:"id"`
	State       TradeState       `json:"state"`
	Initiator   TradeSide        `json:"initiator"`
	Recipient   TradeSide        `json:"recipient"`
	Deadline    time.Time        `json:"deadline"`
	AbortReason TradeAbortReason `json:"abort_reason,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// TradeSwap describes the two plant rows exchanged at commit
type TradeSwap struct {
	InitiatorID    int64
	InitiatorPlant string
	RecipientID    int64
	RecipientPlant string
}

// TradeCommitResult is returned once both sides confirmed and the swap committed
type TradeCommitResult struct {
	TradeID       string    `json:"trade_id"`
	InitiatorID   int64     `json:"initiator_id"`
	InitiatorGets UserPlant `json:"initiator_gets"`
	RecipientID   int64     `json:"recipient_id"`
	RecipientGets UserPlant `json:"recipient_gets"`
	CommittedAt   time.Time `json:"committed_at"`
}

// IsParticipant reports whether userID is one of the two parties
func (t Trade) IsParticipant(userID int64) bool {
	return t.Initiator.UserID == userID || t.Recipient.UserID == userID
}

// Side returns userID's side of the trade, or nil for outsiders
func (t *Trade) Side(userID int64) *TradeSide {
	switch userID {
	case t.Initiator.UserID:
		return &t.Initiator
	case t.Recipient.UserID:
		return &t.Recipient
	}
	return nil
}

// Finished reports whether the trade reached a terminal state
func (t Trade) Finished() bool {
	return t.State == TradeStateCommitted || t.State == TradeStateAborted
}
