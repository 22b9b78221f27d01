package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/trade"
)

// TradeHandler exposes the trade protocol steps
type TradeHandler struct {
	service trade.Service
}

func NewTradeHandler(service trade.Service) *TradeHandler {
	return &TradeHandler{service: service}
}

// TradeOfferRequest opens a trade between two users
type TradeOfferRequest struct {
	InitiatorID int64 `json:"initiator_id" validate:"required,gt=0"`
	RecipientID int64 `json:"recipient_id" validate:"required,gt=0"`
}

// TradeSelectRequest picks the plant a participant puts up
type TradeSelectRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	PlantName string `json:"plant_name" validate:"required,plantname"`
}

// TradeConfirmResponse carries the trade snapshot and, once both sides
// confirmed, the committed swap
type TradeConfirmResponse struct {
	Trade  *domain.Trade             `json:"trade"`
	Result *domain.TradeCommitResult `json:"result,omitempty"`
}

// HandleOffer opens a trade
// @Summary Offer a trade
// @Tags trade
// @Accept json
// @Produce json
// @Param request body TradeOfferRequest true "Participants"
// @Success 201 {object} domain.Trade
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/trade/offer [post]
func (h *TradeHandler) HandleOffer(w http.ResponseWriter, r *http.Request) {
	var req TradeOfferRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Trade offer"); err != nil {
		return
	}
	t, err := h.service.Offer(r.Context(), req.InitiatorID, req.RecipientID)
	if err != nil {
		respondServiceError(w, r, "Trade offer", err)
		return
	}
	logger.FromContext(r.Context()).Info("Trade offered", "tradeID", t.ID,
		"initiator", req.InitiatorID, "recipient", req.RecipientID)
	respondJSON(w, http.StatusCreated, t)
}

// HandleAccept is the recipient agreeing to trade
// @Summary Accept a trade
// @Tags trade
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body UserRequest true "Participant"
// @Success 200 {object} domain.Trade
// @Router /api/v1/trade/{id}/accept [post]
func (h *TradeHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "Trade accept", h.service.Accept)
}

// HandleDecline is the recipient refusing the trade
// @Summary Decline a trade
// @Tags trade
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body UserRequest true "Participant"
// @Success 200 {object} domain.Trade
// @Router /api/v1/trade/{id}/decline [post]
func (h *TradeHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "Trade decline", h.service.Decline)
}

func (h *TradeHandler) step(w http.ResponseWriter, r *http.Request, opName string,
	op func(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error)) {
	tradeID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}
	t, err := op(r.Context(), tradeID, req.UserID)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// HandleSelect records a participant's plant choice
// @Summary Select a plant for a trade
// @Tags trade
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body TradeSelectRequest true "Selection"
// @Success 200 {object} domain.Trade
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/trade/{id}/select [post]
func (h *TradeHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	tradeID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req TradeSelectRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Trade select"); err != nil {
		return
	}
	t, err := h.service.Select(r.Context(), tradeID, req.UserID, req.PlantName)
	if err != nil {
		respondServiceError(w, r, "Trade select", err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// HandleConfirm records a participant's confirmation; the second one commits
// @Summary Confirm a trade
// @Tags trade
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body UserRequest true "Participant"
// @Success 200 {object} TradeConfirmResponse
// @Failure 408 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/trade/{id}/confirm [post]
func (h *TradeHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	tradeID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Trade confirm"); err != nil {
		return
	}
	t, result, err := h.service.Confirm(r.Context(), tradeID, req.UserID)
	if err != nil {
		respondServiceError(w, r, "Trade confirm", err)
		return
	}
	respondJSON(w, http.StatusOK, TradeConfirmResponse{Trade: t, Result: result})
}

// HandleCancel withdraws from a trade
// @Summary Cancel a trade
// @Tags trade
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param request body UserRequest true "Participant"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/trade/{id}/cancel [post]
func (h *TradeHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	tradeID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Trade cancel"); err != nil {
		return
	}
	if err := h.service.Cancel(r.Context(), tradeID, req.UserID); err != nil {
		respondServiceError(w, r, "Trade cancel", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTradeCancelled})
}

// HandleGet reports a trade's current state
// @Summary Trade status
// @Tags trade
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} domain.Trade
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/trade/{id} [get]
func (h *TradeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tradeID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	t, err := h.service.Get(r.Context(), tradeID)
	if err != nil {
		respondServiceError(w, r, "Trade status", err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}
