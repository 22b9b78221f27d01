package handler

import (
	"net/http"

	"github.com/osse101/GardenBot_Go/internal/garden"
)

// KeyRequest grants or revokes guest access to a garden
type KeyRequest struct {
	OwnerID int64 `json:"owner_id" validate:"required,gt=0"`
	GuestID int64 `json:"guest_id" validate:"required,gt=0,nefield=OwnerID"`
}

// KeysResponse lists the guests holding a key
type KeysResponse struct {
	OwnerID int64   `json:"owner_id"`
	Guests  []int64 `json:"guests"`
}

// HandleGiveKey lets guest_id water owner_id's plants
// @Summary Give a garden key
// @Tags keys
// @Accept json
// @Produce json
// @Param request body KeyRequest true "Key"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/keys/give [post]
func HandleGiveKey(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req KeyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Give key"); err != nil {
			return
		}
		if err := svc.GiveKey(r.Context(), req.OwnerID, req.GuestID); err != nil {
			respondServiceError(w, r, "Give key", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgKeyGiven})
	}
}

// HandleRevokeKey removes a guest's access
// @Summary Revoke a garden key
// @Tags keys
// @Accept json
// @Produce json
// @Param request body KeyRequest true "Key"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/keys/revoke [post]
func HandleRevokeKey(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req KeyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Revoke key"); err != nil {
			return
		}
		if err := svc.RevokeKey(r.Context(), req.OwnerID, req.GuestID); err != nil {
			respondServiceError(w, r, "Revoke key", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgKeyRevoked})
	}
}

// HandleListKeys lists who holds a key to owner_id's garden
// @Summary List garden keys
// @Tags keys
// @Produce json
// @Param owner_id query int true "Owner ID"
// @Success 200 {object} KeysResponse
// @Router /api/v1/keys [get]
func HandleListKeys(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := GetIDQueryParam(r, w, "owner_id")
		if !ok {
			return
		}
		guests, err := svc.ListKeys(r.Context(), ownerID)
		if err != nil {
			respondServiceError(w, r, "List keys", err)
			return
		}
		if guests == nil {
			guests = []int64{}
		}
		respondJSON(w, http.StatusOK, KeysResponse{OwnerID: ownerID, Guests: guests})
	}
}
