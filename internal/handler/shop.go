package handler

import (
	"net/http"

	"github.com/osse101/GardenBot_Go/internal/shop"
)

// HandleViewShop returns this month's roster and the user's purchasing state
// @Summary View the shop
// @Tags shop
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} domain.ShopState
// @Router /api/v1/shop [get]
func HandleViewShop(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		state, err := svc.ViewShop(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "View shop", err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// PurchasePlantRequest adopts a plant from the roster under a chosen name
type PurchasePlantRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	PlantType string `json:"plant_type" validate:"required,max=64"`
	GivenName string `json:"given_name" validate:"required,plantname"`
}

// HandlePurchasePlant buys a plant
// @Summary Buy a plant
// @Tags shop
// @Accept json
// @Produce json
// @Param request body PurchasePlantRequest true "Purchase"
// @Success 201 {object} domain.UserPlant
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/shop/plant [post]
func HandlePurchasePlant(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchasePlantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase plant"); err != nil {
			return
		}
		p, err := svc.PurchasePlant(r.Context(), req.UserID, req.PlantType, req.GivenName)
		if err != nil {
			respondServiceError(w, r, "Purchase plant", err)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

// PurchaseItemRequest buys one catalog item
type PurchaseItemRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	ItemName string `json:"item_name" validate:"required,max=64"`
}

// HandlePurchaseItem buys an item
// @Summary Buy an item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body PurchaseItemRequest true "Purchase"
// @Success 200 {object} shop.Receipt
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shop/item [post]
func HandlePurchaseItem(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase item"); err != nil {
			return
		}
		receipt, err := svc.PurchaseItem(r.Context(), req.UserID, req.ItemName)
		if err != nil {
			respondServiceError(w, r, "Purchase item", err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}

// HandlePurchasePot buys one more plant pot
// @Summary Buy a plant pot
// @Tags shop
// @Accept json
// @Produce json
// @Param request body UserRequest true "Buyer"
// @Success 200 {object} shop.Receipt
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shop/pot [post]
func HandlePurchasePot(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase pot"); err != nil {
			return
		}
		receipt, err := svc.PurchasePot(r.Context(), req.UserID)
		if err != nil {
			respondServiceError(w, r, "Purchase pot", err)
			return
		}
		respondJSON(w, http.StatusOK, receipt)
	}
}

// HandleRefreshShop spends a refresh token to force a new roster
// @Summary Refresh the shop
// @Tags shop
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shop/refresh [post]
func HandleRefreshShop(svc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Refresh shop"); err != nil {
			return
		}
		if err := svc.RefreshShop(r.Context(), req.UserID); err != nil {
			respondServiceError(w, r, "Refresh shop", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShopRefreshed})
	}
}
