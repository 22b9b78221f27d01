package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// WaterRequest waters owner_id's plant; owner_id defaults to user_id
type WaterRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	OwnerID   int64  `json:"owner_id,omitempty" validate:"omitempty,gt=0"`
	PlantName string `json:"plant_name" validate:"required,plantname"`
}

// HandleWater waters a plant
// @Summary Water a plant
// @Description Waters one of the user's plants, or a plant in a garden the user holds a key to
// @Tags plants
// @Accept json
// @Produce json
// @Param request body WaterRequest true "Watering details"
// @Success 200 {object} domain.WaterResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/plants/water [post]
func HandleWater(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WaterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Water"); err != nil {
			return
		}
		ownerID := req.OwnerID
		if ownerID == 0 {
			ownerID = req.UserID
		}

		ctx := logger.WithUserID(r.Context(), req.UserID)
		result, err := svc.Water(ctx, req.UserID, ownerID, req.PlantName)
		if err != nil {
			respondServiceError(w, r, "Water", err)
			return
		}

		logger.FromContext(ctx).Info("Plant watered",
			"owner", ownerID,
			"plant", result.PlantName,
			"nourishment", result.NewNourishment,
			"gained", result.GainedExperience)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleListPlants lists a user's plants with their state
// @Summary List plants
// @Tags plants
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} garden.PlantStatus
// @Router /api/v1/plants [get]
func HandleListPlants(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		plants, err := svc.ListPlants(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List plants", err)
			return
		}
		if plants == nil {
			plants = []garden.PlantStatus{}
		}
		respondJSON(w, http.StatusOK, plants)
	}
}

// HandlePlantImage renders one plant
// @Summary Render a plant
// @Tags plants
// @Produce png
// @Param user_id query int true "User ID"
// @Param plant_name query string true "Plant name"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plants/image [get]
func HandlePlantImage(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		name, ok := GetQueryParam(r, w, "plant_name")
		if !ok {
			return
		}
		img, err := svc.DisplayPlant(r.Context(), userID, name)
		if err != nil {
			respondServiceError(w, r, "Display plant", err)
			return
		}
		respondPNG(w, img)
	}
}

// HandleGardenImage renders every plant a user owns as one tiled image
// @Summary Render a garden
// @Tags plants
// @Produce png
// @Param user_id query int true "User ID"
// @Success 200 {file} binary
// @Router /api/v1/garden/image [get]
func HandleGardenImage(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		img, err := svc.DisplayGarden(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Display garden", err)
			return
		}
		respondPNG(w, img)
	}
}

// RenameRequest renames one of the user's plants
type RenameRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	PlantName string `json:"plant_name" validate:"required,plantname"`
	NewName   string `json:"new_name" validate:"required,plantname"`
}

// HandleRename renames a plant
// @Summary Rename a plant
// @Description Only the plant's original owner may rename it
// @Tags plants
// @Accept json
// @Produce json
// @Param request body RenameRequest true "Rename details"
// @Success 200 {object} domain.UserPlant
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plants/rename [post]
func HandleRename(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RenameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Rename"); err != nil {
			return
		}
		p, err := svc.Rename(r.Context(), req.UserID, req.PlantName, req.NewName)
		if err != nil {
			respondServiceError(w, r, "Rename", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// HandleDelete deletes a plant
// @Summary Delete a plant
// @Tags plants
// @Accept json
// @Produce json
// @Param request body PlantRequest true "Plant"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plants/delete [post]
func HandleDelete(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Delete"); err != nil {
			return
		}
		if err := svc.Delete(r.Context(), req.UserID, req.PlantName); err != nil {
			respondServiceError(w, r, "Delete", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPlantDeleted})
	}
}

// HandleImmortalize spends an immortal plant juice
// @Summary Immortalize a plant
// @Tags plants
// @Accept json
// @Produce json
// @Param request body PlantRequest true "Plant"
// @Success 200 {object} domain.UserPlant
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plants/immortalize [post]
func HandleImmortalize(svc garden.Service) http.HandlerFunc {
	return plantAction(svc.Immortalize, "Immortalize")
}

// HandleRevive spends a revival token on a dead plant
// @Summary Revive a plant
// @Tags plants
// @Accept json
// @Produce json
// @Param request body PlantRequest true "Plant"
// @Success 200 {object} domain.UserPlant
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plants/revive [post]
func HandleRevive(svc garden.Service) http.HandlerFunc {
	return plantAction(svc.Revive, "Revive")
}

type plantOp func(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error)

func plantAction(op plantOp, opName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlantRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}
		p, err := op(r.Context(), req.UserID, req.PlantName)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

// GiveItemRequest hands one item to another user
type GiveItemRequest struct {
	FromID   int64  `json:"from_id" validate:"required,gt=0"`
	ToID     int64  `json:"to_id" validate:"required,gt=0"`
	ItemName string `json:"item_name" validate:"required,max=64"`
}

// HandleGiveItem moves one item between inventories
// @Summary Give an item
// @Tags items
// @Accept json
// @Produce json
// @Param request body GiveItemRequest true "Gift"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/items/give [post]
func HandleGiveItem(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GiveItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Give item"); err != nil {
			return
		}
		if err := svc.GiveItem(r.Context(), req.FromID, req.ToID, req.ItemName); err != nil {
			respondServiceError(w, r, "Give item", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemGiven})
	}
}

// HandleInventory lists a user's items
// @Summary Inventory
// @Tags items
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} domain.InventoryEntry
// @Router /api/v1/inventory [get]
func HandleInventory(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		items, err := svc.Inventory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Inventory", err)
			return
		}
		if items == nil {
			items = []domain.InventoryEntry{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleAchievements returns a user's counters
// @Summary Achievements
// @Tags achievements
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} domain.Achievements
// @Router /api/v1/achievements [get]
func HandleAchievements(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		a, err := svc.Achievements(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Achievements", err)
			return
		}
		respondJSON(w, http.StatusOK, a)
	}
}
