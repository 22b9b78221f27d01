package handler

import (
	"net/http"

	"github.com/osse101/GardenBot_Go/internal/capability"
)

// HandleRefreshCapability drops cached premium and vote results for a user,
// e.g. right after they subscribe or vote
// @Summary Refresh capability cache
// @Tags capability
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/capability/refresh [post]
func HandleRefreshCapability(checker capability.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Refresh capability"); err != nil {
			return
		}
		checker.Refresh(r.Context(), req.UserID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCapabilityRefreshed})
	}
}
