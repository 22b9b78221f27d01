package handler

import (
	"net/http"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/garden"
)

// HandleHerbiary lists every visible plant type
// @Summary Herbiary
// @Tags herbiary
// @Produce json
// @Success 200 {array} domain.PlantType
// @Router /api/v1/herbiary [get]
func HandleHerbiary(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plants := svc.Herbiary(r.Context())
		if plants == nil {
			plants = []domain.PlantType{}
		}
		respondJSON(w, http.StatusOK, plants)
	}
}

// HandleHerbiaryEntry returns one catalog entry with its artist credit
// @Summary Herbiary entry
// @Tags herbiary
// @Produce json
// @Param name path string true "Plant type"
// @Success 200 {object} garden.HerbiaryEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/herbiary/{name} [get]
func HandleHerbiaryEntry(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := GetPathParam(r, w, "name")
		if !ok {
			return
		}
		entry, err := svc.HerbiaryEntry(r.Context(), name)
		if err != nil {
			respondServiceError(w, r, "Herbiary entry", err)
			return
		}
		respondJSON(w, http.StatusOK, entry)
	}
}

// HandleHerbiaryImage renders a fully grown preview
// @Summary Herbiary preview
// @Tags herbiary
// @Produce png
// @Param name path string true "Plant type"
// @Success 200 {file} binary
// @Router /api/v1/herbiary/{name}/image [get]
func HandleHerbiaryImage(svc garden.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := GetPathParam(r, w, "name")
		if !ok {
			return
		}
		img, err := svc.HerbiaryImage(r.Context(), name)
		if err != nil {
			respondServiceError(w, r, "Herbiary image", err)
			return
		}
		respondPNG(w, img)
	}
}
