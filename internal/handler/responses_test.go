package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/GardenBot_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"plant not found", domain.ErrPlantNotFound, http.StatusNotFound, domain.ErrMsgPlantNotFound},
		{"wrapped not found", fmt.Errorf("failed to load plant: %w", domain.ErrPlantNotFound), http.StatusNotFound, domain.ErrMsgPlantNotFound},
		{"cooldown", domain.CooldownError{Remaining: 90 * time.Second}, http.StatusTooManyRequests, "on cooldown: 1m 30s remaining"},
		{
			"purchase cooldown",
			fmt.Errorf("%w: %w", domain.ErrPurchaseCooldown, domain.CooldownError{Remaining: 10 * time.Minute}),
			http.StatusTooManyRequests,
			domain.ErrMsgPurchaseCooldown + ": on cooldown: 10m 0s remaining",
		},
		{"dead plant", domain.ErrPlantIsDead, http.StatusConflict, domain.ErrMsgPlantIsDead},
		{"not enough experience", domain.ErrInsufficientExperience, http.StatusConflict, domain.ErrMsgInsufficientExperience},
		{"invalid name", fmt.Errorf("%w: name is empty", domain.ErrInvalidPlantName), http.StatusBadRequest, domain.ErrMsgInvalidPlantName},
		{"self target", domain.ErrSelfTarget, http.StatusBadRequest, domain.ErrMsgSelfTarget},
		{"trade timeout", domain.ErrTradeTimeout, http.StatusRequestTimeout, domain.ErrMsgTradeTimeout},
		{"swap collision", domain.ErrNameCollisionAfterSwap, http.StatusConflict, domain.ErrMsgNameCollisionAfterSwap},
		{"fatal", fmt.Errorf("%w: unknown row type", domain.ErrFatal), http.StatusInternalServerError, ErrMsgTemporarilyUnavailable},
		{"sprite missing", domain.ErrSpriteMissing, http.StatusInternalServerError, ErrMsgTemporarilyUnavailable},
		{"unclassified", errors.New("connection reset by peer"), http.StatusInternalServerError, ErrMsgTemporarilyUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondServiceError_RetryAfter(t *testing.T) {
	t.Run("cooldown sets header rounded up", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		respondServiceError(w, r, "Water", domain.CooldownError{Remaining: 2500 * time.Millisecond})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "3", w.Header().Get(HeaderRetryAfter))
		assert.Contains(t, w.Body.String(), `"retry_after_seconds":3`)
	})

	t.Run("other errors have no header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)

		respondServiceError(w, r, "Water", domain.ErrPlantIsDead)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Empty(t, w.Header().Get(HeaderRetryAfter))
		assert.NotContains(t, w.Body.String(), "retry_after_seconds")
	})
}

func TestRespondPNG(t *testing.T) {
	w := httptest.NewRecorder()
	respondPNG(w, []byte{0x89, 'P', 'N', 'G'})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentTypePNG, w.Header().Get(HeaderContentType))
	assert.Equal(t, "4", w.Header().Get("Content-Length"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes())
}
