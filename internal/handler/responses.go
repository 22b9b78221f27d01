package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	// RetryAfterSeconds is set for cooldown rejections
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	// Encode to a pooled buffer first so a failed encode never sends a partial body
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set(HeaderContentType, ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgTemporarilyUnavailable + `"}` + "\n"))
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondPNG writes a rendered image
func respondPNG(w http.ResponseWriter, img []byte) {
	w.Header().Set(HeaderContentType, ContentTypePNG)
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondServiceError logs a service failure and writes the mapped response.
// Expected rejections are logged at debug, everything else at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf(LogMsgServiceFailed, opName), "error", err)
	} else {
		log.Debug(fmt.Sprintf(LogMsgServiceRejected, opName), "error", err, "status", status)
	}

	resp := ErrorResponse{Error: msg}
	var cooldown domain.CooldownError
	if errors.As(err, &cooldown) {
		secs := retryAfterSeconds(cooldown.Remaining)
		w.Header().Set(HeaderRetryAfter, strconv.Itoa(secs))
		resp.RetryAfterSeconds = secs
	}
	respondJSON(w, status, resp)
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// userFacingErrors are the leaf errors whose message is safe to show a user,
// most specific first.
var userFacingErrors = []error{
	domain.ErrPurchaseCooldown,
	domain.ErrPlantNotFound,
	domain.ErrUserNotFound,
	domain.ErrItemNotFound,
	domain.ErrTradeNotFound,
	domain.ErrPlantIsDead,
	domain.ErrPlantNotDead,
	domain.ErrPlantImmortal,
	domain.ErrPlantNotAlive,
	domain.ErrNotOriginalOwner,
	domain.ErrInsufficientExperience,
	domain.ErrInsufficientInventory,
	domain.ErrPotCapReached,
	domain.ErrPlantLimitReached,
	domain.ErrNotInRoster,
	domain.ErrShopNotViewed,
	domain.ErrNameCollision,
	domain.ErrNotAuthorizedGuest,
	domain.ErrTradeBusy,
	domain.ErrNotTradeParticipant,
	domain.ErrTradeWrongState,
	domain.ErrNoAlivePlants,
	domain.ErrTradeDeclined,
	domain.ErrInvalidPlantName,
	domain.ErrUnknownPlantType,
	domain.ErrUnknownItem,
	domain.ErrSelfTarget,
	domain.ErrTradeTimeout,
	domain.ErrNameCollisionAfterSwap,
}

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message a chat front-end can show. Classification goes by taxonomy class;
// anything unclassified is reported as temporarily unavailable.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrOnCooldown):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPreconditionFailed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTimeout):
		status = http.StatusRequestTimeout
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	default:
		return http.StatusInternalServerError, ErrMsgTemporarilyUnavailable
	}

	return status, userMessage(err)
}

func userMessage(err error) string {
	var cooldown domain.CooldownError
	hasCooldown := errors.As(err, &cooldown)

	for _, known := range userFacingErrors {
		if errors.Is(err, known) {
			if hasCooldown {
				return fmt.Sprintf("%s: %s", known.Error(), cooldown.Error())
			}
			return known.Error()
		}
	}
	if hasCooldown {
		return cooldown.Error()
	}
	return err.Error()
}
