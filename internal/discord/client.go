package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/garden"
	"github.com/osse101/GardenBot_Go/internal/handler"
	"github.com/osse101/GardenBot_Go/internal/shop"
)

// APIClient handles communication with the GardenBot API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	maxRetries int
	retryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: apiRequestTimeout,
		},
		APIKey:     apiKey,
		maxRetries: apiMaxRetries,
		retryDelay: apiRetryDelay,
	}
}

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return apiErrorPrefix + e.Message
}

// doRequest performs an HTTP request. GETs are retried with backoff on
// transport errors and 5xx; writes are sent once.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path
	attempts := 1
	if method == http.MethodGet {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff with jitter
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			slog.Info(LogMsgRetryingRequest, "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < http.StatusInternalServerError || attempt == attempts-1 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn(LogMsgServerErrorRetry, "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do sends the request and decodes a 2xx body into out (when non-nil)
func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// getImage fetches a PNG endpoint
func (c *APIClient) getImage(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// decodeAPIError reads the JSON error body; plain-text bodies (rate limiter,
// auth) are used verbatim
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if secs, err := strconv.Atoi(resp.Header.Get(handler.HeaderRetryAfter)); err == nil {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var errResp handler.ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
		if errResp.RetryAfterSeconds > 0 {
			apiErr.RetryAfter = time.Duration(errResp.RetryAfterSeconds) * time.Second
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("API returned status: %d", resp.StatusCode)
	}
	return apiErr
}

func userQuery(path string, userID int64, extra url.Values) string {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	for k, v := range extra {
		params[k] = v
	}
	return path + "?" + params.Encode()
}

// Healthy reports whether the API answers its liveness check
func (c *APIClient) Healthy(ctx context.Context) bool {
	resp, err := c.doRequest(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Water waters ownerID's plant on behalf of userID
func (c *APIClient) Water(ctx context.Context, userID, ownerID int64, plantName string) (*domain.WaterResult, error) {
	var result domain.WaterResult
	req := handler.WaterRequest{UserID: userID, OwnerID: ownerID, PlantName: plantName}
	if err := c.do(ctx, http.MethodPost, "/api/v1/plants/water", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPlants lists a user's plants with their lifecycle state
func (c *APIClient) ListPlants(ctx context.Context, userID int64) ([]garden.PlantStatus, error) {
	var plants []garden.PlantStatus
	if err := c.do(ctx, http.MethodGet, userQuery("/api/v1/plants", userID, nil), nil, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// PlantImage renders one plant as PNG
func (c *APIClient) PlantImage(ctx context.Context, userID int64, plantName string) ([]byte, error) {
	return c.getImage(ctx, userQuery("/api/v1/plants/image", userID, url.Values{"plant_name": {plantName}}))
}

// GardenImage renders a user's whole garden as PNG
func (c *APIClient) GardenImage(ctx context.Context, userID int64) ([]byte, error) {
	return c.getImage(ctx, userQuery("/api/v1/garden/image", userID, nil))
}

// Rename renames one of the user's plants
func (c *APIClient) Rename(ctx context.Context, userID int64, plantName, newName string) (*domain.UserPlant, error) {
	var p domain.UserPlant
	req := handler.RenameRequest{UserID: userID, PlantName: plantName, NewName: newName}
	if err := c.do(ctx, http.MethodPost, "/api/v1/plants/rename", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes one of the user's plants
func (c *APIClient) Delete(ctx context.Context, userID int64, plantName string) error {
	req := handler.PlantRequest{UserID: userID, PlantName: plantName}
	return c.do(ctx, http.MethodPost, "/api/v1/plants/delete", req, nil)
}

// Immortalize spends an immortal plant juice on a plant
func (c *APIClient) Immortalize(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error) {
	return c.plantAction(ctx, "/api/v1/plants/immortalize", userID, plantName)
}

// Revive spends a revival token on a dead plant
func (c *APIClient) Revive(ctx context.Context, userID int64, plantName string) (*domain.UserPlant, error) {
	return c.plantAction(ctx, "/api/v1/plants/revive", userID, plantName)
}

func (c *APIClient) plantAction(ctx context.Context, path string, userID int64, plantName string) (*domain.UserPlant, error) {
	var p domain.UserPlant
	req := handler.PlantRequest{UserID: userID, PlantName: plantName}
	if err := c.do(ctx, http.MethodPost, path, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GiveItem hands one item to another user
func (c *APIClient) GiveItem(ctx context.Context, fromID, toID int64, itemName string) error {
	req := handler.GiveItemRequest{FromID: fromID, ToID: toID, ItemName: itemName}
	return c.do(ctx, http.MethodPost, "/api/v1/items/give", req, nil)
}

// Inventory lists a user's items
func (c *APIClient) Inventory(ctx context.Context, userID int64) ([]domain.InventoryEntry, error) {
	var items []domain.InventoryEntry
	if err := c.do(ctx, http.MethodGet, userQuery("/api/v1/inventory", userID, nil), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ViewShop returns this month's roster for the user
func (c *APIClient) ViewShop(ctx context.Context, userID int64) (*domain.ShopState, error) {
	var state domain.ShopState
	if err := c.do(ctx, http.MethodGet, userQuery("/api/v1/shop", userID, nil), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// PurchasePlant adopts a plant from the roster
func (c *APIClient) PurchasePlant(ctx context.Context, userID int64, plantType, givenName string) (*domain.UserPlant, error) {
	var p domain.UserPlant
	req := handler.PurchasePlantRequest{UserID: userID, PlantType: plantType, GivenName: givenName}
	if err := c.do(ctx, http.MethodPost, "/api/v1/shop/plant", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PurchaseItem buys one catalog item
func (c *APIClient) PurchaseItem(ctx context.Context, userID int64, itemName string) (*shop.Receipt, error) {
	var receipt shop.Receipt
	req := handler.PurchaseItemRequest{UserID: userID, ItemName: itemName}
	if err := c.do(ctx, http.MethodPost, "/api/v1/shop/item", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// PurchasePot buys another plant pot
func (c *APIClient) PurchasePot(ctx context.Context, userID int64) (*shop.Receipt, error) {
	var receipt shop.Receipt
	if err := c.do(ctx, http.MethodPost, "/api/v1/shop/pot", handler.UserRequest{UserID: userID}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// RefreshShop spends a refresh token to force a new roster
func (c *APIClient) RefreshShop(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodPost, "/api/v1/shop/refresh", handler.UserRequest{UserID: userID}, nil)
}

// Herbiary lists every visible plant type
func (c *APIClient) Herbiary(ctx context.Context) ([]domain.PlantType, error) {
	var plants []domain.PlantType
	if err := c.do(ctx, http.MethodGet, "/api/v1/herbiary", nil, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// HerbiaryEntry returns one plant type with its artist credit
func (c *APIClient) HerbiaryEntry(ctx context.Context, plantName string) (*garden.HerbiaryEntry, error) {
	var entry garden.HerbiaryEntry
	if err := c.do(ctx, http.MethodGet, "/api/v1/herbiary/"+url.PathEscape(plantName), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// HerbiaryImage renders a fully grown preview of a plant type
func (c *APIClient) HerbiaryImage(ctx context.Context, plantName string) ([]byte, error) {
	return c.getImage(ctx, "/api/v1/herbiary/"+url.PathEscape(plantName)+"/image")
}

// GiveKey lets guestID water ownerID's plants
func (c *APIClient) GiveKey(ctx context.Context, ownerID, guestID int64) error {
	return c.do(ctx, http.MethodPost, "/api/v1/keys/give", handler.KeyRequest{OwnerID: ownerID, GuestID: guestID}, nil)
}

// RevokeKey removes a guest's access
func (c *APIClient) RevokeKey(ctx context.Context, ownerID, guestID int64) error {
	return c.do(ctx, http.MethodPost, "/api/v1/keys/revoke", handler.KeyRequest{OwnerID: ownerID, GuestID: guestID}, nil)
}

// ListKeys lists the guests holding a key to ownerID's garden
func (c *APIClient) ListKeys(ctx context.Context, ownerID int64) ([]int64, error) {
	var resp handler.KeysResponse
	path := "/api/v1/keys?" + url.Values{"owner_id": {strconv.FormatInt(ownerID, 10)}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Guests, nil
}

// TradeOffer opens a trade between two users
func (c *APIClient) TradeOffer(ctx context.Context, initiatorID, recipientID int64) (*domain.Trade, error) {
	var t domain.Trade
	req := handler.TradeOfferRequest{InitiatorID: initiatorID, RecipientID: recipientID}
	if err := c.do(ctx, http.MethodPost, "/api/v1/trade/offer", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTrade reports a trade's current state
func (c *APIClient) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	var t domain.Trade
	if err := c.do(ctx, http.MethodGet, tradePath(tradeID, ""), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TradeAccept is the recipient agreeing to trade
func (c *APIClient) TradeAccept(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error) {
	return c.tradeStep(ctx, tradeID, "accept", userID)
}

// TradeDecline is the recipient refusing the trade
func (c *APIClient) TradeDecline(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error) {
	return c.tradeStep(ctx, tradeID, "decline", userID)
}

func (c *APIClient) tradeStep(ctx context.Context, tradeID, step string, userID int64) (*domain.Trade, error) {
	var t domain.Trade
	if err := c.do(ctx, http.MethodPost, tradePath(tradeID, step), handler.UserRequest{UserID: userID}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TradeSelect records the plant a participant puts up
func (c *APIClient) TradeSelect(ctx context.Context, tradeID string, userID int64, plantName string) (*domain.Trade, error) {
	var t domain.Trade
	req := handler.TradeSelectRequest{UserID: userID, PlantName: plantName}
	if err := c.do(ctx, http.MethodPost, tradePath(tradeID, "select"), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TradeConfirm records a confirmation; the second one commits the swap
func (c *APIClient) TradeConfirm(ctx context.Context, tradeID string, userID int64) (*handler.TradeConfirmResponse, error) {
	var resp handler.TradeConfirmResponse
	if err := c.do(ctx, http.MethodPost, tradePath(tradeID, "confirm"), handler.UserRequest{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TradeCancel withdraws from a trade
func (c *APIClient) TradeCancel(ctx context.Context, tradeID string, userID int64) error {
	return c.do(ctx, http.MethodPost, tradePath(tradeID, "cancel"), handler.UserRequest{UserID: userID}, nil)
}

func tradePath(tradeID, step string) string {
	p := "/api/v1/trade/" + url.PathEscape(tradeID)
	if step != "" {
		p += "/" + step
	}
	return p
}
