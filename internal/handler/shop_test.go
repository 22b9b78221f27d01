package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/shop"
)

func TestHandleViewShop(t *testing.T) {
	svc := &MockShopService{}
	svc.On("ViewShop", mock.Anything, int64(42)).Return(&domain.ShopState{
		PlantCount: 2,
		Offers: []domain.ShopOffer{
			{Level: 1, Plant: domain.PlantType{Name: "rose"}, Price: 100},
		},
		PotPrice:       5000,
		PotPurchasable: true,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop?user_id=42", nil)
	w := httptest.NewRecorder()
	HandleViewShop(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.ShopState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.PlantCount)
	require.Len(t, got.Offers, 1)
	assert.Equal(t, "rose", got.Offers[0].Plant.Name)
	assert.True(t, got.PotPurchasable)
}

func TestHandlePurchasePlant(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMock      func(*MockShopService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: PurchasePlantRequest{UserID: 42, PlantType: "rose", GivenName: "Rosie"},
			setupMock: func(m *MockShopService) {
				m.On("PurchasePlant", mock.Anything, int64(42), "rose", "Rosie").Return(&domain.UserPlant{ID: 9, Name: "Rosie", PlantType: "rose"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"plant_type":"rose"`,
		},
		{
			name:    "Not in roster",
			reqBody: PurchasePlantRequest{UserID: 42, PlantType: "lily", GivenName: "Lil"},
			setupMock: func(m *MockShopService) {
				m.On("PurchasePlant", mock.Anything, int64(42), "lily", "Lil").Return(nil, domain.ErrNotInRoster)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   domain.ErrMsgNotInRoster,
		},
		{
			name:    "Purchase cooldown",
			reqBody: PurchasePlantRequest{UserID: 42, PlantType: "rose", GivenName: "Rosie"},
			setupMock: func(m *MockShopService) {
				m.On("PurchasePlant", mock.Anything, int64(42), "rose", "Rosie").Return(nil,
					fmt.Errorf("%w: %w", domain.ErrPurchaseCooldown, domain.CooldownError{Remaining: 10 * time.Minute}))
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   domain.ErrMsgPurchaseCooldown,
		},
		{
			name:    "Not enough experience",
			reqBody: PurchasePlantRequest{UserID: 42, PlantType: "rose", GivenName: "Rosie"},
			setupMock: func(m *MockShopService) {
				m.On("PurchasePlant", mock.Anything, int64(42), "rose", "Rosie").Return(nil, domain.ErrInsufficientExperience)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   domain.ErrMsgInsufficientExperience,
		},
		{
			name:           "Missing name",
			reqBody:        PurchasePlantRequest{UserID: 42, PlantType: "rose"},
			setupMock:      func(*MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"given_name"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockShopService{}
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/plant", jsonBody(t, tt.reqBody))
			w := httptest.NewRecorder()
			HandlePurchasePlant(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandlePurchaseItemAndPot(t *testing.T) {
	t.Run("Item", func(t *testing.T) {
		svc := &MockShopService{}
		svc.On("PurchaseItem", mock.Anything, int64(42), "revival_token").Return(&shop.Receipt{
			ItemName: "revival_token", Price: 1000, RemainingExperience: 500,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/", jsonBody(t, PurchaseItemRequest{UserID: 42, ItemName: "revival_token"}))
		w := httptest.NewRecorder()
		HandlePurchaseItem(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"remaining_experience":500`)
	})

	t.Run("Pot cap", func(t *testing.T) {
		svc := &MockShopService{}
		svc.On("PurchasePot", mock.Anything, int64(42)).Return(nil, domain.ErrPotCapReached)

		req := httptest.NewRequest(http.MethodPost, "/", jsonBody(t, UserRequest{UserID: 42}))
		w := httptest.NewRecorder()
		HandlePurchasePot(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrMsgPotCapReached)
	})

	t.Run("Refresh without token", func(t *testing.T) {
		svc := &MockShopService{}
		svc.On("RefreshShop", mock.Anything, int64(42)).Return(domain.ErrInsufficientInventory)

		req := httptest.NewRequest(http.MethodPost, "/", jsonBody(t, UserRequest{UserID: 42}))
		w := httptest.NewRecorder()
		HandleRefreshShop(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Refresh", func(t *testing.T) {
		svc := &MockShopService{}
		svc.On("RefreshShop", mock.Anything, int64(42)).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/", jsonBody(t, UserRequest{UserID: 42}))
		w := httptest.NewRecorder()
		HandleRefreshShop(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgShopRefreshed)
	})
}
