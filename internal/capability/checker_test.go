package capability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, calls *atomic.Int32, handler func(r *http.Request) (int, any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		status, body := handler(r)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHasPremium(t *testing.T) {
	var calls atomic.Int32
	srv := jsonServer(t, &calls, func(r *http.Request) (int, any) {
		return http.StatusOK, premiumResponse{Premium: r.URL.Query().Get(PremiumQueryUserID) == "42"}
	})

	c := NewChecker(Config{PremiumURL: srv.URL}, NewLRUCache(16))
	ctx := context.Background()

	assert.True(t, c.HasPremium(ctx, 42))
	assert.False(t, c.HasPremium(ctx, 7))

	// Cached
	assert.True(t, c.HasPremium(ctx, 42))
	assert.Equal(t, int32(2), calls.Load())

	c.Refresh(ctx, 42)
	assert.True(t, c.HasPremium(ctx, 42))
	assert.Equal(t, int32(3), calls.Load())
}

func TestVotedRecently(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		resp voteResponse
		want bool
	}{
		{"not voted", voteResponse{Voted: 0}, false},
		{"voted without timestamp", voteResponse{Voted: 1}, true},
		{"voted inside window", voteResponse{Voted: 1, VotedAt: ptr(now.Add(-11 * time.Hour))}, true},
		{"voted outside window", voteResponse{Voted: 1, VotedAt: ptr(now.Add(-13 * time.Hour))}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := jsonServer(t, &calls, func(r *http.Request) (int, any) {
				if r.Header.Get(HeaderAuthorization) != "secret" {
					return http.StatusUnauthorized, nil
				}
				return http.StatusOK, tt.resp
			})

			c := NewChecker(Config{VoteURL: srv.URL, VoteToken: "secret"}, NewLRUCache(16)).(*httpChecker)
			c.now = func() time.Time { return now }

			assert.Equal(t, tt.want, c.VotedRecently(context.Background(), 1))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestLookup_DegradesToFalse(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		var calls atomic.Int32
		srv := jsonServer(t, &calls, func(*http.Request) (int, any) {
			return http.StatusInternalServerError, nil
		})
		c := NewChecker(Config{PremiumURL: srv.URL}, nil)
		assert.False(t, c.HasPremium(context.Background(), 1))

		// Failures are not cached
		assert.False(t, c.HasPremium(context.Background(), 1))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("timeout", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-block:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() {
			close(block)
			srv.Close()
		})

		c := NewChecker(Config{PremiumURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
		start := time.Now()
		assert.False(t, c.HasPremium(context.Background(), 1))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("unreachable", func(t *testing.T) {
		c := NewChecker(Config{VoteURL: "http://127.0.0.1:1"}, nil)
		assert.False(t, c.VotedRecently(context.Background(), 1))
	})

	t.Run("disabled", func(t *testing.T) {
		c := NewChecker(Config{}, nil)
		assert.False(t, c.HasPremium(context.Background(), 1))
		assert.False(t, c.VotedRecently(context.Background(), 1))
	})
}

func TestLRUCache_KindsAreSeparate(t *testing.T) {
	c := NewLRUCache(4)
	ctx := context.Background()

	c.Set(ctx, KindPremium, 1, true)
	_, ok := c.Get(ctx, KindVote, 1)
	assert.False(t, ok)

	v, ok := c.Get(ctx, KindPremium, 1)
	require.True(t, ok)
	assert.True(t, v)

	c.Delete(ctx, KindPremium, 1)
	_, ok = c.Get(ctx, KindPremium, 1)
	assert.False(t, ok)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "garden:capability:vote:123", redisKey(KindVote, 123))
}

func ptr[T any](v T) *T { return &v }
