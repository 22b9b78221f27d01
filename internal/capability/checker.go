// Package capability answers "does this user have premium" and "did this user
// vote recently" against external HTTP APIs. Lookups are bounded by a short
// deadline and any failure degrades to false.
package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/metrics"
)

// Checker looks up capabilities that grant watering bonuses
type Checker interface {
	HasPremium(ctx context.Context, userID int64) bool
	VotedRecently(ctx context.Context, userID int64) bool
	// Refresh drops cached results so the next lookup hits the APIs
	Refresh(ctx context.Context, userID int64)
}

// Config describes the external APIs. An empty URL disables that lookup.
type Config struct {
	PremiumURL string
	VoteURL    string
	VoteToken  string
	Timeout    time.Duration
}

type premiumResponse struct {
	Premium bool `json:"premium"`
}

type voteResponse struct {
	Voted   int        `json:"voted"`
	VotedAt *time.Time `json:"voted_at,omitempty"`
}

type httpChecker struct {
	cfg    Config
	client *http.Client
	cache  Cache
	now    func() time.Time
}

// NewChecker creates a Checker backed by cache
func NewChecker(cfg Config, cache Cache) Checker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cache == nil {
		cache = NewLRUCache(DefaultCacheSize)
	}
	return &httpChecker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  cache,
		now:    time.Now,
	}
}

func (c *httpChecker) HasPremium(ctx context.Context, userID int64) bool {
	if c.cfg.PremiumURL == "" {
		return false
	}
	return c.lookup(ctx, KindPremium, userID, c.fetchPremium)
}

func (c *httpChecker) VotedRecently(ctx context.Context, userID int64) bool {
	if c.cfg.VoteURL == "" {
		return false
	}
	return c.lookup(ctx, KindVote, userID, c.fetchVote)
}

func (c *httpChecker) Refresh(ctx context.Context, userID int64) {
	c.cache.Delete(ctx, KindPremium, userID)
	c.cache.Delete(ctx, KindVote, userID)
	logger.FromContext(ctx).Info(LogMsgRefreshed, "userID", userID)
}

func (c *httpChecker) lookup(ctx context.Context, kind Kind, userID int64, fetch func(context.Context, int64) (bool, error)) bool {
	if v, ok := c.cache.Get(ctx, kind, userID); ok {
		metrics.CapabilityLookups.WithLabelValues(string(kind), metrics.ResultHit).Inc()
		return v
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	v, err := fetch(lookupCtx, userID)
	if err != nil {
		metrics.CapabilityLookups.WithLabelValues(string(kind), metrics.ResultError).Inc()
		logger.FromContext(ctx).Warn(LogMsgLookupFailed,
			"kind", kind, "userID", userID, "error", fmt.Errorf("%w: %v", domain.ErrExternal, err))
		return false
	}

	metrics.CapabilityLookups.WithLabelValues(string(kind), metrics.ResultMiss).Inc()
	c.cache.Set(ctx, kind, userID, v)
	return v
}

func (c *httpChecker) fetchPremium(ctx context.Context, userID int64) (bool, error) {
	var resp premiumResponse
	if err := c.getJSON(ctx, KindPremium, c.cfg.PremiumURL, PremiumQueryUserID, userID, "", &resp); err != nil {
		return false, err
	}
	return resp.Premium, nil
}

// fetchVote reports a vote only when it falls inside the bonus window
func (c *httpChecker) fetchVote(ctx context.Context, userID int64) (bool, error) {
	var resp voteResponse
	if err := c.getJSON(ctx, KindVote, c.cfg.VoteURL, VoteQueryUserID, userID, c.cfg.VoteToken, &resp); err != nil {
		return false, err
	}
	if resp.Voted == 0 {
		return false, nil
	}
	if resp.VotedAt != nil && c.now().Sub(*resp.VotedAt) > domain.VoteBonusWindow {
		return false, nil
	}
	return true, nil
}

func (c *httpChecker) getJSON(ctx context.Context, kind Kind, rawURL, param string, userID int64, token string, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf(ErrMsgBuildRequest, kind, err)
	}
	q := u.Query()
	q.Set(param, strconv.FormatInt(userID, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf(ErrMsgBuildRequest, kind, err)
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(ErrMsgUnexpectedStatus, resp.StatusCode, kind)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(ErrMsgDecodeFailed, kind, err)
	}
	return nil
}
