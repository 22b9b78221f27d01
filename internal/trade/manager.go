// Package trade runs the two-party plant swap protocol. Sessions live in
// memory only; a restart aborts every trade in flight.
package trade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/event"
	"github.com/osse101/GardenBot_Go/internal/logger"
	"github.com/osse101/GardenBot_Go/internal/metrics"
	"github.com/osse101/GardenBot_Go/internal/plant"
	"github.com/osse101/GardenBot_Go/internal/repository"
)

// Service defines the trade protocol. Every call is made by one of the two
// participants; the chat layer relays the steps.
type Service interface {
	Offer(ctx context.Context, initiatorID, recipientID int64) (*domain.Trade, error)
	Accept(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error)
	Decline(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error)
	Select(ctx context.Context, tradeID string, userID int64, plantName string) (*domain.Trade, error)
	// Confirm returns a nil result while the other participant has not confirmed yet
	Confirm(ctx context.Context, tradeID string, userID int64) (*domain.Trade, *domain.TradeCommitResult, error)
	// Cancel ends the trade; cancelling a finished or unknown trade is a no-op
	Cancel(ctx context.Context, tradeID string, userID int64) error
	Get(ctx context.Context, tradeID string) (*domain.Trade, error)
	Shutdown(ctx context.Context) error
}

// Config holds the protocol deadlines
type Config struct {
	AcceptTimeout     time.Duration
	SelectTimeout     time.Duration
	ConfirmTimeout    time.Duration
	FinishedRetention time.Duration
}

// DefaultConfig returns the standard deadlines
func DefaultConfig() Config {
	return Config{
		AcceptTimeout:     DefaultAcceptTimeout,
		SelectTimeout:     DefaultSelectTimeout,
		ConfirmTimeout:    DefaultConfirmTimeout,
		FinishedRetention: DefaultFinishedRetention,
	}
}

type session struct {
	mu    sync.Mutex
	trade domain.Trade
	timer Timer
	gen   uint64
	done  bool
}

// Manager owns every active trade session
type Manager struct {
	repo      repository.Trade
	timings   plant.Timings
	publisher event.Publisher
	clock     Clock
	cfg       Config
	newID     func() string

	mu       sync.Mutex
	sessions map[string]*session
	byUser   map[int64]string
	closed   bool

	finished *lru.Cache[string, finishedTrade]
}

type finishedTrade struct {
	trade domain.Trade
	at    time.Time
}

var _ Service = (*Manager)(nil)

// NewManager creates a trade manager on the system clock
func NewManager(repo repository.Trade, timings plant.Timings, publisher event.Publisher, cfg Config) *Manager {
	return NewManagerWithClock(repo, timings, publisher, cfg, RealClock{})
}

// NewManagerWithClock creates a trade manager driven by clock
func NewManagerWithClock(repo repository.Trade, timings plant.Timings, publisher event.Publisher, cfg Config, clock Clock) *Manager {
	defaults := DefaultConfig()
	if cfg.AcceptTimeout <= 0 {
		cfg.AcceptTimeout = defaults.AcceptTimeout
	}
	if cfg.SelectTimeout <= 0 {
		cfg.SelectTimeout = defaults.SelectTimeout
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = defaults.ConfirmTimeout
	}
	if cfg.FinishedRetention <= 0 {
		cfg.FinishedRetention = defaults.FinishedRetention
	}
	// lru.New only fails for a non-positive size
	finished, _ := lru.New[string, finishedTrade](finishedCacheSize)
	return &Manager{
		repo:      repo,
		timings:   timings,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		newID:     uuid.NewString,
		sessions:  make(map[string]*session),
		byUser:    make(map[int64]string),
		finished:  finished,
	}
}

// Offer opens a trade from initiatorID to recipientID
func (m *Manager) Offer(ctx context.Context, initiatorID, recipientID int64) (*domain.Trade, error) {
	log := logger.FromContext(ctx)

	if initiatorID == recipientID {
		return nil, domain.ErrSelfTarget
	}
	alive, err := m.hasAlivePlant(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, domain.ErrNoAlivePlants
	}

	now := m.clock.Now()
	s := &session{trade: domain.Trade{
		ID:        m.newID(),
		State:     domain.TradeStateOffered,
		Initiator: domain.TradeSide{UserID: initiatorID},
		Recipient: domain.TradeSide{UserID: recipientID},
		CreatedAt: now,
	}}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: trade manager is shutting down", domain.ErrFatal)
	}
	for _, id := range []int64{initiatorID, recipientID} {
		if active, busy := m.byUser[id]; busy {
			m.mu.Unlock()
			return nil, fmt.Errorf("%w: user %d is in trade %s", domain.ErrTradeBusy, id, active)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.sessions[s.trade.ID] = s
	m.byUser[initiatorID] = s.trade.ID
	m.byUser[recipientID] = s.trade.ID
	m.mu.Unlock()

	metrics.ActiveTrades.Inc()
	m.arm(s, m.cfg.AcceptTimeout)

	log.Info(LogMsgTradeOffered, "tradeID", s.trade.ID, "initiatorID", initiatorID, "recipientID", recipientID)
	snap := s.trade
	return &snap, nil
}

// Accept moves an offered trade into plant selection. Both sides need an
// alive plant or the trade aborts.
func (m *Manager) Accept(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error) {
	s, err := m.acquire(tradeID, userID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if s.trade.State != domain.TradeStateOffered {
		return nil, fmt.Errorf("%w: trade is %s", domain.ErrTradeWrongState, s.trade.State)
	}
	if s.trade.Recipient.UserID != userID {
		return nil, fmt.Errorf("%w: only the recipient can accept", domain.ErrTradeWrongState)
	}

	for _, id := range []int64{s.trade.Initiator.UserID, s.trade.Recipient.UserID} {
		alive, err := m.hasAlivePlant(ctx, id)
		if err != nil {
			return nil, err
		}
		if !alive {
			snap := m.abort(ctx, s, domain.TradeAbortNoAlivePlants)
			return snap, domain.ErrNoAlivePlants
		}
	}

	s.trade.State = domain.TradeStateSelecting
	m.arm(s, m.cfg.SelectTimeout)

	logger.FromContext(ctx).Info(LogMsgTradeAccepted, "tradeID", tradeID, "userID", userID)
	snap := s.trade
	return &snap, nil
}

// Decline aborts the trade on behalf of either participant
func (m *Manager) Decline(ctx context.Context, tradeID string, userID int64) (*domain.Trade, error) {
	s, err := m.acquire(tradeID, userID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return m.abort(ctx, s, domain.TradeAbortDeclined), nil
}

// Cancel aborts the trade. Unknown and finished trades are left alone.
func (m *Manager) Cancel(ctx context.Context, tradeID string, userID int64) error {
	s, err := m.acquire(tradeID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotTradeParticipant) {
			return err
		}
		return nil
	}
	defer s.mu.Unlock()
	m.abort(ctx, s, domain.TradeAbortCancelled)
	return nil
}

// Select records the plant userID puts up. A selection may be changed until
// both sides have chosen.
func (m *Manager) Select(ctx context.Context, tradeID string, userID int64, plantName string) (*domain.Trade, error) {
	s, err := m.acquire(tradeID, userID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if s.trade.State != domain.TradeStateSelecting {
		return nil, fmt.Errorf("%w: trade is %s", domain.ErrTradeWrongState, s.trade.State)
	}

	p, err := m.repo.GetPlant(ctx, userID, plantName)
	if err != nil {
		return nil, err
	}
	if !p.IsAlive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlantNotAlive, p.Name)
	}

	s.trade.Side(userID).PlantName = p.Name
	if s.trade.Initiator.PlantName != "" && s.trade.Recipient.PlantName != "" {
		s.trade.State = domain.TradeStateConfirming
		m.arm(s, m.cfg.ConfirmTimeout)
	} else {
		m.arm(s, m.cfg.SelectTimeout)
	}

	logger.FromContext(ctx).Info(LogMsgPlantSelected, "tradeID", tradeID, "userID", userID, "plantName", p.Name)
	snap := s.trade
	return &snap, nil
}

// Confirm records userID's consent. The swap commits once both participants
// have confirmed; a repeated confirmation by the same user changes nothing.
func (m *Manager) Confirm(ctx context.Context, tradeID string, userID int64) (*domain.Trade, *domain.TradeCommitResult, error) {
	log := logger.FromContext(ctx)

	s, err := m.acquire(tradeID, userID)
	if err != nil {
		return nil, nil, err
	}
	defer s.mu.Unlock()

	if s.trade.State != domain.TradeStateConfirming {
		return nil, nil, fmt.Errorf("%w: trade is %s", domain.ErrTradeWrongState, s.trade.State)
	}

	side := s.trade.Side(userID)
	if side.Confirmed {
		snap := s.trade
		return &snap, nil, nil
	}
	side.Confirmed = true
	log.Info(LogMsgTradeConfirmed, "tradeID", tradeID, "userID", userID)

	if !s.trade.Initiator.Confirmed || !s.trade.Recipient.Confirmed {
		m.arm(s, m.cfg.ConfirmTimeout)
		snap := s.trade
		return &snap, nil, nil
	}

	result, err := m.commit(ctx, s.trade)
	if err != nil {
		log.Warn(LogMsgCommitFailed, "tradeID", tradeID, "error", err)
		return m.abort(ctx, s, abortReason(err)), nil, err
	}

	snap := m.finish(s, domain.TradeStateCommitted, "")
	log.Info(LogMsgTradeCommitted, "tradeID", tradeID,
		"initiatorGets", result.InitiatorGets.Name, "recipientGets", result.RecipientGets.Name)
	m.publish(ctx, event.NewTradeCommittedEvent(*result))
	return snap, result, nil
}

// Get returns an active or recently finished trade
func (m *Manager) Get(_ context.Context, tradeID string) (*domain.Trade, error) {
	m.mu.Lock()
	s, ok := m.sessions[tradeID]
	m.mu.Unlock()
	if ok {
		s.mu.Lock()
		snap := s.trade
		s.mu.Unlock()
		return &snap, nil
	}
	if t, ok := m.lookupFinished(tradeID); ok {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTradeNotFound, tradeID)
}

// Shutdown aborts every active trade and stops its timer
func (m *Manager) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShuttingDown)

	m.mu.Lock()
	m.closed = true
	active := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		active = append(active, s)
	}
	m.mu.Unlock()

	for _, s := range active {
		s.mu.Lock()
		if !s.done {
			m.abort(ctx, s, domain.TradeAbortCancelled)
		}
		s.mu.Unlock()
	}
	return nil
}

// acquire returns the locked session for a participant
func (m *Manager) acquire(tradeID string, userID int64) (*session, error) {
	m.mu.Lock()
	s, ok := m.sessions[tradeID]
	m.mu.Unlock()
	if !ok {
		return nil, m.missing(tradeID, userID)
	}

	s.mu.Lock()
	if !s.trade.IsParticipant(userID) {
		s.mu.Unlock()
		return nil, domain.ErrNotTradeParticipant
	}
	if s.done {
		s.mu.Unlock()
		return nil, m.missing(tradeID, userID)
	}
	return s, nil
}

// missing explains why tradeID has no active session
func (m *Manager) missing(tradeID string, userID int64) error {
	t, ok := m.lookupFinished(tradeID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrTradeNotFound, tradeID)
	}
	if !t.IsParticipant(userID) {
		return domain.ErrNotTradeParticipant
	}
	switch t.AbortReason {
	case domain.TradeAbortTimeout:
		return domain.ErrTradeTimeout
	case domain.TradeAbortDeclined:
		return domain.ErrTradeDeclined
	}
	return fmt.Errorf("%w: trade is %s", domain.ErrTradeWrongState, t.State)
}

// arm replaces the session deadline. Callers hold s.mu.
func (m *Manager) arm(s *session, d time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.trade.Deadline = m.clock.Now().Add(d)
	s.timer = m.clock.AfterFunc(d, func() { m.expire(s, gen) })
}

func (m *Manager) expire(s *session, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done || s.gen != gen {
		return
	}
	ctx := context.Background()
	logger.FromContext(ctx).Info(LogMsgTradeTimedOut, "tradeID", s.trade.ID, "state", s.trade.State)
	m.abort(ctx, s, domain.TradeAbortTimeout)
}

// abort finishes the session without a swap and notifies both sides.
// Callers hold s.mu.
func (m *Manager) abort(ctx context.Context, s *session, reason domain.TradeAbortReason) *domain.Trade {
	snap := m.finish(s, domain.TradeStateAborted, reason)
	logger.FromContext(ctx).Info(LogMsgTradeAborted, "tradeID", snap.ID, "reason", reason)
	m.publish(ctx, event.NewTradeAbortedEvent(*snap))
	return snap
}

// finish moves the session to a terminal state and frees both participants.
// Callers hold s.mu.
func (m *Manager) finish(s *session, state domain.TradeState, reason domain.TradeAbortReason) *domain.Trade {
	s.done = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.trade.State = state
	s.trade.AbortReason = reason

	m.mu.Lock()
	delete(m.sessions, s.trade.ID)
	for _, id := range []int64{s.trade.Initiator.UserID, s.trade.Recipient.UserID} {
		if m.byUser[id] == s.trade.ID {
			delete(m.byUser, id)
		}
	}
	m.mu.Unlock()

	metrics.ActiveTrades.Dec()
	m.finished.Add(s.trade.ID, finishedTrade{trade: s.trade, at: m.clock.Now()})
	snap := s.trade
	return &snap
}

// lookupFinished returns a trade that ended within the retention window
func (m *Manager) lookupFinished(tradeID string) (domain.Trade, bool) {
	f, ok := m.finished.Get(tradeID)
	if !ok {
		return domain.Trade{}, false
	}
	if m.clock.Now().Sub(f.at) > m.cfg.FinishedRetention {
		m.finished.Remove(tradeID)
		return domain.Trade{}, false
	}
	return f.trade, true
}

func (m *Manager) hasAlivePlant(ctx context.Context, userID int64) (bool, error) {
	plants, err := m.repo.ListPlants(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgListPlantsFailed, err)
	}
	for _, p := range plants {
		if p.IsAlive() {
			return true, nil
		}
	}
	return false, nil
}

func (m *Manager) publish(ctx context.Context, evt event.Event) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "eventType", evt.Type, "error", err)
	}
}

func abortReason(err error) domain.TradeAbortReason {
	switch {
	case errors.Is(err, domain.ErrNameCollisionAfterSwap):
		return domain.TradeAbortNameCollision
	case errors.Is(err, domain.ErrPlantNotAlive), errors.Is(err, domain.ErrPlantNotFound):
		return domain.TradeAbortPlantGone
	}
	return domain.TradeAbortFailed
}
