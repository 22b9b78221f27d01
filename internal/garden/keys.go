package garden

import (
	"context"
	"fmt"

	"github.com/osse101/GardenBot_Go/internal/domain"
	"github.com/osse101/GardenBot_Go/internal/logger"
)

// GiveKey lets guestID water ownerID's plants
func (s *service) GiveKey(ctx context.Context, ownerID, guestID int64) error {
	if ownerID == guestID {
		return domain.ErrSelfTarget
	}
	if err := s.repo.GrantKey(ctx, ownerID, guestID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgKeyFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgKeyGranted, "ownerID", ownerID, "guestID", guestID)
	return nil
}

// RevokeKey removes a guest's access; revoking a missing key is a no-op
func (s *service) RevokeKey(ctx context.Context, ownerID, guestID int64) error {
	if err := s.repo.RevokeKey(ctx, ownerID, guestID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgKeyFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgKeyRevoked, "ownerID", ownerID, "guestID", guestID)
	return nil
}

// ListKeys returns the guests holding a key to ownerID's garden
func (s *service) ListKeys(ctx context.Context, ownerID int64) ([]int64, error) {
	keys, err := s.repo.ListKeys(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	guests := make([]int64, 0, len(keys))
	for _, k := range keys {
		guests = append(guests, k.GuestID)
	}
	return guests, nil
}
