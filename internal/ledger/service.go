package ledger

import (
	"context"
	"errors"
	"time"

	"stadly/pkg/cache"
	"stadly/pkg/logger"

	"github.com/google/uuid"
)

// Service exposes the read side of the seat ledger. Writes happen only
// inside booking transactions, through the Repository lock methods.
type Service interface {
	MaterializeForEvent(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error
	EventAvailability(ctx context.Context, eventID uuid.UUID) (*EventAvailabilityResponse, error)
	SeatMap(ctx context.Context, eventID uuid.UUID) ([]SeatStatusResponse, error)
	InvalidateAvailability(ctx context.Context, eventID uuid.UUID)
	RemoveForEvent(ctx context.Context, eventID uuid.UUID) error
}

type service struct {
	repo     Repository
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewService wires the ledger read paths. cache may be nil when Redis
// is unavailable; reads then go straight to Postgres.
func NewService(repo Repository, c *cache.Cache, cacheTTL time.Duration) Service {
	return &service{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *service) MaterializeForEvent(ctx context.Context, eventID uuid.UUID, seatIDs []uuid.UUID) error {
	if err := s.repo.MaterializeForEvent(ctx, eventID, seatIDs); err != nil {
		return err
	}
	s.InvalidateAvailability(ctx, eventID)
	return nil
}

func (s *service) EventAvailability(ctx context.Context, eventID uuid.UUID) (*EventAvailabilityResponse, error) {
	key := cache.AvailabilityKey(eventID.String())

	if s.cache != nil {
		var cached EventAvailabilityResponse
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.GetDefault().Warn("availability cache read failed", "event_id", eventID, "error", err)
		}
	}

	now := time.Now().UTC()
	counts, err := s.repo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}
	expired, err := s.repo.CountExpiredReserved(ctx, eventID, now)
	if err != nil {
		return nil, err
	}

	resp := &EventAvailabilityResponse{
		EventID:    eventID.String(),
		TotalSeats: counts[StatusFree] + counts[StatusReserved] + counts[StatusBooked],
		Available:  counts[StatusFree] + expired,
		Reserved:   counts[StatusReserved] - expired,
		Booked:     counts[StatusBooked],
		AsOf:       now,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, resp, s.cacheTTL); err != nil {
			logger.GetDefault().Warn("availability cache write failed", "event_id", eventID, "error", err)
		}
	}
	return resp, nil
}

func (s *service) SeatMap(ctx context.Context, eventID uuid.UUID) ([]SeatStatusResponse, error) {
	rows, err := s.repo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := make([]SeatStatusResponse, 0, len(rows))
	for i := range rows {
		result = append(result, SeatStatusResponse{
			SeatID: rows[i].SeatID.String(),
			Status: rows[i].EffectiveStatus(now).String(),
		})
	}
	return result, nil
}

func (s *service) InvalidateAvailability(ctx context.Context, eventID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.AvailabilityKey(eventID.String())); err != nil {
		logger.GetDefault().Warn("availability cache invalidation failed", "event_id", eventID, "error", err)
	}
}

func (s *service) RemoveForEvent(ctx context.Context, eventID uuid.UUID) error {
	if err := s.repo.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}
	s.InvalidateAvailability(ctx, eventID)
	return nil
}
