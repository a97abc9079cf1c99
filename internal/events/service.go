package events

import (
	"context"
	"errors"
	"fmt"

	"stadly/internal/ledger"
	"stadly/internal/stadiums"
	"stadly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrStadiumNotFound   = errors.New("stadium not found")
	ErrInvalidTransition = errors.New("invalid event status transition")
)

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetEventModel(ctx context.Context, id uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, query ListEventsQuery) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// OpenSale flips a SCHEDULED event to ON_SALE and materializes one
	// availability row per stadium seat.
	OpenSale(ctx context.Context, id uuid.UUID) error

	// CancelEvent marks the event CANCELLED. Refunds for confirmed
	// bookings are handled by the booking refund flow, not here.
	CancelEvent(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        Repository
	stadiumsSvc stadiums.Service
	ledgerSvc   ledger.Service
}

func NewService(repo Repository, stadiumsSvc stadiums.Service, ledgerSvc ledger.Service) Service {
	return &service{
		repo:        repo,
		stadiumsSvc: stadiumsSvc,
		ledgerSvc:   ledgerSvc,
	}
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	stadiumID, err := uuid.Parse(req.StadiumID)
	if err != nil {
		return nil, ErrStadiumNotFound
	}
	if _, err := s.stadiumsSvc.GetStadium(ctx, stadiumID); err != nil {
		if errors.Is(err, stadiums.ErrStadiumNotFound) {
			return nil, ErrStadiumNotFound
		}
		return nil, err
	}

	event := &Event{
		StadiumID:   stadiumID,
		Name:        req.Name,
		Description: req.Description,
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		Status:      EventStatusScheduled,
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      req.EndsAt.UTC(),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.GetEventModel(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventModel(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *service) ListEvents(ctx context.Context, query ListEventsQuery) ([]EventResponse, error) {
	events, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}
	return responses, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) error {
	if _, err := s.GetEventModel(ctx, id); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.HomeTeam != nil {
		updates["home_team"] = *req.HomeTeam
	}
	if req.AwayTeam != nil {
		updates["away_team"] = *req.AwayTeam
	}
	if req.StartsAt != nil {
		updates["starts_at"] = req.StartsAt.UTC()
	}
	if req.EndsAt != nil {
		updates["ends_at"] = req.EndsAt.UTC()
	}
	if len(updates) == 0 {
		return nil
	}
	return s.repo.Update(ctx, id, updates)
}

func (s *service) OpenSale(ctx context.Context, id uuid.UUID) error {
	event, err := s.GetEventModel(ctx, id)
	if err != nil {
		return err
	}
	if event.Status != EventStatusScheduled {
		return ErrInvalidTransition
	}

	seatIDs, err := s.stadiumsSvc.StadiumSeatIDs(ctx, event.StadiumID)
	if err != nil {
		return fmt.Errorf("failed to load stadium seats: %w", err)
	}
	if err := s.ledgerSvc.MaterializeForEvent(ctx, event.ID, seatIDs); err != nil {
		return fmt.Errorf("failed to materialize availability: %w", err)
	}
	if err := s.repo.UpdateStatus(ctx, id, EventStatusOnSale); err != nil {
		return err
	}

	logger.GetDefault().InfoWithContext(ctx, "Event on sale", map[string]interface{}{
		"event_id": id.String(),
		"seats":    len(seatIDs),
	})
	return nil
}

func (s *service) CancelEvent(ctx context.Context, id uuid.UUID) error {
	event, err := s.GetEventModel(ctx, id)
	if err != nil {
		return err
	}
	if event.Status == EventStatusCompleted || event.Status == EventStatusCancelled {
		return ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, EventStatusCancelled)
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEventModel(ctx, id); err != nil {
		return err
	}
	if err := s.ledgerSvc.RemoveForEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to remove availability rows: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
