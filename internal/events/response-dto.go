package events

import "time"

type EventResponse struct {
	ID          string    `json:"id"`
	StadiumID   string    `json:"stadium_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HomeTeam    string    `json:"home_team,omitempty"`
	AwayTeam    string    `json:"away_team,omitempty"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		StadiumID:   e.StadiumID.String(),
		Name:        e.Name,
		Description: e.Description,
		HomeTeam:    e.HomeTeam,
		AwayTeam:    e.AwayTeam,
		Status:      e.Status.String(),
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		CreatedAt:   e.CreatedAt,
	}
}
