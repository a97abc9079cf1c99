package events

import "time"

type CreateEventRequest struct {
	StadiumID   string    `json:"stadium_id" validate:"required,uuid"`
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	HomeTeam    string    `json:"home_team" validate:"max=100"`
	AwayTeam    string    `json:"away_team" validate:"max=100"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	HomeTeam    *string    `json:"home_team,omitempty" validate:"omitempty,max=100"`
	AwayTeam    *string    `json:"away_team,omitempty" validate:"omitempty,max=100"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

type ListEventsQuery struct {
	StadiumID string `form:"stadium_id"`
	Status    string `form:"status"`
	Upcoming  bool   `form:"upcoming"`
}
