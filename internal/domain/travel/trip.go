package travel

import (
	"fmt"
	"strings"
)

type TripStatus string

const (
	TripStatusPlanned   TripStatus = "planned"
	TripStatusConfirmed TripStatus = "confirmed"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

func (s TripStatus) Validate() error {
	switch s {
	case TripStatusPlanned, TripStatusConfirmed, TripStatusActive, TripStatusCompleted:
		return nil
	}
	return fmt.Errorf("unknown trip status: %s", s)
}

// Trip groups destinations and itinerary items under one journey.
type Trip struct {
	Meta
	Name           string     `json:"name"`
	StartDate      string     `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        string     `json:"end_date,omitempty"`
	Status         TripStatus `json:"status,omitempty"`
	DestinationIDs []string   `json:"destination_ids,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

func (t *Trip) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("trip name is required")
	}
	if t.Status != "" {
		return t.Status.Validate()
	}
	return nil
}
