package travel

import (
	"fmt"
	"strings"
)

// Destination is a place records in other collections refer to.
type Destination struct {
	Meta
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Country     string   `json:"country,omitempty"`
	City        string   `json:"city,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

func (d *Destination) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("destination name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("destination description is required")
	}
	return nil
}
