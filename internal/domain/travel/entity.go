package travel

import (
	"fmt"
	"strings"
)

// Entity is a business entity involved in a trip (importer, broker,
// customs agent and the like).
type Entity struct {
	Meta
	Name           string `json:"name"`
	Category       string `json:"category,omitempty"`
	RegistrationNo string `json:"registration_no,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func (e *Entity) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("entity name is required")
	}
	return nil
}
