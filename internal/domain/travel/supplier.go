package travel

import (
	"fmt"
	"strings"
)

// Supplier is a sourcing contact (factory, agent, logistics provider).
type Supplier struct {
	Meta
	Name        string   `json:"name"`
	ContactName string   `json:"contact_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Website     string   `json:"website,omitempty"`
	Products    []string `json:"products,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("supplier name is required")
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return fmt.Errorf("invalid supplier email: %s", s.Email)
	}
	return nil
}
