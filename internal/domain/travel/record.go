package travel

import (
	"time"
)

// Collection names mirrored between the remote table service and the
// device-local snapshot cache.
const (
	CollectionDestinations   = "destinations"
	CollectionItineraryItems = "itinerary_items"
	CollectionSuppliers      = "suppliers"
	CollectionEntities       = "business_entities"
	CollectionTrips          = "trips"
)

// Meta is the common envelope of every stored record. The ID is assigned
// on the client before the create call resolves; timestamps and version
// are owned by the remote service and never sent on client payloads.
type Meta struct {
	ID        string     `json:"id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Version   int        `json:"version,omitempty"`
}

func (m Meta) RecordID() string { return m.ID }

func (m Meta) RecordVersion() int { return m.Version }
