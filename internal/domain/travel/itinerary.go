package travel

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ItemType string

const (
	ItemTypeFlight   ItemType = "flight"
	ItemTypeHotel    ItemType = "hotel"
	ItemTypeMeeting  ItemType = "meeting"
	ItemTypeActivity ItemType = "activity"
	ItemTypeTransfer ItemType = "transfer"
)

// Validate reports whether the type is one of the known discriminants.
func (t ItemType) Validate() error {
	switch t {
	case ItemTypeFlight, ItemTypeHotel, ItemTypeMeeting, ItemTypeActivity, ItemTypeTransfer:
		return nil
	}
	return fmt.Errorf("unknown itinerary item type: %s", t)
}

// String returns the wire representation of the type.
func (t ItemType) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the type.
func (t ItemType) DisplayName() string {
	switch t {
	case ItemTypeFlight:
		return "Flight"
	case ItemTypeHotel:
		return "Hotel stay"
	case ItemTypeMeeting:
		return "Meeting"
	case ItemTypeActivity:
		return "Activity"
	case ItemTypeTransfer:
		return "Ground transfer"
	default:
		return "Unknown"
	}
}

// ItineraryItem is one entry of a trip schedule. The type-specific payload
// lives in Details and its shape is keyed by Type.
type ItineraryItem struct {
	Meta
	Type      ItemType `json:"type"`
	Title     string   `json:"title"`
	Date      string   `json:"date,omitempty"` // YYYY-MM-DD
	Time      string   `json:"time,omitempty"` // HH:MM, local
	Location  string   `json:"location,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Confirmed bool     `json:"confirmed,omitempty"`
	Details   *Details `json:"type_data,omitempty"`
}

// Details is a tagged union over the per-type payloads. Exactly one
// variant may be set; the discriminant is the parent item's Type.
type Details struct {
	Flight   *FlightDetails
	Hotel    *HotelDetails
	Meeting  *MeetingDetails
	Activity *ActivityDetails
	Transfer *TransferDetails
}

type FlightDetails struct {
	Airline          string `json:"airline,omitempty"`
	FlightNumber     string `json:"flight_number,omitempty"`
	DepartureAirport string `json:"departure_airport,omitempty"`
	ArrivalAirport   string `json:"arrival_airport,omitempty"`
	DepartureTime    string `json:"departure_time,omitempty"`
	ArrivalTime      string `json:"arrival_time,omitempty"`
	BookingRef       string `json:"booking_ref,omitempty"`
}

type HotelDetails struct {
	HotelName  string `json:"hotel_name,omitempty"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	RoomType   string `json:"room_type,omitempty"`
	BookingRef string `json:"booking_ref,omitempty"`
}

type MeetingDetails struct {
	Contact     string `json:"contact,omitempty"`
	Company     string `json:"company,omitempty"`
	Agenda      string `json:"agenda,omitempty"`
	MeetingTime string `json:"meeting_time,omitempty"`
}

type ActivityDetails struct {
	Category     string `json:"category,omitempty"`
	Duration     string `json:"duration,omitempty"`
	MeetingPoint string `json:"meeting_point,omitempty"`
}

type TransferDetails struct {
	Mode          string `json:"mode,omitempty"` // train, car, ferry, bus
	Carrier       string `json:"carrier,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

// MarshalJSON emits only the active variant.
func (d Details) MarshalJSON() ([]byte, error) {
	switch {
	case d.Flight != nil:
		return json.Marshal(d.Flight)
	case d.Hotel != nil:
		return json.Marshal(d.Hotel)
	case d.Meeting != nil:
		return json.Marshal(d.Meeting)
	case d.Activity != nil:
		return json.Marshal(d.Activity)
	case d.Transfer != nil:
		return json.Marshal(d.Transfer)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes the type_data object according to the item's
// discriminant, so consumers get a typed variant instead of an open map.
func (it *ItineraryItem) UnmarshalJSON(data []byte) error {
	type alias ItineraryItem
	aux := struct {
		*alias
		Details json.RawMessage `json:"type_data,omitempty"`
	}{alias: (*alias)(it)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	it.Details = nil
	if len(aux.Details) == 0 || string(aux.Details) == "null" {
		return nil
	}

	d := &Details{}
	var err error
	switch it.Type {
	case ItemTypeFlight:
		d.Flight = &FlightDetails{}
		err = json.Unmarshal(aux.Details, d.Flight)
	case ItemTypeHotel:
		d.Hotel = &HotelDetails{}
		err = json.Unmarshal(aux.Details, d.Hotel)
	case ItemTypeMeeting:
		d.Meeting = &MeetingDetails{}
		err = json.Unmarshal(aux.Details, d.Meeting)
	case ItemTypeActivity:
		d.Activity = &ActivityDetails{}
		err = json.Unmarshal(aux.Details, d.Activity)
	case ItemTypeTransfer:
		d.Transfer = &TransferDetails{}
		err = json.Unmarshal(aux.Details, d.Transfer)
	default:
		return fmt.Errorf("cannot decode type_data: %w", it.Type.Validate())
	}
	if err != nil {
		return fmt.Errorf("decode %s type_data: %w", it.Type, err)
	}
	it.Details = d
	return nil
}

func (it *ItineraryItem) Validate() error {
	if err := it.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("itinerary item title is required")
	}
	if it.Details == nil {
		return nil
	}
	// The active variant must match the discriminant.
	ok := false
	switch it.Type {
	case ItemTypeFlight:
		ok = it.Details.Flight != nil
	case ItemTypeHotel:
		ok = it.Details.Hotel != nil
	case ItemTypeMeeting:
		ok = it.Details.Meeting != nil
	case ItemTypeActivity:
		ok = it.Details.Activity != nil
	case ItemTypeTransfer:
		ok = it.Details.Transfer != nil
	}
	if !ok {
		return fmt.Errorf("type_data does not match item type %s", it.Type)
	}
	return nil
}
