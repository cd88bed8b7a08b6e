package travel

// Built-in sample datasets used to seed an empty remote collection on
// first run. Order matters for itinerary items: display logic sorts by
// date but falls back to insertion order for same-day entries, so the
// narrative sequence below must be preserved by the seeder.

func SampleDestinations() []Destination {
	return []Destination{
		{
			Meta:        Meta{ID: "great-wall"},
			Name:        "Great Wall of China",
			Description: "Mutianyu section day trip, cable car up and toboggan down.",
			Country:     "China",
			City:        "Beijing",
			Tags:        []string{"sightseeing", "unesco"},
		},
		{
			Meta:        Meta{ID: "forbidden-city"},
			Name:        "Forbidden City",
			Description: "Imperial palace complex; book entry tickets a week ahead.",
			Country:     "China",
			City:        "Beijing",
			Tags:        []string{"sightseeing", "museum"},
		},
	}
}

func SampleItineraryItems() []ItineraryItem {
	return []ItineraryItem{
		{
			Meta:  Meta{ID: "arrival-flight"},
			Type:  ItemTypeFlight,
			Title: "Arrival flight to Beijing",
			Date:  "2025-03-10",
			Time:  "08:40",
			Details: &Details{Flight: &FlightDetails{
				Airline:          "Air China",
				FlightNumber:     "CA982",
				DepartureAirport: "JFK",
				ArrivalAirport:   "PEK",
				DepartureTime:    "2025-03-09T16:55:00Z",
				ArrivalTime:      "2025-03-10T08:40:00+08:00",
			}},
		},
		{
			Meta:  Meta{ID: "hotel-checkin"},
			Type:  ItemTypeHotel,
			Title: "Check in at Park Hyatt Beijing",
			Date:  "2025-03-10",
			Time:  "14:00",
			Details: &Details{Hotel: &HotelDetails{
				HotelName: "Park Hyatt Beijing",
				CheckIn:   "2025-03-10",
				CheckOut:  "2025-03-14",
				RoomType:  "King",
			}},
		},
		{
			Meta:     Meta{ID: "factory-meeting"},
			Type:     ItemTypeMeeting,
			Title:    "Factory walkthrough and sampling review",
			Date:     "2025-03-11",
			Time:     "10:00",
			Location: "Yiwu",
			Details: &Details{Meeting: &MeetingDetails{
				Contact: "Li Wei",
				Company: "Yiwu Textile Co.",
				Agenda:  "Spring line samples, MOQ negotiation",
			}},
		},
	}
}

func SampleSuppliers() []Supplier {
	return []Supplier{
		{
			Meta:        Meta{ID: "yiwu-textile"},
			Name:        "Yiwu Textile Co.",
			ContactName: "Li Wei",
			Email:       "liwei@yiwutextile.example",
			Products:    []string{"canvas", "webbing"},
		},
		{
			Meta:        Meta{ID: "shenzhen-hardware"},
			Name:        "Shenzhen Hardware Ltd.",
			ContactName: "Chen Jing",
			Email:       "chen@szhardware.example",
			Products:    []string{"buckles", "zippers"},
		},
	}
}

func SampleEntities() []Entity {
	return []Entity{
		{
			Meta:     Meta{ID: "zervi-hq"},
			Name:     "Zervi Pty Ltd",
			Category: "importer",
			Address:  "Brisbane, AU",
		},
	}
}

func SampleTrips() []Trip {
	return []Trip{
		{
			Meta:           Meta{ID: "beijing-sourcing-2025"},
			Name:           "Beijing sourcing trip",
			StartDate:      "2025-03-10",
			EndDate:        "2025-03-14",
			Status:         TripStatusPlanned,
			DestinationIDs: []string{"great-wall", "forbidden-city"},
		},
	}
}
