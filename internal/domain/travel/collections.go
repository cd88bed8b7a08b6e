package travel

import (
	"zervitravel/internal/store"
)

// Collection descriptors bind each record type to its remote table name,
// the discriminant fields an import payload must carry, and the built-in
// sample dataset.

func Destinations() store.Descriptor[Destination] {
	return store.Descriptor[Destination]{
		Name:     CollectionDestinations,
		Required: []string{"name", "description"},
		Sample:   SampleDestinations(),
	}
}

func ItineraryItems() store.Descriptor[ItineraryItem] {
	return store.Descriptor[ItineraryItem]{
		Name:     CollectionItineraryItems,
		Required: []string{"type", "title"},
		Sample:   SampleItineraryItems(),
	}
}

func Suppliers() store.Descriptor[Supplier] {
	return store.Descriptor[Supplier]{
		Name:     CollectionSuppliers,
		Required: []string{"name"},
		Sample:   SampleSuppliers(),
	}
}

func Entities() store.Descriptor[Entity] {
	return store.Descriptor[Entity]{
		Name:     CollectionEntities,
		Required: []string{"name"},
		Sample:   SampleEntities(),
	}
}

func Trips() store.Descriptor[Trip] {
	return store.Descriptor[Trip]{
		Name:     CollectionTrips,
		Required: []string{"name"},
		Sample:   SampleTrips(),
	}
}

// CollectionNames lists every synchronized collection in bootstrap order.
func CollectionNames() []string {
	return []string{
		CollectionDestinations,
		CollectionItineraryItems,
		CollectionSuppliers,
		CollectionEntities,
		CollectionTrips,
	}
}
