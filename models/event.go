package models

import "time"

// Event methods carried by TravelEvent.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// TravelEvent tells downstream indexers that part of a travel changed.
type TravelEvent struct {
	Method      string    `json:"method"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	TravelID    string    `json:"travel_id"`
	ItineraryID string    `json:"itinerary_id,omitempty"`
	TwinID      string    `json:"twin_id"`
	At          time.Time `json:"at"`
}
