package db

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"travelbook/models"
	"travelbook/travel"
)

// TravelKey addresses one travel document inside its twin partition.
func TravelKey(travelID, twinID string) bson.M {
	return bson.M{"id": travelID, "TwinID": twinID}
}

func containsPattern(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// BuildFilter turns the criteria into a mongo filter. Absent predicates add
// no key at all.
func BuildFilter(twinID string, c travel.Criteria) bson.M {
	filter := bson.M{
		"TwinID":       twinID,
		"documentType": models.DocumentTypeTravel,
	}
	if c.Status != "" {
		filter["estado"] = c.Status
	}
	if c.Type != "" {
		filter["tipoViaje"] = c.Type
	}
	if c.Country != "" {
		filter["paisDestino"] = containsPattern(c.Country)
	}
	if c.City != "" {
		filter["ciudadDestino"] = containsPattern(c.City)
	}
	if c.DateFrom != "" || c.DateTo != "" {
		dates := bson.M{}
		if c.DateFrom != "" {
			dates["$gte"] = c.DateFrom
		}
		if c.DateTo != "" {
			dates["$lte"] = c.DateTo
		}
		filter["fechaInicio"] = dates
	}
	if c.MinRating != nil {
		filter["calificacion"] = bson.M{"$gte": *c.MinRating}
	}
	if c.MaxBudget != nil {
		filter["presupuesto"] = bson.M{"$lte": *c.MaxBudget}
	}
	if c.Search != "" {
		p := containsPattern(c.Search)
		filter["$or"] = bson.A{
			bson.M{"titulo": p},
			bson.M{"descripcion": p},
			bson.M{"notas": p},
			bson.M{"actividades": p},
		}
	}
	return filter
}

var sortFields = map[travel.SortKey]string{
	travel.SortStartDate: "fechaInicio",
	travel.SortTitle:     "titulo",
	travel.SortBudget:    "presupuesto",
	travel.SortRating:    "calificacion",
	travel.SortCreatedAt: "fechaCreacion",
}

// BuildSort orders by key with the travel id as ascending tie breaker.
func BuildSort(key travel.SortKey, desc bool) bson.D {
	field, ok := sortFields[key]
	if !ok {
		field, desc = "fechaCreacion", true
	}
	dir := 1
	if desc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "id", Value: 1}}
}

// ItineraryProjection selects only the addressed itinerary element and the
// revision it was read at.
func ItineraryProjection(itineraryID string) bson.M {
	return bson.M{
		"_id":         0,
		"_rev":        1,
		"itinerarios": bson.M{"$elemMatch": bson.M{"id": itineraryID}},
	}
}
