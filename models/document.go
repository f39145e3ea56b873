package models

import (
	"strings"
	"time"
)

const DocumentTypeTravelDocument = "travel_document"

// TravelDocument is a financial record (receipt, invoice, ticket) extracted
// from an uploaded file and linked to a travel.
type TravelDocument struct {
	ID           string    `json:"id" bson:"id"`
	TwinID       string    `json:"twinId" bson:"TwinID"`
	TravelID     string    `json:"travelId" bson:"viajeId"`
	DocumentType string    `json:"documentType" bson:"documentType"`
	FileName     string    `json:"fileName" bson:"nombreArchivo"`
	Vendor       string    `json:"vendor" bson:"proveedor"`
	Category     string    `json:"category" bson:"categoria"`
	Total        float64   `json:"total" bson:"total"`
	Currency     string    `json:"currency" bson:"moneda"`
	DocumentDate string    `json:"documentDate" bson:"fechaDocumento"`
	Notes        string    `json:"notes" bson:"notas"`
	CreatedAt    time.Time `json:"createdAt" bson:"fechaCreacion"`
}

type DocumentInput struct {
	FileName     string  `json:"fileName"`
	Vendor       string  `json:"vendor"`
	Category     string  `json:"category"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
	DocumentDate string  `json:"documentDate"`
	Notes        string  `json:"notes"`
}

func NewTravelDocument(id, twinID, travelID string, in DocumentInput, now time.Time) (*TravelDocument, error) {
	if strings.TrimSpace(travelID) == "" {
		return nil, invalid("travelId", "is required")
	}
	d := &TravelDocument{
		ID:           id,
		TwinID:       twinID,
		TravelID:     travelID,
		DocumentType: DocumentTypeTravelDocument,
		FileName:     in.FileName,
		Vendor:       strings.TrimSpace(in.Vendor),
		Category:     strings.ToLower(strings.TrimSpace(in.Category)),
		Total:        in.Total,
		Notes:        in.Notes,
		CreatedAt:    now,
	}
	var err error
	if err := checkAmount("total", in.Total); err != nil {
		return nil, err
	}
	if d.Currency, err = NormalizeCurrency("currency", in.Currency); err != nil {
		return nil, err
	}
	if d.DocumentDate, err = checkDate("documentDate", in.DocumentDate, false); err != nil {
		return nil, err
	}
	return d, nil
}
