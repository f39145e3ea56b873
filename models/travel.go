package models

import "time"

// DocumentTypeTravel tags every travel document in the shared collection.
const DocumentTypeTravel = "travel"

// DefaultCurrency applies to every monetary amount that arrives without one.
const DefaultCurrency = "USD"

// DateLayout is the calendar date format used for every stored date.
const DateLayout = "2006-01-02"

// Travel is the root aggregate. Itineraries, bookings and daily activities
// live physically inside this document. DurationDays is derived from the
// dates (see ComputeDuration); StatusMirror duplicates Status under the
// english key older readers query.
type Travel struct {
	ID           string `json:"id" bson:"id"`
	TwinID       string `json:"twinId" bson:"TwinID"`
	DocumentType string `json:"documentType" bson:"documentType"`
	Revision     int64  `json:"revision" bson:"_rev"`

	Title        string `json:"title" bson:"titulo"`
	Description  string `json:"description" bson:"descripcion"`
	Country      string `json:"destinationCountry" bson:"paisDestino"`
	City         string `json:"destinationCity" bson:"ciudadDestino"`
	StartDate    string `json:"startDate,omitempty" bson:"fechaInicio,omitempty"`
	EndDate      string `json:"endDate,omitempty" bson:"fechaFin,omitempty"`
	DurationDays *int   `json:"durationDays" bson:"duracionDias"`

	Budget       float64      `json:"budget" bson:"presupuesto"`
	Currency     string       `json:"currency" bson:"moneda"`
	Type         TravelType   `json:"travelType" bson:"tipoViaje"`
	Status       TravelStatus `json:"status" bson:"estado"`
	StatusMirror TravelStatus `json:"-" bson:"status"`

	Transportation string   `json:"transportation" bson:"transporte"`
	Lodging        string   `json:"lodging" bson:"alojamiento"`
	Companions     string   `json:"companions" bson:"acompanantes"`
	Activities     string   `json:"activities" bson:"actividades"`
	Notes          string   `json:"notes" bson:"notas"`
	Rating         *int     `json:"rating,omitempty" bson:"calificacion,omitempty"`
	Highlights     []string `json:"highlights" bson:"destacados"`

	CreatedAt time.Time `json:"createdAt" bson:"fechaCreacion"`
	UpdatedAt time.Time `json:"updatedAt" bson:"fechaActualizacion"`

	Itineraries []Itinerary `json:"itineraries" bson:"itinerarios"`
}

// TravelSnapshot is the copy of parent travel fields carried by each itinerary.
type TravelSnapshot struct {
	Title       string       `json:"title" bson:"titulo"`
	Description string       `json:"description" bson:"descripcion"`
	Type        TravelType   `json:"travelType" bson:"tipoViaje"`
	Status      TravelStatus `json:"status" bson:"estado"`
}

type Itinerary struct {
	ID                 string            `json:"id" bson:"id"`
	Title              string            `json:"title" bson:"titulo"`
	OriginCity         string            `json:"originCity" bson:"ciudadOrigen"`
	OriginCountry      string            `json:"originCountry" bson:"paisOrigen"`
	DestinationCity    string            `json:"destinationCity" bson:"ciudadDestino"`
	DestinationCountry string            `json:"destinationCountry" bson:"paisDestino"`
	StartDate          string            `json:"startDate,omitempty" bson:"fechaInicio,omitempty"`
	EndDate            string            `json:"endDate,omitempty" bson:"fechaFin,omitempty"`
	Transport          TransportMode     `json:"transportMode,omitempty" bson:"medioTransporte,omitempty"`
	Accommodation      AccommodationType `json:"accommodationType,omitempty" bson:"tipoAlojamiento,omitempty"`
	EstimatedBudget    float64           `json:"estimatedBudget" bson:"presupuestoEstimado"`
	Currency           string            `json:"currency" bson:"moneda"`
	Notes              string            `json:"notes" bson:"notas"`
	Travel             TravelSnapshot    `json:"travelInfo" bson:"viajeInfo"`
	Bookings           []Booking         `json:"bookings" bson:"bookings"`
	Activities         []DailyActivity   `json:"dailyActivities" bson:"actividadesDiarias"`
	CreatedAt          time.Time         `json:"createdAt" bson:"fechaCreacion"`
	UpdatedAt          time.Time         `json:"updatedAt" bson:"fechaActualizacion"`
}

type Contact struct {
	Phone   string `json:"phone,omitempty" bson:"telefono,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Address string `json:"address,omitempty" bson:"direccion,omitempty"`
}

type Booking struct {
	ID           string        `json:"id" bson:"id"`
	Type         BookingType   `json:"type" bson:"tipo"`
	Title        string        `json:"title" bson:"titulo"`
	Description  string        `json:"description" bson:"descripcion"`
	StartDate    string        `json:"startDate" bson:"fechaInicio"`
	EndDate      string        `json:"endDate,omitempty" bson:"fechaFin,omitempty"`
	StartTime    string        `json:"startTime,omitempty" bson:"horaInicio,omitempty"`
	EndTime      string        `json:"endTime,omitempty" bson:"horaFin,omitempty"`
	Provider     string        `json:"provider" bson:"proveedor"`
	Contact      *Contact      `json:"contact,omitempty" bson:"contacto,omitempty"`
	Price        float64       `json:"price" bson:"precio"`
	Currency     string        `json:"currency" bson:"moneda"`
	Confirmation string        `json:"confirmationNumber,omitempty" bson:"numeroConfirmacion,omitempty"`
	Status       BookingStatus `json:"status" bson:"estado"`
	Notes        string        `json:"notes" bson:"notas"`
	CreatedAt    time.Time     `json:"createdAt" bson:"fechaCreacion"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"fechaActualizacion"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitud"`
	Longitude float64 `json:"longitude" bson:"longitud"`
}

type DailyActivity struct {
	ID           string       `json:"id" bson:"id"`
	Date         string       `json:"date" bson:"fecha"`
	StartTime    string       `json:"startTime,omitempty" bson:"horaInicio,omitempty"`
	EndTime      string       `json:"endTime,omitempty" bson:"horaFin,omitempty"`
	Type         ActivityType `json:"activityType" bson:"tipoActividad"`
	Title        string       `json:"title" bson:"titulo"`
	Description  string       `json:"description" bson:"descripcion"`
	Location     string       `json:"location" bson:"ubicacion"`
	Participants []string     `json:"participants" bson:"participantes"`
	Rating       *int         `json:"rating,omitempty" bson:"calificacion,omitempty"`
	Notes        string       `json:"notes" bson:"notas"`
	Cost         float64      `json:"cost" bson:"costo"`
	Currency     string       `json:"currency" bson:"moneda"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" bson:"coordenadas,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" bson:"fechaCreacion"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"fechaActualizacion"`
}

// Snapshot copies the fields itineraries denormalize from their travel.
func (t *Travel) Snapshot() TravelSnapshot {
	return TravelSnapshot{
		Title:       t.Title,
		Description: t.Description,
		Type:        t.Type,
		Status:      t.Status,
	}
}

// ItineraryIndex returns the position of the itinerary with the given id, or -1.
func (t *Travel) ItineraryIndex(id string) int {
	for i := range t.Itineraries {
		if t.Itineraries[i].ID == id {
			return i
		}
	}
	return -1
}

func (it *Itinerary) BookingIndex(id string) int {
	for i := range it.Bookings {
		if it.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (it *Itinerary) ActivityIndex(id string) int {
	for i := range it.Activities {
		if it.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize replaces nil slices with empty ones so that responses always
// carry arrays.
func (t *Travel) Normalize() {
	if t.Highlights == nil {
		t.Highlights = []string{}
	}
	if t.Itineraries == nil {
		t.Itineraries = []Itinerary{}
	}
	for i := range t.Itineraries {
		t.Itineraries[i].Normalize()
	}
}

func (it *Itinerary) Normalize() {
	if it.Bookings == nil {
		it.Bookings = []Booking{}
	}
	if it.Activities == nil {
		it.Activities = []DailyActivity{}
	}
	for i := range it.Activities {
		if it.Activities[i].Participants == nil {
			it.Activities[i].Participants = []string{}
		}
	}
}
