package models

import "time"

// Trip types a flight can be sold as
const (
	TripTypeOneWay    = "oneway"
	TripTypeRoundTrip = "roundtrip"
)

// Flight is a single scheduled flight in the catalog
type Flight struct {
	ID             int64     `json:"id" db:"id"`
	FlightNumber   string    `json:"flight_number" db:"flight_number"`
	DepartureCity  string    `json:"departure_city" db:"departure_city"`
	ArrivalCity    string    `json:"arrival_city" db:"arrival_city"`
	DepartureDate  time.Time `json:"departure_date" db:"departure_date"`
	ArrivalDate    time.Time `json:"arrival_date" db:"arrival_date"`
	DepartureTime  *string   `json:"departure_time" db:"departure_time"` // HH:MM:SS
	ArrivalTime    *string   `json:"arrival_time" db:"arrival_time"`     // HH:MM:SS
	Price          float64   `json:"price" db:"price"`
	SeatsAvailable int       `json:"seats_available" db:"seats_available"`
	TripType       string    `json:"trip_type" db:"trip_type"`
}

// ValidTripType reports whether t is a known trip type
func ValidTripType(t string) bool {
	return t == TripTypeOneWay || t == TripTypeRoundTrip
}
