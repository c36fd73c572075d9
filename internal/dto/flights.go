package dto

import (
	"AIRESCAPE_BACK-END/internal/models"
)

const timestampLayout = "2006-01-02T15:04:05"

// CreateFlightRequest represents the payload for POST /flights
type CreateFlightRequest struct {
	FlightNumber   string   `json:"flight_number"`
	DepartureCity  string   `json:"departure_city"`
	ArrivalCity    string   `json:"arrival_city"`
	DepartureDate  string   `json:"departure_date"` // YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS or RFC3339
	ArrivalDate    string   `json:"arrival_date"`
	DepartureTime  *string  `json:"departure_time,omitempty"` // HH:MM:SS
	ArrivalTime    *string  `json:"arrival_time,omitempty"`
	Price          *float64 `json:"price"`
	SeatsAvailable *int     `json:"seats_available"`
	TripType       string   `json:"trip_type,omitempty"` // oneway (default) | roundtrip
}

// UpdateFlightRequest lists the flight fields PATCH /flights/{id} may change
type UpdateFlightRequest struct {
	FlightNumber   *string  `json:"flight_number"`
	DepartureCity  *string  `json:"departure_city"`
	ArrivalCity    *string  `json:"arrival_city"`
	DepartureDate  *string  `json:"departure_date"`
	ArrivalDate    *string  `json:"arrival_date"`
	DepartureTime  *string  `json:"departure_time"`
	ArrivalTime    *string  `json:"arrival_time"`
	Price          *float64 `json:"price"`
	SeatsAvailable *int     `json:"seats_available"`
	TripType       *string  `json:"trip_type"`
}

// FlightResponse represents a flight in API responses
type FlightResponse struct {
	ID             int64   `json:"id"`
	FlightNumber   string  `json:"flight_number"`
	DepartureCity  string  `json:"departure_city"`
	ArrivalCity    string  `json:"arrival_city"`
	DepartureDate  string  `json:"departure_date"`
	ArrivalDate    string  `json:"arrival_date"`
	DepartureTime  *string `json:"departure_time"`
	ArrivalTime    *string `json:"arrival_time"`
	Price          float64 `json:"price"`
	SeatsAvailable int     `json:"seats_available"`
	TripType       string  `json:"trip_type"`
}

// FlightSearchResponse is returned by GET /flights when search parameters are given
type FlightSearchResponse struct {
	OutboundFlights []FlightResponse  `json:"outbound_flights"`
	ReturnFlights   *[]FlightResponse `json:"return_flights,omitempty"`
}

// NewFlightResponse converts a models.Flight
func NewFlightResponse(f models.Flight) FlightResponse {
	return FlightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		DepartureCity:  f.DepartureCity,
		ArrivalCity:    f.ArrivalCity,
		DepartureDate:  f.DepartureDate.Format(timestampLayout),
		ArrivalDate:    f.ArrivalDate.Format(timestampLayout),
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Price:          f.Price,
		SeatsAvailable: f.SeatsAvailable,
		TripType:       f.TripType,
	}
}

// NewFlightResponses converts a slice, never returning nil
func NewFlightResponses(flights []models.Flight) []FlightResponse {
	out := make([]FlightResponse, 0, len(flights))
	for _, f := range flights {
		out = append(out, NewFlightResponse(f))
	}
	return out
}
