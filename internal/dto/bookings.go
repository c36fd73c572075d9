package dto

import (
	"AIRESCAPE_BACK-END/internal/models"
)

// CreateBookingRequest represents the payload for POST /bookings.
// Exactly one of FlightID and HotelID must be set, matching BookingType.
type CreateBookingRequest struct {
	UserID        *int64   `json:"user_id,omitempty"` // admin callers only
	BookingType   string   `json:"booking_type"`      // flight | hotel
	FlightID      *int64   `json:"flight_id,omitempty"`
	HotelID       *int64   `json:"hotel_id,omitempty"`
	Seats         *int     `json:"seats,omitempty"`  // flight bookings, default 1
	Nights        *int     `json:"nights,omitempty"` // hotel bookings, default 1
	TotalPrice    *float64 `json:"total_price,omitempty"`
	BookingStatus *string  `json:"booking_status,omitempty"`
}

// UpdateBookingRequest lists the booking fields PATCH /bookings/{id} may change
type UpdateBookingRequest struct {
	BookingStatus *string `json:"booking_status"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	BookingDate   string  `json:"booking_date"`
	TotalPrice    float64 `json:"total_price"`
	BookingType   string  `json:"booking_type"`
	BookingStatus string  `json:"booking_status"`
	Seats         int     `json:"seats"`
	FlightID      *int64  `json:"flight_id"`
	HotelID       *int64  `json:"hotel_id"`
}

// NewBookingResponse converts a models.Booking
func NewBookingResponse(b models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		BookingDate:   b.BookingDate.Format(timestampLayout),
		TotalPrice:    b.TotalPrice,
		BookingType:   b.BookingType,
		BookingStatus: b.BookingStatus,
		Seats:         b.Seats,
		FlightID:      b.FlightID,
		HotelID:       b.HotelID,
	}
}

// NewBookingResponses converts a slice, never returning nil
func NewBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}

// CreateUserFlightRequest saves a flight for the caller
type CreateUserFlightRequest struct {
	FlightID int64 `json:"flight_id"`
}

// CreateUserHotelRequest saves a hotel for the caller
type CreateUserHotelRequest struct {
	HotelID int64 `json:"hotel_id"`
}
