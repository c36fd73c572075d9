package models

import "time"

// Booking types
const (
	BookingTypeFlight = "flight"
	BookingTypeHotel  = "hotel"
)

// Booking statuses
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a reservation of seats on a flight or nights at a hotel
type Booking struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	BookingDate   time.Time `json:"booking_date" db:"booking_date"`
	TotalPrice    float64   `json:"total_price" db:"total_price"`
	BookingType   string    `json:"booking_type" db:"booking_type"`
	BookingStatus string    `json:"booking_status" db:"booking_status"`
	Seats         int       `json:"seats" db:"seats"`
	FlightID      *int64    `json:"flight_id" db:"flight_id"`
	HotelID       *int64    `json:"hotel_id" db:"hotel_id"`
}

// HoldsSeats reports whether the booking currently occupies flight seats
func (b Booking) HoldsSeats() bool {
	return b.FlightID != nil && b.BookingStatus != BookingStatusCancelled
}

// ValidBookingStatus reports whether s is a known booking status
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// UserFlight links a user to a saved flight
type UserFlight struct {
	ID       int64 `json:"id" db:"id"`
	UserID   int64 `json:"user_id" db:"user_id"`
	FlightID int64 `json:"flight_id" db:"flight_id"`
}

// UserHotel links a user to a saved hotel
type UserHotel struct {
	ID      int64 `json:"id" db:"id"`
	UserID  int64 `json:"user_id" db:"user_id"`
	HotelID int64 `json:"hotel_id" db:"hotel_id"`
}
