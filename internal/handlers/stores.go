package handlers

import (
	"context"

	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/search"
)

// UserStore persists users
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// FlightStore persists the flight catalog
type FlightStore interface {
	search.Catalog
	ListFlights(ctx context.Context) ([]models.Flight, error)
	GetFlight(ctx context.Context, id int64) (models.Flight, error)
	CreateFlight(ctx context.Context, f models.Flight) (models.Flight, error)
	UpdateFlight(ctx context.Context, f models.Flight) (models.Flight, error)
	DeleteFlight(ctx context.Context, id int64) error
}

// HotelStore persists hotels
type HotelStore interface {
	ListHotels(ctx context.Context, location string) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id int64) (models.Hotel, error)
	CreateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error)
	UpdateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
}

// BookingStore persists bookings and keeps flight seat counts in step
type BookingStore interface {
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
	ListBookings(ctx context.Context, userID *int64) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) (models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// SavedStore persists the user_flights and user_hotels join tables
type SavedStore interface {
	ListUserFlights(ctx context.Context, userID int64) ([]models.UserFlight, error)
	GetUserFlight(ctx context.Context, id int64) (models.UserFlight, error)
	CreateUserFlight(ctx context.Context, userID, flightID int64) (models.UserFlight, error)
	DeleteUserFlight(ctx context.Context, id int64) error
	ListUserHotels(ctx context.Context, userID int64) ([]models.UserHotel, error)
	GetUserHotel(ctx context.Context, id int64) (models.UserHotel, error)
	CreateUserHotel(ctx context.Context, userID, hotelID int64) (models.UserHotel, error)
	DeleteUserHotel(ctx context.Context, id int64) error
}

// ResetStore persists password reset codes
type ResetStore interface {
	CreateResetCode(ctx context.Context, rc models.PasswordResetCode) (models.PasswordResetCode, error)
	LatestResetCode(ctx context.Context, userID int64) (models.PasswordResetCode, error)
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
}

// Pinger reports database connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}
