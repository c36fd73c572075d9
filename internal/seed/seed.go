// Package seed loads the default AirEscape catalog, or a catalog read from a workbook.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"AIRESCAPE_BACK-END/internal/models"
)

// Store is the subset of the repository the seeder writes through
type Store interface {
	Truncate(ctx context.Context) error
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	CreateFlight(ctx context.Context, f models.Flight) (models.Flight, error)
	CreateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error)
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	CreateUserFlight(ctx context.Context, userID, flightID int64) (models.UserFlight, error)
	CreateUserHotel(ctx context.Context, userID, hotelID int64) (models.UserHotel, error)
}

// UserSeed is a user with a plain-text password that is hashed on insert
type UserSeed struct {
	User     models.User
	Password string
}

// BookingSeed references users, flights and hotels by their index in the Catalog
type BookingSeed struct {
	User        int
	Flight      int // -1 for hotel bookings
	Hotel       int // -1 for flight bookings
	TotalPrice  float64
	Status      string
	BookingDate time.Time
}

// Link is a saved flight or hotel, by catalog index
type Link struct {
	User   int
	Target int
}

// Catalog is everything the seeder inserts
type Catalog struct {
	Users       []UserSeed
	Flights     []models.Flight
	Hotels      []models.Hotel
	Bookings    []BookingSeed
	UserFlights []Link
	UserHotels  []Link
}

// Summary counts inserted rows
type Summary struct {
	Users, Flights, Hotels, Bookings, UserFlights, UserHotels int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d users, %d flights, %d hotels, %d bookings, %d user flights, %d user hotels",
		s.Users, s.Flights, s.Hotels, s.Bookings, s.UserFlights, s.UserHotels)
}

// Run wipes the store and inserts c. Bookings and links pointing past the end of
// the flight or hotel list are skipped.
func Run(ctx context.Context, store Store, c Catalog, bcryptCost int) (Summary, error) {
	var sum Summary

	log.Println("seed: deleting data")
	if err := store.Truncate(ctx); err != nil {
		return sum, fmt.Errorf("truncate: %w", err)
	}

	users := make([]models.User, 0, len(c.Users))
	for _, us := range c.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(us.Password), bcryptCost)
		if err != nil {
			return sum, fmt.Errorf("hash password for %s: %w", us.User.Email, err)
		}
		u := us.User
		u.PasswordHash = string(hash)
		created, err := store.CreateUser(ctx, u)
		if err != nil {
			return sum, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		users = append(users, created)
	}
	sum.Users = len(users)

	flights := make([]models.Flight, 0, len(c.Flights))
	for _, f := range c.Flights {
		created, err := store.CreateFlight(ctx, f)
		if err != nil {
			return sum, fmt.Errorf("create flight %s: %w", f.FlightNumber, err)
		}
		flights = append(flights, created)
	}
	sum.Flights = len(flights)

	hotels := make([]models.Hotel, 0, len(c.Hotels))
	for _, h := range c.Hotels {
		created, err := store.CreateHotel(ctx, h)
		if err != nil {
			return sum, fmt.Errorf("create hotel %s: %w", h.Name, err)
		}
		hotels = append(hotels, created)
	}
	sum.Hotels = len(hotels)

	for i, bs := range c.Bookings {
		if bs.User < 0 || bs.User >= len(users) {
			log.Printf("seed: booking %d: unknown user index %d, skipped", i, bs.User)
			continue
		}
		b := models.Booking{
			UserID:        users[bs.User].ID,
			BookingDate:   bs.BookingDate,
			TotalPrice:    bs.TotalPrice,
			BookingStatus: bs.Status,
			Seats:         1,
		}
		switch {
		case bs.Flight >= 0 && bs.Flight < len(flights):
			b.BookingType = models.BookingTypeFlight
			b.FlightID = &flights[bs.Flight].ID
		case bs.Hotel >= 0 && bs.Hotel < len(hotels):
			b.BookingType = models.BookingTypeHotel
			b.HotelID = &hotels[bs.Hotel].ID
		default:
			log.Printf("seed: booking %d references a missing flight or hotel, skipped", i)
			continue
		}
		if _, err := store.CreateBooking(ctx, b); err != nil {
			return sum, fmt.Errorf("create booking %d: %w", i, err)
		}
		sum.Bookings++
	}

	for _, l := range c.UserFlights {
		if l.User < 0 || l.User >= len(users) || l.Target < 0 || l.Target >= len(flights) {
			continue
		}
		if _, err := store.CreateUserFlight(ctx, users[l.User].ID, flights[l.Target].ID); err != nil {
			return sum, fmt.Errorf("create user flight: %w", err)
		}
		sum.UserFlights++
	}

	for _, l := range c.UserHotels {
		if l.User < 0 || l.User >= len(users) || l.Target < 0 || l.Target >= len(hotels) {
			continue
		}
		if _, err := store.CreateUserHotel(ctx, users[l.User].ID, hotels[l.Target].ID); err != nil {
			return sum, fmt.Errorf("create user hotel: %w", err)
		}
		sum.UserHotels++
	}

	return sum, nil
}
