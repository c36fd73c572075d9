package routes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/search"
)

// memStore is an in-memory stand-in for repository.Store with the same
// error classes, seat accounting and cascades.
type memStore struct {
	mu       sync.Mutex
	seq      map[string]int64
	users    map[int64]models.User
	flights  map[int64]models.Flight
	hotels   map[int64]models.Hotel
	bookings map[int64]models.Booking
	uflights map[int64]models.UserFlight
	uhotels  map[int64]models.UserHotel
	codes    []models.PasswordResetCode
}

func newMemStore() *memStore {
	return &memStore{
		seq:      make(map[string]int64),
		users:    make(map[int64]models.User),
		flights:  make(map[int64]models.Flight),
		hotels:   make(map[int64]models.Hotel),
		bookings: make(map[int64]models.Booking),
		uflights: make(map[int64]models.UserFlight),
		uhotels:  make(map[int64]models.UserHotel),
	}
}

func (s *memStore) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *memStore) Ping(context.Context) error { return nil }

// users

func (s *memStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.User{}, fmt.Errorf("users_email_key: %w", repository.ErrConflict)
		}
	}
	u.ID = s.next("users")
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return u, nil
}

func (s *memStore) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (s *memStore) ListUsers(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.User{}
	for _, id := range sortedKeys(s.users) {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *memStore) UpdateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return models.User{}, repository.ErrNotFound
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return models.User{}, fmt.Errorf("users_email_key: %w", repository.ErrConflict)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = u
	return u, nil
}

func (s *memStore) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	for bid, b := range s.bookings {
		if b.UserID == id {
			if b.HoldsSeats() {
				s.release(*b.FlightID, b.Seats)
			}
			delete(s.bookings, bid)
		}
	}
	for sid, uf := range s.uflights {
		if uf.UserID == id {
			delete(s.uflights, sid)
		}
	}
	for sid, uh := range s.uhotels {
		if uh.UserID == id {
			delete(s.uhotels, sid)
		}
	}
	return nil
}

// flights

func (s *memStore) FindFlights(_ context.Context, c search.LegCriteria) ([]models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		all = append(all, f)
	}
	return search.Filter(all, c), nil
}

func (s *memStore) ListFlights(context.Context) ([]models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Flight{}
	for _, id := range sortedKeys(s.flights) {
		out = append(out, s.flights[id])
	}
	return out, nil
}

func (s *memStore) GetFlight(_ context.Context, id int64) (models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[id]
	if !ok {
		return models.Flight{}, repository.ErrNotFound
	}
	return f, nil
}

func (s *memStore) CreateFlight(_ context.Context, f models.Flight) (models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.flights {
		if existing.FlightNumber == f.FlightNumber {
			return models.Flight{}, fmt.Errorf("flights_flight_number_key: %w", repository.ErrConflict)
		}
	}
	f.ID = s.next("flights")
	s.flights[f.ID] = f
	return f, nil
}

func (s *memStore) UpdateFlight(_ context.Context, f models.Flight) (models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[f.ID]; !ok {
		return models.Flight{}, repository.ErrNotFound
	}
	for id, existing := range s.flights {
		if id != f.ID && existing.FlightNumber == f.FlightNumber {
			return models.Flight{}, fmt.Errorf("flights_flight_number_key: %w", repository.ErrConflict)
		}
	}
	s.flights[f.ID] = f
	return f, nil
}

func (s *memStore) DeleteFlight(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.flights, id)
	for bid, b := range s.bookings {
		if b.FlightID != nil && *b.FlightID == id {
			delete(s.bookings, bid)
		}
	}
	for sid, uf := range s.uflights {
		if uf.FlightID == id {
			delete(s.uflights, sid)
		}
	}
	return nil
}

// hotels

func (s *memStore) ListHotels(_ context.Context, location string) ([]models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location = strings.ToLower(strings.TrimSpace(location))
	out := []models.Hotel{}
	for _, id := range sortedKeys(s.hotels) {
		h := s.hotels[id]
		if location == "" || strings.Contains(strings.ToLower(h.Location), location) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *memStore) GetHotel(_ context.Context, id int64) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hotels[id]
	if !ok {
		return models.Hotel{}, repository.ErrNotFound
	}
	return h, nil
}

func (s *memStore) CreateHotel(_ context.Context, h models.Hotel) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h.ID = s.next("hotels")
	s.hotels[h.ID] = h
	return h, nil
}

func (s *memStore) UpdateHotel(_ context.Context, h models.Hotel) (models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels[h.ID]; !ok {
		return models.Hotel{}, repository.ErrNotFound
	}
	s.hotels[h.ID] = h
	return h, nil
}

func (s *memStore) DeleteHotel(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.hotels, id)
	for bid, b := range s.bookings {
		if b.HotelID != nil && *b.HotelID == id {
			delete(s.bookings, bid)
		}
	}
	for sid, uh := range s.uhotels {
		if uh.HotelID == id {
			delete(s.uhotels, sid)
		}
	}
	return nil
}

// bookings

func (s *memStore) reserve(flightID int64, seats int) error {
	f, ok := s.flights[flightID]
	if !ok {
		return repository.ErrNotFound
	}
	if f.SeatsAvailable < seats {
		return repository.ErrInsufficientSeats
	}
	f.SeatsAvailable -= seats
	s.flights[flightID] = f
	return nil
}

func (s *memStore) release(flightID int64, seats int) {
	if f, ok := s.flights[flightID]; ok {
		f.SeatsAvailable += seats
		s.flights[flightID] = f
	}
}

func (s *memStore) CreateBooking(_ context.Context, b models.Booking) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[b.UserID]; !ok {
		return models.Booking{}, fmt.Errorf("bookings_user_id_fkey: %w", repository.ErrConstraint)
	}
	if b.HoldsSeats() {
		if err := s.reserve(*b.FlightID, b.Seats); err != nil {
			return models.Booking{}, err
		}
	}
	b.ID = s.next("bookings")
	s.bookings[b.ID] = b
	return b, nil
}

func (s *memStore) GetBooking(_ context.Context, id int64) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, repository.ErrNotFound
	}
	return b, nil
}

func (s *memStore) ListBookings(_ context.Context, userID *int64) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Booking{}
	for _, id := range sortedKeys(s.bookings) {
		b := s.bookings[id]
		if userID == nil || b.UserID == *userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) UpdateBookingStatus(_ context.Context, id int64, status string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, repository.ErrNotFound
	}
	before := b.HoldsSeats()
	b.BookingStatus = status
	after := b.HoldsSeats()

	switch {
	case before && !after:
		s.release(*b.FlightID, b.Seats)
	case !before && after:
		if err := s.reserve(*b.FlightID, b.Seats); err != nil {
			return models.Booking{}, err
		}
	}
	s.bookings[id] = b
	return b, nil
}

func (s *memStore) DeleteBooking(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.bookings, id)
	if b.HoldsSeats() {
		s.release(*b.FlightID, b.Seats)
	}
	return nil
}

// saved flights and hotels

func (s *memStore) ListUserFlights(_ context.Context, userID int64) ([]models.UserFlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.UserFlight{}
	for _, id := range sortedKeys(s.uflights) {
		if uf := s.uflights[id]; uf.UserID == userID {
			out = append(out, uf)
		}
	}
	return out, nil
}

func (s *memStore) GetUserFlight(_ context.Context, id int64) (models.UserFlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uf, ok := s.uflights[id]
	if !ok {
		return models.UserFlight{}, repository.ErrNotFound
	}
	return uf, nil
}

func (s *memStore) CreateUserFlight(_ context.Context, userID, flightID int64) (models.UserFlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[flightID]; !ok {
		return models.UserFlight{}, fmt.Errorf("user_flights_flight_id_fkey: %w", repository.ErrConstraint)
	}
	uf := models.UserFlight{ID: s.next("user_flights"), UserID: userID, FlightID: flightID}
	s.uflights[uf.ID] = uf
	return uf, nil
}

func (s *memStore) DeleteUserFlight(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.uflights[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.uflights, id)
	return nil
}

func (s *memStore) ListUserHotels(_ context.Context, userID int64) ([]models.UserHotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.UserHotel{}
	for _, id := range sortedKeys(s.uhotels) {
		if uh := s.uhotels[id]; uh.UserID == userID {
			out = append(out, uh)
		}
	}
	return out, nil
}

func (s *memStore) GetUserHotel(_ context.Context, id int64) (models.UserHotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uh, ok := s.uhotels[id]
	if !ok {
		return models.UserHotel{}, repository.ErrNotFound
	}
	return uh, nil
}

func (s *memStore) CreateUserHotel(_ context.Context, userID, hotelID int64) (models.UserHotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hotels[hotelID]; !ok {
		return models.UserHotel{}, fmt.Errorf("user_hotels_hotel_id_fkey: %w", repository.ErrConstraint)
	}
	uh := models.UserHotel{ID: s.next("user_hotels"), UserID: userID, HotelID: hotelID}
	s.uhotels[uh.ID] = uh
	return uh, nil
}

func (s *memStore) DeleteUserHotel(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.uhotels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.uhotels, id)
	return nil
}

// password reset codes

func (s *memStore) CreateResetCode(_ context.Context, rc models.PasswordResetCode) (models.PasswordResetCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rc.ID = s.next("password_reset_codes")
	rc.CreatedAt = time.Now().UTC()
	s.codes = append(s.codes, rc)
	return rc, nil
}

func (s *memStore) LatestResetCode(_ context.Context, userID int64) (models.PasswordResetCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.codes) - 1; i >= 0; i-- {
		if s.codes[i].UserID == userID {
			return s.codes[i], nil
		}
	}
	return models.PasswordResetCode{}, repository.ErrNotFound
}

func (s *memStore) ResetPassword(_ context.Context, userID int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[userID] = u
	for i := range s.codes {
		if s.codes[i].UserID == userID {
			s.codes[i].Used = true
		}
	}
	return nil
}
