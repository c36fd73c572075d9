package repository

import (
	"context"

	"AIRESCAPE_BACK-END/internal/models"
)

// ListUserFlights returns the flights a user has saved
func (s *Store) ListUserFlights(ctx context.Context, userID int64) ([]models.UserFlight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `SELECT id, user_id, flight_id FROM user_flights WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	saved := []models.UserFlight{}
	for rows.Next() {
		var uf models.UserFlight
		if err := rows.Scan(&uf.ID, &uf.UserID, &uf.FlightID); err != nil {
			return nil, err
		}
		saved = append(saved, uf)
	}
	return saved, rows.Err()
}

// GetUserFlight returns one saved flight entry
func (s *Store) GetUserFlight(ctx context.Context, id int64) (models.UserFlight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var uf models.UserFlight
	err := s.pool.QueryRow(ctx, `SELECT id, user_id, flight_id FROM user_flights WHERE id = $1`, id).
		Scan(&uf.ID, &uf.UserID, &uf.FlightID)
	return uf, classify(err)
}

// CreateUserFlight saves a flight for a user
func (s *Store) CreateUserFlight(ctx context.Context, userID, flightID int64) (models.UserFlight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uf := models.UserFlight{UserID: userID, FlightID: flightID}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_flights (user_id, flight_id) VALUES ($1, $2) RETURNING id`, userID, flightID).Scan(&uf.ID)
	return uf, classify(err)
}

// DeleteUserFlight removes a saved flight entry
func (s *Store) DeleteUserFlight(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM user_flights WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserHotels returns the hotels a user has saved
func (s *Store) ListUserHotels(ctx context.Context, userID int64) ([]models.UserHotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `SELECT id, user_id, hotel_id FROM user_hotels WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	saved := []models.UserHotel{}
	for rows.Next() {
		var uh models.UserHotel
		if err := rows.Scan(&uh.ID, &uh.UserID, &uh.HotelID); err != nil {
			return nil, err
		}
		saved = append(saved, uh)
	}
	return saved, rows.Err()
}

// GetUserHotel returns one saved hotel entry
func (s *Store) GetUserHotel(ctx context.Context, id int64) (models.UserHotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var uh models.UserHotel
	err := s.pool.QueryRow(ctx, `SELECT id, user_id, hotel_id FROM user_hotels WHERE id = $1`, id).
		Scan(&uh.ID, &uh.UserID, &uh.HotelID)
	return uh, classify(err)
}

// CreateUserHotel saves a hotel for a user
func (s *Store) CreateUserHotel(ctx context.Context, userID, hotelID int64) (models.UserHotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	uh := models.UserHotel{UserID: userID, HotelID: hotelID}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_hotels (user_id, hotel_id) VALUES ($1, $2) RETURNING id`, userID, hotelID).Scan(&uh.ID)
	return uh, classify(err)
}

// DeleteUserHotel removes a saved hotel entry
func (s *Store) DeleteUserHotel(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM user_hotels WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
