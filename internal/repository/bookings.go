package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"AIRESCAPE_BACK-END/internal/models"
)

const bookingColumns = `id, user_id, booking_date, total_price, booking_type, booking_status, seats, flight_id, hotel_id`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.BookingDate,
		&b.TotalPrice,
		&b.BookingType,
		&b.BookingStatus,
		&b.Seats,
		&b.FlightID,
		&b.HotelID,
	)
	return b, err
}

// reserveSeats decrements seats_available only if enough seats remain
func reserveSeats(ctx context.Context, tx pgx.Tx, flightID int64, seats int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE flights
		SET seats_available = seats_available - $1
		WHERE id = $2 AND seats_available >= $1`,
		seats, flightID,
	)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id = $1)`, flightID).Scan(&exists); err != nil {
		return classify(err)
	}
	if !exists {
		return fmt.Errorf("%w: flight %d", ErrNotFound, flightID)
	}
	return ErrInsufficientSeats
}

func releaseSeats(ctx context.Context, tx pgx.Tx, flightID int64, seats int) error {
	_, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available + $1 WHERE id = $2`, seats, flightID)
	return classify(err)
}

// CreateBooking records a booking. Flight bookings reserve their seats in the same transaction.
func (s *Store) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if b.HoldsSeats() {
		if err := reserveSeats(ctx, tx, *b.FlightID, b.Seats); err != nil {
			return models.Booking{}, err
		}
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, booking_date, total_price, booking_type, booking_status, seats, flight_id, hotel_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+bookingColumns,
		b.UserID, b.BookingDate, b.TotalPrice, b.BookingType, b.BookingStatus, b.Seats, b.FlightID, b.HotelID,
	)
	created, err := scanBooking(row)
	if err != nil {
		return models.Booking{}, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Booking{}, fmt.Errorf("failed to commit booking: %w", err)
	}
	return created, nil
}

// GetBooking returns the booking with the given id
func (s *Store) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := scanBooking(s.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	return b, classify(err)
}

// ListBookings returns bookings ordered by id. A nil userID lists every booking.
func (s *Store) ListBookings(ctx context.Context, userID *int64) ([]models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if userID == nil {
		rows, err = s.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id`)
	} else {
		rows, err = s.pool.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY id`, *userID)
	}
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus changes the status of a booking, releasing or re-reserving flight seats
// when it moves into or out of cancelled.
func (s *Store) UpdateBookingStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return models.Booking{}, classify(err)
	}

	next := current
	next.BookingStatus = status
	switch {
	case current.HoldsSeats() && !next.HoldsSeats():
		err = releaseSeats(ctx, tx, *current.FlightID, current.Seats)
	case !current.HoldsSeats() && next.HoldsSeats():
		err = reserveSeats(ctx, tx, *next.FlightID, next.Seats)
	}
	if err != nil {
		return models.Booking{}, err
	}

	updated, err := scanBooking(tx.QueryRow(ctx,
		`UPDATE bookings SET booking_status = $2 WHERE id = $1 RETURNING `+bookingColumns, id, status))
	if err != nil {
		return models.Booking{}, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Booking{}, fmt.Errorf("failed to commit booking update: %w", err)
	}
	return updated, nil
}

// DeleteBooking removes a booking and returns any seats it held
func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleted, err := scanBooking(tx.QueryRow(ctx, `DELETE FROM bookings WHERE id = $1 RETURNING `+bookingColumns, id))
	if err != nil {
		return classify(err)
	}
	if deleted.HoldsSeats() {
		if err := releaseSeats(ctx, tx, *deleted.FlightID, deleted.Seats); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking delete: %w", err)
	}
	return nil
}
