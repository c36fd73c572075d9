package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/search"
)

const flightColumns = `id, flight_number, departure_city, arrival_city, departure_date, arrival_date,
	to_char(departure_time, 'HH24:MI:SS'), to_char(arrival_time, 'HH24:MI:SS'),
	price, seats_available, trip_type`

func scanFlight(row pgx.Row) (models.Flight, error) {
	var f models.Flight
	err := row.Scan(
		&f.ID,
		&f.FlightNumber,
		&f.DepartureCity,
		&f.ArrivalCity,
		&f.DepartureDate,
		&f.ArrivalDate,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.Price,
		&f.SeatsAvailable,
		&f.TripType,
	)
	return f, err
}

func (s *Store) queryFlights(ctx context.Context, sql string, args ...any) ([]models.Flight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	flights := []models.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// ListFlights returns the whole catalog ordered by id
func (s *Store) ListFlights(ctx context.Context) ([]models.Flight, error) {
	return s.queryFlights(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
}

// route expressions covered by idx_flights_route_trimmed_day
const (
	departureCityKey = `lower(btrim(departure_city))`
	arrivalCityKey   = `lower(btrim(arrival_city))`
	departureDayKey  = `(departure_date::date)`
)

const findFlightsQuery = `
		SELECT ` + flightColumns + `
		FROM flights
		WHERE ` + departureCityKey + ` = lower(btrim($1))
		  AND ` + arrivalCityKey + ` = lower(btrim($2))
		  AND ` + departureDayKey + ` = $3::date
		  AND seats_available >= $4
		ORDER BY id`

// FindFlights returns flights matching one itinerary leg, ordered by id
func (s *Store) FindFlights(ctx context.Context, c search.LegCriteria) ([]models.Flight, error) {
	return s.queryFlights(ctx, findFlightsQuery, c.From, c.To, c.Date.Format("2006-01-02"), c.MinSeats)
}

// GetFlight returns the flight with the given id
func (s *Store) GetFlight(ctx context.Context, id int64) (models.Flight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	f, err := scanFlight(s.pool.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`, id))
	return f, classify(err)
}

// CreateFlight inserts a flight
func (s *Store) CreateFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		INSERT INTO flights (flight_number, departure_city, arrival_city, departure_date, arrival_date,
		                     departure_time, arrival_time, price, seats_available, trip_type)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, $8, $9, $10)
		RETURNING `+flightColumns,
		f.FlightNumber, f.DepartureCity, f.ArrivalCity, f.DepartureDate, f.ArrivalDate,
		f.DepartureTime, f.ArrivalTime, f.Price, f.SeatsAvailable, f.TripType,
	)
	created, err := scanFlight(row)
	return created, classify(err)
}

// UpdateFlight writes every mutable column of f
func (s *Store) UpdateFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		UPDATE flights
		SET flight_number = $2, departure_city = $3, arrival_city = $4, departure_date = $5,
		    arrival_date = $6, departure_time = $7::time, arrival_time = $8::time,
		    price = $9, seats_available = $10, trip_type = $11
		WHERE id = $1
		RETURNING `+flightColumns,
		f.ID, f.FlightNumber, f.DepartureCity, f.ArrivalCity, f.DepartureDate, f.ArrivalDate,
		f.DepartureTime, f.ArrivalTime, f.Price, f.SeatsAvailable, f.TripType,
	)
	updated, err := scanFlight(row)
	return updated, classify(err)
}

// DeleteFlight removes a flight and, through cascades, its bookings and saved entries
func (s *Store) DeleteFlight(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
