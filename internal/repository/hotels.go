package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"AIRESCAPE_BACK-END/internal/models"
)

const hotelColumns = `id, name, location, price_per_night, amenities, image_url`

func scanHotel(row pgx.Row) (models.Hotel, error) {
	var h models.Hotel
	err := row.Scan(&h.ID, &h.Name, &h.Location, &h.PricePerNight, &h.Amenities, &h.ImageURL)
	return h, err
}

// ListHotels returns hotels ordered by id, optionally filtered by a case-insensitive location substring
func (s *Store) ListHotels(ctx context.Context, location string) ([]models.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sql := `SELECT ` + hotelColumns + ` FROM hotels`
	args := []any{}
	if location = strings.TrimSpace(location); location != "" {
		sql += ` WHERE location ILIKE '%' || $1 || '%'`
		args = append(args, location)
	}
	sql += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	hotels := []models.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// GetHotel returns the hotel with the given id
func (s *Store) GetHotel(ctx context.Context, id int64) (models.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	h, err := scanHotel(s.pool.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, id))
	return h, classify(err)
}

// CreateHotel inserts a hotel
func (s *Store) CreateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		INSERT INTO hotels (name, location, price_per_night, amenities, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+hotelColumns,
		h.Name, h.Location, h.PricePerNight, h.Amenities, h.ImageURL,
	)
	created, err := scanHotel(row)
	return created, classify(err)
}

// UpdateHotel writes every mutable column of h
func (s *Store) UpdateHotel(ctx context.Context, h models.Hotel) (models.Hotel, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		UPDATE hotels
		SET name = $2, location = $3, price_per_night = $4, amenities = $5, image_url = $6
		WHERE id = $1
		RETURNING `+hotelColumns,
		h.ID, h.Name, h.Location, h.PricePerNight, h.Amenities, h.ImageURL,
	)
	updated, err := scanHotel(row)
	return updated, classify(err)
}

// DeleteHotel removes a hotel and its dependent rows
func (s *Store) DeleteHotel(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
