package dto

import (
	"AIRESCAPE_BACK-END/internal/models"
)

// CreateHotelRequest represents the payload for POST /hotels
type CreateHotelRequest struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	PricePerNight *float64 `json:"price_per_night"`
	Amenities     *string  `json:"amenities,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// UpdateHotelRequest lists the hotel fields PATCH /hotels/{id} may change
type UpdateHotelRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	PricePerNight *float64 `json:"price_per_night"`
	Amenities     *string  `json:"amenities"`
	ImageURL      *string  `json:"image_url"`
}

// HotelResponse represents a hotel in API responses
type HotelResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"price_per_night"`
	Amenities     *string `json:"amenities"`
	ImageURL      *string `json:"image_url"`
}

// NewHotelResponse converts a models.Hotel
func NewHotelResponse(h models.Hotel) HotelResponse {
	return HotelResponse{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		PricePerNight: h.PricePerNight,
		Amenities:     h.Amenities,
		ImageURL:      h.ImageURL,
	}
}

// NewHotelResponses converts a slice, never returning nil
func NewHotelResponses(hotels []models.Hotel) []HotelResponse {
	out := make([]HotelResponse, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, NewHotelResponse(h))
	}
	return out
}
