package models

// Hotel is a bookable property
type Hotel struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Location      string  `json:"location" db:"location"`
	PricePerNight float64 `json:"price_per_night" db:"price_per_night"`
	Amenities     *string `json:"amenities" db:"amenities"`
	ImageURL      *string `json:"image_url" db:"image_url"`
}
