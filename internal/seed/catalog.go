package seed

import (
	"time"

	"AIRESCAPE_BACK-END/internal/models"
)

func strPtr(s string) *string { return &s }

func flight(number, from, to string, month time.Month, day, hour int, price float64, seats int, tripType string) models.Flight {
	dep := time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
	arr := dep.Add(time.Hour)
	return models.Flight{
		FlightNumber:   number,
		DepartureCity:  from,
		ArrivalCity:    to,
		DepartureDate:  time.Date(2024, month, day, 0, 0, 0, 0, time.UTC),
		ArrivalDate:    time.Date(2024, month, day, 0, 0, 0, 0, time.UTC),
		DepartureTime:  strPtr(dep.Format("15:04:05")),
		ArrivalTime:    strPtr(arr.Format("15:04:05")),
		Price:          price,
		SeatsAvailable: seats,
		TripType:       tripType,
	}
}

func hotel(name, location string, price float64, imageURL, amenities string) models.Hotel {
	return models.Hotel{
		Name:          name,
		Location:      location,
		PricePerNight: price,
		ImageURL:      strPtr(imageURL),
		Amenities:     strPtr(amenities),
	}
}

// DefaultCatalog returns the demo data set: two travelers, one admin, eleven
// Kenyan domestic flights and twelve hotels.
func DefaultCatalog(now time.Time) Catalog {
	const (
		oneway    = models.TripTypeOneWay
		roundtrip = models.TripTypeRoundTrip
	)

	return Catalog{
		Users: []UserSeed{
			{User: models.User{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", Role: models.RoleTraveler, Phone: "1234567890"}, Password: "password"},
			{User: models.User{FirstName: "Bob", LastName: "Smith", Email: "bob@example.com", Role: models.RoleTraveler, Phone: "0987654321"}, Password: "password"},
			{User: models.User{FirstName: "Admin", LastName: "User", Email: "admin@example.com", Role: models.RoleAdmin, Phone: "1122334455"}, Password: "password"},
		},
		Flights: []models.Flight{
			flight("AA123", "Nairobi", "Kisumu", time.August, 15, 10, 7420, 10, oneway),
			flight("BA456", "Mombasa", "Nairobi", time.September, 10, 9, 7000, 80, roundtrip),
			flight("CA789", "Eldoret", "Nairobi", time.October, 5, 8, 8025, 6, oneway),
			flight("DA321", "Nairobi", "Mombasa", time.November, 20, 7, 9940, 12, oneway),
			flight("EA654", "Kisumu", "Nairobi", time.December, 1, 6, 9560, 12, roundtrip),
			flight("FA987", "Nairobi", "Eldoret", time.December, 10, 5, 6999, 7, oneway),
			flight("GA123", "Mombasa", "Kisumu", time.December, 15, 4, 7500, 5, roundtrip),
			flight("HA456", "Kisumu", "Eldoret", time.December, 20, 3, 8175, 9, oneway),
			flight("IA789", "Eldoret", "Mombasa", time.December, 25, 2, 7999, 50, roundtrip),
			flight("JA321", "Nairobi", "Nakuru", time.December, 30, 1, 6400, 11, oneway),
			flight("KA654", "Nakuru", "Nairobi", time.December, 31, 0, 6740, 15, roundtrip),
		},
		Hotels: []models.Hotel{
			hotel("Southern Palms Beach Resort", "Diani Beach Road Diani, Ukunda", 25000,
				"https://cf.bstatic.com/xdata/images/hotel/max1024x768/221320289.jpg",
				"2 outdoor swimming pools, Free on-site parking, Air conditioning, Private Bathroom, Free Wifi, Room service, Family rooms, 5 restaurants, Breakfast, Spa, Gym"),
			hotel("Kilili Baharini Resort & Spa", "Casuarina Road, Malindi, Kenya", 18000,
				"https://www.kililibaharini.com/wp-content/uploads/2019/11/mainpool-slide.jpg",
				"Beach Access, Free Breakfast, Gym, Free Parking"),
			hotel("Hemingways Watamu", "Watamu, Kenya", 15000,
				"https://www.shadesofafricasafaris.com/images/hemingways-watamu4.jpg",
				"2 swimming pools, Free Wifi, Beachfront, Family rooms, Airport shuttle, Restaurant, Fitness center, Bar, Free Breakfast"),
			hotel("Mnarani Beach Club", "Kilifi, Kenya", 15000,
				"https://dynamic-media-cdn.tripadvisor.com/media/photo-o/2b/61/9a/9d/caption.jpg",
				"Free WiFi, Gym, Valet Parking, Restaurant"),
			hotel("Movenpick Hotel & Residences Nairobi", "Nairobi, Kenya", 29000,
				"https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRoJx9UPSgJCe-qvNHQ0bVD3U6oX5NI-be40A&s",
				"Free WiFi, Airport shuttle, Sauna, Fitness center Gym, Tea/coffee maker in all rooms, Free Parking"),
			hotel("Villa Rosa Kempinski Nairobi", "Chiromo Road, Nairobi, Kenya", 25000,
				"https://cf.bstatic.com/xdata/images/hotel/max1024x768/43569297.jpg",
				"9 treatment rooms, jacuzzi, sauna, steam room, heated swimming pool, gym"),
			hotel("Sarova Imperial Kisumu", "Achieng' Oneko Rd, Kisumu", 15000,
				"https://dynamic-media-cdn.tripadvisor.com/media/photo-o/27/57/9b/66/imperial-hotel.jpg",
				"Free WiFi, Airport shuttle, Fitness center Gym, Facilities for disabled guests, Free Parking"),
			hotel("Eka Hotel, Eldoret", "Eldoret, Kenya", 13000,
				"https://tembeatujengekenya.com/wp-content/uploads/2022/05/DJI_0968.jpg",
				"TV with DSTV, high-speed Wi-fi, minibar, safety deposit box, coffee/tea making facilities"),
			hotel("Lake Nakuru Lodge", "Lake Nakuru National Park, Kenya", 10000,
				"https://dynamic-media-cdn.tripadvisor.com/media/photo-o/1a/bf/51/8f/lake-nakuru-lodge.jpg",
				"Free WiFi, seating area, flat-screen TV, private bathroom"),
			hotel("Little Governors' Camp", "Maasai Mara National Reserve, Kenya", 30000,
				"https://dynamic-media-cdn.tripadvisor.com/media/photo-o/2b/33/57/d6/caption.jpg",
				"Restaurant, 2 bars, free buffet breakfast, free WiFi in public areas, free self parking, laundry"),
			hotel("The Majlis Resort", "Lamu, Kenya", 15000,
				"https://cf.bstatic.com/xdata/images/hotel/max1024x768/263081767.jpg",
				"Free WiFi, Airport shuttle, Fitness center Gym, minibar, air conditioning, Free Parking"),
			hotel("Enashipai Resort & Spa", "Moi S Lake Rd, Naivasha", 12000,
				"https://media-cdn.tripadvisor.com/media/photo-s/12/50/82/63/aerial-view-of-enashipai.jpg",
				"Free WiFi, Airport shuttle, Fitness center Gym, minibar, air conditioning, Free Parking"),
		},
		Bookings: []BookingSeed{
			{User: 0, Flight: 0, Hotel: -1, TotalPrice: 1000, Status: models.BookingStatusConfirmed, BookingDate: now},
			{User: 1, Flight: -1, Hotel: 0, TotalPrice: 1500, Status: models.BookingStatusPending, BookingDate: now},
		},
		UserFlights: []Link{{User: 0, Target: 0}, {User: 1, Target: 1}, {User: 0, Target: 2}, {User: 1, Target: 3}},
		UserHotels:  []Link{{User: 0, Target: 0}, {User: 1, Target: 1}, {User: 0, Target: 2}, {User: 1, Target: 3}},
	}
}
