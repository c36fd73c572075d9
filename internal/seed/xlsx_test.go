package seed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, flights, hotels [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", FlightsSheet); err != nil {
		t.Fatal(err)
	}
	if hotels != nil {
		if _, err := f.NewSheet(HotelsSheet); err != nil {
			t.Fatal(err)
		}
	}
	write := func(sheet string, rows [][]interface{}) {
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			row := row
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	write(FlightsSheet, flights)
	if hotels != nil {
		write(HotelsSheet, hotels)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestReadWorkbook(t *testing.T) {
	buf := buildWorkbook(t,
		[][]interface{}{
			// columns deliberately out of order
			{"Seats Available", "Flight Number", "Departure City", "Arrival City", "Departure Date", "Arrival Date", "Departure Time", "Price", "Trip Type"},
			{40, "XY100", "Nairobi", "Lamu", "2024-12-01", "2024-12-01T11:30:00", "10:15:00", 8500, "roundtrip"},
			{},
			{12, "XY200", "Lamu", "Nairobi", "2024-12-08", "2024-12-08", "", 8200.5, ""},
		},
		[][]interface{}{
			{"name", "location", "price_per_night", "image_url"},
			{"Peponi Hotel", "Shela, Lamu", 21000, "https://example.com/peponi.jpg"},
		},
	)

	flights, hotels, err := ReadWorkbook(buf)
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	if len(flights) != 2 || len(hotels) != 1 {
		t.Fatalf("got %d flights, %d hotels", len(flights), len(hotels))
	}

	f := flights[0]
	if f.FlightNumber != "XY100" || f.SeatsAvailable != 40 || f.Price != 8500 || f.TripType != "roundtrip" {
		t.Fatalf("flight = %+v", f)
	}
	if f.DepartureTime == nil || *f.DepartureTime != "10:15:00" || f.ArrivalTime != nil {
		t.Fatalf("times = %v / %v", f.DepartureTime, f.ArrivalTime)
	}
	if f.ArrivalDate.Hour() != 11 || f.ArrivalDate.Minute() != 30 {
		t.Fatalf("arrival date = %v", f.ArrivalDate)
	}
	if flights[1].TripType != "oneway" || flights[1].Price != 8200.5 {
		t.Fatalf("second flight = %+v", flights[1])
	}

	h := hotels[0]
	if h.Name != "Peponi Hotel" || h.PricePerNight != 21000 || h.Amenities != nil || h.ImageURL == nil {
		t.Fatalf("hotel = %+v", h)
	}
}

func TestReadWorkbookErrors(t *testing.T) {
	tests := []struct {
		name    string
		flights [][]interface{}
		want    string
	}{
		{
			"missing column",
			[][]interface{}{{"flight_number", "departure_city"}, {"XY1", "Nairobi"}},
			`missing column "arrival_city"`,
		},
		{
			"bad seats",
			[][]interface{}{
				{"flight_number", "departure_city", "arrival_city", "departure_date", "arrival_date", "price", "seats_available"},
				{"XY1", "Nairobi", "Lamu", "2024-12-01", "2024-12-01", 100, "many"},
			},
			"row 2: invalid seats_available",
		},
		{
			"bad date",
			[][]interface{}{
				{"flight_number", "departure_city", "arrival_city", "departure_date", "arrival_date", "price", "seats_available"},
				{"XY1", "Nairobi", "Lamu", "someday", "2024-12-01", 100, 3},
			},
			"row 2: departure_date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadWorkbook(buildWorkbook(t, tt.flights, nil))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
