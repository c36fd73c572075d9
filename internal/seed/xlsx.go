package seed

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/utils"
)

// Sheet names read by ReadWorkbook
const (
	FlightsSheet = "Flights"
	HotelsSheet  = "Hotels"
)

// ReadWorkbook reads flights and hotels from an .xlsx workbook. Columns are found by
// header name, so their order does not matter. A missing sheet yields no rows.
func ReadWorkbook(r io.Reader) ([]models.Flight, []models.Hotel, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadWorkbookFile is ReadWorkbook for a path on disk
func ReadWorkbookFile(path string) ([]models.Flight, []models.Hotel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]models.Flight, []models.Hotel, error) {
	flights, err := readFlights(f)
	if err != nil {
		return nil, nil, err
	}
	hotels, err := readHotels(f)
	if err != nil {
		return nil, nil, err
	}
	return flights, hotels, nil
}

// sheetRows returns the rows of name, or nil when the sheet is absent
func sheetRows(f *excelize.File, name string) ([][]string, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	return rows, nil
}

// columns maps lower-cased header names to their index
type columns map[string]int

func headerColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

func (c columns) require(sheet string, names ...string) error {
	for _, n := range names {
		if _, ok := c[n]; !ok {
			return fmt.Errorf("sheet %s: missing column %q", sheet, n)
		}
	}
	return nil
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func readFlights(f *excelize.File) ([]models.Flight, error) {
	rows, err := sheetRows(f, FlightsSheet)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	cols := headerColumns(rows[0])
	if err := cols.require(FlightsSheet, "flight_number", "departure_city", "arrival_city",
		"departure_date", "arrival_date", "price", "seats_available"); err != nil {
		return nil, err
	}

	var out []models.Flight
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := i + 2
		fl := models.Flight{
			FlightNumber:  cols.get(row, "flight_number"),
			DepartureCity: cols.get(row, "departure_city"),
			ArrivalCity:   cols.get(row, "arrival_city"),
			TripType:      strings.ToLower(cols.get(row, "trip_type")),
		}
		if fl.TripType == "" {
			fl.TripType = models.TripTypeOneWay
		}
		if !models.ValidTripType(fl.TripType) {
			return nil, fmt.Errorf("%s row %d: invalid trip_type %q", FlightsSheet, line, fl.TripType)
		}

		if fl.DepartureDate, err = utils.ParseTimestamp(cols.get(row, "departure_date")); err != nil {
			return nil, fmt.Errorf("%s row %d: departure_date: %w", FlightsSheet, line, err)
		}
		if fl.ArrivalDate, err = utils.ParseTimestamp(cols.get(row, "arrival_date")); err != nil {
			return nil, fmt.Errorf("%s row %d: arrival_date: %w", FlightsSheet, line, err)
		}
		for _, c := range []struct {
			name string
			dst  **string
		}{{"departure_time", &fl.DepartureTime}, {"arrival_time", &fl.ArrivalTime}} {
			raw := cols.get(row, c.name)
			if raw == "" {
				continue
			}
			clock, err := utils.ParseClock(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %s: %w", FlightsSheet, line, c.name, err)
			}
			*c.dst = &clock
		}

		if fl.Price, err = strconv.ParseFloat(cols.get(row, "price"), 64); err != nil || fl.Price < 0 {
			return nil, fmt.Errorf("%s row %d: invalid price %q", FlightsSheet, line, cols.get(row, "price"))
		}
		if fl.SeatsAvailable, err = strconv.Atoi(cols.get(row, "seats_available")); err != nil || fl.SeatsAvailable < 0 {
			return nil, fmt.Errorf("%s row %d: invalid seats_available %q", FlightsSheet, line, cols.get(row, "seats_available"))
		}
		out = append(out, fl)
	}
	return out, nil
}

func readHotels(f *excelize.File) ([]models.Hotel, error) {
	rows, err := sheetRows(f, HotelsSheet)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	cols := headerColumns(rows[0])
	if err := cols.require(HotelsSheet, "name", "location", "price_per_night"); err != nil {
		return nil, err
	}

	var out []models.Hotel
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		h := models.Hotel{
			Name:     cols.get(row, "name"),
			Location: cols.get(row, "location"),
		}
		price, err := strconv.ParseFloat(cols.get(row, "price_per_night"), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("%s row %d: invalid price_per_night %q", HotelsSheet, i+2, cols.get(row, "price_per_night"))
		}
		h.PricePerNight = price
		if v := cols.get(row, "amenities"); v != "" {
			h.Amenities = &v
		}
		if v := cols.get(row, "image_url"); v != "" {
			h.ImageURL = &v
		}
		out = append(out, h)
	}
	return out, nil
}
