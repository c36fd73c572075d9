package search

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"AIRESCAPE_BACK-END/internal/models"
)

type sliceCatalog []models.Flight

func (c sliceCatalog) FindFlights(_ context.Context, criteria LegCriteria) ([]models.Flight, error) {
	return Filter(c, criteria), nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testCatalog() sliceCatalog {
	return sliceCatalog{
		{ID: 3, FlightNumber: "KQ103", DepartureCity: "Nairobi", ArrivalCity: "Kisumu", DepartureDate: day("2024-08-15T14:00:00"), SeatsAvailable: 4},
		{ID: 1, FlightNumber: "KQ101", DepartureCity: "Nairobi", ArrivalCity: "Kisumu", DepartureDate: day("2024-08-15T08:00:00"), SeatsAvailable: 120},
		{ID: 2, FlightNumber: "KQ102", DepartureCity: "Kisumu", ArrivalCity: "Nairobi", DepartureDate: day("2024-08-20T09:00:00"), SeatsAvailable: 120},
		{ID: 4, FlightNumber: "KQ104", DepartureCity: "Nairobi", ArrivalCity: "Mombasa", DepartureDate: day("2024-08-15T10:00:00"), SeatsAvailable: 50},
	}
}

func TestLegCriteriaMatches(t *testing.T) {
	f := models.Flight{DepartureCity: " Nairobi ", ArrivalCity: "KISUMU", DepartureDate: day("2024-08-15T23:59:00"), SeatsAvailable: 10}

	tests := []struct {
		name     string
		criteria LegCriteria
		want     bool
	}{
		{"case and space insensitive", LegCriteria{From: "nairobi", To: "kisumu", Date: day("2024-08-15T00:00:00"), MinSeats: 1}, true},
		{"exact seats", LegCriteria{From: "Nairobi", To: "Kisumu", Date: day("2024-08-15T00:00:00"), MinSeats: 10}, true},
		{"too many passengers", LegCriteria{From: "Nairobi", To: "Kisumu", Date: day("2024-08-15T00:00:00"), MinSeats: 11}, false},
		{"other day", LegCriteria{From: "Nairobi", To: "Kisumu", Date: day("2024-08-16T00:00:00"), MinSeats: 1}, false},
		{"reversed cities", LegCriteria{From: "Kisumu", To: "Nairobi", Date: day("2024-08-15T00:00:00"), MinSeats: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Matches(f); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseQueryValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		param string
	}{
		{"missing from", "to=Kisumu&outboundDate=2024-08-15", ParamFrom},
		{"missing to", "from=Nairobi&outboundDate=2024-08-15", ParamTo},
		{"missing outbound date", "from=Nairobi&to=Kisumu", ParamOutboundDate},
		{"bad outbound date", "from=Nairobi&to=Kisumu&outboundDate=15/08/2024", ParamOutboundDate},
		{"bad trip type", "from=Nairobi&to=Kisumu&outboundDate=2024-08-15&tripType=multi", ParamTripType},
		{"zero passengers", "from=Nairobi&to=Kisumu&outboundDate=2024-08-15&passengers=0", ParamPassengers},
		{"roundtrip without return", "from=Nairobi&to=Kisumu&outboundDate=2024-08-15&tripType=roundtrip", ParamReturnDate},
		{"return before outbound", "from=Nairobi&to=Kisumu&outboundDate=2024-08-15&tripType=roundtrip&returnDate=2024-08-14", ParamReturnDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			_, err := ParseQuery(values)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Param != tt.param {
				t.Errorf("param = %q, want %q", verr.Param, tt.param)
			}
		})
	}
}

func TestParseQueryDefaults(t *testing.T) {
	values, _ := url.ParseQuery("from=Nairobi&to=Kisumu&outboundDate=2024-08-15&returnDate=2024-08-01")
	q, err := ParseQuery(values)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if q.TripType != models.TripTypeOneWay || q.Passengers != 1 {
		t.Errorf("defaults = %q/%d", q.TripType, q.Passengers)
	}
	if q.ReturnDate != nil {
		t.Error("returnDate must be ignored for oneway searches")
	}
}

func TestRunPassengersFilter(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()

	values, _ := url.ParseQuery("from=Nairobi&to=Kisumu&outboundDate=2024-08-15&passengers=5")
	q, err := ParseQuery(values)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	res, err := Run(ctx, catalog, q)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Outbound) != 1 || res.Outbound[0].ID != 1 {
		t.Fatalf("outbound = %+v, want only flight 1", res.Outbound)
	}
	if res.Return != nil {
		t.Error("oneway search must not produce a return leg")
	}

	q.Passengers = 121
	res, err = Run(ctx, catalog, q)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Outbound) != 0 {
		t.Errorf("outbound = %+v, want none", res.Outbound)
	}
}

func TestRunRoundTripOrderedByID(t *testing.T) {
	values, _ := url.ParseQuery("from=nairobi&to=kisumu&outboundDate=2024-08-15&tripType=roundtrip&returnDate=2024-08-20")
	q, err := ParseQuery(values)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	res, err := Run(context.Background(), testCatalog(), q)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Outbound) != 2 || res.Outbound[0].ID != 1 || res.Outbound[1].ID != 3 {
		t.Errorf("outbound = %+v, want ids [1 3]", res.Outbound)
	}
	if len(res.Return) != 1 || res.Return[0].ID != 2 {
		t.Errorf("return = %+v, want id 2", res.Return)
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(url.Values{}) {
		t.Error("no params should be empty")
	}
	if !IsEmpty(url.Values{"page": {"2"}}) {
		t.Error("unrelated params should not count")
	}
	if IsEmpty(url.Values{ParamFrom: {""}}) {
		t.Error("a present but blank param is not an empty query")
	}
}
