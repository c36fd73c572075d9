// Package search resolves itinerary queries against the flight catalog.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/utils"
)

// Query parameter names accepted by GET /flights
const (
	ParamFrom         = "from"
	ParamTo           = "to"
	ParamOutboundDate = "outboundDate"
	ParamReturnDate   = "returnDate"
	ParamTripType     = "tripType"
	ParamPassengers   = "passengers"
)

var queryParams = []string{ParamFrom, ParamTo, ParamOutboundDate, ParamReturnDate, ParamTripType, ParamPassengers}

// ErrFullListingDisabled is returned for an empty query when listing the whole catalog is turned off
var ErrFullListingDisabled = errors.New("full flight listing is disabled")

// ValidationError describes a malformed search query
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Message)
}

// Query is a parsed itinerary search
type Query struct {
	From         string
	To           string
	OutboundDate time.Time
	ReturnDate   *time.Time
	TripType     string
	Passengers   int
}

// RoundTrip reports whether a return leg was requested
func (q Query) RoundTrip() bool {
	return q.TripType == models.TripTypeRoundTrip
}

// Outbound returns the criteria for the outbound leg
func (q Query) Outbound() LegCriteria {
	return LegCriteria{From: q.From, To: q.To, Date: q.OutboundDate, MinSeats: q.Passengers}
}

// Return returns the criteria for the return leg, with the cities swapped
func (q Query) Return() (LegCriteria, bool) {
	if !q.RoundTrip() || q.ReturnDate == nil {
		return LegCriteria{}, false
	}
	return LegCriteria{From: q.To, To: q.From, Date: *q.ReturnDate, MinSeats: q.Passengers}, true
}

// LegCriteria selects flights for one leg of an itinerary
type LegCriteria struct {
	From     string
	To       string
	Date     time.Time
	MinSeats int
}

// Matches reports whether f satisfies the criteria.
// Cities compare case-insensitively after trimming, dates by calendar day.
func (c LegCriteria) Matches(f models.Flight) bool {
	return sameCity(f.DepartureCity, c.From) &&
		sameCity(f.ArrivalCity, c.To) &&
		utils.SameDay(f.DepartureDate, c.Date) &&
		f.SeatsAvailable >= c.MinSeats
}

func sameCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// IsEmpty reports whether none of the search parameters are present
func IsEmpty(values url.Values) bool {
	for _, p := range queryParams {
		if _, ok := values[p]; ok {
			return false
		}
	}
	return true
}

// ParseQuery validates the query string of GET /flights
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		From:     strings.TrimSpace(values.Get(ParamFrom)),
		To:       strings.TrimSpace(values.Get(ParamTo)),
		TripType: strings.ToLower(strings.TrimSpace(values.Get(ParamTripType))),
	}

	if q.From == "" {
		return Query{}, &ValidationError{Param: ParamFrom, Message: "is required"}
	}
	if q.To == "" {
		return Query{}, &ValidationError{Param: ParamTo, Message: "is required"}
	}

	raw := strings.TrimSpace(values.Get(ParamOutboundDate))
	if raw == "" {
		return Query{}, &ValidationError{Param: ParamOutboundDate, Message: "is required"}
	}
	outbound, err := utils.ParseDate(raw)
	if err != nil {
		return Query{}, &ValidationError{Param: ParamOutboundDate, Message: "must be a date in YYYY-MM-DD format"}
	}
	q.OutboundDate = outbound

	if q.TripType == "" {
		q.TripType = models.TripTypeOneWay
	}
	if !models.ValidTripType(q.TripType) {
		return Query{}, &ValidationError{Param: ParamTripType, Message: "must be oneway or roundtrip"}
	}

	q.Passengers = 1
	if raw := strings.TrimSpace(values.Get(ParamPassengers)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Query{}, &ValidationError{Param: ParamPassengers, Message: "must be a positive integer"}
		}
		q.Passengers = n
	}

	if q.RoundTrip() {
		raw := strings.TrimSpace(values.Get(ParamReturnDate))
		if raw == "" {
			return Query{}, &ValidationError{Param: ParamReturnDate, Message: "is required for roundtrip searches"}
		}
		ret, err := utils.ParseDate(raw)
		if err != nil {
			return Query{}, &ValidationError{Param: ParamReturnDate, Message: "must be a date in YYYY-MM-DD format"}
		}
		if ret.Before(q.OutboundDate) {
			return Query{}, &ValidationError{Param: ParamReturnDate, Message: "must not be before outboundDate"}
		}
		q.ReturnDate = &ret
	}

	return q, nil
}

// Catalog is the flight source searched by Run
type Catalog interface {
	FindFlights(ctx context.Context, criteria LegCriteria) ([]models.Flight, error)
}

// Result holds the flights matching each leg. Return is nil for one-way searches.
type Result struct {
	Outbound []models.Flight
	Return   []models.Flight
}

// Run resolves q against the catalog
func Run(ctx context.Context, catalog Catalog, q Query) (Result, error) {
	outbound, err := catalog.FindFlights(ctx, q.Outbound())
	if err != nil {
		return Result{}, fmt.Errorf("outbound leg: %w", err)
	}
	res := Result{Outbound: sortByID(outbound)}

	if leg, ok := q.Return(); ok {
		ret, err := catalog.FindFlights(ctx, leg)
		if err != nil {
			return Result{}, fmt.Errorf("return leg: %w", err)
		}
		res.Return = sortByID(ret)
		if res.Return == nil {
			res.Return = []models.Flight{}
		}
	}
	return res, nil
}

// Filter applies criteria to an in-memory slice, preserving id order
func Filter(flights []models.Flight, criteria LegCriteria) []models.Flight {
	out := []models.Flight{}
	for _, f := range flights {
		if criteria.Matches(f) {
			out = append(out, f)
		}
	}
	return sortByID(out)
}

func sortByID(flights []models.Flight) []models.Flight {
	sort.SliceStable(flights, func(i, j int) bool { return flights[i].ID < flights[j].ID })
	return flights
}
