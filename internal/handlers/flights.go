package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/search"
	"AIRESCAPE_BACK-END/internal/utils"
)

// FlightsHandler serves the flight catalog and itinerary search
type FlightsHandler struct {
	flights FlightStore
	search  config.SearchConfig
}

// NewFlightsHandler creates a new FlightsHandler instance
func NewFlightsHandler(flights FlightStore, cfg config.SearchConfig) *FlightsHandler {
	return &FlightsHandler{flights: flights, search: cfg}
}

// ListFlights searches itineraries, or lists the catalog when no search parameter is given
// @Summary Search flights
// @Description With no query parameters returns every flight (when enabled). Otherwise from, to and outboundDate are required, and returnDate for roundtrip.
// @Tags flights
// @Produce json
// @Param from query string false "Departure city"
// @Param to query string false "Arrival city"
// @Param outboundDate query string false "YYYY-MM-DD"
// @Param returnDate query string false "YYYY-MM-DD, roundtrip only"
// @Param tripType query string false "oneway or roundtrip"
// @Param passengers query int false "Seats needed, default 1"
// @Success 200 {object} dto.FlightSearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /flights [get]
func (h *FlightsHandler) ListFlights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values := r.URL.Query()

	if search.IsEmpty(values) {
		if !h.search.AllowFullListing {
			writeValidationError(w, search.ErrFullListingDisabled.Error()+": from, to and outboundDate are required")
			return
		}
		flights, err := h.flights.ListFlights(r.Context())
		if err != nil {
			writeStoreError(w, err, "Flight")
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, dto.NewFlightResponses(flights))
		return
	}

	q, err := search.ParseQuery(values)
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr.Error())
			return
		}
		writeValidationError(w, err.Error())
		return
	}

	res, err := search.Run(r.Context(), h.flights, q)
	if err != nil {
		writeStoreError(w, err, "Flight")
		return
	}

	response := dto.FlightSearchResponse{OutboundFlights: dto.NewFlightResponses(res.Outbound)}
	if q.RoundTrip() {
		ret := dto.NewFlightResponses(res.Return)
		response.ReturnFlights = &ret
	}
	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// GetFlight returns one flight
// @Summary Get flight
// @Tags flights
// @Produce json
// @Param id path int true "Flight ID"
// @Success 200 {object} dto.FlightResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /flights/{id} [get]
func (h *FlightsHandler) GetFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	flight, err := h.flights.GetFlight(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewFlightResponse(flight))
}

// CreateFlight adds a flight to the catalog
// @Summary Create flight
// @Tags flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFlightRequest true "Flight"
// @Success 201 {object} dto.FlightResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Duplicate flight number"
// @Router /flights [post]
func (h *FlightsHandler) CreateFlight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.CreateFlightRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Price == nil || req.SeatsAvailable == nil {
		writeValidationError(w, "price and seats_available are required")
		return
	}
	tripType := req.TripType
	if tripType == "" {
		tripType = models.TripTypeOneWay
	}

	var flight models.Flight
	msg := applyFlightUpdate(&flight, dto.UpdateFlightRequest{
		FlightNumber:   &req.FlightNumber,
		DepartureCity:  &req.DepartureCity,
		ArrivalCity:    &req.ArrivalCity,
		DepartureDate:  &req.DepartureDate,
		ArrivalDate:    &req.ArrivalDate,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Price:          req.Price,
		SeatsAvailable: req.SeatsAvailable,
		TripType:       &tripType,
	})
	if msg != "" {
		writeValidationError(w, msg)
		return
	}

	created, err := h.flights.CreateFlight(r.Context(), flight)
	if err != nil {
		writeStoreError(w, err, "Flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.NewFlightResponse(created))
}

// UpdateFlight applies a partial update
// @Summary Update flight
// @Tags flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Param request body dto.UpdateFlightRequest true "Fields to change"
// @Success 200 {object} dto.FlightResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /flights/{id} [patch]
func (h *FlightsHandler) UpdateFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}

	var req dto.UpdateFlightRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	flight, err := h.flights.GetFlight(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Flight")
		return
	}
	if msg := applyFlightUpdate(&flight, req); msg != "" {
		writeValidationError(w, msg)
		return
	}

	updated, err := h.flights.UpdateFlight(r.Context(), flight)
	if err != nil {
		writeStoreError(w, err, "Flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewFlightResponse(updated))
}

// DeleteFlight removes a flight with its bookings and saved entries
// @Summary Delete flight
// @Tags flights
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flight ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /flights/{id} [delete]
func (h *FlightsHandler) DeleteFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	if err := h.flights.DeleteFlight(r.Context(), id); err != nil {
		writeStoreError(w, err, "Flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Flight deleted"})
}

// applyFlightUpdate copies the non-nil fields of req onto f and validates the result
func applyFlightUpdate(f *models.Flight, req dto.UpdateFlightRequest) string {
	if req.FlightNumber != nil {
		f.FlightNumber = strings.TrimSpace(*req.FlightNumber)
	}
	if req.DepartureCity != nil {
		f.DepartureCity = strings.TrimSpace(*req.DepartureCity)
	}
	if req.ArrivalCity != nil {
		f.ArrivalCity = strings.TrimSpace(*req.ArrivalCity)
	}
	if req.DepartureDate != nil {
		t, err := utils.ParseTimestamp(*req.DepartureDate)
		if err != nil {
			return "departure_date must be an ISO date (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)"
		}
		f.DepartureDate = t
	}
	if req.ArrivalDate != nil {
		t, err := utils.ParseTimestamp(*req.ArrivalDate)
		if err != nil {
			return "arrival_date must be an ISO date (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)"
		}
		f.ArrivalDate = t
	}
	if req.DepartureTime != nil {
		clock, err := utils.ParseClock(*req.DepartureTime)
		if err != nil {
			return "departure_time must be HH:MM:SS"
		}
		f.DepartureTime = &clock
	}
	if req.ArrivalTime != nil {
		clock, err := utils.ParseClock(*req.ArrivalTime)
		if err != nil {
			return "arrival_time must be HH:MM:SS"
		}
		f.ArrivalTime = &clock
	}
	if req.Price != nil {
		f.Price = *req.Price
	}
	if req.SeatsAvailable != nil {
		f.SeatsAvailable = *req.SeatsAvailable
	}
	if req.TripType != nil {
		f.TripType = strings.ToLower(strings.TrimSpace(*req.TripType))
	}

	switch {
	case f.FlightNumber == "":
		return "flight_number is required"
	case f.DepartureCity == "" || f.ArrivalCity == "":
		return "departure_city and arrival_city are required"
	case f.ArrivalDate.Before(f.DepartureDate):
		return "arrival_date must not be before departure_date"
	case f.Price < 0:
		return "price must not be negative"
	case f.SeatsAvailable < 0:
		return "seats_available must not be negative"
	case !models.ValidTripType(f.TripType):
		return "trip_type must be oneway or roundtrip"
	}
	return ""
}
