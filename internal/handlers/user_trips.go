package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/utils"
)

// UserTripsHandler serves the caller's saved flights and hotels
type UserTripsHandler struct {
	saved   SavedStore
	flights FlightStore
	hotels  HotelStore
}

// NewUserTripsHandler creates a new UserTripsHandler instance
func NewUserTripsHandler(saved SavedStore, flights FlightStore, hotels HotelStore) *UserTripsHandler {
	return &UserTripsHandler{saved: saved, flights: flights, hotels: hotels}
}

// ListUserFlights returns the caller's saved flights
// @Summary List saved flights
// @Tags user-trips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserFlight
// @Router /user/flights [get]
func (h *UserTripsHandler) ListUserFlights(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	saved, err := h.saved.ListUserFlights(r.Context(), who.UserID)
	if err != nil {
		writeStoreError(w, err, "Saved flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, saved)
}

// CreateUserFlight saves a flight for the caller
// @Summary Save flight
// @Tags user-trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserFlightRequest true "Flight to save"
// @Success 201 {object} models.UserFlight
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/flights [post]
func (h *UserTripsHandler) CreateUserFlight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var req dto.CreateUserFlightRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.FlightID <= 0 {
		writeValidationError(w, "flight_id is required")
		return
	}
	if _, err := h.flights.GetFlight(r.Context(), req.FlightID); err != nil {
		writeStoreError(w, err, "Flight")
		return
	}

	saved, err := h.saved.CreateUserFlight(r.Context(), who.UserID, req.FlightID)
	if err != nil {
		writeStoreError(w, err, "Saved flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, saved)
}

// GetUserFlight returns one saved flight owned by the caller
// @Summary Get saved flight
// @Tags user-trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Saved flight ID"
// @Success 200 {object} models.UserFlight
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/flights/{id} [get]
func (h *UserTripsHandler) GetUserFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	saved, err := h.saved.GetUserFlight(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Saved flight")
		return
	}
	if !middleware.CanAccessOwned(who, saved.UserID) {
		writeForbidden(w)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, saved)
}

// DeleteUserFlight removes a saved flight owned by the caller
// @Summary Delete saved flight
// @Tags user-trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Saved flight ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/flights/{id} [delete]
func (h *UserTripsHandler) DeleteUserFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	saved, err := h.saved.GetUserFlight(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Saved flight")
		return
	}
	if !middleware.CanAccessOwned(who, saved.UserID) {
		writeForbidden(w)
		return
	}
	if err := h.saved.DeleteUserFlight(r.Context(), id); err != nil {
		writeStoreError(w, err, "Saved flight")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "UserFlight deleted"})
}

// ListUserHotels returns the caller's saved hotels
// @Summary List saved hotels
// @Tags user-trips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserHotel
// @Router /user/hotels [get]
func (h *UserTripsHandler) ListUserHotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	saved, err := h.saved.ListUserHotels(r.Context(), who.UserID)
	if err != nil {
		writeStoreError(w, err, "Saved hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, saved)
}

// CreateUserHotel saves a hotel for the caller
// @Summary Save hotel
// @Tags user-trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserHotelRequest true "Hotel to save"
// @Success 201 {object} models.UserHotel
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/hotels [post]
func (h *UserTripsHandler) CreateUserHotel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var req dto.CreateUserHotelRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.HotelID <= 0 {
		writeValidationError(w, "hotel_id is required")
		return
	}
	if _, err := h.hotels.GetHotel(r.Context(), req.HotelID); err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}

	saved, err := h.saved.CreateUserHotel(r.Context(), who.UserID, req.HotelID)
	if err != nil {
		writeStoreError(w, err, "Saved hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, saved)
}

// GetUserHotel returns one saved hotel owned by the caller
// @Summary Get saved hotel
// @Tags user-trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Saved hotel ID"
// @Success 200 {object} models.UserHotel
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/hotels/{id} [get]
func (h *UserTripsHandler) GetUserHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	saved, err := h.saved.GetUserHotel(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Saved hotel")
		return
	}
	if !middleware.CanAccessOwned(who, saved.UserID) {
		writeForbidden(w)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, saved)
}

// DeleteUserHotel removes a saved hotel owned by the caller
// @Summary Delete saved hotel
// @Tags user-trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Saved hotel ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/hotels/{id} [delete]
func (h *UserTripsHandler) DeleteUserHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	saved, err := h.saved.GetUserHotel(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Saved hotel")
		return
	}
	if !middleware.CanAccessOwned(who, saved.UserID) {
		writeForbidden(w)
		return
	}
	if err := h.saved.DeleteUserHotel(r.Context(), id); err != nil {
		writeStoreError(w, err, "Saved hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "UserHotel deleted"})
}
