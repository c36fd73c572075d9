package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/tickets"
	"AIRESCAPE_BACK-END/internal/utils"
)

// TicketRenderer renders a booking e-ticket
type TicketRenderer interface {
	Render(t tickets.Ticket) ([]byte, error)
}

// BookingsHandler serves the /bookings resource
type BookingsHandler struct {
	bookings BookingStore
	flights  FlightStore
	hotels   HotelStore
	users    UserStore
	tickets  TicketRenderer
	mailer   utils.Mailer
}

// NewBookingsHandler creates a new BookingsHandler instance. mailer may be nil.
func NewBookingsHandler(bookings BookingStore, flights FlightStore, hotels HotelStore, users UserStore, renderer TicketRenderer, mailer utils.Mailer) *BookingsHandler {
	return &BookingsHandler{
		bookings: bookings,
		flights:  flights,
		hotels:   hotels,
		users:    users,
		tickets:  renderer,
		mailer:   mailer,
	}
}

// CreateBooking books seats on a flight or nights at a hotel for the caller
// @Summary Create booking
// @Description Flight bookings reserve seats atomically. total_price defaults to price x seats or price_per_night x nights.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Not enough seats"
// @Router /bookings [post]
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	booking := models.Booking{
		UserID:        who.UserID,
		BookingDate:   time.Now().UTC().Truncate(time.Second),
		BookingType:   strings.ToLower(strings.TrimSpace(req.BookingType)),
		BookingStatus: models.BookingStatusPending,
		Seats:         1,
	}

	if req.UserID != nil && *req.UserID != who.UserID {
		if !who.IsAdmin() {
			writeForbidden(w)
			return
		}
		if _, err := h.users.GetUser(r.Context(), *req.UserID); err != nil {
			writeStoreError(w, err, "User")
			return
		}
		booking.UserID = *req.UserID
	}

	if req.BookingStatus != nil {
		status := strings.ToLower(strings.TrimSpace(*req.BookingStatus))
		if !models.ValidBookingStatus(status) || status == models.BookingStatusCancelled {
			writeValidationError(w, "booking_status must be pending or confirmed")
			return
		}
		booking.BookingStatus = status
	}
	if req.TotalPrice != nil && *req.TotalPrice < 0 {
		writeValidationError(w, "total_price must not be negative")
		return
	}

	var summary string
	switch booking.BookingType {
	case models.BookingTypeFlight:
		if req.FlightID == nil || req.HotelID != nil || req.Nights != nil {
			writeValidationError(w, "flight bookings take flight_id and seats only")
			return
		}
		if req.Seats != nil {
			if *req.Seats < 1 {
				writeValidationError(w, "seats must be at least 1")
				return
			}
			booking.Seats = *req.Seats
		}
		flight, err := h.flights.GetFlight(r.Context(), *req.FlightID)
		if err != nil {
			writeStoreError(w, err, "Flight")
			return
		}
		booking.FlightID = &flight.ID
		booking.TotalPrice = flight.Price * float64(booking.Seats)
		summary = fmt.Sprintf("Flight %s from %s to %s on %s, %d seat(s).",
			flight.FlightNumber, flight.DepartureCity, flight.ArrivalCity, utils.FormatDate(flight.DepartureDate), booking.Seats)

	case models.BookingTypeHotel:
		if req.HotelID == nil || req.FlightID != nil || req.Seats != nil {
			writeValidationError(w, "hotel bookings take hotel_id and nights only")
			return
		}
		nights := 1
		if req.Nights != nil {
			if *req.Nights < 1 {
				writeValidationError(w, "nights must be at least 1")
				return
			}
			nights = *req.Nights
		}
		hotel, err := h.hotels.GetHotel(r.Context(), *req.HotelID)
		if err != nil {
			writeStoreError(w, err, "Hotel")
			return
		}
		booking.HotelID = &hotel.ID
		booking.TotalPrice = hotel.PricePerNight * float64(nights)
		summary = fmt.Sprintf("%s, %s: %d night(s).", hotel.Name, hotel.Location, nights)

	default:
		writeValidationError(w, "booking_type must be flight or hotel")
		return
	}

	if req.TotalPrice != nil {
		booking.TotalPrice = *req.TotalPrice
	}

	created, err := h.bookings.CreateBooking(r.Context(), booking)
	if err != nil {
		writeStoreError(w, err, "Booking")
		return
	}

	h.sendConfirmation(created, summary)
	utils.WriteJSONResponse(w, http.StatusCreated, dto.NewBookingResponse(created))
}

// sendConfirmation emails the booking owner in the background
func (h *BookingsHandler) sendConfirmation(b models.Booking, summary string) {
	if h.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := h.users.GetUser(ctx, b.UserID)
		if err != nil {
			log.Printf("booking %d confirmation: load user: %v", b.ID, err)
			return
		}
		body := fmt.Sprintf("%s\nTotal: %.2f\nStatus: %s", summary, b.TotalPrice, b.BookingStatus)
		if err := h.mailer.SendBookingConfirmation(user.Email, user.FirstName, b.ID, body); err != nil {
			log.Printf("booking %d confirmation: %v", b.ID, err)
		}
	}()
}

// ListBookings returns the caller's bookings, or every booking for admins
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.BookingResponse
// @Router /bookings [get]
func (h *BookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}

	var owner *int64
	if !who.IsAdmin() {
		owner = &who.UserID
	}
	bookings, err := h.bookings.ListBookings(r.Context(), owner)
	if err != nil {
		writeStoreError(w, err, "Booking")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewBookingResponses(bookings))
}

// loadOwned fetches the :id booking and checks the caller may act on it
func (h *BookingsHandler) loadOwned(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (models.Booking, middleware.Identity, bool) {
	who, ok := caller(w, r)
	if !ok {
		return models.Booking{}, who, false
	}
	id, ok := pathID(w, ps)
	if !ok {
		return models.Booking{}, who, false
	}
	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Booking")
		return models.Booking{}, who, false
	}
	if !middleware.CanAccessOwned(who, booking.UserID) {
		writeForbidden(w)
		return models.Booking{}, who, false
	}
	return booking, who, true
}

// GetBooking returns one booking
// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingsHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, _, ok := h.loadOwned(w, r, ps)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewBookingResponse(booking))
}

// UpdateBooking changes a booking's status. Travelers may only cancel.
// @Summary Update booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "New status"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /bookings/{id} [patch]
func (h *BookingsHandler) UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, who, ok := h.loadOwned(w, r, ps)
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.BookingStatus == nil {
		writeValidationError(w, "booking_status is required")
		return
	}
	status := strings.ToLower(strings.TrimSpace(*req.BookingStatus))
	if !models.ValidBookingStatus(status) {
		writeValidationError(w, "booking_status must be pending, confirmed or cancelled")
		return
	}
	if !who.IsAdmin() && status != models.BookingStatusCancelled {
		writeForbidden(w)
		return
	}
	if status == booking.BookingStatus {
		utils.WriteJSONResponse(w, http.StatusOK, dto.NewBookingResponse(booking))
		return
	}

	updated, err := h.bookings.UpdateBookingStatus(r.Context(), booking.ID, status)
	if err != nil {
		writeStoreError(w, err, "Booking")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewBookingResponse(updated))
}

// DeleteBooking removes a booking, returning its seats to the flight
// @Summary Delete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingsHandler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, _, ok := h.loadOwned(w, r, ps)
	if !ok {
		return
	}
	if err := h.bookings.DeleteBooking(r.Context(), booking.ID); err != nil {
		writeStoreError(w, err, "Booking")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Booking deleted"})
}

// DownloadTicket renders the booking e-ticket
// @Summary Download e-ticket
// @Tags bookings
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Booking is cancelled"
// @Router /bookings/{id}/ticket [get]
func (h *BookingsHandler) DownloadTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, _, ok := h.loadOwned(w, r, ps)
	if !ok {
		return
	}
	if booking.BookingStatus == models.BookingStatusCancelled {
		utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Booking cancelled", "No ticket is issued for a cancelled booking")
		return
	}

	ticket := tickets.Ticket{Booking: booking, IssuedAt: time.Now().UTC()}
	passenger, err := h.users.GetUser(r.Context(), booking.UserID)
	if err != nil {
		writeStoreError(w, err, "User")
		return
	}
	ticket.Passenger = passenger

	if booking.FlightID != nil {
		flight, err := h.flights.GetFlight(r.Context(), *booking.FlightID)
		if err != nil {
			writeStoreError(w, err, "Flight")
			return
		}
		ticket.Flight = &flight
	}
	if booking.HotelID != nil {
		hotel, err := h.hotels.GetHotel(r.Context(), *booking.HotelID)
		if err != nil {
			writeStoreError(w, err, "Hotel")
			return
		}
		ticket.Hotel = &hotel
	}

	pdf, err := h.tickets.Render(ticket)
	if err != nil {
		log.Printf("render ticket for booking %d: %v", booking.ID, err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate ticket", "Something went wrong")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=airescape-ticket-"+strconv.FormatInt(booking.ID, 10)+".pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("write ticket: %v", err)
	}
}
