package handlers

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/utils"
)

// HotelsHandler serves the /hotels resource
type HotelsHandler struct {
	hotels HotelStore
}

// NewHotelsHandler creates a new HotelsHandler instance
func NewHotelsHandler(hotels HotelStore) *HotelsHandler {
	return &HotelsHandler{hotels: hotels}
}

// ListHotels returns hotels, optionally filtered by location
// @Summary List hotels
// @Tags hotels
// @Produce json
// @Param location query string false "Case-insensitive location filter"
// @Success 200 {array} dto.HotelResponse
// @Router /hotels [get]
func (h *HotelsHandler) ListHotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hotels, err := h.hotels.ListHotels(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewHotelResponses(hotels))
}

// GetHotel returns one hotel
// @Summary Get hotel
// @Tags hotels
// @Produce json
// @Param id path int true "Hotel ID"
// @Success 200 {object} dto.HotelResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /hotels/{id} [get]
func (h *HotelsHandler) GetHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	hotel, err := h.hotels.GetHotel(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewHotelResponse(hotel))
}

// CreateHotel adds a hotel
// @Summary Create hotel
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHotelRequest true "Hotel"
// @Success 201 {object} dto.HotelResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /hotels [post]
func (h *HotelsHandler) CreateHotel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.CreateHotelRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.PricePerNight == nil {
		writeValidationError(w, "price_per_night is required")
		return
	}

	var hotel models.Hotel
	msg := applyHotelUpdate(&hotel, dto.UpdateHotelRequest{
		Name:          &req.Name,
		Location:      &req.Location,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
		ImageURL:      req.ImageURL,
	})
	if msg != "" {
		writeValidationError(w, msg)
		return
	}

	created, err := h.hotels.CreateHotel(r.Context(), hotel)
	if err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.NewHotelResponse(created))
}

// UpdateHotel applies a partial update
// @Summary Update hotel
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hotel ID"
// @Param request body dto.UpdateHotelRequest true "Fields to change"
// @Success 200 {object} dto.HotelResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /hotels/{id} [patch]
func (h *HotelsHandler) UpdateHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}

	var req dto.UpdateHotelRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	hotel, err := h.hotels.GetHotel(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}
	if msg := applyHotelUpdate(&hotel, req); msg != "" {
		writeValidationError(w, msg)
		return
	}

	updated, err := h.hotels.UpdateHotel(r.Context(), hotel)
	if err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewHotelResponse(updated))
}

// DeleteHotel removes a hotel
// @Summary Delete hotel
// @Tags hotels
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hotel ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /hotels/{id} [delete]
func (h *HotelsHandler) DeleteHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	if err := h.hotels.DeleteHotel(r.Context(), id); err != nil {
		writeStoreError(w, err, "Hotel")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Hotel deleted"})
}

func applyHotelUpdate(h *models.Hotel, req dto.UpdateHotelRequest) string {
	if req.Name != nil {
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		h.Location = strings.TrimSpace(*req.Location)
	}
	if req.PricePerNight != nil {
		h.PricePerNight = *req.PricePerNight
	}
	if req.Amenities != nil {
		h.Amenities = trimmedPtr(req.Amenities)
	}
	if req.ImageURL != nil {
		h.ImageURL = trimmedPtr(req.ImageURL)
	}

	switch {
	case h.Name == "" || h.Location == "":
		return "name and location are required"
	case h.PricePerNight < 0:
		return "price_per_night must not be negative"
	}
	return ""
}
