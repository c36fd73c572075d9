package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/mpesa"
	"AIRESCAPE_BACK-END/internal/utils"
)

// PaymentGateway starts a mobile-money push payment
type PaymentGateway interface {
	STKPush(ctx context.Context, phone string, amount int) (*mpesa.STKPushResult, error)
}

// PaymentsHandler serves POST /stkpush
type PaymentsHandler struct {
	gateway PaymentGateway
}

// NewPaymentsHandler creates a new PaymentsHandler instance
func NewPaymentsHandler(gateway PaymentGateway) *PaymentsHandler {
	return &PaymentsHandler{gateway: gateway}
}

// STKPush prompts the payer's phone for an M-Pesa payment
// @Summary Initiate M-Pesa STK push
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.STKPushRequest true "Phone and whole-shilling amount"
// @Success 200 {object} dto.STKPushResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or payment failed"
// @Failure 429 {object} dto.ErrorResponse
// @Router /stkpush [post]
func (h *PaymentsHandler) STKPush(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.STKPushRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	phone, err := mpesa.NormalizePhone(req.Phone)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.Amount <= 0 || req.Amount != math.Trunc(req.Amount) || req.Amount > math.MaxInt32 {
		writeValidationError(w, "amount must be a positive whole number")
		return
	}

	result, err := h.gateway.STKPush(r.Context(), phone, int(req.Amount))
	if err != nil {
		var perr *mpesa.Error
		if errors.As(err, &perr) {
			log.Printf("stkpush: %s failure for %s: %v", perr.Kind, phone, perr.Err)
		} else {
			log.Printf("stkpush: %v", err)
		}
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Payment failed", "Could not initiate the payment. Please try again.")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.STKPushResponse{
		Message:           "Payment request sent. Check your phone to complete the payment.",
		MerchantRequestID: result.MerchantRequestID,
		CheckoutRequestID: result.CheckoutRequestID,
		CustomerMessage:   result.CustomerMessage,
	})
}
