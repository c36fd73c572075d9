package dto

// STKPushRequest represents the payload for POST /stkpush
type STKPushRequest struct {
	Phone  string  `json:"phone"`
	Amount float64 `json:"amount"`
}

// STKPushResponse is returned when the gateway accepted the push request
type STKPushResponse struct {
	Message           string `json:"message"`
	MerchantRequestID string `json:"merchant_request_id"`
	CheckoutRequestID string `json:"checkout_request_id"`
	CustomerMessage   string `json:"customer_message,omitempty"`
}
