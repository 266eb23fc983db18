package payment

type CreateCheckoutSessionRequest struct {
	Cost         float64 `json:"cost" binding:"required" example:"500"`
	ServiceTitle string  `json:"serviceTitle" binding:"required" example:"Home Decoration"`
	BookingID    int64   `json:"bookingId" binding:"required" example:"42"`
	UserEmail    string  `json:"userEmail" binding:"required,email" example:"a@b.com"`
}

type CreateCheckoutSessionResponse struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_..."`
}

type WebhookAck struct {
	Received bool `json:"received" example:"true"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"invalid request"`
}
