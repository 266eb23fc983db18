package booking

// CreateBookingRequest carries the raw submission; required-field
// checks happen against the domain entity so rejected requests can
// report every failing field at once.
type CreateBookingRequest struct {
	UserName        string  `json:"userName"`
	Email           string  `json:"email"`
	ServiceID       string  `json:"serviceId"`
	ServiceTitle    string  `json:"serviceTitle"`
	ServiceCategory string  `json:"serviceCategory"`
	ServicePrice    float64 `json:"servicePrice"`
	BookingDate     string  `json:"bookingDate"`
	ServiceLocation string  `json:"serviceLocation"`
	ServiceMode     string  `json:"serviceMode"`
	Note            string  `json:"note"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
