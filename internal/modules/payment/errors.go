package payment

import "errors"

var (
	ErrSignatureInvalid    = errors.New("invalid webhook signature")
	ErrTimestampExpired    = errors.New("webhook timestamp outside tolerance")
	ErrPayloadMalformed    = errors.New("malformed webhook payload")
	ErrValidation          = errors.New("validation error")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
)
