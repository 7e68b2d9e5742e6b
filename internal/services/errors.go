package services

import "errors"

// Error taxonomy surfaced by the service layer. Handlers translate these to
// HTTP statuses with errors.Is; everything else is treated as an upstream
// failure.
var (
	ErrSessionNotFound      = errors.New("interview session not found")
	ErrInvalidQuestionIndex = errors.New("invalid question index")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNoAnswersSubmitted   = errors.New("no answers submitted")
	ErrValidation           = errors.New("validation failed")
	ErrUpstreamFailure      = errors.New("upstream failure")
)
