package sms

import "errors"

// ErrProviderFailure matches every *ProviderError via errors.Is.
var ErrProviderFailure = errors.New("Failed to create zenvia message")

// ValidationError reports a missing or malformed message field.
// It is raised before any network I/O and is never logged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError is returned when the provider answers with a status other
// than 200. Status and body are only available through the LogFunc.
type ProviderError struct{}

func (e *ProviderError) Error() string {
	return ErrProviderFailure.Error()
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderFailure
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
