package classifier

import "errors"

var (
	// ErrInvalidAPIKey indicates an empty API key.
	ErrInvalidAPIKey = errors.New("invalid or missing API key")

	// ErrClientCreationFailed indicates the provider client could not be created.
	ErrClientCreationFailed = errors.New("failed to create API client")

	// ErrNoAnswer indicates the model returned no text.
	ErrNoAnswer = errors.New("no answer returned")

	// ErrUnrecognizedAnswer indicates the model's answer is not a language code.
	ErrUnrecognizedAnswer = errors.New("answer is not a language code")
)
