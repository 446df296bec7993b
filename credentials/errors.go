package credentials

import "errors"

var (
	// ErrMissingCredentials indicates the api key or secret is not configured.
	ErrMissingCredentials = errors.New("credentials: api key and secret are required")

	// ErrMissingEnv indicates a ${VAR} reference names an unset variable.
	ErrMissingEnv = errors.New("credentials: missing required environment variables")

	// ErrUnknownProvider indicates a secretref names an unregistered provider.
	ErrUnknownProvider = errors.New("credentials: secret provider is not registered")

	// ErrSecretNotFound indicates a provider has no value for a reference.
	ErrSecretNotFound = errors.New("credentials: secret not found")
)
