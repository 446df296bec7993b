package credentials

import (
	"context"
	"fmt"
	"strconv"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/jonwraymond/opentok/validate"
)

// Credentials identify a project: a positive api key and its opaque secret.
type Credentials struct {
	apiKey    int
	apiSecret string
}

// New validates and returns credentials.
func New(apiKey int, apiSecret string) (Credentials, error) {
	if err := validate.Credentials(apiKey, apiSecret); err != nil {
		return Credentials{}, err
	}
	return Credentials{apiKey: apiKey, apiSecret: apiSecret}, nil
}

// APIKey returns the project api key.
func (c Credentials) APIKey() int { return c.apiKey }

// APIKeyString returns the api key in decimal, as it appears on the wire.
func (c Credentials) APIKeyString() string { return strconv.Itoa(c.apiKey) }

// APISecret returns the project secret.
func (c Credentials) APISecret() string { return c.apiSecret }

// IsZero reports whether c was never initialized.
func (c Credentials) IsZero() bool { return c.apiKey == 0 && c.apiSecret == "" }

// String never includes the secret.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{apiKey: %d, apiSecret: [REDACTED]}", c.apiKey)
}

// GoString keeps %#v from printing the secret.
func (c Credentials) GoString() string { return c.String() }

// envCredentials is decoded from the process environment.
type envCredentials struct {
	APIKey    int    `env:"OPENTOK_API_KEY,required"`
	APISecret string `env:"OPENTOK_API_SECRET,required"`
}

// LoadOptions controls Load.
type LoadOptions struct {
	// EnvFiles are dotenv files read before the environment. Variables
	// already set in the process are never overwritten. When empty, a ".env"
	// file in the working directory is read if it exists.
	EnvFiles []string

	// Resolver resolves ${VAR} and secretref values in the secret.
	// Default: a strict resolver with the env and dotenv providers.
	Resolver *Resolver
}

// Load builds Credentials from dotenv files and the environment.
func Load(ctx context.Context, opts LoadOptions) (Credentials, error) {
	if len(opts.EnvFiles) > 0 {
		if err := godotenv.Load(opts.EnvFiles...); err != nil {
			return Credentials{}, fmt.Errorf("credentials: load env files: %w", err)
		}
	} else {
		// Optional; a missing .env is not an error.
		_ = godotenv.Load()
	}

	var raw envCredentials
	if err := envdecode.StrictDecode(&raw); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = NewResolver(true, EnvProvider{}, DotenvProvider{})
	}
	secret, err := resolver.ResolveValue(ctx, raw.APISecret)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: resolve api secret: %w", err)
	}

	return New(raw.APIKey, secret)
}
