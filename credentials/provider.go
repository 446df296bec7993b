package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Provider resolves a secret reference to its value.
//
// Implementations must be safe for concurrent use and must not log values.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
}

// EnvProvider resolves secretref:env:<VAR> from the process environment.
type EnvProvider struct{}

// Name returns "env".
func (EnvProvider) Name() string { return "env" }

// Resolve returns the value of the variable named ref.
func (EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("%w: env %s", ErrSecretNotFound, ref)
	}
	return v, nil
}

// DotenvProvider resolves secretref:dotenv:<file>#<KEY> by reading the file
// without touching the process environment.
type DotenvProvider struct{}

// Name returns "dotenv".
func (DotenvProvider) Name() string { return "dotenv" }

// Resolve reads KEY from file.
func (DotenvProvider) Resolve(_ context.Context, ref string) (string, error) {
	file, key, ok := strings.Cut(ref, "#")
	if !ok || file == "" || key == "" {
		return "", fmt.Errorf("credentials: dotenv ref must be <file>#<KEY>, got %q", ref)
	}
	values, err := godotenv.Read(file)
	if err != nil {
		return "", fmt.Errorf("credentials: read %s: %w", file, err)
	}
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrSecretNotFound, key, file)
	}
	return v, nil
}
