package token

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/opentok/credentials"
)

// IssuerTypeProject is the ist claim of every project JWT.
const IssuerTypeProject = "project"

// ProjectClaims are the claims of the REST authentication JWT.
type ProjectClaims struct {
	// IssuerType is always IssuerTypeProject.
	IssuerType string `json:"ist"`
	jwt.RegisteredClaims
}

// SignerConfig configures a ProjectSigner.
type SignerConfig struct {
	// TTL is the lifetime of each JWT.
	// Default: 3 minutes
	TTL time.Duration

	// RefreshBefore renews the cached JWT this long before it expires.
	// Default: 30 seconds
	RefreshBefore time.Duration

	// Now is the clock.
	// Default: time.Now
	Now func() time.Time
}

// ProjectSigner issues project JWTs signed with HS256 and the api secret.
// It is safe for concurrent use.
type ProjectSigner struct {
	creds  credentials.Credentials
	config SignerConfig

	mu      sync.RWMutex
	cached  string
	expires time.Time
	sfGroup singleflight.Group
}

// NewProjectSigner creates a signer for creds.
func NewProjectSigner(creds credentials.Credentials, config SignerConfig) *ProjectSigner {
	// Apply defaults
	if config.TTL <= 0 {
		config.TTL = 3 * time.Minute
	}
	if config.RefreshBefore <= 0 || config.RefreshBefore >= config.TTL {
		config.RefreshBefore = config.TTL / 6
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &ProjectSigner{
		creds:  creds,
		config: config,
	}
}

// Token returns a valid JWT, minting a new one when the cached one is
// missing or close to expiry.
func (s *ProjectSigner) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	if s.cached != "" && s.config.Now().Before(s.expires.Add(-s.config.RefreshBefore)) {
		tok := s.cached
		s.mu.RUnlock()
		return tok, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.sfGroup.Do("mint", func() (any, error) {
		return s.mint()
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *ProjectSigner) mint() (string, error) {
	now := s.config.Now()
	expires := now.Add(s.config.TTL)
	claims := ProjectClaims{
		IssuerType: IssuerTypeProject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.creds.APIKeyString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.creds.APISecret()))
	if err != nil {
		return "", fmt.Errorf("token: sign project jwt: %w", err)
	}

	s.mu.Lock()
	s.cached = signed
	s.expires = expires
	s.mu.Unlock()
	return signed, nil
}

// ParseProjectToken verifies a project JWT against creds and returns its
// claims. The issuer must be the api key and the issuer type "project".
func ParseProjectToken(tokenString string, creds credentials.Credentials, opts ...jwt.ParserOption) (*ProjectClaims, error) {
	opts = append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(creds.APIKeyString()),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}, opts...)

	claims := &ProjectClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(creds.APISecret()), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjectToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidProjectToken
	}
	if claims.IssuerType != IssuerTypeProject {
		return nil, fmt.Errorf("%w: ist %q", ErrInvalidProjectToken, claims.IssuerType)
	}
	if claims.ID == "" {
		return nil, errors.Join(ErrInvalidProjectToken, errors.New("token: missing jti"))
	}
	return claims, nil
}
