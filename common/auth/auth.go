// Package auth authenticates callers before any detection work is done.
//
// The credential source is chosen once at startup: a key written in the
// configuration, a key read from the environment, or Okta-issued bearer
// tokens. All three sit behind [Authenticator] so the HTTP layer does not
// care which one is in use.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"

	jwtverifier "github.com/okta/okta-jwt-verifier-golang"

	"voicedetect/common/config"
)

// ErrUnauthorized is returned for a missing or wrong credential.
var ErrUnauthorized = errors.New("invalid API key")

// Authenticator checks a caller-supplied credential.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) error
}

// StaticKey accepts exactly one key.
type StaticKey struct {
	key []byte
}

// NewStaticKey returns an authenticator for key. An empty key is rejected so
// that a misconfiguration cannot open the API.
func NewStaticKey(key string) (*StaticKey, error) {
	if key == "" {
		return nil, errors.New("auth: api key must not be empty")
	}
	return &StaticKey{key: []byte(key)}, nil
}

// Authenticate compares in constant time.
func (s *StaticKey) Authenticate(_ context.Context, credential string) error {
	if subtle.ConstantTimeCompare([]byte(credential), s.key) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// NewEnvKey reads the key from the environment variable name once. It fails
// when the variable is unset or empty, so the service refuses to start
// without a key.
func NewEnvKey(name string, lookup func(string) (string, bool)) (*StaticKey, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(name)
	if !ok || v == "" {
		return nil, fmt.Errorf("auth: %s environment variable is not set", name)
	}
	return NewStaticKey(v)
}

// tokenVerifier is the subset of the Okta verifier that is used.
type tokenVerifier interface {
	VerifyAccessToken(jwt string) (*jwtverifier.Jwt, error)
}

// OktaVerifier validates Okta access tokens.
type OktaVerifier struct {
	verifier tokenVerifier
}

// NewOktaVerifier builds a verifier for the given issuer. Audience and client
// id claims are checked when set.
func NewOktaVerifier(cfg config.OktaConfig) *OktaVerifier {
	claims := map[string]string{}
	if cfg.Audience != "" {
		claims["aud"] = cfg.Audience
	}
	if cfg.ClientID != "" {
		claims["cid"] = cfg.ClientID
	}
	setup := jwtverifier.JwtVerifier{
		Issuer:           cfg.Issuer,
		ClaimsToValidate: claims,
	}
	return &OktaVerifier{verifier: setup.New()}
}

// Authenticate verifies credential as an access token.
func (o *OktaVerifier) Authenticate(_ context.Context, credential string) error {
	if credential == "" {
		return ErrUnauthorized
	}
	if _, err := o.verifier.VerifyAccessToken(credential); err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}

// New builds the authenticator selected by cfg.Mode.
func New(cfg config.AuthConfig) (Authenticator, error) {
	switch cfg.Mode {
	case config.AuthStatic:
		return NewStaticKey(cfg.APIKey)
	case config.AuthEnv:
		return NewEnvKey(cfg.APIKeyEnv, nil)
	case config.AuthOkta:
		return NewOktaVerifier(cfg.Okta), nil
	default:
		return nil, fmt.Errorf("auth: unknown mode %q", cfg.Mode)
	}
}
