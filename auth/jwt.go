package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"janken/gameerrors"
)

const issuer = "janken"

// Session is a browser session identity: the id its tally is stored under.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// Signer issues and validates HS256 session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a signer for secret. An empty secret is replaced by a random
// one, which invalidates every token when the process restarts.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		key = []byte(hex.EncodeToString(buf))
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: key, ttl: ttl, now: time.Now}, nil
}

// NewSession creates a session with a fresh UUID and returns it with its signed token.
func (s *Signer) NewSession() (Session, string, error) {
	return s.Issue(uuid.NewString())
}

// Issue signs a token for an existing session id.
func (s *Signer) Issue(sessionID string) (Session, string, error) {
	now := s.now()
	sess := Session{ID: sessionID, ExpiresAt: now.Add(s.ttl)}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, "", fmt.Errorf("sign session token: %w", err)
	}
	return sess, token, nil
}

// Validate checks a token's signature, issuer and expiry and returns its session.
func (s *Signer) Validate(tokenString string) (Session, error) {
	if tokenString == "" {
		return Session{}, gameerrors.ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", gameerrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Session{}, gameerrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Session{}, fmt.Errorf("%w: subject is not a session id", gameerrors.ErrInvalidToken)
	}
	sess := Session{ID: claims.Subject}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
