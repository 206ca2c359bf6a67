package wrap

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid issuer credentials")
	ErrInvalidToken       = errors.New("invalid access token")
)

// Claims defines the claims carried by tokens the development issuer signs.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Issuer is a development stand-in for the access control service. It checks
// one issuer name/secret pair and signs HS256 tokens that its own Verify accepts.
// Only a bcrypt hash of the secret is kept.
type Issuer struct {
	name       string
	secretHash []byte
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewIssuer creates an Issuer that signs tokens valid for ttl. Secrets longer
// than 72 bytes are rejected.
func NewIssuer(name, secret string, signingKey []byte, ttl time.Duration) (*Issuer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash issuer secret: %w", err)
	}
	return &Issuer{
		name:       name,
		secretHash: hash,
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// Issue returns a signed token for scope if name and password match the
// configured issuer.
func (i *Issuer) Issue(scope, name, password string) (string, time.Duration, error) {
	nameOK := subtle.ConstantTimeCompare([]byte(name), []byte(i.name)) == 1
	secretOK := bcrypt.CompareHashAndPassword(i.secretHash, []byte(password)) == nil
	if !nameOK || !secretOK {
		return "", 0, ErrInvalidCredentials
	}

	now := i.now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   name,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, i.ttl, nil
}

// Verify parses and validates a token produced by Issue.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
