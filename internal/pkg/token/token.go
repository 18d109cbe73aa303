// Package token issues and verifies the signed tokens used by the board API.
// Short-lived access tokens and longer-lived refresh tokens share one HS256
// signing key and one claim shape {email, role}.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token is expired")
var ErrTokenMalformed = errors.New("token is malformed")
var ErrTokenUnsupported = errors.New("token is unsupported")
var ErrSignatureInvalid = errors.New("token signature is invalid")
var ErrMissingEmailClaim = errors.New("token is missing the email claim")

// Claims is the verified content of a board token.
type Claims struct {
	Email string
	Role  string
}

// Codec signs and verifies access and refresh tokens.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec. The secret must be non-empty; the refresh TTL is
// expected to exceed the access TTL but this is not enforced here.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is empty")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token: TTLs must be positive")
	}
	return &Codec{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// IssueAccessToken signs a token authorizing requests until the access TTL
// elapses.
func (c *Codec) IssueAccessToken(email, role string) (string, error) {
	return c.sign(email, role, c.accessTTL)
}

// IssueRefreshToken signs a token exchangeable for a new token pair until the
// refresh TTL elapses.
func (c *Codec) IssueRefreshToken(email, role string) (string, error) {
	return c.sign(email, role, c.refreshTTL)
}

func (c *Codec) sign(email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		// jti keeps tokens minted within the same second distinct, which
		// refresh rotation depends on.
		"jti": tokenID(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

func tokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// ParseAndVerify validates the signature and expiry of a token and returns
// its claims. Failures are reported as one of the package sentinel errors.
func (c *Codec) ParseAndVerify(tokenString string) (Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !tkn.Valid {
		return Claims{}, ErrTokenMalformed
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Claims{Email: email, Role: role}, nil
}

// ExtractEmail verifies a token and projects its email claim. The claim is
// always present on tokens issued by this codec; its absence indicates a
// token from elsewhere.
func (c *Codec) ExtractEmail(tokenString string) (string, error) {
	claims, err := c.ParseAndVerify(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", ErrMissingEmailClaim
	}
	return claims.Email, nil
}

// classify maps golang-jwt parse errors onto the package sentinels so that
// callers never depend on the JWT library's error surface.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenUnsupported
	default:
		return ErrTokenMalformed
	}
}
