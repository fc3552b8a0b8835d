package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed verification for any
// reason: bad signature, wrong algorithm, expired, or missing identity.
var ErrInvalidToken = errors.New("invalid token")

// Verifier checks an opaque token and resolves the user identity behind
// it. Implementations must be safe for concurrent use.
type Verifier interface {
	Verify(token string) (userID string, err error)
}

// spaceClaims is the claim set minted by the account service.
type spaceClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// JWTVerifier verifies HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with secret.
func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// Verify parses and validates the token, returning the userId claim.
// Only the HMAC family is accepted; expiry and not-before are enforced
// by the parser.
func (v *JWTVerifier) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &spaceClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*spaceClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}
	return claims.UserID, nil
}

// Issue signs a token for userID with the given TTL. The account service
// owns token issuance in production; this exists for tests and local
// development.
func (v *JWTVerifier) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := spaceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
