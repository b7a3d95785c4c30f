package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the user data carried inside an access token
type Identity struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	Role     string
}

// Settings holds what is needed to sign and verify tokens
type Settings struct {
	Secret         string
	Issuer         string
	ExpirationDays int
}

// GenerateAccessToken signs an HS256 access token for the identity
func GenerateAccessToken(id Identity, s Settings) (string, error) {
	return generateAt(id, s, time.Now())
}

func generateAt(id Identity, s Settings, now time.Time) (string, error) {
	claims := Claims{
		UserID:   id.UserID.String(),
		Email:    id.Email,
		FullName: id.FullName,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.ExpirationDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.Issuer,
			Subject:   id.UserID.String(),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Secret))
}

// ValidateAccessToken validates an access token and returns claims
func ValidateAccessToken(tokenString string, s Settings) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.Secret), nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Identity converts validated claims back into an Identity
func (c *Claims) Identity() Identity {
	id, _ := uuid.Parse(c.UserID)
	return Identity{
		UserID:   id,
		Email:    c.Email,
		FullName: c.FullName,
		Role:     c.Role,
	}
}
