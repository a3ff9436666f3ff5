package jwt

import (
	"errors"
	"time"

	"cinelog/user"

	"github.com/golang-jwt/jwt/v5"
)

type JWTProvider struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (p *JWTProvider) GenerateAccessToken(u user.User) (string, error) {
	return p.sign(u, "access", p.AccessTTL)
}

func (p *JWTProvider) GenerateRefreshToken(u user.User) (string, error) {
	return p.sign(u, "refresh", p.RefreshTTL)
}

func (p *JWTProvider) sign(u user.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"type":    tokenType,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

func (p *JWTProvider) ParseRefreshToken(refreshToken string) (user.User, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(p.Secret), nil
	})
	if err != nil || !token.Valid {
		return user.User{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return user.User{}, errors.New("invalid token claims")
	}

	if claimType, ok := claims["type"].(string); !ok || claimType != "refresh" {
		return user.User{}, errors.New("invalid token type")
	}

	// Numeric claims round-trip as float64.
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return user.User{}, errors.New("invalid user id")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return user.User{}, errors.New("invalid email")
	}

	return user.User{
		ID:    int64(rawID),
		Email: email,
	}, nil
}
