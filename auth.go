package main

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FahriNazarudin/Frog/models"
	"github.com/FahriNazarudin/Frog/userRepo"
)

type contextKey string

const tokenContextKey contextKey = "bearerToken"

// AuthResolver turns the bearer credential carried on the request
// context into the acting principal. Every protected resolver calls
// it before touching data, and acting identity is always derived from
// it, never from client-supplied usernames.
type AuthResolver func(ctx context.Context) (models.User, error)

func NewAuthResolver(users userRepo.UserRepo, secret []byte) AuthResolver {
	return func(ctx context.Context) (models.User, error) {
		raw, _ := ctx.Value(tokenContextKey).(string)
		if raw == "" {
			return models.User{}, models.ErrUnauthorized
		}
		userID, err := ValidateToken(raw, secret)
		if err != nil {
			return models.User{}, models.ErrInvalidToken
		}
		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			return models.User{}, models.ErrPrincipalNotFound
		}
		return user, nil
	}
}

func GenerateToken(userID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "frog_server",
		"sub": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

func ValidateToken(token string, secret []byte) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer("frog_server"),
	)
	claims := jwt.RegisteredClaims{}
	parse, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("token expired")
		}
		return "", err
	}
	if !parse.Valid {
		return "", errors.New("token is not valid")
	}
	if claims.Subject == "" {
		return "", errors.New("token is not valid")
	}
	return claims.Subject, nil
}
