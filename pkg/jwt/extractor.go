package jwt

import (
	"net/http"
	"strings"
)

// FromBearerHeader extracts a token from an "Authorization: Bearer <token>"
// header. A missing or malformed header yields ErrInvalidToken.
func FromBearerHeader(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}
