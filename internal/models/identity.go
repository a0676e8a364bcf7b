package models

import "github.com/golang-jwt/jwt/v4"

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// The token itself is issued by an upstream identity service; this service
// only verifies it and extracts the caller's user id.
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
