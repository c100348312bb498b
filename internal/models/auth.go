package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRole identifies the caller's role inside the institution.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RolePlanner UserRole = "PLANNER"
	RoleViewer  UserRole = "VIEWER"
)

// JWTClaims represents the JWT payload for access tokens. Tokens are issued by
// the external auth collaborator; this service only validates and forwards
// them.
type JWTClaims struct {
	UserID        string   `json:"user_id"`
	Role          UserRole `json:"role"`
	InstitutionID string   `json:"institution_id"`
	jwt.RegisteredClaims
}
