package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sathvik2377/timetable-api/internal/middleware"
	"github.com/sathvik2377/timetable-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// tokenFromContext returns the raw bearer token for solver pass-through.
func tokenFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
