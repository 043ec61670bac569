package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// companyIDKey is the key used to store the authenticated user's company ID.
const companyIDKey = contextKey("companyID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetCompanyIDFromContext retrieves the authenticated user's company ID from
// the Gin context.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	companyID, ok := c.Request.Context().Value(companyIDKey).(string)
	return companyID, ok && companyID != ""
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard
// context, for callers below the HTTP layer.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
