package middleware

import (
	"strings"

	"airmetr/constants"
	"airmetr/response"
	"airmetr/services"
	"airmetr/services/logger"

	"github.com/gin-gonic/gin"
)

// CustomerIdentity resolves who is making the request. A bearer token must be
// valid when present; without one the request acts as defaultCustomerID.
func CustomerIdentity(secret, defaultCustomerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(constants.ContextCustomerID, defaultCustomerID)
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		customerID, err := services.GetCustomerIDFromToken(tokenString, secret)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextCustomerID, customerID)
		c.Next()
	}
}

// CustomerID returns the id set by CustomerIdentity.
func CustomerID(c *gin.Context) string {
	return c.GetString(constants.ContextCustomerID)
}

// ErrorHandler writes the response for the last error a handler attached
// with c.Error, unless something was already written.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		response.FromError(c, log, c.Errors.Last().Err)
	}
}
