package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"storefront/models"
	"storefront/utils"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// AuthMiddleware requires a valid bearer token and stores its user in the context.
func AuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := issuer.ValidateToken(strings.TrimSpace(tokenParts[1]))
		if errors.Is(err, jwt.ErrTokenExpired) {
			abortUnauthorized(c, "Token has expired")
			return
		}
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Detail: detail})
}
