// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID   = "userId"
	CtxTenantID = "tenantId"
	CtxRole     = "role"
)

// GenerateToken signs an HS256 token carrying the caller's tenant and role.
// Token issuance belongs to the identity service; this exists for tooling and
// tests.
func GenerateToken(secret, userID, tenantID, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"tenantId": tenantID,
		"role":     role,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// AuthMiddleware validates the bearer token and copies its claims into the
// gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		c.Set(CtxUserID, stringClaim(claims, "sub"))
		c.Set(CtxTenantID, stringClaim(claims, "tenantId"))
		c.Set(CtxRole, stringClaim(claims, "role"))

		c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
