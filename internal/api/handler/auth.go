package handler

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"complaintdesk/backend/internal/authz"

	"github.com/gin-gonic/gin"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Gin context key holding the authenticated principal.
const principalKey = "principal"

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// parsePrincipal validates the bearer token issued by the identity provider
// and extracts the principal: a stable identifier (sub) plus a role claim.
// Roles outside {student, admin} are rejected.
func parsePrincipal(tokenString string) (authz.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return authz.Principal{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Principal{}, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !authz.ValidRole(role) {
		return authz.Principal{}, errors.New("invalid claims")
	}
	return authz.Principal{ID: sub, Role: role}, nil
}

// AuthRequired extracts the principal from the Authorization header and
// threads it through the request context. Every lifecycle route sits behind
// this middleware; there is no ambient session state.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		p, err := parsePrincipal(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// principal returns the authenticated principal set by AuthRequired.
func principal(c *gin.Context) authz.Principal {
	p, _ := c.MustGet(principalKey).(authz.Principal)
	return p
}
