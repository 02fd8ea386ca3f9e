package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken issues the signed JWT the frontend sends back in the
// Authorization header.
func GenerateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret())
}

func parseToken(c *gin.Context) (*polls.Caller, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, false
	}
	isStaff, _ := claims["is_staff"].(bool)

	return &polls.Caller{UserID: int(userID), IsStaff: isStaff}, true
}

// AuthMiddleware requires a valid token; requests without one are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := parseToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Set("caller", caller)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// anonymous requests through. Read endpoints need this because staff see
// unpublished questions that anonymous callers must not learn exist.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller, ok := parseToken(c); ok {
			c.Set("caller", caller)
		}
		c.Next()
	}
}

// Caller returns the request identity set by the middleware, nil when
// anonymous.
func Caller(c *gin.Context) *polls.Caller {
	v, exists := c.Get("caller")
	if !exists {
		return nil
	}
	caller, ok := v.(*polls.Caller)
	if !ok {
		return nil
	}
	return caller
}
