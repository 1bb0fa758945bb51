package middleware

import (
	"errors"
	"strings"

	"github.com/adityakashyap5047/Evix/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ExternalUserIDKey is the context key for the identity provider's user id
	ExternalUserIDKey = "external_user_id"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// AuthConfig holds session token verification settings
type AuthConfig struct {
	Secret string
	Issuer string
}

// Auth verifies the Bearer session token issued by the identity provider and
// stores the external user id in the request context. The subject claim is
// the provider's user id, not the internal account id.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "authorization header must be a Bearer token")
			c.Abort()
			return
		}

		externalID, err := verifyToken(parts[1], cfg)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				response.Unauthorized(c, "token expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set(ExternalUserIDKey, externalID)
		c.Next()
	}
}

// OptionalAuth verifies the token when present but lets anonymous requests
// through. Public discovery endpoints use this to personalize when possible.
func OptionalAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		if externalID, err := verifyToken(parts[1], cfg); err == nil {
			c.Set(ExternalUserIDKey, externalID)
		}

		c.Next()
	}
}

func verifyToken(tokenString string, cfg AuthConfig) (string, error) {
	parserOpts := []jwt.ParserOption{}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	}, parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}

// GetExternalUserID extracts the external user id from gin context
func GetExternalUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ExternalUserIDKey)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}
