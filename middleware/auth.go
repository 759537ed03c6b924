package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Weruh/kujuana/store"
	"github.com/Weruh/kujuana/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// Claims is the JWT payload; the subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("kujuana-demo-secret")
}

func tokenTTL() time.Duration {
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			return ttl
		}
	}
	return 7 * 24 * time.Hour
}

// GenerateToken signs a bearer token for the given user.
func GenerateToken(userID string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// RequireAuth resolves the bearer token to a user id, verifies the
// user still exists, and stores the id on the request context.
func RequireAuth(profiles store.ProfileStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" || raw == header {
			utils.WriteError(w, utils.Unauthorized("Missing auth token"))
			return
		}

		token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			return jwtSecret(), nil
		})
		if err != nil || !token.Valid {
			utils.WriteError(w, utils.Unauthorized("Invalid or expired token"))
			return
		}
		claims, ok := token.Claims.(*Claims)
		if !ok || claims.Subject == "" {
			utils.WriteError(w, utils.Unauthorized("Invalid or expired token"))
			return
		}

		if _, err := profiles.GetByID(r.Context(), claims.Subject); err != nil {
			utils.WriteError(w, utils.Unauthorized("Invalid session"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
