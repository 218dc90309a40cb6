package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gosuda/taskdeck/internal/session"
)

// Mint issues an HS256 bearer token for local development and tests.
func Mint(secret, userID, name, email, role, departmentID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "taskdeck-fakeapi",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:       userID,
		Name:         name,
		Email:        email,
		Role:         role,
		DepartmentID: departmentID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// auth verifies the bearer token and enforces the admin role on every
// /admin route. A missing or invalid token is 401; a valid token with
// any other role is 403, so the console's access error path is
// exercisable end to end.
func auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				unauthorized(w)
				return
			}

			claims := &session.Claims{}
			parsed, err := jwt.ParseWithClaims(tok, claims, func(_ *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !parsed.Valid {
				unauthorized(w)
				return
			}

			if claims.Role != session.RoleAdmin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"success":false,"message":"admin role required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"missing or invalid credentials"}`))
}
