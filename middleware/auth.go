package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"ReciclaBackend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, resolved once per request from
// the session token. Donor and collector ids overlap, so the role is
// part of the identity everywhere.
type Identity struct {
	ID        int64
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

var jwtSecret []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-in-production"
	}
	jwtSecret = []byte(secret)
}

// GenerateToken issues the session token for an account. The jti lets
// logout revoke this specific token.
func GenerateToken(userID int64, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondUnauthorized(w, "Authorization header required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			respondUnauthorized(w, "Invalid authorization format")
			return
		}

		tokenString := bearerToken[1]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			respondUnauthorized(w, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondUnauthorized(w, "Invalid token claims")
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			respondUnauthorized(w, "Invalid user ID in token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !models.ValidRole(role) {
			respondUnauthorized(w, "Invalid role in token")
			return
		}

		jti, _ := claims["jti"].(string)
		if IsTokenRevoked(jti) {
			respondUnauthorized(w, "Invalid or expired token")
			return
		}

		exp, _ := claims["exp"].(float64)

		identity := Identity{
			ID:        int64(userID),
			Role:      models.Role(role),
			TokenID:   jti,
			ExpiresAt: time.Unix(int64(exp), 0),
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func DonorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok || identity.Role != models.RoleDonor {
			respondForbidden(w, "Apenas doadores podem acessar")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CollectorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok || identity.Role != models.RoleCollector {
			respondForbidden(w, "Apenas coletores podem acessar")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	respondJSONMessage(w, http.StatusUnauthorized, message)
}

func respondForbidden(w http.ResponseWriter, message string) {
	respondJSONMessage(w, http.StatusForbidden, message)
}

func respondJSONMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"message":%q}`, message)
}
