package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lodgeworks/roomkeeper/internal/domain"
)

type contextKey string

const (
	// ContextKeyActor is the key for storing the authenticated actor in request context.
	ContextKeyActor contextKey = "actor"
)

// ActorSource loads staff profiles for authenticated subjects.
type ActorSource interface {
	GetByID(ctx context.Context, actorID string) (*domain.Actor, error)
}

// AuthMiddleware handles Bearer token authentication. Tokens are HS256 JWTs
// issued by the identity provider; the subject claim carries the profile id.
// The role is always read from the profiles table, not from the token, so an
// administrative role change takes effect without re-issuing tokens.
type AuthMiddleware struct {
	secret []byte
	actors ActorSource
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(secret []byte, actors ActorSource) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
		actors: actors,
	}
}

// Authenticate validates the Bearer token and adds the actor to request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		subject, err := m.parseSubject(parts[1])
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		actor, err := m.actors.GetByID(r.Context(), subject)
		if err != nil {
			if err == domain.ErrActorNotFound {
				http.Error(w, "unknown actor", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseSubject verifies the token signature and extracts the subject claim.
func (m *AuthMiddleware) parseSubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", domain.ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidToken
	}

	return subject, nil
}

// GetActorFromContext retrieves the authenticated actor from request context.
func GetActorFromContext(ctx context.Context) (*domain.Actor, error) {
	actor, ok := ctx.Value(ContextKeyActor).(*domain.Actor)
	if !ok || actor == nil {
		return nil, domain.ErrActorNotFound
	}
	return actor, nil
}
