package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lodgeworks/roomkeeper/internal/domain"
	"github.com/lodgeworks/roomkeeper/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fakeActorSource struct {
	actors map[string]*domain.Actor
}

func (f *fakeActorSource) GetByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	actor, ok := f.actors[actorID]
	if !ok {
		return nil, domain.ErrActorNotFound
	}
	return actor, nil
}

func signToken(t *testing.T, secret []byte, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newAuthTestHandler(actors *fakeActorSource) http.Handler {
	m := middleware.NewAuthMiddleware(testSecret, actors)
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthenticateValidToken(t *testing.T) {
	actor := &domain.Actor{ID: "7b51c5f3-1111-4222-8333-944444444444", Role: domain.RoleAdmin}
	source := &fakeActorSource{actors: map[string]*domain.Actor{actor.ID: actor}}
	m := middleware.NewAuthMiddleware(testSecret, source)

	var captured *domain.Actor
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err := middleware.GetActorFromContext(r.Context())
		require.NoError(t, err)
		captured = got
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, actor.ID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, actor.ID, captured.ID)
	assert.Equal(t, domain.RoleAdmin, captured.Role)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler := newAuthTestHandler(&fakeActorSource{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	handler := newAuthTestHandler(&fakeActorSource{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	handler := newAuthTestHandler(&fakeActorSource{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other-secret"), "someone"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	handler := newAuthTestHandler(&fakeActorSource{})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateUnknownActor(t *testing.T) {
	handler := newAuthTestHandler(&fakeActorSource{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "7b51c5f3-1111-4222-8333-944444444444"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown actor")
}

func TestGetActorFromContextEmpty(t *testing.T) {
	_, err := middleware.GetActorFromContext(context.Background())
	assert.ErrorIs(t, err, domain.ErrActorNotFound)
}
