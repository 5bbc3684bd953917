package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arvandy/storefront/internal/config"
	"github.com/arvandy/storefront/internal/token"
)

func newTestIssuer() token.Issuer {
	return token.NewIssuer(config.Token{
		SecretKey:  "test-secret-key",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
}

func okHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := token.UserIdFromContext(r.Context())
		assert.NoError(t, err)
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	issuer := newTestIssuer()
	userID := uuid.New()
	pair, err := issuer.Issue(userID, false)
	assert.NoError(t, err)

	handler := Auth(issuer)(okHandler(t, userID))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	request.Header.Set("Authorization", "Bearer "+pair.Access)
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(newTestIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	handler := Auth(newTestIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	request.Header.Set("Authorization", "Token abc")
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.Issue(uuid.New(), false)
	assert.NoError(t, err)

	handler := Auth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	request.Header.Set("Authorization", "Bearer "+pair.Refresh)
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestStaffRejectsNonStaff(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.Issue(uuid.New(), false)
	assert.NoError(t, err)

	handler := Auth(issuer)(Staff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	request.Header.Set("Authorization", "Bearer "+pair.Access)
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestStaffAllowsStaff(t *testing.T) {
	issuer := newTestIssuer()
	userID := uuid.New()
	pair, err := issuer.Issue(userID, true)
	assert.NoError(t, err)

	handler := Auth(issuer)(Staff(okHandler(t, userID)))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	request.Header.Set("Authorization", "Bearer "+pair.Access)
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
