package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() *Service {
	return NewService("test-secret", time.Hour)
}

func TestHashAndCheckPassword(t *testing.T) {
	s := newTestService()

	hash, err := s.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, s.CheckPassword("password123", hash))
	assert.False(t, s.CheckPassword("wrongpassword", hash))
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestService()

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: "incharge1",
		FullName: "Juan Dela Cruz",
		Role:     models.RoleIncharge,
		Shift:    "AM",
	}

	token, err := s.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "incharge1", claims.Username)
	assert.Equal(t, "Juan Dela Cruz", claims.FullName)
	assert.Equal(t, models.RoleIncharge, claims.Role)
	assert.Equal(t, "AM", claims.Shift)
}

func TestValidateToken_Invalid(t *testing.T) {
	s := newTestService()

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService("other-secret", time.Hour)
	token, err := other.GenerateToken(&models.User{ID: primitive.NewObjectID(), Username: "x", Role: models.RoleAdmin})
	assert.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	s := NewService("test-secret", -time.Minute)

	token, err := s.GenerateToken(&models.User{ID: primitive.NewObjectID(), Username: "x", Role: models.RoleAdmin})
	assert.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenFromRequest(t *testing.T) {
	s := newTestService()

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok123"})

		token, err := s.TokenFromRequest(r)
		assert.NoError(t, err)
		assert.Equal(t, "tok123", token)
	})

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer tok456")

		token, err := s.TokenFromRequest(r)
		assert.NoError(t, err)
		assert.Equal(t, "tok456", token)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		token, err := s.TokenFromRequest(r)
		assert.NoError(t, err)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("nothing present", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		_, err := s.TokenFromRequest(r)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Token abc")
		_, err := s.TokenFromRequest(r)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionCookieRoundTrip(t *testing.T) {
	s := newTestService()
	w := httptest.NewRecorder()

	s.SetSessionCookie(w, "tok789")
	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, "tok789", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = httptest.NewRecorder()
	s.ClearSessionCookie(w)
	cookies = w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
