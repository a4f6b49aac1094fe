package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	SetSecret("test-secret")
	id := GenerateUUID()

	token, err := GenerateSessionToken(id, time.Hour)
	require.NoError(t, err)

	t.Run("header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		r.Header.Set(SessionHeader, token)

		got, err := ExtractSessionID(r)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		got, err := ExtractSessionID(r)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})
}

func TestExtractSessionID_Rejects(t *testing.T) {
	SetSecret("test-secret")

	expired, err := GenerateSessionToken(GenerateUUID(), -time.Minute)
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": GenerateUUID(), "typ": "cart"})
	foreignToken, err := foreign.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	wrongType := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": GenerateUUID(), "typ": "user"})
	wrongTypeToken, err := wrongType.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	notUUID, err := GenerateSessionToken("../../etc", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":      "",
		"garbage":      "abc.def.ghi",
		"expired":      expired,
		"other secret": foreignToken,
		"wrong type":   wrongTypeToken,
		"not a uuid":   notUUID,
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if token != "" {
				r.Header.Set(SessionHeader, token)
			}
			_, err := ExtractSessionID(r)
			assert.Error(t, err)
		})
	}
}

func TestGenerateSessionToken_RequiresSecret(t *testing.T) {
	SetSecret("")
	t.Cleanup(func() { SetSecret("test-secret") })

	_, err := GenerateSessionToken(GenerateUUID(), time.Hour)
	assert.Error(t, err)
}
