package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sefazor/crowdfunding-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromToken(t *testing.T) {
	user := models.SessionUser{ID: uuid.New(), Email: "anna@example.org"}
	token, err := GenerateToken(user, "secret")
	require.NoError(t, err)

	session, err := SessionFromToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user, *session)

	_, err = SessionFromToken(token, "other")
	assert.Error(t, err)
}

func TestSessionFromToken_RejectsBadClaims(t *testing.T) {
	tests := map[string]jwt.MapClaims{
		"numeric user id": {"user_id": 42, "email": "anna@example.org"},
		"missing email":   {"user_id": uuid.NewString()},
		"expired":         {"user_id": uuid.NewString(), "email": "anna@example.org", "exp": time.Now().Add(-time.Hour).Unix()},
	}

	for name, claims := range tests {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
			require.NoError(t, err)

			_, err = SessionFromToken(token, "secret")
			assert.Error(t, err)
		})
	}
}
