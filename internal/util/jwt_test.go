package util

import (
	"testing"
	"time"

	"remedial_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	u := &model.User{
		Name:  "Maria Santos",
		Email: "maria@school.edu.ph",
		Role:  model.Teacher,
	}
	u.ID = 42
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret-that-is-long-enough-0000"

	token, err := GenerateJWT(testUser(), secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
	assert.Equal(t, "maria@school.edu.ph", claims.Email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret-a", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-a")
	assert.Error(t, err)
}
