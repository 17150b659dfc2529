package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserContext(context.Background(), 7, "admin@example.com")

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "admin@example.com", GetUserEmailFromContext(ctx))
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0771234567"))
	assert.False(t, IsValidPhone("077123456"))
	assert.False(t, IsValidPhone("07712345678"))
	assert.False(t, IsValidPhone("07712345ab"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "0771234567", NormalizePhone("077-123 4567"))
}
