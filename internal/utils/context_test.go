package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserIDContextRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithUserID(context.Background(), id)

	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
