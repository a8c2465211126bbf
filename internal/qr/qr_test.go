package qr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	t.Parallel()

	token, err := Generate("order-1", "user-1", time.Now())
	require.NoError(t, err)
	assert.True(t, ValidFormat(token), "token %q must match the DRONE format", token)
	assert.Len(t, token, len("DRONE-")+16)
}

func TestGenerate_Unique(t *testing.T) {
	t.Parallel()

	now := time.Now()
	a, err := Generate("order-1", "user-1", now)
	require.NoError(t, err)
	b, err := Generate("order-1", "user-1", now)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "random salt must make identical inputs diverge")
}

func TestValidFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidFormat("DRONE-0123456789ABCDEF"))
	assert.False(t, ValidFormat("DRONE-0123456789abcdef"), "lowercase hex is rejected")
	assert.False(t, ValidFormat("DRONE-0123456789ABCDE"), "15 chars is too short")
	assert.False(t, ValidFormat("DRONE-0123456789ABCDEF0"), "17 chars is too long")
	assert.False(t, ValidFormat("PLANE-0123456789ABCDEF"))
	assert.False(t, ValidFormat(""))
}

func TestExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.True(t, Expired(&past, now))
	assert.False(t, Expired(&future, now))
	assert.False(t, Expired(nil, now), "nil expiry never expires")
}
