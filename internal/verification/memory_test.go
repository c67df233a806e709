package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleargate/internal/compliance"
)

func TestMemoryStoreUnknownActor(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	profile, err := store.Resolve(ctx, "0xunknown")
	require.NoError(t, err)
	assert.Nil(t, profile)

	active, err := store.HasActiveIdentity(ctx, "0xunknown")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMemoryStorePutAndResolve(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put("0xAlice", compliance.VerificationProfile{
		Tier:         compliance.TierEnhanced,
		Jurisdiction: "DE",
	}, true)

	// Lookups are case-insensitive on the actor address.
	profile, err := store.Resolve(ctx, "0xalice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, compliance.TierEnhanced, profile.Tier)
	assert.Equal(t, "DE", profile.Jurisdiction)

	active, err := store.HasActiveIdentity(ctx, "0xALICE")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestMemoryStoreInactiveIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put("0xbob", compliance.VerificationProfile{Tier: compliance.TierBasic}, false)

	active, err := store.HasActiveIdentity(ctx, "0xbob")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMemoryStoreRemove(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put("0xbob", compliance.VerificationProfile{Tier: compliance.TierBasic}, true)
	store.Remove("0xbob")

	profile, err := store.Resolve(ctx, "0xbob")
	require.NoError(t, err)
	assert.Nil(t, profile)
}
