package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_Enabled(t *testing.T) {
	m := NewManager("profile_cache=on, legacy_feed = off ,beta=50%,broken")

	assert.True(t, m.Enabled("profile_cache", 1))
	assert.True(t, m.Enabled("PROFILE_CACHE", 1), "flag names are case-insensitive")
	assert.False(t, m.Enabled("legacy_feed", 1))
	assert.False(t, m.Enabled("unknown", 1))
	assert.False(t, m.Enabled("broken", 1))
}

func TestManager_Rollout(t *testing.T) {
	m := NewManager("beta=50%")

	// Deterministic per user: the same user always lands in the same bucket.
	first := m.Enabled("beta", 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Enabled("beta", 7))
	}

	// Anonymous users never get a percentage rollout.
	assert.False(t, m.Enabled("beta", 0))

	assert.True(t, NewManager("beta=100%").Enabled("beta", 1))
	assert.False(t, NewManager("beta=0%").Enabled("beta", 1))
}

func TestManager_NilSafe(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled("anything", 1))
}
