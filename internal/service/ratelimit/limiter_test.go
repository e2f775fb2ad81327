package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowExhaustsBurst(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		require.True(t, l.Allow("s1", 5, 0), "call %d should fit the burst", i)
	}
	require.False(t, l.Allow("s1", 5, 0))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	require.True(t, l.Allow("a", 1, 0))
	require.False(t, l.Allow("a", 1, 0))
	require.True(t, l.Allow("b", 1, 0))
}

func TestForgetResetsBucket(t *testing.T) {
	l := New()
	require.True(t, l.Allow("s1", 1, 0))
	require.False(t, l.Allow("s1", 1, 0))
	l.Forget("s1")
	require.True(t, l.Allow("s1", 1, 0))
}
