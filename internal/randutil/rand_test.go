package randutil

import (
	"io"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}

	c := New(43)
	assert.NotEqual(t, New(42).Uint64(), c.Uint64())
}

func TestResolve(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Unix(1700000000, 0))

	t.Run("explicit seed wins", func(t *testing.T) {
		seed := int64(7)
		got, rng := Resolve(&seed, clock)
		assert.Equal(t, int64(7), got)
		assert.Equal(t, New(7).Uint64(), rng.Uint64())
	})

	t.Run("falls back to clock", func(t *testing.T) {
		got, _ := Resolve(nil, clock)
		assert.Equal(t, time.Unix(1700000000, 0).UnixNano(), got)
	})
}

func TestDerive(t *testing.T) {
	seen := make(map[int64]bool)
	for n := 0; n < 1000; n++ {
		s := Derive(1, n)
		assert.False(t, seen[s], "duplicate derived seed at %d", n)
		seen[s] = true
	}
	assert.Equal(t, Derive(5, 3), Derive(5, 3))
}

func TestEntropy(t *testing.T) {
	a, b := make([]byte, 64), make([]byte, 64)
	_, err := io.ReadFull(Entropy(9), a)
	require.NoError(t, err)
	_, err = io.ReadFull(Entropy(9), b)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = io.ReadFull(Entropy(10), b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
