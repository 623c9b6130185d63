package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	t.Setenv("TEST_INTERVAL", "")
	d, err := Duration("TEST_INTERVAL", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	t.Setenv("TEST_INTERVAL", "150ms")
	d, err = Duration("TEST_INTERVAL", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, d)

	t.Setenv("TEST_INTERVAL", "-1s")
	_, err = Duration("TEST_INTERVAL", time.Second)
	require.Error(t, err)

	t.Setenv("TEST_INTERVAL", "soon")
	_, err = Duration("TEST_INTERVAL", time.Second)
	require.Error(t, err)
}

func TestIntFloatBool(t *testing.T) {
	t.Setenv("TEST_SIZE", "42")
	n, err := Int("TEST_SIZE", 1)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	t.Setenv("TEST_SIZE", "many")
	_, err = Int("TEST_SIZE", 1)
	require.Error(t, err)

	t.Setenv("TEST_SCALE", "43200")
	f, err := Float("TEST_SCALE", 1)
	require.NoError(t, err)
	assert.Equal(t, 43200.0, f)

	t.Setenv("TEST_FLAG", "true")
	b, err := Bool("TEST_FLAG", false)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestString(t *testing.T) {
	t.Setenv("TEST_NAME", "")
	assert.Equal(t, "fallback", String("TEST_NAME", "fallback"))
	t.Setenv("TEST_NAME", "set")
	assert.Equal(t, "set", String("TEST_NAME", "fallback"))
}
