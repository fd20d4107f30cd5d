package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

func createTestCamera(t *testing.T, backtrack bool) *Camera {
	t.Helper()
	c, err := New(config.CameraConfig{FollowTime: 0.1, AllowBacktracking: backtrack}, mgl64.Vec2{10, 7.5}, 20, 15)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(config.CameraConfig{FollowTime: 0.1}, mgl64.Vec2{}, 0, 10)
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)

	_, err = New(config.CameraConfig{FollowTime: -1}, mgl64.Vec2{}, 10, 10)
	assert.ErrorIs(t, err, entity.ErrInvalidConfig)
}

func TestCamera_Bounds(t *testing.T) {
	c := createTestCamera(t, false)

	b := c.Bounds()
	assert.Equal(t, mgl64.Vec2{0, 0}, b.Min)
	assert.Equal(t, mgl64.Vec2{20, 15}, b.Max)
}

func TestCamera_FollowConverges(t *testing.T) {
	c := createTestCamera(t, false)

	prev := c.Center().X()
	for i := 0; i < 100; i++ {
		c.Follow(15, 0.02)
		assert.GreaterOrEqual(t, c.Center().X(), prev)
		assert.LessOrEqual(t, c.Center().X(), 15.0)
		prev = c.Center().X()
	}
	assert.InDelta(t, 15, c.Center().X(), 1e-3)
}

func TestCamera_NoBacktracking(t *testing.T) {
	c := createTestCamera(t, false)

	for i := 0; i < 50; i++ {
		c.Follow(5, 0.02)
	}

	assert.Equal(t, 10.0, c.Center().X())
}

func TestCamera_Backtracking(t *testing.T) {
	c := createTestCamera(t, true)

	for i := 0; i < 100; i++ {
		c.Follow(5, 0.02)
	}

	assert.InDelta(t, 5, c.Center().X(), 1e-3)
}

func TestCamera_ZeroFollowTimeSnaps(t *testing.T) {
	c, err := New(config.CameraConfig{}, mgl64.Vec2{10, 7.5}, 20, 15)
	require.NoError(t, err)

	c.Follow(12, 0.02)

	assert.Equal(t, 12.0, c.Center().X())
}

func TestCamera_Limit(t *testing.T) {
	c := createTestCamera(t, true)
	c.Limit(0, 60)

	c.SnapTo(mgl64.Vec2{2, 7.5})
	assert.Equal(t, 10.0, c.Center().X())

	c.SnapTo(mgl64.Vec2{58, 7.5})
	assert.Equal(t, 50.0, c.Center().X())
}
