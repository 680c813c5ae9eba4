package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTestClock_ReturnsLastSetValue(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTestClock(t0)

	assert.True(t, c.UtcNow().Equal(t0))

	next := t0.Add(1500 * time.Millisecond)
	c.Set(next)
	assert.True(t, c.Now().Equal(next))
	assert.Equal(t, next, c.UtcNow())
	assert.Equal(t, next.UnixNano(), c.UnixNano())
	assert.Equal(t, next.Unix(), c.Unix())
	assert.Equal(t, 1500*time.Millisecond, c.Since(t0))
}

func TestTestClock_ReadsAreIdempotent(t *testing.T) {
	c := NewTestClock(time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC))

	assert.Equal(t, c.Now(), c.Now())
	assert.Equal(t, c.UtcNow(), c.UtcNow())
}

func TestTestClock_Advance(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTestClock(t0)
	c.Advance(time.Minute)
	assert.Equal(t, t0.Add(time.Minute), c.UtcNow())
}

func TestTestClock_StripsMonotonicReading(t *testing.T) {
	wall := time.Now()
	c := NewTestClock(wall)
	assert.Equal(t, wall.Round(0).UTC(), c.UtcNow())
}

func TestDeterministicClock_StepsOneMillisecondPerRead(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewDeterministicClock(base)

	assert.Equal(t, base.Add(time.Millisecond), c.UtcNow())
	assert.Equal(t, base.Add(2*time.Millisecond), c.UtcNow())

	again := NewDeterministicClock(base)
	assert.Equal(t, base.Add(time.Millisecond), again.UtcNow(), "相同基准应产生相同序列")
}
