package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasurementCache_RecordAndGet(t *testing.T) {
	c := NewMeasurementCache[string]()

	_, ok := c.Get("a")
	assert.False(t, ok)

	assert.True(t, c.Record("a", 12))
	h, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, float64(12), h)
}

func TestMeasurementCache_IdenticalRecordIsNoop(t *testing.T) {
	c := NewMeasurementCache[int]()
	assert.True(t, c.Record(1, 5))
	assert.False(t, c.Record(1, 5))
	assert.True(t, c.Record(1, 6))
	assert.Equal(t, 1, c.Len())
}

func TestMeasurementCache_ZeroHeightIsAValue(t *testing.T) {
	c := NewMeasurementCache[int]()
	assert.True(t, c.Record(7, 0))
	h, ok := c.Get(7)
	assert.True(t, ok)
	assert.Zero(t, h)
}

func TestMeasurementCache_NilIsEmpty(t *testing.T) {
	var c *MeasurementCache[int]
	_, ok := c.Get(1)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}
