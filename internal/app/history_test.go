package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	assert.Nil(t, h.Values())
	assert.Zero(t, h.Last())

	h.Push(1)
	h.Push(2)
	assert.Equal(t, []float64{1, 2}, h.Values())

	h.Push(3)
	h.Push(4)
	assert.Equal(t, []float64{2, 3, 4}, h.Values())
	assert.Equal(t, 4.0, h.Last())
	assert.Equal(t, 3, h.Len())
}
