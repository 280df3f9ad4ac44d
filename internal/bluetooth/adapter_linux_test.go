package bluetooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tinygo.org/x/bluetooth"
)

func TestAdapterByName(t *testing.T) {
	assert.Same(t, bluetooth.DefaultAdapter, adapterByName(""))
	assert.NotSame(t, bluetooth.DefaultAdapter, adapterByName("hci1"))

	s := NewBLEScanner(nil, "hci1")
	assert.Equal(t, "hci1", s.name)
	assert.NotSame(t, bluetooth.DefaultAdapter, s.adapter)
}
