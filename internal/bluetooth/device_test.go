package bluetooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacToBearingStable(t *testing.T) {
	macs := []string{"AA:BB:CC:DD:EE:FF", "00:11:22:33:44:55", "DE:AD:BE:EF:00:01"}
	for _, mac := range macs {
		b := MacToBearing(mac)
		assert.Equal(t, b, MacToBearing(mac))
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 360)
	}
}

func TestRSSIToDistance(t *testing.T) {
	assert.InDelta(t, 1.0, RSSIToDistance(-59, -59, 2.5), 1e-9)
	assert.InDelta(t, 10.0, RSSIToDistance(-84, -59, 2.5), 1e-9)
	assert.Equal(t, 0.1, RSSIToDistance(5, -59, 2.5))
	assert.Equal(t, 0.1, RSSIToDistance(-20, -59, 2.5))
}

func TestNormalizedDistance(t *testing.T) {
	assert.InDelta(t, 0.5, NormalizedDistance(15, 30), 1e-9)
	assert.Greater(t, NormalizedDistance(45, 30), 1.0)
	assert.Zero(t, NormalizedDistance(10, 0))
}

func TestCallsign(t *testing.T) {
	assert.Equal(t, "AirPods", Callsign("AA", "AirPods"))
	assert.Equal(t, "Galaxy S", Callsign("AA", "Galaxy S24 Ultra"))
	tag := Callsign("AA:BB:CC:DD:EE:FF", "")
	assert.Len(t, tag, 4)
	assert.Equal(t, byte('#'), tag[0])
}

func TestRSSIFilter(t *testing.T) {
	f := NewRSSIFilter(0.5)
	assert.Equal(t, -60.0, f.Update("a", -60))
	assert.Equal(t, -70.0, f.Update("a", -80))
	assert.Equal(t, -40.0, f.Update("b", -40))

	f.Forget("a")
	assert.Equal(t, -90.0, f.Update("a", -90))
}
