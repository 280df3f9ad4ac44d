package bluetooth

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
)

const maxLabelLen = 8

// DeviceDiscoveredMsg is sent via tea.Program.Send when a device is seen.
type DeviceDiscoveredMsg struct {
	MAC  string
	Name string
	RSSI int16
}

// MacToBearing derives a consistent bearing in degrees [0, 360) from a MAC
// address, so a device keeps its place on the dial between sightings.
func MacToBearing(mac string) int {
	h := sha256.Sum256([]byte(mac))
	val := binary.BigEndian.Uint32(h[:4])
	return int(uint64(val) * 360 >> 32)
}

// RSSIToDistance estimates distance in meters from RSSI using the
// log-distance path loss model: d = 10^((measuredPower - rssi) / (10 * n)).
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}

// NormalizedDistance maps meters onto the sonar radius. Devices beyond
// maxRange get a distance above 1 and are not drawn.
func NormalizedDistance(meters, maxRange float64) float64 {
	if maxRange <= 0 {
		return 0
	}
	return meters / maxRange
}

// Callsign returns a short label for a device: its truncated name, or a
// hash tag derived from the MAC for unnamed devices.
func Callsign(mac, name string) string {
	if name != "" {
		if len(name) > maxLabelLen {
			name = name[:maxLabelLen]
		}
		return name
	}
	h := sha256.Sum256([]byte(mac))
	return fmt.Sprintf("#%02X%X", h[0], h[1]&0x0F)
}

// RSSIFilter smooths per-device RSSI with an exponential moving average.
type RSSIFilter struct {
	alpha  float64
	values map[string]float64
}

// NewRSSIFilter creates a filter weighting new readings by alpha.
func NewRSSIFilter(alpha float64) *RSSIFilter {
	return &RSSIFilter{
		alpha:  alpha,
		values: make(map[string]float64),
	}
}

// Update folds a reading into the device's average and returns it.
func (f *RSSIFilter) Update(mac string, rssi float64) float64 {
	prev, ok := f.values[mac]
	if !ok {
		f.values[mac] = rssi
		return rssi
	}
	v := prev*(1-f.alpha) + rssi*f.alpha
	f.values[mac] = v
	return v
}

// Forget drops a device's history.
func (f *RSSIFilter) Forget(mac string) {
	delete(f.values, mac)
}
