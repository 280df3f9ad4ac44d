package heading

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAxis is returned by ParseAxis for names it does not recognise.
var ErrUnknownAxis = errors.New("unknown rotation axis")

// Axis selects which fused orientation channel feeds the tracker.
type Axis int

const (
	AxisAzimuth Axis = iota
	AxisPitch
	AxisRoll
)

func (a Axis) String() string {
	switch a {
	case AxisPitch:
		return "pitch"
	case AxisRoll:
		return "roll"
	default:
		return "azimuth"
	}
}

// ParseAxis accepts "azimuth", "pitch" or "roll" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "azimuth", "yaw", "":
		return AxisAzimuth, nil
	case "pitch":
		return AxisPitch, nil
	case "roll":
		return AxisRoll, nil
	}
	return AxisAzimuth, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// pick returns the channel of an orientation triple selected by a.
func (a Axis) pick(azimuth, pitch, roll float64) float64 {
	switch a {
	case AxisPitch:
		return pitch
	case AxisRoll:
		return roll
	default:
		return azimuth
	}
}
