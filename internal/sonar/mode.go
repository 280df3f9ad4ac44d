package sonar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned by ParseMode for unknown names.
var ErrInvalidMode = errors.New("invalid display mode")

// Mode decides how the heading affects points.
type Mode int

const (
	// ModePlain turns points with the device: the heading is added to every bearing.
	ModePlain Mode = iota
	// ModeCompass keeps points fixed relative to north; the dial turns instead.
	ModeCompass
)

func (m Mode) String() string {
	if m == ModeCompass {
		return "compass"
	}
	return "plain"
}

// HeadingOffset returns the offset passed to Point.Update for a heading.
func (m Mode) HeadingOffset(heading int) int {
	if m == ModeCompass {
		return 0
	}
	return heading
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeCompass {
		return ModePlain
	}
	return ModeCompass
}

// ParseMode accepts "plain" or "compass".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "":
		return ModePlain, nil
	case "compass":
		return ModeCompass, nil
	}
	return ModePlain, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
