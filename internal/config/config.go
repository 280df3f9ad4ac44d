package config

import "time"

const (
	// Sonar display
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4    // Number of concentric rings
	SweepTrailDeg = 60.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second
	HistoryLen    = 120  // Heading samples kept for the sparkline

	// Sweep loop
	LoopDurationStep = 250 * time.Millisecond // +/- key adjustment

	// Live point sources
	MeasuredPower  = -59.0            // RSSI at 1 meter (dBm)
	PathLossExp    = 2.5              // Path loss exponent (N)
	MaxRange       = 30.0             // Distance mapped to the sonar edge, meters
	SmoothingAlpha = 0.3              // EMA weight of the newest RSSI sample
	PointTimeout   = 30 * time.Second // Remove live points not seen for this long
	EvictInterval  = 5 * time.Second  // How often to run eviction

	// App
	AppName    = "SONAR"
	AppVersion = "1.0"
	EnvPrefix  = "sonar"
)

// Settings holds the runtime options bound from flags, env and config file.
type Settings struct {
	Demo         bool          // simulate orientation instead of waiting for a sensor feed
	SensorFeed   string        // file or pipe with raw acc/mag samples
	Mode         string        // plain or compass
	Axis         string        // azimuth, pitch or roll
	LoopDuration time.Duration // sweep period
	Lifetime     time.Duration // default point lifetime
	PointsFile   string        // YAML file with static points
	RandomPoints int           // number of random demo points
	BLE          bool          // add nearby BLE devices as points
	Adapter      string        // Bluetooth adapter name
	LogLevel     string        // zap level
	LogFormat    string        // text or json
	LogFile      string        // log destination, empty disables logging
}

var settings = NewSettings()

// DefaultSettings returns the process-wide settings bound to the CLI flags.
func DefaultSettings() *Settings {
	return settings
}

func NewSettings() *Settings {
	return &Settings{}
}
