package types

// ------------------------
// Accelerometer payloads
// ------------------------

// AccelInfo appears as Info.Detail on motion/info (retained).
type AccelInfo struct {
	Sensor string `json:"sensor"` // "msa300"
	Addr   uint16 `json:"addr"`   // I2C address, 0 for SPI
	Bus    string `json:"bus"`    // "i2c0", "spi-bb", "sim"
}

// AccelSample is published on motion/sample (retained, latest wins).
type AccelSample struct {
	RawX int16 `json:"raw_x"`
	RawY int16 `json:"raw_y"`
	RawZ int16 `json:"raw_z"`
	// Converted values in m/s².
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
	Z  float32 `json:"z"`
	TS int64   `json:"ts_ms"`
}

// TapEvent is published on motion/event/tap.
type TapEvent struct {
	Double    bool   `json:"double"`
	Negative  bool   `json:"negative"`   // motion was in the negative direction
	FirstAxis string `json:"first_axis"` // "x", "y", "z" or ""
	TS        int64  `json:"ts_ms"`
}

// ActiveEvent is published on motion/event/active.
type ActiveEvent struct {
	Negative  bool   `json:"negative"`
	FirstAxis string `json:"first_axis"`
	TS        int64  `json:"ts_ms"`
}

// FreefallEvent is published on motion/event/freefall.
type FreefallEvent struct {
	TS int64 `json:"ts_ms"`
}

// OrientEvent is published on motion/event/orient and retained on
// motion/orient.
type OrientEvent struct {
	Z  string `json:"z"`  // "upward" or "downward"
	XY string `json:"xy"` // "portrait_upright", "portrait_upside_down", "landscape_left", "landscape_right"
	TS int64  `json:"ts_ms"`
}

// ------------------------
// Motion service configuration
// ------------------------

// MotionConfig arrives retained on config/motion. Zero-valued sections
// leave the corresponding detector disabled.
type MotionConfig struct {
	RangeG           int    `json:"range_g"`            // 2, 4, 8 or 16
	DataRateHz       int    `json:"data_rate_hz"`       // 1..1000, chip rates
	ResolutionBits   int    `json:"resolution_bits"`    // 8, 12 or 14
	SampleIntervalMs uint32 `json:"sample_interval_ms"` // 0 disables polling

	Tap      TapConfig      `json:"tap"`
	Active   ActiveConfig   `json:"active"`
	Freefall FreefallConfig `json:"freefall"`
	Orient   OrientConfig   `json:"orient"`
}

type TapConfig struct {
	ThresholdMg float32 `json:"threshold_mg"`
	DurationMs  int     `json:"duration_ms"` // 50..700, chip steps
	Double      bool    `json:"double"`
	Pin         int     `json:"pin"` // 1 or 2; 0 disables
}

type ActiveConfig struct {
	ThresholdMg float32 `json:"threshold_mg"`
	DurationMs  uint8   `json:"duration_ms"` // 1..5
	Axes        string  `json:"axes"`        // any of "xyz"
	Pin         int     `json:"pin"`
}

type FreefallConfig struct {
	ThresholdMg float32 `json:"threshold_mg"`
	DurationMs  uint16  `json:"duration_ms"` // 2..512
	Pin         int     `json:"pin"`
}

type OrientConfig struct {
	HysteresisMg float32 `json:"hysteresis_mg"`
	Pin          int     `json:"pin"`
}
