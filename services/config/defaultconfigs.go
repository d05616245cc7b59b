package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgPico = `{
  "motion": {
    "range_g": 8,
    "data_rate_hz": 250,
    "resolution_bits": 14,
    "sample_interval_ms": 100,
    "tap": {
      "threshold_mg": 250,
      "duration_ms": 250,
      "double": true,
      "pin": 1
    },
    "freefall": {
      "threshold_mg": 375,
      "duration_ms": 20,
      "pin": 1
    },
    "active": {
      "threshold_mg": 62,
      "duration_ms": 2,
      "axes": "xyz",
      "pin": 2
    },
    "orient": {
      "hysteresis_mg": 125,
      "pin": 1
    }
  },
  "heartbeat": {
    "interval": 2
  }
}`

// cfgSim drives the host demo against the simulated sensor. Faster polling
// so events show up quickly on a terminal.
const cfgSim = `{
  "motion": {
    "range_g": 4,
    "data_rate_hz": 500,
    "resolution_bits": 14,
    "sample_interval_ms": 50,
    "tap": {
      "threshold_mg": 250,
      "duration_ms": 250,
      "pin": 1
    },
    "freefall": {
      "threshold_mg": 375,
      "duration_ms": 20,
      "pin": 1
    }
  },
  "heartbeat": {
    "interval": 2
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"sim":  []byte(cfgSim),
}
