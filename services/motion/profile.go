package motion

import (
	"motioncode-go/drivers/msa300"
	"motioncode-go/errcode"
	"motioncode-go/types"
)

// decodeProfile converts the JSON object retained on config/motion into a
// typed MotionConfig. Unknown keys are ignored; a non-object payload fails.
func decodeProfile(p any) (types.MotionConfig, error) {
	m, ok := p.(map[string]any)
	if !ok {
		return types.MotionConfig{}, &errcode.E{C: errcode.InvalidPayload, Op: "motion.decode"}
	}

	var cfg types.MotionConfig
	cfg.RangeG = int(num(m, "range_g"))
	cfg.DataRateHz = int(num(m, "data_rate_hz"))
	cfg.ResolutionBits = int(num(m, "resolution_bits"))
	cfg.SampleIntervalMs = uint32(num(m, "sample_interval_ms"))

	if t, ok := m["tap"].(map[string]any); ok {
		cfg.Tap = types.TapConfig{
			ThresholdMg: float32(num(t, "threshold_mg")),
			DurationMs:  int(num(t, "duration_ms")),
			Double:      flag(t, "double"),
			Pin:         int(num(t, "pin")),
		}
	}
	if a, ok := m["active"].(map[string]any); ok {
		cfg.Active = types.ActiveConfig{
			ThresholdMg: float32(num(a, "threshold_mg")),
			DurationMs:  uint8(num(a, "duration_ms")),
			Axes:        str(a, "axes"),
			Pin:         int(num(a, "pin")),
		}
	}
	if f, ok := m["freefall"].(map[string]any); ok {
		cfg.Freefall = types.FreefallConfig{
			ThresholdMg: float32(num(f, "threshold_mg")),
			DurationMs:  uint16(num(f, "duration_ms")),
			Pin:         int(num(f, "pin")),
		}
	}
	if o, ok := m["orient"].(map[string]any); ok {
		cfg.Orient = types.OrientConfig{
			HysteresisMg: float32(num(o, "hysteresis_mg")),
			Pin:          int(num(o, "pin")),
		}
	}
	return cfg, nil
}

// JSON numbers arrive as float64; anything else reads as zero.
func num(m map[string]any, k string) float64 { v, _ := m[k].(float64); return v }
func flag(m map[string]any, k string) bool   { v, _ := m[k].(bool); return v }
func str(m map[string]any, k string) string  { v, _ := m[k].(string); return v }

// rangeFromG picks the smallest range covering the requested full scale.
func rangeFromG(g int) msa300.Range {
	switch {
	case g > 8:
		return msa300.Range16G
	case g > 4:
		return msa300.Range8G
	case g > 2:
		return msa300.Range4G
	default:
		return msa300.Range2G
	}
}

func resolutionFromBits(bits int) msa300.Resolution {
	switch bits {
	case 8:
		return msa300.Res8Bit
	case 12:
		return msa300.Res12Bit
	default:
		return msa300.Res14Bit
	}
}

// rateFromHz picks the lowest chip rate at or above the request. Profiles
// always run the chip in normal mode, where the 1 Hz and 1.95 Hz rates are
// not available, so the mapping floors at 3.9 Hz.
func rateFromHz(hz int) msa300.DataRate {
	switch {
	case hz <= 0:
		return msa300.DataRate1000Hz // unset: chip streams at full rate
	case hz <= 4:
		return msa300.DataRate3_9Hz
	case hz <= 8:
		return msa300.DataRate7_81Hz
	case hz <= 16:
		return msa300.DataRate15Hz
	case hz <= 32:
		return msa300.DataRate31Hz
	case hz <= 63:
		return msa300.DataRate62Hz
	case hz <= 125:
		return msa300.DataRate125Hz
	case hz <= 250:
		return msa300.DataRate250Hz
	case hz <= 500:
		return msa300.DataRate500Hz
	default:
		return msa300.DataRate1000Hz
	}
}

// tapDurationFromMs picks the nearest second-shock window at or above the
// request.
func tapDurationFromMs(ms int) msa300.TapDuration {
	switch {
	case ms <= 50:
		return msa300.TapDur50ms
	case ms <= 100:
		return msa300.TapDur100ms
	case ms <= 150:
		return msa300.TapDur150ms
	case ms <= 200:
		return msa300.TapDur200ms
	case ms <= 250:
		return msa300.TapDur250ms
	case ms <= 375:
		return msa300.TapDur375ms
	case ms <= 500:
		return msa300.TapDur500ms
	default:
		return msa300.TapDur700ms
	}
}

// apply pushes a profile to the chip: streaming configuration first, then
// detector tuning, then interrupt routing, latched mode last.
func (s *Service) apply(cfg types.MotionConfig) error {
	d := s.dev

	err := d.Configure(msa300.Config{
		Range:      rangeFromG(cfg.RangeG),
		Resolution: resolutionFromBits(cfg.ResolutionBits),
		DataRate:   rateFromHz(cfg.DataRateHz),
	})
	if err != nil {
		return err
	}

	// Start from a clean routing matrix on every profile change.
	if err := d.ClearInterrupts(); err != nil {
		return err
	}

	if p := cfg.Tap.Pin; p != 0 {
		if err := d.SetTapThreshold(cfg.Tap.ThresholdMg); err != nil {
			return err
		}
		if err := d.SetTapDuration(tapDurationFromMs(cfg.Tap.DurationMs), false, false); err != nil {
			return err
		}
		if err := d.EnableSingleTapInterrupt(msa300.InterruptPin(p)); err != nil {
			return err
		}
		if cfg.Tap.Double {
			if err := d.EnableDoubleTapInterrupt(msa300.InterruptPin(p)); err != nil {
				return err
			}
		}
	}

	if p := cfg.Active.Pin; p != 0 {
		if err := d.SetActiveThreshold(cfg.Active.ThresholdMg); err != nil {
			return err
		}
		if err := d.SetActiveDuration(cfg.Active.DurationMs); err != nil {
			return err
		}
		axes := cfg.Active.Axes
		if axes == "" {
			axes = "xyz"
		}
		for _, c := range axes {
			var axis msa300.Axis
			switch c {
			case 'x':
				axis = msa300.AxisX
			case 'y':
				axis = msa300.AxisY
			case 'z':
				axis = msa300.AxisZ
			default:
				continue
			}
			if err := d.EnableActiveInterrupt(axis, msa300.InterruptPin(p)); err != nil {
				return err
			}
		}
	}

	if p := cfg.Freefall.Pin; p != 0 {
		if err := d.SetFreefallThreshold(cfg.Freefall.ThresholdMg); err != nil {
			return err
		}
		if err := d.SetFreefallDuration(cfg.Freefall.DurationMs); err != nil {
			return err
		}
		if err := d.EnableFreefallInterrupt(msa300.InterruptPin(p)); err != nil {
			return err
		}
	}

	if p := cfg.Orient.Pin; p != 0 {
		if err := d.SetOrientHysteresis(cfg.Orient.HysteresisMg); err != nil {
			return err
		}
		if err := d.EnableOrientationInterrupt(msa300.InterruptPin(p)); err != nil {
			return err
		}
	}

	// Events stay latched until the service drains and re-arms them.
	return d.SetInterruptLatch(msa300.LatchKeep)
}
