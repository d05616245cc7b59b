package msa300

// Event-engine tuning: thresholds, durations, hysteresis, orientation.
// All physical inputs are clamped, never rejected; out-of-range values pin
// to the nearest register bound (see codec.go).

// TapDuration is the second-shock window of the tap detector.
type TapDuration uint8

const (
	TapDur50ms  TapDuration = 0b000
	TapDur100ms TapDuration = 0b001
	TapDur150ms TapDuration = 0b010
	TapDur200ms TapDuration = 0b011
	TapDur250ms TapDuration = 0b100
	TapDur375ms TapDuration = 0b101
	TapDur500ms TapDuration = 0b110
	TapDur700ms TapDuration = 0b111
)

// Polarity selects the axis whose sign is flipped by SwapPolarity; SwapXY
// exchanges the X and Y channels instead.
type Polarity uint8

const (
	SwapXY    Polarity = 0
	PolarityZ Polarity = 1
	PolarityY Polarity = 2
	PolarityX Polarity = 3
)

// OrientMode selects the hysteresis symmetry of the orientation detector.
type OrientMode uint8

const (
	OrientSymmetrical    OrientMode = 0b00
	OrientHighAsymmetric OrientMode = 0b01
	OrientLowAsymmetric  OrientMode = 0b10
)

// BlockMode selects when orientation updates are blocked.
type BlockMode uint8

const (
	BlockNone   BlockMode = 0b00
	BlockZ      BlockMode = 0b01
	BlockZSlope BlockMode = 0b10 // z-blocking or slope in any axis > 0.2g
)

// FreefallHysteresisMode selects the freefall evaluation mode.
type FreefallHysteresisMode uint8

const (
	FreefallSingle FreefallHysteresisMode = 0 // each axis evaluated alone
	FreefallSum    FreefallHysteresisMode = 1 // |x| + |y| + |z|
)

// offsetReg maps an axis to its compensation register.
func offsetReg(axis Axis) byte {
	switch axis {
	case AxisY:
		return regOffsetY
	case AxisZ:
		return regOffsetZ
	default:
		return regOffsetX
	}
}

// SetOffset programs static offset compensation for one axis, 0..998.4 mg
// in 3.9 mg steps.
func (d *Device) SetOffset(axis Axis, mg float32) error {
	return d.conn.WriteRegister(offsetReg(axis), offsetCode(mg))
}

// SetTapThreshold sets the tap detector threshold in mg. The per-LSB size
// depends on the cached range, so set the range first.
func (d *Device) SetTapThreshold(mg float32) error {
	code := thresholdCode(mg, tapThresholdLSB(d.rng), fullScaleMg(d.rng))
	return d.conn.WriteRegister(regTapTh, code)
}

// SetTapDuration programs the tap timing register.
// quiet: false = 30 ms, true = 20 ms. shock: false = 50 ms, true = 70 ms.
func (d *Device) SetTapDuration(dur TapDuration, quiet, shock bool) error {
	var v byte
	if quiet {
		v |= 1 << 7
	}
	if shock {
		v |= 1 << 6
	}
	v |= byte(dur) & 0x07
	return d.conn.WriteRegister(regTapDur, v)
}

// SetActiveThreshold sets the active-motion threshold in mg.
func (d *Device) SetActiveThreshold(mg float32) error {
	code := thresholdCode(mg, activeThresholdLSB(d.rng), fullScaleMg(d.rng))
	return d.conn.WriteRegister(regActiveTh, code)
}

// SetActiveDuration sets the active-motion qualification time, 1..5 ms.
func (d *Device) SetActiveDuration(ms uint8) error {
	return d.conn.WriteRegister(regActiveDur, activeDurationCode(ms))
}

// SetFreefallThreshold sets the freefall threshold in mg.
func (d *Device) SetFreefallThreshold(mg float32) error {
	code := thresholdCode(mg, freefallThresholdLSB(d.rng), fullScaleMg(d.rng))
	return d.conn.WriteRegister(regFreefallTh, code)
}

// SetFreefallDuration sets the freefall qualification time, 2..512 ms in
// 2 ms steps.
func (d *Device) SetFreefallDuration(ms uint16) error {
	return d.conn.WriteRegister(regFreefallDur, freefallDurationCode(ms))
}

// SetFreefallHysteresis programs the freefall hysteresis, 0..500 mg in
// 125 mg steps, and the evaluation mode. The mode bit is preserved through
// a read-modify-write; the hysteresis field is masked to its width.
func (d *Device) SetFreefallHysteresis(mode FreefallHysteresisMode, mg uint16) error {
	old, err := d.conn.ReadRegister(regFreefallHy)
	if err != nil {
		return err
	}
	v := mergeField(old, 1<<3, byte(mode)<<3)
	v = mergeField(v, maskFreefallHy, freefallHysteresisCode(mg))
	return d.conn.WriteRegister(regFreefallHy, v)
}

// SwapPolarity toggles the polarity of one axis (or the X/Y exchange bit).
// Each call flips the current setting.
func (d *Device) SwapPolarity(p Polarity) error {
	old, err := d.conn.ReadRegister(regSwapPolarity)
	if err != nil {
		return err
	}
	return d.conn.WriteRegister(regSwapPolarity, old^(1<<p))
}

// SetOrientMode sets the orientation hysteresis symmetry, preserving the
// hysteresis and blocking fields of the shared register.
func (d *Device) SetOrientMode(m OrientMode) error {
	return d.modifyRegister(regOrientHy, maskOrientMode, byte(m))
}

// ReadOrientMode reads the orientation mode field back from the device.
func (d *Device) ReadOrientMode() (OrientMode, error) {
	v, err := d.conn.ReadRegister(regOrientHy)
	return OrientMode(v & maskOrientMode), err
}

// SetOrientHysteresis sets the orientation hysteresis, 0..500 mg in
// 62.5 mg steps.
func (d *Device) SetOrientHysteresis(mg float32) error {
	return d.modifyRegister(regOrientHy, maskOrientHy, orientHysteresisCode(mg)<<4)
}

// SetBlocking selects the orientation blocking mode and programs the
// z-blocking limit (0..937.5 mg in 62.5 mg steps).
func (d *Device) SetBlocking(mode BlockMode, zLimitMg float32) error {
	if err := d.modifyRegister(regOrientHy, maskBlockMode, byte(mode)<<2); err != nil {
		return err
	}
	return d.conn.WriteRegister(regZBlock, zBlockCode(zLimitMg))
}
