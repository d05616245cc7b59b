package msa300

import "motioncode-go/x/mathx"

// Standard gravity, m/s² per g.
const Gravity = 9.80665

// mergeField clears exactly the bits in mask and ORs the new field value in.
// All shared-register setters go through this so that unrelated fields are
// preserved across the read-modify-write cycle.
func mergeField(old, mask, val byte) byte {
	return (old &^ mask) | (val & mask)
}

// byteSat truncates a non-negative float code to a byte, saturating at 0xFF.
// Register codes are computed in floating point first so that the clamp
// bounds from the datasheet apply before the integer cut.
func byteSat(f float32) byte {
	if f >= 255 {
		return 255
	}
	if f <= 0 {
		return 0
	}
	return byte(f)
}

// rangeMultiplier returns the g-per-LSB factor for a measurement range.
// The cached copy on Device must always match the last range written.
func rangeMultiplier(r Range) float32 {
	switch r {
	case Range16G:
		return 0.0312
	case Range8G:
		return 0.0156
	case Range4G:
		return 0.0078
	default:
		return 0.0039
	}
}

// fullScaleMg returns the clamp bound used for threshold codes at a range.
func fullScaleMg(r Range) float32 {
	switch r {
	case Range16G:
		return 16000
	case Range8G:
		return 8000
	case Range4G:
		return 4000
	default:
		return 2000
	}
}

// Threshold LSB sizes in mg, per range. Tap and active scale with range;
// the freefall threshold LSB is 7.81 mg at every range on this part, kept
// in the same table shape for symmetry.
func tapThresholdLSB(r Range) float32 {
	switch r {
	case Range16G:
		return 500
	case Range8G:
		return 250
	case Range4G:
		return 125
	default:
		return 62.5
	}
}

func activeThresholdLSB(r Range) float32 {
	switch r {
	case Range16G:
		return 31.25
	case Range8G:
		return 15.625
	case Range4G:
		return 7.81
	default:
		return 3.91
	}
}

// Identical at every range on this part; kept as a per-range hook so all
// three threshold features convert through the same shape.
func freefallThresholdLSB(Range) float32 { return 7.81 }

// thresholdCode divides a milli-g value by the per-LSB size and clamps to
// the range's full scale. Out-of-range inputs saturate, they are never
// rejected.
func thresholdCode(mg, lsb, fullScale float32) byte {
	return byteSat(mathx.Clamp(mg/lsb, 0, fullScale))
}

// offsetCode maps a static offset in mg onto its compensation register.
// LSB is 3.9 mg; the datasheet clamp bound is 998.4 mg.
func offsetCode(mg float32) byte {
	return byteSat(mathx.Clamp(mg/3.9, 0, 998.4))
}

// freefallDurationCode maps 2..512 ms onto the duration register.
// code = duration/2 - 1, computed in floating point so the subtraction
// happens before truncation.
func freefallDurationCode(ms uint16) byte {
	d := mathx.Clamp(ms, 2, 512)
	return byteSat(mathx.Clamp(float32(d)/2-1, 0, 256))
}

// activeDurationCode maps 1..5 ms onto the duration register.
func activeDurationCode(ms uint8) byte {
	return byte(mathx.Clamp(int(ms)-1, 0, 4))
}

// orientHysteresisCode maps mg onto the 62.5 mg/LSB hysteresis field.
// The field is 3 bits wide (bits 6:4), so the code saturates at 7.
func orientHysteresisCode(mg float32) byte {
	return byteSat(mathx.Clamp(mg/62.5, 0, 7))
}

// zBlockCode maps mg onto the 62.5 mg/LSB z-blocking limit field.
func zBlockCode(mg float32) byte {
	return byteSat(mathx.Clamp(mg/62.5, 0, 15))
}

// freefallHysteresisCode maps mg (0..500, 125 mg steps) onto the hysteresis
// field. The field is 2 bits wide, so the step count saturates at 3; the
// top of the mg domain must land at the field maximum, not wrap to zero.
func freefallHysteresisCode(mg uint16) byte {
	return byteSat(mathx.Clamp(float32(mg)/125, 0, 3))
}
