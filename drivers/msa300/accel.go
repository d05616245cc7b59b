package msa300

// Sample pipeline: raw little-endian axis counts scaled by the cached
// range multiplier. One synchronous snapshot per call, no filtering.

// Acceleration is one three-axis snapshot. Units depend on the producing
// call: m/s² from Acceleration(), g from AccelerationG().
type Acceleration struct {
	X, Y, Z float32
}

// RawX returns the most recent X-axis count.
func (d *Device) RawX() (int16, error) { return d.conn.ReadRegister16(regAccXLSB) }

// RawY returns the most recent Y-axis count.
func (d *Device) RawY() (int16, error) { return d.conn.ReadRegister16(regAccYLSB) }

// RawZ returns the most recent Z-axis count.
func (d *Device) RawZ() (int16, error) { return d.conn.ReadRegister16(regAccZLSB) }

// RawAxes reads all three axis counts in register order.
func (d *Device) RawAxes() (x, y, z int16, err error) {
	if x, err = d.RawX(); err != nil {
		return
	}
	if y, err = d.RawY(); err != nil {
		return
	}
	z, err = d.RawZ()
	return
}

// AccelerationG returns the current acceleration in g, using the cached
// range multiplier. The cache always matches the last range written, so no
// read-back is needed.
func (d *Device) AccelerationG() (Acceleration, error) {
	x, y, z, err := d.RawAxes()
	if err != nil {
		return Acceleration{}, err
	}
	return Acceleration{
		X: float32(x) * d.mult,
		Y: float32(y) * d.mult,
		Z: float32(z) * d.mult,
	}, nil
}

// Acceleration returns the current acceleration in m/s².
func (d *Device) Acceleration() (Acceleration, error) {
	a, err := d.AccelerationG()
	if err != nil {
		return Acceleration{}, err
	}
	a.X *= Gravity
	a.Y *= Gravity
	a.Z *= Gravity
	return a, nil
}
