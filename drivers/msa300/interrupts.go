package msa300

// Interrupt routing: each logical event is (a) mapped onto one of the two
// physical pins and (b) enabled in its set register. Map writes OR the
// event's bit in without clearing siblings, so several events compose on
// one pin; set writes are masked read-modify-writes.

// InterruptPin selects one of the chip's two interrupt pins.
type InterruptPin uint8

const (
	IntPin1 InterruptPin = 1
	IntPin2 InterruptPin = 2
)

// LatchMode controls how long asserted interrupts stay latched.
type LatchMode uint8

const (
	LatchNone  LatchMode = 0b0000
	Latch250ms LatchMode = 0b0001
	Latch500ms LatchMode = 0b0010
	Latch1s    LatchMode = 0b0011
	Latch2s    LatchMode = 0b0100
	Latch4s    LatchMode = 0b0101
	Latch8s    LatchMode = 0b0110
	LatchKeep  LatchMode = 0b0111 // latched until reset
	Latch1ms   LatchMode = 0b1001
	Latch2ms   LatchMode = 0b1011
	Latch25ms  LatchMode = 0b1100
	Latch50ms  LatchMode = 0b1101
	Latch100ms LatchMode = 0b1110
)

// mapRegFor returns the map register that routes ordinary motion events to
// the given pin. New-data has its own register (regIntMap1).
func mapRegFor(pin InterruptPin) (byte, error) {
	switch pin {
	case IntPin1:
		return regIntMap0, nil
	case IntPin2:
		return regIntMap21, nil
	default:
		return 0, ErrInvalidPin
	}
}

// orSetRegister ORs bits into a register without clearing anything, the
// accumulate semantics both map and set registers want on the enable path.
func (d *Device) orSetRegister(reg, bits byte) error {
	old, err := d.conn.ReadRegister(reg)
	if err != nil {
		return err
	}
	return d.conn.WriteRegister(reg, old|bits)
}

// routeAndEnable performs the two-step map+enable sequence shared by all
// non-data events.
func (d *Device) routeAndEnable(pin InterruptPin, mapBit byte, setReg, setBits byte) error {
	mapReg, err := mapRegFor(pin)
	if err != nil {
		return err
	}
	if err := d.orSetRegister(mapReg, mapBit); err != nil {
		return err
	}
	return d.orSetRegister(setReg, setBits)
}

// EnableActiveInterrupt routes active-motion detection on one axis to a
// pin. Axis enables accumulate: calling for X then Y leaves both enabled.
func (d *Device) EnableActiveInterrupt(axis Axis, pin InterruptPin) error {
	var bit byte
	switch axis {
	case AxisX:
		bit = set0ActiveX
	case AxisY:
		bit = set0ActiveY
	case AxisZ:
		bit = set0ActiveZ
	default:
		return ErrInvalidAxis
	}
	return d.routeAndEnable(pin, mapActive, regIntSet0, bit)
}

// EnableFreefallInterrupt routes freefall detection to a pin.
func (d *Device) EnableFreefallInterrupt(pin InterruptPin) error {
	return d.routeAndEnable(pin, mapFreefall, regIntSet1, set1Freefall)
}

// EnableOrientationInterrupt routes orientation-change detection to a pin.
func (d *Device) EnableOrientationInterrupt(pin InterruptPin) error {
	return d.routeAndEnable(pin, mapOrient, regIntSet0, set0Orient)
}

// EnableSingleTapInterrupt routes single-tap detection to a pin.
func (d *Device) EnableSingleTapInterrupt(pin InterruptPin) error {
	return d.routeAndEnable(pin, mapSingleTap, regIntSet0, set0SingleTap)
}

// EnableDoubleTapInterrupt routes double-tap detection to a pin.
func (d *Device) EnableDoubleTapInterrupt(pin InterruptPin) error {
	return d.routeAndEnable(pin, mapDoubleTap, regIntSet0, set0DoubleTap)
}

// EnableNewDataInterrupt routes the data-ready event to a pin. New-data
// uses its own map register with distinct bit positions per pin.
func (d *Device) EnableNewDataInterrupt(pin InterruptPin) error {
	var bit byte
	switch pin {
	case IntPin1:
		bit = map1NewDataPin1
	case IntPin2:
		bit = map1NewDataPin2
	default:
		return ErrInvalidPin
	}
	if err := d.orSetRegister(regIntMap1, bit); err != nil {
		return err
	}
	return d.orSetRegister(regIntSet1, set1NewData)
}

// ClearInterrupts returns the chip to "no events routed": every set and map
// register is zeroed outright. Meant for re-initialisation, not partial
// clearing.
func (d *Device) ClearInterrupts() error {
	for _, reg := range [...]byte{
		regIntSet0, regIntSet1,
		regIntMap0, regIntMap1, regIntMap21, regIntMap22,
	} {
		if err := d.conn.WriteRegister(reg, 0x00); err != nil {
			return err
		}
	}
	return nil
}

// ResetLatch clears already-latched interrupt flags without touching
// routing: the top bit of the latch register is set through a
// read-modify-write.
func (d *Device) ResetLatch() error {
	return d.orSetRegister(regIntLatch, latchReset)
}

// SetInterruptLatch sets the latching mode, preserving the reset bit.
func (d *Device) SetInterruptLatch(mode LatchMode) error {
	return d.modifyRegister(regIntLatch, maskLatchMode, byte(mode))
}

// InterruptStatus is a decoded snapshot of the latched event flags.
// The Tap* and Active* detail fields are populated only when one of
// Active, SingleTap or DoubleTap is asserted; otherwise they stay false
// and the detail register is not read at all.
type InterruptStatus struct {
	Orientation bool
	SingleTap   bool
	DoubleTap   bool
	Active      bool
	Freefall    bool
	NewData     bool

	TapSign      bool // tap slope sign (negative = true)
	TapFirstX    bool
	TapFirstY    bool
	TapFirstZ    bool
	ActiveSign   bool
	ActiveFirstX bool
	ActiveFirstY bool
	ActiveFirstZ bool
}

// CheckInterrupts reads the motion and data status registers and decodes
// them. It returns a value snapshot; nothing is cached on the Device.
func (d *Device) CheckInterrupts() (InterruptStatus, error) {
	var st InterruptStatus

	motion, err := d.conn.ReadRegister(regMotionInt)
	if err != nil {
		return st, err
	}
	data, err := d.conn.ReadRegister(regDataInt)
	if err != nil {
		return st, err
	}

	st.Orientation = motion&motionOrient != 0
	st.SingleTap = motion&motionSingleTap != 0
	st.DoubleTap = motion&motionDoubleTap != 0
	st.Active = motion&motionActive != 0
	st.Freefall = motion&motionFreefall != 0
	st.NewData = data&dataNewData != 0

	if !(st.Active || st.SingleTap || st.DoubleTap) {
		return st, nil
	}

	tap, err := d.conn.ReadRegister(regTapActiveStatus)
	if err != nil {
		return st, err
	}
	st.TapSign = tap&(1<<7) != 0
	st.TapFirstX = tap&(1<<6) != 0
	st.TapFirstY = tap&(1<<5) != 0
	st.TapFirstZ = tap&(1<<4) != 0
	st.ActiveSign = tap&(1<<3) != 0
	st.ActiveFirstX = tap&(1<<2) != 0
	st.ActiveFirstY = tap&(1<<1) != 0
	st.ActiveFirstZ = tap&(1<<0) != 0
	return st, nil
}

// Any reports whether any event flag is asserted.
func (s InterruptStatus) Any() bool {
	return s.Orientation || s.SingleTap || s.DoubleTap || s.Active || s.Freefall || s.NewData
}

// ZOrient is the face-up/face-down half of an orientation snapshot.
type ZOrient uint8

const (
	ZUpward   ZOrient = 0
	ZDownward ZOrient = 1
)

// XYOrient is the portrait/landscape half of an orientation snapshot.
type XYOrient uint8

const (
	PortraitUpright    XYOrient = 0b00
	PortraitUpsideDown XYOrient = 0b01
	LandscapeLeft      XYOrient = 0b10
	LandscapeRight     XYOrient = 0b11
)

// OrientationStatus is a decoded orientation snapshot.
type OrientationStatus struct {
	Z  ZOrient
	XY XYOrient
}

// Orientation reads and decodes the orientation status register.
func (d *Device) Orientation() (OrientationStatus, error) {
	v, err := d.conn.ReadRegister(regOrientStatus)
	if err != nil {
		return OrientationStatus{}, err
	}
	return OrientationStatus{
		Z:  ZOrient((v >> 6) & 1),
		XY: XYOrient((v >> 4) & 0x3),
	}, nil
}
