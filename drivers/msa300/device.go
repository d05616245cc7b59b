// MSA300 driver: register codec, configuration state and event engine for
// the MEMSensing MSA300 accelerometer, over I2C or bit-banged SPI.
//
// The driver is fully synchronous: every call is one or more blocking bus
// transactions, there are no goroutines and no retries. A Device must be
// driven by exactly one logical thread of control.
package msa300

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Measurement range. Values are register codes for regResRange bits 1:0.
type Range uint8

const (
	Range2G  Range = 0b00 // +/- 2g (chip default)
	Range4G  Range = 0b01 // +/- 4g
	Range8G  Range = 0b10 // +/- 8g
	Range16G Range = 0b11 // +/- 16g
)

// Sample resolution. Values are field codes for regResRange bits 3:2.
type Resolution uint8

const (
	Res14Bit Resolution = 0b00 // 14 bit (chip default)
	Res12Bit Resolution = 0b01 // 12 bit
	Res8Bit  Resolution = 0b11 // 8 bit
)

// Output data rate. Values are register codes for regODR bits 3:0.
type DataRate uint8

const (
	DataRate1Hz    DataRate = 0b0000 // not available in normal mode
	DataRate1_95Hz DataRate = 0b0001 // not available in normal mode
	DataRate3_9Hz  DataRate = 0b0010
	DataRate7_81Hz DataRate = 0b0011
	DataRate15Hz   DataRate = 0b0100 // 15.63 Hz
	DataRate31Hz   DataRate = 0b0101 // 31.25 Hz
	DataRate62Hz   DataRate = 0b0110 // 62.5 Hz
	DataRate125Hz  DataRate = 0b0111
	DataRate250Hz  DataRate = 0b1000
	DataRate500Hz  DataRate = 0b1001 // not available in low power mode
	DataRate1000Hz DataRate = 0b1111 // not available in low power mode
)

// Power mode. Values are field codes for regPowerModeBW bits 7:6.
type PowerMode uint8

const (
	PowerNormal  PowerMode = 0b00
	PowerLow     PowerMode = 0b01
	PowerSuspend PowerMode = 0b11
)

// Axis selects one of the three measurement axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var (
	// ErrWrongPart means the part-ID probe did not return the MSA300 ID:
	// device absent or a different chip on the address. Configuration stops
	// before anything is written.
	ErrWrongPart = errors.New("msa300: unexpected part ID")
	// ErrInvalidPin is returned for an interrupt pin other than 1 or 2.
	ErrInvalidPin = errors.New("msa300: interrupt pin must be 1 or 2")
	// ErrInvalidAxis is returned for an axis other than X, Y or Z.
	ErrInvalidAxis = errors.New("msa300: axis must be X, Y or Z")
)

// Config holds initialisation options for Configure. The zero value selects
// the chip defaults (2g, 14-bit, normal power) with a 1000 Hz data rate.
type Config struct {
	Range      Range
	Resolution Resolution
	PowerMode  PowerMode
	// DataRate zero selects 1000 Hz; use SetDataRate afterwards for the
	// low rates whose register code is numerically zero-ish.
	DataRate DataRate
}

// Device is a handle to one MSA300. It caches the last written range (and
// its g/LSB multiplier), resolution and power mode so unit conversions do
// not need a register read-back.
type Device struct {
	conn Transport

	rng  Range
	res  Resolution
	mode PowerMode
	mult float32
}

// New returns a handle talking I2C. The bus must already be configured.
// addr 0 selects AddressDefault. Nothing is written until Configure.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = AddressDefault
	}
	return NewWithTransport(&i2cConn{bus: bus, addr: addr})
}

// NewSPI returns a handle bit-banging SPI over the given pin functions.
// The pins must already be configured (sck, mosi, cs outputs; miso input);
// idle levels are driven here.
func NewSPI(sck, mosi PinOut, miso PinIn, cs PinOut) *Device {
	return NewWithTransport(newSPIConn(sck, mosi, miso, cs))
}

// NewWithTransport builds a handle on an externally supplied transport.
// Used by simulators and tests.
func NewWithTransport(t Transport) *Device {
	return &Device{
		conn: t,
		rng:  Range2G,
		mult: rangeMultiplier(Range2G),
	}
}

// Configure probes the part ID and enables continuous measurement.
// A part-ID mismatch is fatal: ErrWrongPart is returned and no
// configuration register is touched. There is no re-initialisation path;
// construct a new Device instead.
func (d *Device) Configure(cfg Config) error {
	id, err := d.ReadPartID()
	if err != nil {
		return err
	}
	if id != PartID {
		return ErrWrongPart
	}

	// Normal mode, 500 Hz bandwidth, then the output data rate.
	if err := d.conn.WriteRegister(regPowerModeBW, 0x14); err != nil {
		return err
	}
	d.mode = PowerNormal
	odr := cfg.DataRate
	if odr == 0 {
		odr = DataRate1000Hz
	}
	if err := d.SetDataRate(odr); err != nil {
		return err
	}

	if cfg.Range != Range2G {
		if err := d.SetRange(cfg.Range); err != nil {
			return err
		}
	}
	if cfg.Resolution != Res14Bit {
		if err := d.SetResolution(cfg.Resolution); err != nil {
			return err
		}
	}
	if cfg.PowerMode != PowerNormal {
		if err := d.SetPowerMode(cfg.PowerMode); err != nil {
			return err
		}
	}
	return nil
}

// ReadPartID reads the part-ID register. Usable as a liveness probe.
func (d *Device) ReadPartID() (byte, error) {
	return d.conn.ReadRegister(regPartID)
}

// modifyRegister is the masked read-modify-write every shared-register
// setter goes through.
func (d *Device) modifyRegister(reg, mask, val byte) error {
	old, err := d.conn.ReadRegister(reg)
	if err != nil {
		return err
	}
	return d.conn.WriteRegister(reg, mergeField(old, mask, val))
}

// SetRange sets the measurement range and refreshes the cached multiplier.
// Resolution bits in the shared register are preserved.
func (d *Device) SetRange(r Range) error {
	if err := d.modifyRegister(regResRange, maskRange, byte(r)); err != nil {
		return err
	}
	d.rng = r
	d.mult = rangeMultiplier(r)
	return nil
}

// ReadRange reads the range field back from the device.
func (d *Device) ReadRange() (Range, error) {
	v, err := d.conn.ReadRegister(regResRange)
	return Range(v & maskRange), err
}

// SetResolution sets the sample resolution, preserving the range bits.
func (d *Device) SetResolution(r Resolution) error {
	if err := d.modifyRegister(regResRange, maskResolution, byte(r)<<2); err != nil {
		return err
	}
	d.res = r
	return nil
}

func (d *Device) ReadResolution() (Resolution, error) {
	v, err := d.conn.ReadRegister(regResRange)
	return Resolution(v&maskResolution) >> 2, err
}

// SetDataRate programs the output data rate register outright.
func (d *Device) SetDataRate(r DataRate) error {
	return d.conn.WriteRegister(regODR, byte(r)&maskODR)
}

func (d *Device) ReadDataRate() (DataRate, error) {
	v, err := d.conn.ReadRegister(regODR)
	return DataRate(v & maskODR), err
}

// SetPowerMode sets the operating mode, preserving the bandwidth bits.
func (d *Device) SetPowerMode(m PowerMode) error {
	if err := d.modifyRegister(regPowerModeBW, maskPowerMode, byte(m)<<6); err != nil {
		return err
	}
	d.mode = m
	return nil
}

func (d *Device) ReadPowerMode() (PowerMode, error) {
	v, err := d.conn.ReadRegister(regPowerModeBW)
	return PowerMode(v&maskPowerMode) >> 6, err
}

// Cached-state introspection. No bus traffic.
func (d *Device) CachedRange() Range    { return d.rng }
func (d *Device) Multiplier() float32   { return d.mult }
func (d *Device) CachedMode() PowerMode { return d.mode }
func (d *Device) CachedRes() Resolution { return d.res }
