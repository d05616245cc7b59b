package msa300

import "tinygo.org/x/drivers"

// Transport is the byte channel the codec runs on: one addressed register
// per operation. Implementations must keep each call a single atomic bus
// transaction.
//
// ReadRegister16 assembles little-endian pairs (low byte at reg, high byte
// at reg+1) into a signed 16-bit value.
type Transport interface {
	WriteRegister(reg, val byte) error
	ReadRegister(reg byte) (byte, error)
	ReadRegister16(reg byte) (int16, error)
}

// ---- I2C ----

// i2cConn speaks the register protocol over an I2C controller.
// Tx MUST perform a write followed by a repeated-start read when both w and
// r are provided, without releasing the bus.
type i2cConn struct {
	bus  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [2]byte
}

var _ Transport = (*i2cConn)(nil)

func (c *i2cConn) WriteRegister(reg, val byte) error {
	c.w[0] = reg
	c.w[1] = val
	return c.bus.Tx(c.addr, c.w[:2], nil)
}

func (c *i2cConn) ReadRegister(reg byte) (byte, error) {
	c.w[0] = reg
	if err := c.bus.Tx(c.addr, c.w[:1], c.r[:1]); err != nil {
		return 0, err
	}
	return c.r[0], nil
}

func (c *i2cConn) ReadRegister16(reg byte) (int16, error) {
	c.w[0] = reg
	if err := c.bus.Tx(c.addr, c.w[:1], c.r[:2]); err != nil {
		return 0, err
	}
	return int16(uint16(c.r[0]) | uint16(c.r[1])<<8), nil
}

// ---- Bit-banged SPI ----

// PinOut drives a GPIO output level.
type PinOut func(bool)

// PinIn samples a GPIO input level.
type PinIn func() bool

// SPI protocol bits OR'd into the register address byte.
const (
	spiRead  = 0x80
	spiBurst = 0x40
)

// spiConn bit-bangs the register protocol over four GPIO lines, MSB first.
// Chip-select assertion through de-assertion is one non-preemptible
// transaction from the caller's perspective: nothing else may toggle these
// pins while a call is in flight.
type spiConn struct {
	sck  PinOut
	mosi PinOut
	miso PinIn
	cs   PinOut
}

var _ Transport = (*spiConn)(nil)

func newSPIConn(sck, mosi PinOut, miso PinIn, cs PinOut) *spiConn {
	c := &spiConn{sck: sck, mosi: mosi, miso: miso, cs: cs}
	// Idle levels: clock high, chip de-selected.
	c.cs(true)
	c.sck(true)
	return c
}

// xfer clocks one byte out while sampling one byte in.
func (c *spiConn) xfer(out byte) byte {
	var in byte
	for i := 7; i >= 0; i-- {
		in <<= 1
		c.sck(false)
		c.mosi(out&(1<<i) != 0)
		c.sck(true)
		if c.miso() {
			in |= 1
		}
	}
	return in
}

func (c *spiConn) WriteRegister(reg, val byte) error {
	c.cs(false)
	c.xfer(reg)
	c.xfer(val)
	c.cs(true)
	return nil
}

func (c *spiConn) ReadRegister(reg byte) (byte, error) {
	c.cs(false)
	c.xfer(reg | spiRead)
	v := c.xfer(0xFF)
	c.cs(true)
	return v, nil
}

func (c *spiConn) ReadRegister16(reg byte) (int16, error) {
	c.cs(false)
	c.xfer(reg | spiRead | spiBurst)
	lo := c.xfer(0xFF)
	hi := c.xfer(0xFF)
	c.cs(true)
	return int16(uint16(lo) | uint16(hi)<<8), nil
}
