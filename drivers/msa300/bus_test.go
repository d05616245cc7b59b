package msa300

import (
	"testing"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

// fakeI2C implements the write-then-repeated-start-read register protocol.
type fakeI2C struct {
	regs map[byte]byte
	txs  int
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.txs++
	switch {
	case len(w) == 2 && len(r) == 0: // register write
		f.regs[w[0]] = w[1]
	case len(w) == 1 && len(r) >= 1: // register read (1 or 2 bytes)
		for i := range r {
			r[i] = f.regs[w[0]+byte(i)]
		}
	}
	return nil
}

func TestI2CConnProtocol(t *testing.T) {
	f := &fakeI2C{regs: map[byte]byte{}}
	c := &i2cConn{bus: f, addr: AddressDefault}

	if err := c.WriteRegister(regTapTh, 0x42); err != nil {
		t.Fatal(err)
	}
	if f.regs[regTapTh] != 0x42 {
		t.Fatalf("write did not land: %#02x", f.regs[regTapTh])
	}

	got, err := c.ReadRegister(regTapTh)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x42 {
		t.Fatalf("read back %#02x, want 0x42", got)
	}

	// Little-endian pair, sign-extended.
	f.regs[regAccXLSB] = 0x18 // -1000 = 0xFC18
	f.regs[regAccXLSB+1] = 0xFC
	v, err := c.ReadRegister16(regAccXLSB)
	if err != nil {
		t.Fatal(err)
	}
	if v != -1000 {
		t.Fatalf("16-bit read = %d, want -1000", v)
	}
	// One transaction per operation: the 16-bit read must not split.
	if f.txs != 3 {
		t.Fatalf("transaction count = %d, want 3", f.txs)
	}
}

// spiSlave simulates the chip end of the bit-banged bus: it samples MOSI on
// the rising clock edge and presents MISO for the bit just clocked.
type spiSlave struct {
	regs map[byte]byte

	selected bool
	lastSck  bool
	mosiBit  bool
	misoBit  bool

	cur     byte
	bitIdx  int
	byteIdx int
	addr    byte
}

func (s *spiSlave) csPin() PinOut {
	return func(level bool) {
		s.selected = !level
		if s.selected {
			s.cur, s.bitIdx, s.byteIdx = 0, 0, 0
		}
	}
}

func (s *spiSlave) mosiPin() PinOut { return func(level bool) { s.mosiBit = level } }
func (s *spiSlave) misoPin() PinIn  { return func() bool { return s.misoBit } }

func (s *spiSlave) sckPin() PinOut {
	return func(level bool) {
		rising := level && !s.lastSck
		s.lastSck = level
		if !rising || !s.selected {
			return
		}
		// Present the response bit for this clock, MSB first.
		s.misoBit = s.responseByte()&(1<<(7-s.bitIdx)) != 0
		// Sample MOSI.
		s.cur <<= 1
		if s.mosiBit {
			s.cur |= 1
		}
		s.bitIdx++
		if s.bitIdx == 8 {
			s.completeByte()
			s.cur, s.bitIdx = 0, 0
			s.byteIdx++
		}
	}
}

func (s *spiSlave) responseByte() byte {
	if s.byteIdx == 0 || s.addr&spiRead == 0 {
		return 0
	}
	reg := s.addr &^ (spiRead | spiBurst)
	return s.regs[reg+byte(s.byteIdx-1)]
}

func (s *spiSlave) completeByte() {
	if s.byteIdx == 0 {
		s.addr = s.cur
		return
	}
	if s.addr&spiRead == 0 {
		s.regs[s.addr+byte(s.byteIdx-1)] = s.cur
	}
}

func newSPITestConn(regs map[byte]byte) (*spiConn, *spiSlave) {
	s := &spiSlave{regs: regs}
	return newSPIConn(s.sckPin(), s.mosiPin(), s.misoPin(), s.csPin()), s
}

func TestSPIConnWriteRead(t *testing.T) {
	c, s := newSPITestConn(map[byte]byte{})

	if err := c.WriteRegister(regActiveTh, 0xA5); err != nil {
		t.Fatal(err)
	}
	if s.regs[regActiveTh] != 0xA5 {
		t.Fatalf("SPI write landed as %#02x", s.regs[regActiveTh])
	}

	s.regs[regPartID] = PartID
	got, err := c.ReadRegister(regPartID)
	if err != nil {
		t.Fatal(err)
	}
	if got != PartID {
		t.Fatalf("SPI read = %#02x, want %#02x", got, PartID)
	}
}

func TestSPIConnRead16Burst(t *testing.T) {
	c, s := newSPITestConn(map[byte]byte{
		regAccZLSB:     0x2E, // 0x012E = 302
		regAccZLSB + 1: 0x01,
	})
	v, err := c.ReadRegister16(regAccZLSB)
	if err != nil {
		t.Fatal(err)
	}
	if v != 302 {
		t.Fatalf("burst read = %d, want 302", v)
	}
	// The slave saw the read and burst bits on the address byte.
	if s.addr != regAccZLSB|spiRead|spiBurst {
		t.Fatalf("address byte = %#02x, want %#02x", s.addr, regAccZLSB|spiRead|spiBurst)
	}
}

func TestSPIDeviceEndToEnd(t *testing.T) {
	_, s := newSPITestConn(map[byte]byte{})
	s.regs[regPartID] = PartID

	d := NewSPI(s.sckPin(), s.mosiPin(), s.misoPin(), s.csPin())
	if err := d.Configure(Config{}); err != nil {
		t.Fatalf("configure over SPI: %v", err)
	}
	if s.regs[regPowerModeBW] != 0x14 {
		t.Fatalf("power/bw register = %#02x, want 0x14", s.regs[regPowerModeBW])
	}
}
