// Package msasim is a register-level simulation of the MSA300 for host
// builds. It implements the driver's Transport, so the full stack above the
// bus protocol runs unchanged against it.
package msasim

import "sync"

// Register addresses and bits mirrored from the chip's map. Only the
// behaviors the simulator models are listed.
const (
	regSoftReset = 0x00
	regPartID    = 0x01
	regAccXLSB   = 0x02
	regMotionInt = 0x09
	regDataInt   = 0x0A
	regTapActive = 0x0B
	regOrient    = 0x0C
	regIntSet0   = 0x16
	regIntSet1   = 0x17
	regIntLatch  = 0x21

	partID = 0x13

	motionFreefall  = 1 << 0
	motionActive    = 1 << 2
	motionDoubleTap = 1 << 4
	motionSingleTap = 1 << 5
	motionOrient    = 1 << 6

	set0ActiveAny = 0b0111
	set1Freefall  = 1 << 3
	set1NewData   = 1 << 4

	dataNewData = 1 << 0

	latchReset = 1 << 7
)

// Sim is a thread-safe register file with just enough chip behavior for the
// motion service: part ID probing, latched event bits, and axis data.
type Sim struct {
	mu   sync.Mutex
	regs [0x41]byte
}

func New() *Sim {
	s := &Sim{}
	s.regs[regPartID] = partID
	return s
}

func (s *Sim) WriteRegister(reg, val byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch reg {
	case regSoftReset:
		for i := range s.regs {
			s.regs[i] = 0
		}
		s.regs[regPartID] = partID
		return nil
	case regIntLatch:
		if val&latchReset != 0 {
			// Latch reset drops pending events; the bit self-clears.
			s.regs[regMotionInt] = 0
			s.regs[regDataInt] = 0
			val &^= latchReset
		}
	}
	s.regs[reg] = val
	return nil
}

func (s *Sim) ReadRegister(reg byte) (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[reg], nil
}

func (s *Sim) ReadRegister16(reg byte) (int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int16(uint16(s.regs[reg]) | uint16(s.regs[reg+1])<<8), nil
}

// SetAcceleration loads raw axis counts, flags new data, and raises the
// new-data interrupt if it is enabled.
func (s *Sim) SetAcceleration(x, y, z int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range []int16{x, y, z} {
		s.regs[regAccXLSB+2*i] = byte(uint16(v))
		s.regs[regAccXLSB+2*i+1] = byte(uint16(v) >> 8)
	}
	if s.regs[regIntSet1]&set1NewData != 0 {
		s.regs[regDataInt] |= dataNewData
	}
}

// raise latches a motion event bit when the matching enable bits are set.
func (s *Sim) raise(bit, setReg, enable byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.regs[setReg]&enable != 0 {
		s.regs[regMotionInt] |= bit
	}
}

func (s *Sim) TriggerSingleTap(negative bool, firstAxis byte) {
	s.raise(motionSingleTap, regIntSet0, motionSingleTap)
	s.setTapDetail(negative, firstAxis)
}

func (s *Sim) TriggerDoubleTap(negative bool, firstAxis byte) {
	s.raise(motionDoubleTap, regIntSet0, motionDoubleTap)
	s.setTapDetail(negative, firstAxis)
}

func (s *Sim) TriggerActive() {
	s.raise(motionActive, regIntSet0, set0ActiveAny)
}

func (s *Sim) TriggerFreefall() {
	s.raise(motionFreefall, regIntSet1, set1Freefall)
}

// setTapDetail records slope sign and first axis (0=x, 1=y, 2=z).
func (s *Sim) setTapDetail(negative bool, firstAxis byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var v byte
	if negative {
		v |= 1 << 7
	}
	switch firstAxis {
	case 0:
		v |= 1 << 6
	case 1:
		v |= 1 << 5
	case 2:
		v |= 1 << 4
	}
	s.regs[regTapActive] = v
}

// SetOrientation sets the orientation status register (zDown selects the
// downward-looking bit, xy is the 2-bit portrait/landscape code) and raises
// the orientation interrupt if enabled.
func (s *Sim) SetOrientation(zDown bool, xy byte) {
	s.mu.Lock()
	var v byte
	if zDown {
		v |= 1 << 6
	}
	v |= (xy & 0x3) << 4
	s.regs[regOrient] = v
	s.mu.Unlock()
	s.raise(motionOrient, regIntSet0, motionOrient)
}

// Register exposes raw register state for assertions in tests.
func (s *Sim) Register(reg byte) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[reg]
}
