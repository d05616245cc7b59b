// Package msa300 provides constants for register addresses and bitfields used
// in the operation of the MSA300 14-bit 3-axis accelerometer.
package msa300

const (
	// 7-bit I2C address with SDO strapped to GND; 0x27 when pulled high.
	AddressDefault = 0x26
	AddressAlt     = 0x27

	// Part ID register value for the MSA300 family.
	PartID = 0x13

	// --- Register sub-addresses (8-bit registers; axis data is LSB/MSB pairs) ---

	// Readouts / status
	regSoftReset       = 0x00 // W
	regPartID          = 0x01 // R
	regAccXLSB         = 0x02 // R (pair 0x02/0x03)
	regAccYLSB         = 0x04 // R (pair 0x04/0x05)
	regAccZLSB         = 0x06 // R (pair 0x06/0x07)
	regMotionInt       = 0x09 // R
	regDataInt         = 0x0A // R
	regTapActiveStatus = 0x0B // R
	regOrientStatus    = 0x0C // R

	// Config / control
	regResRange     = 0x0F // R/W (resolution bits 3:2, range bits 1:0)
	regODR          = 0x10 // R/W (output data rate bits 3:0)
	regPowerModeBW  = 0x11 // R/W (power mode bits 7:6, bandwidth bits 4:1)
	regSwapPolarity = 0x12 // R/W

	// Interrupt engine
	regIntSet0  = 0x16 // R/W (active axes, tap flavours, orientation)
	regIntSet1  = 0x17 // R/W (freefall, new-data)
	regIntMap0  = 0x19 // R/W (pin 1 routing)
	regIntMap1  = 0x1A // R/W (new-data routing: bit0 pin1, bit7 pin2)
	regIntMap21 = 0x1B // R/W (pin 2 routing)
	regIntMap22 = 0x20 // R/W (pin 2 routing, second bank)
	regIntLatch = 0x21 // R/W (latch mode bits 3:0, reset bit 7)

	// Event tuning
	regFreefallDur = 0x22 // R/W
	regFreefallTh  = 0x23 // R/W
	regFreefallHy  = 0x24 // R/W (mode bit 3, hysteresis bits 1:0)
	regActiveDur   = 0x27 // R/W
	regActiveTh    = 0x28 // R/W
	regTapDur      = 0x2A // R/W (quiet bit 7, shock bit 6, duration bits 2:0)
	regTapTh       = 0x2B // R/W
	regOrientHy    = 0x2C // R/W (hysteresis bits 6:4, blocking bits 3:2, mode bits 1:0)
	regZBlock      = 0x2D // R/W (limit bits 3:0)

	// Offset compensation, one register per axis
	regOffsetX = 0x38 // R/W
	regOffsetY = 0x39 // R/W
	regOffsetZ = 0x3A // R/W
)

// Bit-field masks inside shared registers. Setters clear exactly their own
// field before OR-ing the new value in.
const (
	maskRange      = 0x03 // regResRange bits 1:0
	maskResolution = 0x0C // regResRange bits 3:2
	maskODR        = 0x0F // regODR bits 3:0
	maskPowerMode  = 0xC0 // regPowerModeBW bits 7:6
	maskLatchMode  = 0x0F // regIntLatch bits 3:0
	maskOrientMode = 0x03 // regOrientHy bits 1:0
	maskOrientHy   = 0x70 // regOrientHy bits 6:4
	maskBlockMode  = 0x0C // regOrientHy bits 3:2
	maskFreefallHy = 0x03 // regFreefallHy bits 1:0
)

// Interrupt set-register bits.
const (
	set0ActiveX   = 1 << 0
	set0ActiveY   = 1 << 1
	set0ActiveZ   = 1 << 2
	set0DoubleTap = 1 << 4
	set0SingleTap = 1 << 5
	set0Orient    = 1 << 6

	set1Freefall = 1 << 3
	set1NewData  = 1 << 4
)

// Interrupt map-register bits. Map-0 routes to pin 1, map-2-1 routes to
// pin 2 with the same layout. New-data lives alone in map-1.
const (
	mapFreefall  = 1 << 0
	mapActive    = 1 << 2
	mapDoubleTap = 1 << 4
	mapSingleTap = 1 << 5
	mapOrient    = 1 << 6

	map1NewDataPin1 = 1 << 0
	map1NewDataPin2 = 1 << 7
)

// Status-register bits.
const (
	motionFreefall  = 1 << 0
	motionActive    = 1 << 2
	motionDoubleTap = 1 << 4
	motionSingleTap = 1 << 5
	motionOrient    = 1 << 6

	dataNewData = 1 << 0

	latchReset = 1 << 7
)
