package msa300

import "testing"

func TestFreefallHysteresisSaturatesAtFieldMax(t *testing.T) {
	d, f := newTestDevice(t)

	// 500 mg is the top of the documented domain. The 2-bit field must hold
	// its maximum, not wrap to zero through the register mask.
	if err := d.SetFreefallHysteresis(FreefallSingle, 500); err != nil {
		t.Fatal(err)
	}
	if got := f.regs[regFreefallHy] & maskFreefallHy; got != 3 {
		t.Fatalf("freefall hysteresis field for 500 mg = %d, want 3", got)
	}

	// The mode bit shares the register and must survive the field write.
	if err := d.SetFreefallHysteresis(FreefallSum, 250); err != nil {
		t.Fatal(err)
	}
	got := f.regs[regFreefallHy]
	if got&(1<<3) == 0 {
		t.Fatalf("sum mode bit not set: %#02x", got)
	}
	if got&maskFreefallHy != 2 {
		t.Fatalf("freefall hysteresis field for 250 mg = %d, want 2", got&maskFreefallHy)
	}
}

func TestOrientHysteresisSaturatesAtFieldMax(t *testing.T) {
	d, f := newTestDevice(t)
	if err := d.SetOrientMode(OrientHighAsymmetric); err != nil {
		t.Fatal(err)
	}

	if err := d.SetOrientHysteresis(500); err != nil {
		t.Fatal(err)
	}
	if got := (f.regs[regOrientHy] & maskOrientHy) >> 4; got != 7 {
		t.Fatalf("orient hysteresis field for 500 mg = %d, want 7", got)
	}
	// The mode field shares the register and must be untouched.
	if m, _ := d.ReadOrientMode(); m != OrientHighAsymmetric {
		t.Fatalf("orient mode clobbered by hysteresis write: %v", m)
	}

	if err := d.SetOrientHysteresis(125); err != nil {
		t.Fatal(err)
	}
	if got := (f.regs[regOrientHy] & maskOrientHy) >> 4; got != 2 {
		t.Fatalf("orient hysteresis field for 125 mg = %d, want 2", got)
	}
}
