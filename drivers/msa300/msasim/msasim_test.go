package msasim

import (
	"testing"

	"motioncode-go/drivers/msa300"
)

// Compile-time check.
var _ msa300.Transport = (*Sim)(nil)

func newSimDevice(t *testing.T) (*msa300.Device, *Sim) {
	t.Helper()
	sim := New()
	d := msa300.NewWithTransport(sim)
	if err := d.Configure(msa300.Config{Range: msa300.Range4G}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	return d, sim
}

func TestDeviceProbesSim(t *testing.T) {
	_, sim := newSimDevice(t)
	if sim.Register(0x11) != 0x14 {
		t.Fatalf("power/bw register = %#02x after configure", sim.Register(0x11))
	}
}

func TestAccelerationFlowsThrough(t *testing.T) {
	d, sim := newSimDevice(t)
	sim.SetAcceleration(256, -256, 0)

	a, err := d.AccelerationG()
	if err != nil {
		t.Fatal(err)
	}
	// 256 counts at 7.8 mg/LSB in the 4g range.
	if a.X != 256*0.0078 || a.Y != -256*0.0078 || a.Z != 0 {
		t.Fatalf("acceleration = %+v", a)
	}
}

func TestEventGatedOnEnable(t *testing.T) {
	d, sim := newSimDevice(t)

	// Not enabled yet: the trigger must not latch.
	sim.TriggerFreefall()
	st, err := d.CheckInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	if st.Freefall {
		t.Fatal("freefall latched while disabled")
	}

	if err := d.EnableFreefallInterrupt(msa300.IntPin1); err != nil {
		t.Fatal(err)
	}
	sim.TriggerFreefall()
	st, err = d.CheckInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	if !st.Freefall {
		t.Fatal("freefall not latched after enable")
	}
}

func TestLatchResetClearsEvents(t *testing.T) {
	d, sim := newSimDevice(t)
	if err := d.EnableSingleTapInterrupt(msa300.IntPin1); err != nil {
		t.Fatal(err)
	}
	sim.TriggerSingleTap(true, 0)

	st, err := d.CheckInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	if !st.SingleTap || !st.TapSign || !st.TapFirstX {
		t.Fatalf("tap decode wrong: %+v", st)
	}

	if err := d.ResetLatch(); err != nil {
		t.Fatal(err)
	}
	st, err = d.CheckInterrupts()
	if err != nil {
		t.Fatal(err)
	}
	if st.Any() {
		t.Fatalf("events survived latch reset: %+v", st)
	}
}

func TestOrientationDecodeThroughDriver(t *testing.T) {
	d, sim := newSimDevice(t)
	sim.SetOrientation(true, 0x2)

	o, err := d.Orientation()
	if err != nil {
		t.Fatal(err)
	}
	if o.Z != msa300.ZDownward || o.XY != msa300.LandscapeLeft {
		t.Fatalf("orientation = %+v", o)
	}
}
