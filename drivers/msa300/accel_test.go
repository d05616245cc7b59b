package msa300

import "testing"

func TestRawAxesSigned(t *testing.T) {
	d, f := newTestDevice(t)
	f.setRaw(regAccXLSB, 100)
	f.setRaw(regAccYLSB, -2048)
	f.setRaw(regAccZLSB, 8191)

	x, y, z, err := d.RawAxes()
	if err != nil {
		t.Fatal(err)
	}
	if x != 100 || y != -2048 || z != 8191 {
		t.Fatalf("raw axes = %d, %d, %d", x, y, z)
	}
}

func TestAccelerationUsesCachedRange(t *testing.T) {
	d, f := newTestDevice(t)
	if err := d.SetRange(Range8G); err != nil {
		t.Fatal(err)
	}
	f.setRaw(regAccXLSB, 100)
	f.setRaw(regAccYLSB, 0)
	f.setRaw(regAccZLSB, -100)

	a, err := d.Acceleration()
	if err != nil {
		t.Fatal(err)
	}
	// 100 counts at 15.6 mg/LSB is 1.56 g, about 15.30 m/s².
	want := float32(100) * 0.0156 * Gravity
	if a.X != want {
		t.Fatalf("X = %v m/s², want %v", a.X, want)
	}
	if a.Y != 0 {
		t.Fatalf("Y = %v m/s², want 0", a.Y)
	}
	if a.Z != -want {
		t.Fatalf("Z = %v m/s², want %v", a.Z, -want)
	}
}

func TestAccelerationGTracksRangeChanges(t *testing.T) {
	d, f := newTestDevice(t)
	f.setRaw(regAccXLSB, 1000)

	if err := d.SetRange(Range2G); err != nil {
		t.Fatal(err)
	}
	a2, err := d.AccelerationG()
	if err != nil {
		t.Fatal(err)
	}

	if err := d.SetRange(Range16G); err != nil {
		t.Fatal(err)
	}
	a16, err := d.AccelerationG()
	if err != nil {
		t.Fatal(err)
	}

	// Same counts, eight times the full scale.
	if a2.X != 1000*0.0039 || a16.X != 1000*0.0312 {
		t.Fatalf("scaling wrong: 2g %v, 16g %v", a2.X, a16.X)
	}
}

func TestOffsetWrites(t *testing.T) {
	d, f := newTestDevice(t)
	if err := d.SetOffset(AxisY, 500); err != nil {
		t.Fatal(err)
	}
	if got := f.regs[regOffsetY]; got != 128 {
		t.Fatalf("Y offset register = %d, want 128", got)
	}
	// Out-of-range offsets saturate instead of failing.
	if err := d.SetOffset(AxisX, -40); err != nil {
		t.Fatal(err)
	}
	if got := f.regs[regOffsetX]; got != 0 {
		t.Fatalf("X offset register = %d, want 0", got)
	}
	if err := d.SetOffset(AxisZ, 5000); err != nil {
		t.Fatal(err)
	}
	if got := f.regs[regOffsetZ]; got != 255 {
		t.Fatalf("Z offset register = %d, want 255", got)
	}
}

func TestTapThresholdTracksRange(t *testing.T) {
	d, f := newTestDevice(t)

	if err := d.SetRange(Range2G); err != nil {
		t.Fatal(err)
	}
	if err := d.SetTapThreshold(500); err != nil {
		t.Fatal(err)
	}
	at2g := f.regs[regTapTh]

	if err := d.SetRange(Range16G); err != nil {
		t.Fatal(err)
	}
	if err := d.SetTapThreshold(500); err != nil {
		t.Fatal(err)
	}
	at16g := f.regs[regTapTh]

	// 62.5 mg/LSB at 2g against 500 mg/LSB at 16g.
	if at2g != 8 || at16g != 1 {
		t.Fatalf("tap threshold codes = %d at 2g, %d at 16g", at2g, at16g)
	}
}
