package msa300

import "testing"

func TestMergeFieldTouchesOnlyMask(t *testing.T) {
	cases := []struct {
		old, mask, val, want byte
	}{
		{0xFF, 0x03, 0x01, 0xFD},
		{0x00, 0xC0, 0xC0, 0xC0},
		{0xA5, 0x0C, 0x08, 0xA9},
		{0xA5, 0x0C, 0xFF, 0xAD}, // value bits outside the mask are dropped
	}
	for _, c := range cases {
		if got := mergeField(c.old, c.mask, c.val); got != c.want {
			t.Fatalf("mergeField(%#02x, %#02x, %#02x) = %#02x, want %#02x",
				c.old, c.mask, c.val, got, c.want)
		}
	}
}

func TestOffsetCodeClamps(t *testing.T) {
	// Negative input pins to the same code as zero.
	if offsetCode(-50) != offsetCode(0) {
		t.Fatalf("offsetCode(-50) = %d, want %d", offsetCode(-50), offsetCode(0))
	}
	// Over-range input pins to the same code as the 998.4 mg bound.
	if offsetCode(2000) != offsetCode(998.4) {
		t.Fatalf("offsetCode(2000) = %d, want %d", offsetCode(2000), offsetCode(998.4))
	}
	// 500 mg / 3.9 mg per LSB = 128.
	if got := offsetCode(500); got != 128 {
		t.Fatalf("offsetCode(500) = %d, want 128", got)
	}
}

func TestRangeMultiplierMonotonic(t *testing.T) {
	ranges := []Range{Range2G, Range4G, Range8G, Range16G}
	prev := float32(0)
	for _, r := range ranges {
		m := rangeMultiplier(r)
		if m <= prev {
			t.Fatalf("multiplier for %v not increasing: %v after %v", r, m, prev)
		}
		prev = m
	}
}

func TestThresholdCodeClamps(t *testing.T) {
	// 62.5 mg/LSB at 2g: 125 mg -> code 2.
	if got := thresholdCode(125, 62.5, 2000); got != 2 {
		t.Fatalf("thresholdCode(125) = %d, want 2", got)
	}
	// Negative pins to zero.
	if got := thresholdCode(-1, 62.5, 2000); got != 0 {
		t.Fatalf("thresholdCode(-1) = %d, want 0", got)
	}
	// Huge input clamps at full scale, then saturates to the byte register.
	if got := thresholdCode(1e9, 62.5, 2000); got != 255 {
		t.Fatalf("thresholdCode(1e9) = %d, want 255", got)
	}
}

func TestFreefallDurationCode(t *testing.T) {
	cases := []struct {
		ms   uint16
		want byte
	}{
		{0, 0},   // below domain, pinned to 2 ms
		{2, 0},   // 2/2 - 1
		{3, 0},   // 0.5 truncates down, float before integer cut
		{4, 1},   // 4/2 - 1
		{100, 49},
		{512, 255}, // 255 after byte saturation of code 255
		{1000, 255},
	}
	for _, c := range cases {
		if got := freefallDurationCode(c.ms); got != c.want {
			t.Fatalf("freefallDurationCode(%d) = %d, want %d", c.ms, got, c.want)
		}
	}
}

func TestActiveDurationCode(t *testing.T) {
	cases := []struct {
		ms   uint8
		want byte
	}{
		{0, 0}, // below domain
		{1, 0},
		{3, 2},
		{5, 4},
		{9, 4}, // above domain
	}
	for _, c := range cases {
		if got := activeDurationCode(c.ms); got != c.want {
			t.Fatalf("activeDurationCode(%d) = %d, want %d", c.ms, got, c.want)
		}
	}
}

func TestOrientHysteresisCode(t *testing.T) {
	if got := orientHysteresisCode(125); got != 2 {
		t.Fatalf("orientHysteresisCode(125) = %d, want 2", got)
	}
	// Top of the mg domain saturates at the 3-bit field maximum; code 8
	// would be shifted out of bits 6:4 and read back as zero.
	if got := orientHysteresisCode(500); got != 7 {
		t.Fatalf("orientHysteresisCode(500) = %d, want 7", got)
	}
	if got := orientHysteresisCode(10000); got != 7 {
		t.Fatalf("orientHysteresisCode(10000) = %d, want 7", got)
	}
	if got := zBlockCode(10000); got != 15 {
		t.Fatalf("zBlockCode(10000) = %d, want 15", got)
	}
}

func TestFreefallHysteresisCode(t *testing.T) {
	cases := []struct {
		mg   uint16
		want byte
	}{
		{0, 0},
		{125, 1},
		{250, 2},
		{375, 3},
		{500, 3}, // field maximum, must not wrap to 0 under the 2-bit mask
		{1000, 3},
	}
	for _, c := range cases {
		if got := freefallHysteresisCode(c.mg); got != c.want {
			t.Fatalf("freefallHysteresisCode(%d) = %d, want %d", c.mg, got, c.want)
		}
	}
}
