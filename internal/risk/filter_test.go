package risk

import "testing"

func TestShouldFilter(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		tolerance Level
		want      bool
	}{
		{"critical above medium tolerance", LevelCritical, LevelMedium, true},
		{"high above medium tolerance", LevelHigh, LevelMedium, true},
		{"medium at medium tolerance", LevelMedium, LevelMedium, false},
		{"low under medium tolerance", LevelLow, LevelMedium, false},
		{"verified under any tolerance", LevelVerified, LevelVerified, false},
		{"low above verified tolerance", LevelLow, LevelVerified, true},
		{"critical at critical tolerance", LevelCritical, LevelCritical, false},
		// Unknown ranks alongside medium: hidden from cautious users,
		// shown to anyone tolerating medium.
		{"unknown above low tolerance", LevelUnknown, LevelLow, true},
		{"unknown at medium tolerance", LevelUnknown, LevelMedium, false},
		{"medium at unknown tolerance", LevelMedium, LevelUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Validation{Level: tt.level}
			if got := ShouldFilter(v, tt.tolerance); got != tt.want {
				t.Errorf("ShouldFilter(%s, %s) = %v, want %v", tt.level, tt.tolerance, got, tt.want)
			}
		})
	}
}

func TestShouldFilterNil(t *testing.T) {
	if ShouldFilter(nil, LevelVerified) {
		t.Error("A nil validation must not be filtered")
	}
}

func TestMoreSevereThan(t *testing.T) {
	ordered := []Level{LevelVerified, LevelLow, LevelMedium, LevelHigh, LevelCritical}
	for i, lower := range ordered {
		for _, higher := range ordered[i+1:] {
			if !higher.MoreSevereThan(lower) {
				t.Errorf("%s should be more severe than %s", higher, lower)
			}
			if lower.MoreSevereThan(higher) {
				t.Errorf("%s should not be more severe than %s", lower, higher)
			}
		}
		if lower.MoreSevereThan(lower) {
			t.Errorf("%s should not be more severe than itself", lower)
		}
	}

	if LevelUnknown.MoreSevereThan(LevelMedium) {
		t.Error("Unknown should rank alongside medium, not above it")
	}
	if !LevelUnknown.MoreSevereThan(LevelLow) {
		t.Error("Unknown should rank above low")
	}
	if !LevelHigh.MoreSevereThan(LevelUnknown) {
		t.Error("High should rank above unknown")
	}
}
