package risk

import "testing"

func TestAdvisoryCoversAllLevels(t *testing.T) {
	levels := []Level{LevelVerified, LevelLow, LevelMedium, LevelHigh, LevelCritical, LevelUnknown}
	for _, l := range levels {
		if Description(l) == "" {
			t.Errorf("No description for level %s", l)
		}
		if Recommendation(l) == "" {
			t.Errorf("No recommendation for level %s", l)
		}
	}
}

func TestAdvisoryFallback(t *testing.T) {
	bogus := Level(42)
	if Description(bogus) != Description(LevelUnknown) {
		t.Error("Unrecognized level should fall back to the unknown description")
	}
	if Recommendation(bogus) != Recommendation(LevelUnknown) {
		t.Error("Unrecognized level should fall back to the unknown recommendation")
	}
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelVerified, LevelLow, LevelMedium, LevelHigh, LevelCritical, LevelUnknown} {
		got, ok := ParseLevel(l.String())
		if !ok || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, ok)
		}
	}
	if _, ok := ParseLevel("nonsense"); ok {
		t.Error("ParseLevel should reject unknown names")
	}
}
