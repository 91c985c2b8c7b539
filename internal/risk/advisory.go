package risk

// Advisory text per level, for display next to a badge or in a
// confirmation dialog. Pure lookups with a safe fallback.

var descriptions = map[Level]string{
	LevelVerified: "Verified token from a trusted list",
	LevelLow:      "No significant risk signals detected",
	LevelMedium:   "Unclassified token, limited information available",
	LevelHigh:     "Multiple risk signals detected",
	LevelCritical: "Dangerous token, known scam indicators present",
	LevelUnknown:  "Token could not be assessed",
}

var recommendations = map[Level]string{
	LevelVerified: "Safe to use.",
	LevelLow:      "Generally safe, exercise normal caution.",
	LevelMedium:   "Verify the token contract before interacting.",
	LevelHigh:     "Avoid interacting unless you can independently verify this token.",
	LevelCritical: "Do not interact with this token.",
	LevelUnknown:  "Treat with caution until it can be assessed.",
}

// Description returns a human-readable description of a risk level.
func Description(l Level) string {
	if s, ok := descriptions[l]; ok {
		return s
	}
	return descriptions[LevelUnknown]
}

// Recommendation returns the suggested user action for a risk level.
func Recommendation(l Level) string {
	if s, ok := recommendations[l]; ok {
		return s
	}
	return recommendations[LevelUnknown]
}
