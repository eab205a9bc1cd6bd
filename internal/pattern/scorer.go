package pattern

const (
	largeCompanyBoost = 20
	smallCompanyBoost = 15
	detectedBoost     = 30
)

// Score adjusts a candidate's prior weight using the company size hint and
// the detected convention, if any. Boosts are additive and the result is
// clamped to [0, 100].
func Score(c EmailCandidate, size CompanySize, detected *DetectedPattern) int {
	score := c.Confidence

	switch {
	case size == Large && c.Template == FirstDotLast:
		score += largeCompanyBoost
	case size == Small && (c.Template == FirstOnly || c.Template == FirstLast):
		score += smallCompanyBoost
	}

	if detected != nil && detected.Template == c.Template {
		score += detectedBoost
	}

	return clamp(score)
}
