package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	dotLast := &DetectedPattern{Template: FirstDotLast, Confidence: 100}
	firstOnly := &DetectedPattern{Template: FirstOnly, Confidence: 60}

	tests := []struct {
		name     string
		template Template
		prior    int
		size     CompanySize
		detected *DetectedPattern
		want     int
	}{
		{"prior only", FirstDotLast, 40, SizeUnknown, nil, 40},
		{"large boosts first.last", FirstDotLast, 40, Large, nil, 60},
		{"large ignores others", FirstLast, 25, Large, nil, 25},
		{"small boosts first", FirstOnly, 15, Small, nil, 30},
		{"small boosts firstlast", FirstLast, 25, Small, nil, 40},
		{"small ignores first.last", FirstDotLast, 40, Small, nil, 40},
		{"medium never boosts", FirstDotLast, 40, Medium, nil, 40},
		{"detected match", FirstDotLast, 40, SizeUnknown, dotLast, 70},
		{"detected mismatch", FirstLast, 25, SizeUnknown, dotLast, 25},
		{"large and detected stack", FirstDotLast, 40, Large, dotLast, 90},
		{"small and detected stack", FirstOnly, 15, Small, firstOnly, 60},
		{"clamped high", FirstDotLast, 90, Large, dotLast, 100},
		{"clamped low", Initials, -10, SizeUnknown, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := EmailCandidate{Email: "x@acme.com", Template: tt.template, Confidence: tt.prior}
			assert.Equal(t, tt.want, Score(c, tt.size, tt.detected))
		})
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	sizes := []CompanySize{SizeUnknown, Small, Medium, Large}
	for _, c := range Generate("John", "Smith", "acme.com") {
		for _, size := range sizes {
			for _, tmpl := range detectable {
				got := Score(c, size, &DetectedPattern{Template: tmpl, Confidence: 100})
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 100)
			}
		}
	}
}
