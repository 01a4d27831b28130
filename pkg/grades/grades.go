// Package grades computes cumulative grade point averages and weighted
// course scores.
package grades

import (
	"math"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

// MaxGPA is the top of the grade point scale.
const MaxGPA = 10.0

// CGPA returns the credit-weighted average of gpas. The result is not rounded.
func CGPA(gpas, credits []float64) (float64, error) {
	if len(gpas) != len(credits) {
		return 0, model.Invalid("credits", "%d grade points but %d credit values", len(gpas), len(credits))
	}
	var weighted, total float64
	for i, g := range gpas {
		weighted += g * credits[i]
		total += credits[i]
	}
	if total <= 0 {
		return 0, model.Invalid("credits", "total credits must be positive")
	}
	return weighted / total, nil
}

type Band int

const (
	NeedsImprovement Band = iota
	Good
	VeryGood
	Excellent
)

// BandFor places a CGPA on the performance scale.
func BandFor(cgpa float64) Band {
	switch {
	case cgpa >= 9:
		return Excellent
	case cgpa >= 8:
		return VeryGood
	case cgpa >= 7:
		return Good
	default:
		return NeedsImprovement
	}
}

func (b Band) String() string {
	switch b {
	case Excellent:
		return "Excellent"
	case VeryGood:
		return "Very Good"
	case Good:
		return "Good"
	default:
		return "Needs improvement"
	}
}

// Advice is the one-line message shown under a CGPA result.
func (b Band) Advice() string {
	switch b {
	case Excellent:
		return "Excellent! You're in the top percentile."
	case VeryGood:
		return "Very Good! Keep up the good work."
	case Good:
		return "Good. You're doing well but can improve."
	default:
		return "Needs improvement. Focus on weak areas."
	}
}

// Progress is cgpa as a fraction of the scale, clamped to [0, 1].
func Progress(cgpa float64) float64 {
	return math.Max(0, math.Min(1, cgpa/MaxGPA))
}
