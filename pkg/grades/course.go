package grades

import "github.com/harrisonrobin/studydesk/pkg/model"

const (
	WeightAssignments = 0.4
	WeightMidterm     = 0.3
	WeightFinal       = 0.3
)

// Targets are the component scores a course grade is compared against.
var Targets = CourseGrade{Assignments: 90, Midterm: 80, Final: 80}

// CourseGrade holds the three component scores of one course, each in [0, 100].
type CourseGrade struct {
	Assignments float64
	Midterm     float64
	Final       float64
}

// Validate checks every component is within [0, 100].
func (g CourseGrade) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"assignments", g.Assignments},
		{"midterm", g.Midterm},
		{"final", g.Final},
	} {
		if c.value < 0 || c.value > 100 {
			return model.Invalid(c.name, "score %.1f is outside 0-100", c.value)
		}
	}
	return nil
}

// CourseScore weights the components 40/30/30. Inputs are expected to be
// validated already.
func CourseScore(assignments, midterm, final float64) float64 {
	return assignments*WeightAssignments + midterm*WeightMidterm + final*WeightFinal
}

func (g CourseGrade) Score() float64 {
	return CourseScore(g.Assignments, g.Midterm, g.Final)
}

// Gap is one component's score next to its target.
type Gap struct {
	Component string
	Score     float64
	Target    float64
}

// Delta is positive when the score beats the target.
func (g Gap) Delta() float64 {
	return g.Score - g.Target
}

// Compare lines up each component with Targets.
func Compare(g CourseGrade) []Gap {
	return []Gap{
		{Component: "Assignments", Score: g.Assignments, Target: Targets.Assignments},
		{Component: "Midterm", Score: g.Midterm, Target: Targets.Midterm},
		{Component: "Final", Score: g.Final, Target: Targets.Final},
	}
}
