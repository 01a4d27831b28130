package grades

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func TestCGPA(t *testing.T) {
	got, err := CGPA([]float64{8.5, 9.0}, []float64{20, 24})
	if err != nil {
		t.Fatal(err)
	}
	want := (8.5*20 + 9.0*24) / 44
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if math.Round(got*1000)/1000 != 8.773 {
		t.Fatalf("expected 8.773 to 3dp, got %.4f", got)
	}
}

func TestCGPARejectsBadInput(t *testing.T) {
	var verr *model.ValidationError
	if _, err := CGPA([]float64{8, 9}, []float64{20}); !errors.As(err, &verr) {
		t.Errorf("mismatched lengths: expected validation error, got %v", err)
	}
	if _, err := CGPA([]float64{8}, []float64{0}); !errors.As(err, &verr) {
		t.Errorf("zero credits: expected validation error, got %v", err)
	}
	if _, err := CGPA(nil, nil); !errors.As(err, &verr) {
		t.Errorf("empty input: expected validation error, got %v", err)
	}
}

func TestBands(t *testing.T) {
	cases := []struct {
		cgpa float64
		want Band
	}{
		{9.0, Excellent},
		{8.99, VeryGood},
		{8.0, VeryGood},
		{7.5, Good},
		{6.99, NeedsImprovement},
	}
	for _, c := range cases {
		if got := BandFor(c.cgpa); got != c.want {
			t.Errorf("BandFor(%v) = %v, want %v", c.cgpa, got, c.want)
		}
	}
	if Progress(8.5) != 0.85 || Progress(12) != 1 {
		t.Errorf("unexpected progress values %v %v", Progress(8.5), Progress(12))
	}
}

func TestCourseScore(t *testing.T) {
	g := CourseGrade{Assignments: 85, Midterm: 75, Final: 80}
	if got := g.Score(); math.Abs(got-80.5) > 1e-9 {
		t.Fatalf("expected 80.5, got %v", got)
	}
	gaps := Compare(g)
	if gaps[0].Delta() != -5 || gaps[1].Delta() != -5 || gaps[2].Delta() != 0 {
		t.Fatalf("unexpected gaps %+v", gaps)
	}
	if err := (CourseGrade{Assignments: 101}).Validate(); err == nil {
		t.Fatal("expected out of range score to fail validation")
	}
}

func TestCoursesArePersisted(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewFileBackend(t.TempDir()), zap.NewNop())
	courses := LoadCourses(ctx, store, zap.NewNop())

	if _, err := courses.Add(ctx, "Data Structures", "CS201", 4); err != nil {
		t.Fatal(err)
	}
	var verr *model.ValidationError
	if _, err := courses.Add(ctx, "Heavy", "X", 6); !errors.As(err, &verr) {
		t.Fatalf("expected credit validation error, got %v", err)
	}

	reloaded := LoadCourses(ctx, store, zap.NewNop())
	c, ok := reloaded.Find("cs201")
	if !ok || c.Credits != 4 {
		t.Fatalf("course not reloaded: %+v", reloaded.List())
	}
}
