package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/harrisonrobin/studydesk/pkg/dashboard"
)

func TestObserveAndWrite(t *testing.T) {
	r := New()
	r.Observe(dashboard.NewStats(3, 4, 1, 2), time.Unix(1700000000, 0))
	r.SetRecords("tasks", 9)
	r.AddFocus("Pomodoro", 25*time.Minute)

	if got := testutil.ToFloat64(r.Productivity); got != 40 {
		t.Fatalf("expected productivity 40, got %v", got)
	}
	if got := testutil.ToFloat64(r.FocusSeconds.WithLabelValues("Pomodoro")); got != 1500 {
		t.Fatalf("expected 1500 focus seconds, got %v", got)
	}

	path := filepath.Join(t.TempDir(), "studydesk.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"studydesk_tasks_pending 4",
		`studydesk_records{collection="tasks"} 9`,
		"studydesk_events_upcoming 2",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
