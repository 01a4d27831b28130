package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/config"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func TestNowUsesConfiguredZone(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	fixed := time.Date(2024, 3, 10, 23, 30, 0, 0, time.FixedZone("X", 5*3600))
	st := New(cfg, zap.NewNop(), storage.New(storage.NewFileBackend(t.TempDir()), nil), func() time.Time { return fixed })

	now := st.Now()
	if now.Location() != time.UTC || now.Hour() != 18 {
		t.Fatalf("expected 18:30 UTC, got %v", now)
	}
}

func TestCloseWritesMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "studydesk.prom")
	st := New(cfg, zap.NewNop(), storage.New(storage.NewFileBackend(t.TempDir()), nil), time.Now)
	st.Metrics.Pending.Set(3)

	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cfg.Metrics.Textfile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "studydesk_tasks_pending 3") {
		t.Fatalf("metrics not written:\n%s", data)
	}
}
