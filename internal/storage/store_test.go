package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/metrics"
)

func sampleFrames() []Frame {
	return []Frame{
		{Frame: 0, Time: 0.0, RenderMS: 1.5, Changes: 40, Metrics: map[string]float64{"particles": 10}},
		{Frame: 1, Time: 0.033, RenderMS: 1.25, Changes: 12, Metrics: map[string]float64{"particles": 14, "churn": 0.3}},
		{Frame: 2, Time: 0.066, Skipped: true},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{Pattern: "fireworks", Seed: 42, FPS: 30, Metrics: map[string]float64{"fps": 29.5}}
	runID, err := st.Save(meta, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Pattern != "fireworks" {
		t.Errorf("expected pattern 'fireworks', got '%s'", got.Pattern)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", got.Frames)
	}
	if got.Metrics["fps"] != 29.5 {
		t.Errorf("expected fps 29.5, got %f", got.Metrics["fps"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[1].Changes != 12 || frames[1].RenderMS != 1.25 {
		t.Errorf("unexpected frame %+v", frames[1])
	}
	if frames[1].Metrics["churn"] != 0.3 || frames[0].Metrics["particles"] != 10 {
		t.Errorf("metric columns lost: %+v %+v", frames[0].Metrics, frames[1].Metrics)
	}
	if _, ok := frames[0].Metrics["churn"]; ok {
		t.Error("missing metric must stay missing")
	}
	if !frames[2].Skipped {
		t.Error("expected skipped flag")
	}
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	now := time.Now()
	for i, p := range []string{"maze", "maze"} {
		meta := RunMetadata{Pattern: p, Timestamp: now.Add(time.Duration(i) * time.Second)}
		if _, err := st.Save(meta, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID == runs[1].ID {
		t.Error("run ids must be unique")
	}
	if !runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected oldest first")
	}
}

func TestStoreDuplicateID(t *testing.T) {
	st := New(t.TempDir())
	meta := RunMetadata{ID: "bench", Pattern: "life"}

	first, err := st.Save(meta, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(meta, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != "bench" || second != "bench_2" {
		t.Errorf("expected bench and bench_2, got %s and %s", first, second)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Pattern: "rain"}, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadFrames("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Pattern: "snow", Seed: 7}, sampleFrames())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.Pattern != "snow" || data.Run.Seed != 7 || len(data.Frames) != 3 {
		t.Errorf("unexpected export %+v", data)
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Pattern: "snow"}, sampleFrames())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "frame,time,render_ms,changes,skipped,churn,particles" {
		t.Errorf("unexpected header %q", lines[0])
	}

	if err := st.ExportCSV("nope", &buf); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestSeries(t *testing.T) {
	frames := sampleFrames()
	tests := []struct {
		column   string
		expected int
	}{
		{"changes", 3},
		{"particles", 2},
		{"churn", 1},
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := Series(frames, tt.column); len(got) != tt.expected {
			t.Errorf("%s: expected %d values, got %d", tt.column, tt.expected, len(got))
		}
	}
}

func TestRecorder(t *testing.T) {
	clock := engine.NewManualClock()
	set := metrics.Default(clock)
	rec := NewRecorder(set, func() map[string]float64 {
		return map[string]float64{"drops": 5}
	})
	// Same order as the app: the set observes a frame before the recorder
	// reads it.
	hooks := []engine.AfterRenderFunc{set.Hook(), rec.Hook()}
	for _, info := range []engine.FrameInfo{
		{Frame: 0, Size: buffer.Size{Width: 4, Height: 4}, Changes: 8, RenderTime: 2 * time.Millisecond},
		{Frame: 1, Skipped: true},
	} {
		for _, hook := range hooks {
			hook(info)
		}
	}

	frames := rec.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].RenderMS != 2 || frames[0].Metrics["drops"] != 5 || frames[0].Metrics["churn"] != 0.5 {
		t.Errorf("unexpected frame %+v", frames[0])
	}
	if !frames[1].Skipped {
		t.Error("expected skipped frame")
	}
}
