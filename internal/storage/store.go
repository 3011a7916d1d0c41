package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var baseColumns = []string{"frame", "time", "render_ms", "changes", "skipped"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one recorded benchmark run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Pattern   string             `json:"pattern"`
	Preset    int                `json:"preset"`
	Theme     string             `json:"theme"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       int                `json:"fps"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Frames    int                `json:"frames"`
	Duration  float64            `json:"duration"`
	Wall      float64            `json:"wall_seconds"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Frame is one row of frames.csv.
type Frame struct {
	Frame    uint64             `json:"frame"`
	Time     float64            `json:"time"`
	RenderMS float64            `json:"render_ms"`
	Changes  int                `json:"changes"`
	Skipped  bool               `json:"skipped"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// Save writes a run and returns its id. An empty ID is derived from the
// pattern name and timestamp.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Frames == 0 {
		meta.Frames = len(frames)
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	runDir, err := s.newRunDir(&meta)
	if err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeFrames(csvFile, frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// newRunDir creates a fresh directory for meta, suffixing the id when a run
// with the same id exists.
func (s *Store) newRunDir(meta *RunMetadata) (string, error) {
	base := meta.ID
	if base == "" {
		base = fmt.Sprintf("%s_%s", meta.Pattern, meta.Timestamp.Format("20060102-150405"))
	}
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			meta.ID = id
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeFrames(out io.Writer, frames []Frame) error {
	w := csv.NewWriter(out)
	keys := metricKeys(frames)
	if err := w.Write(append(append([]string{}, baseColumns...), keys...)); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatUint(f.Frame, 10),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.RenderMS, 'f', 4, 64),
			strconv.Itoa(f.Changes),
			strconv.FormatBool(f.Skipped),
		}
		for _, k := range keys {
			v, ok := f.Metrics[k]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func metricKeys(frames []Frame) []string {
	seen := make(map[string]bool)
	for _, f := range frames {
		for k := range f.Metrics {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Unparseable rows are skipped.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	header := records[0]
	frames := make([]Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(baseColumns) {
			continue
		}
		n, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			continue
		}
		f := Frame{Frame: n}
		f.Time, _ = strconv.ParseFloat(record[1], 64)
		f.RenderMS, _ = strconv.ParseFloat(record[2], 64)
		f.Changes, _ = strconv.Atoi(record[3])
		f.Skipped, _ = strconv.ParseBool(record[4])

		for j := len(baseColumns); j < len(record) && j < len(header); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			if f.Metrics == nil {
				f.Metrics = make(map[string]float64)
			}
			f.Metrics[header[j]] = v
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Series extracts one column from frames: a base column name or a metric.
func Series(frames []Frame, column string) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		switch column {
		case "frame":
			out = append(out, float64(f.Frame))
		case "time":
			out = append(out, f.Time)
		case "render_ms":
			out = append(out, f.RenderMS)
		case "changes":
			out = append(out, float64(f.Changes))
		default:
			if v, ok := f.Metrics[column]; ok {
				out = append(out, v)
			}
		}
	}
	return out
}
