package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Frames []Frame     `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Frames: frames})
}

// ExportCSV copies a run's frames.csv to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
