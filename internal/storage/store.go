// Package storage persists recorded runs to disk: one directory per run
// with a metadata.json and a states.csv of flattened per-tick body state.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mpolane/gravsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Bodies     int                `json:"bodies"`
	G          float64            `json:"g"`
	TimeScale  float64            `json:"time_scale"`
	SubSteps   int                `json:"sub_steps"`
	Softening  float64            `json:"softening"`
	Collisions bool               `json:"collisions"`
	FrameDelta float64            `json:"frame_delta"`
	Duration   float64            `json:"duration"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run directory and returns its ID. The frame layout is the
// sim.Snapshot layout: six columns per body after the time column.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	if err := w.Write(header(len(result.Frames[0]) / 6)); err != nil {
		return "", err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, len(frame)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, val := range frame {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func header(bodies int) []string {
	h := []string{"time"}
	for i := 0; i < bodies; i++ {
		h = append(h,
			fmt.Sprintf("px%d", i), fmt.Sprintf("py%d", i), fmt.Sprintf("pz%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i), fmt.Sprintf("vz%d", i),
		)
	}
	return h
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the recorded trajectory in the Snapshot layout.
func (s *Store) LoadFrames(runID string) (frames [][]float64, times []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		frame := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			frame = append(frame, val)
		}

		times = append(times, t)
		frames = append(frames, frame)
	}

	return frames, times, nil
}
