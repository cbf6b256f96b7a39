package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// Sample is one sampled step of a run, the row format of steps.csv.
type Sample struct {
	Step          int     `json:"step"`
	Time          float64 `json:"time"`
	Binds         int     `json:"binds"`
	Unbinds       int     `json:"unbinds"`
	Strokes       int     `json:"strokes"`
	BoundFraction float64 `json:"bound_fraction"`
	TotalEnergy   float64 `json:"total_energy"`
	Contraction   float64 `json:"contraction"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Radius      int                `json:"radius"`
	Span        float64            `json:"span"`
	Actin       int                `json:"actin"`
	Actinin     int                `json:"actinin"`
	Motors      int                `json:"motors"`
	Temperature float64            `json:"temperature"`
	Metrics     map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"step", "time", "binds", "unbinds", "strokes",
	"bound_fraction", "total_energy", "contraction",
}

func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	runID := fmt.Sprintf("fiber_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "steps.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{
			strconv.Itoa(sm.Step),
			strconv.FormatFloat(sm.Time, 'f', 6, 64),
			strconv.Itoa(sm.Binds),
			strconv.Itoa(sm.Unbinds),
			strconv.Itoa(sm.Strokes),
			strconv.FormatFloat(sm.BoundFraction, 'f', 6, 64),
			strconv.FormatFloat(sm.TotalEnergy, 'f', 6, 64),
			strconv.FormatFloat(sm.Contraction, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "steps.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(sampleHeader) {
			continue
		}
		var sm Sample
		sm.Step, _ = strconv.Atoi(record[0])
		sm.Time, _ = strconv.ParseFloat(record[1], 64)
		sm.Binds, _ = strconv.Atoi(record[2])
		sm.Unbinds, _ = strconv.Atoi(record[3])
		sm.Strokes, _ = strconv.Atoi(record[4])
		sm.BoundFraction, _ = strconv.ParseFloat(record[5], 64)
		sm.TotalEnergy, _ = strconv.ParseFloat(record[6], 64)
		sm.Contraction, _ = strconv.ParseFloat(record[7], 64)
		samples = append(samples, sm)
	}

	return samples, nil
}
