package storage

import (
	"encoding/json"
	"os"

	"github.com/kwhitlock/fiberlab/internal/world"
)

// ExportData is the JSON export of a whole run: its configuration, the
// sampled time series, and the final world snapshot.
type ExportData struct {
	Meta    RunMetadata    `json:"meta"`
	Samples []Sample       `json:"samples"`
	Final   world.Snapshot `json:"final"`
}

func ExportJSON(path string, meta RunMetadata, samples []Sample, final world.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, meta, samples, final)
}

func ExportJSONStdout(meta RunMetadata, samples []Sample, final world.Snapshot) error {
	return writeExport(os.Stdout, meta, samples, final)
}

func writeExport(file *os.File, meta RunMetadata, samples []Sample, final world.Snapshot) error {
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: meta, Samples: samples, Final: final})
}
