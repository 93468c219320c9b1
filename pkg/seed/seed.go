// Package seed supplies the initial record collection. A JSON file can be
// pointed at via SEED_PATH; otherwise a small built-in synthetic caseload is
// used. All data is synthetic, for training only.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ptaemr/platform/pkg/chart"
)

// Load reads a record collection from the given JSON file, or returns the
// default caseload when path is empty. Shape validation happens in the store.
func Load(path string) ([]*chart.PatientRecord, error) {
	if path == "" {
		return DefaultCaseload(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var records []*chart.PatientRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", chart.ErrInvalidData, err)
	}
	return records, nil
}
