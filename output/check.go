package output

import (
	"os"

	"github.com/teranos/sketchflow/adapter"
	"github.com/teranos/sketchflow/errors"
)

// Drift reasons reported by Compare.
const (
	ReasonMissing = "missing"
	ReasonChanged = "changed"
)

// Difference is one generated file that does not match the disk.
type Difference struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// CheckResult reports whether an output directory matches a generation.
type CheckResult struct {
	UpToDate    bool         `json:"upToDate"`
	Differences []Difference `json:"differences"`
}

// Compare checks each file against its counterpart under dir. Files on
// disk that the generation does not produce are ignored.
func Compare(dir string, files []adapter.File) (CheckResult, error) {
	result := CheckResult{Differences: []Difference{}}
	for _, f := range files {
		full, err := Resolve(dir, f.Path)
		if err != nil {
			return CheckResult{}, err
		}
		existing, err := os.ReadFile(full)
		switch {
		case os.IsNotExist(err):
			result.Differences = append(result.Differences, Difference{Path: f.Path, Reason: ReasonMissing})
		case err != nil:
			return CheckResult{}, errors.Wrapf(err, "failed to read %s", full)
		case string(existing) != f.Contents:
			result.Differences = append(result.Differences, Difference{Path: f.Path, Reason: ReasonChanged})
		}
	}
	result.UpToDate = len(result.Differences) == 0
	return result, nil
}
