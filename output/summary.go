package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/teranos/sketchflow/codegen"
	"github.com/teranos/sketchflow/config"
	"github.com/teranos/sketchflow/errors"
)

// Summary records what a generation produced.
type Summary struct {
	Metadata codegen.Metadata `json:"metadata"`
	Files    []SummaryFile    `json:"files"`
}

// SummaryFile names one generated file.
type SummaryFile struct {
	Path string `json:"path"`
}

// NewSummary describes artifacts.
func NewSummary(art *codegen.Artifacts) Summary {
	s := Summary{Metadata: art.Metadata, Files: make([]SummaryFile, len(art.Files))}
	for i, f := range art.Files {
		s.Files[i] = SummaryFile{Path: f.Path}
	}
	return s
}

// WriteSummary writes summaries as indented JSON, creating parent
// directories. A single summary is written as an object, several as an
// array in the order given.
func WriteSummary(path string, summaries ...Summary) error {
	var doc any = summaries
	if len(summaries) == 1 {
		doc = summaries[0]
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode summary")
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "failed to write summary %s", path)
	}
	return nil
}
