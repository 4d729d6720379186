package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/fois-tutorial-setup/pkg/storage"
)

// WriteSummary marshals summary to YAML and saves it at path.
func WriteSummary(path string, summary RunSummary, s *storage.Storage) error {
	if s == nil {
		s = &storage.Storage{}
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error marshalling summary: %w", err)
	}
	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving summary: %w", err)
	}
	return nil
}

// ReadSummary loads a summary previously written by WriteSummary.
func ReadSummary(path string, s *storage.Storage) (*RunSummary, error) {
	if s == nil {
		s = &storage.Storage{}
	}
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summary RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("error parsing summary %s: %w", path, err)
	}
	return &summary, nil
}
