package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// LoadQualityStandards returns the built-in standards overlaid with the metrics
// defined in the YAML file at path. An empty path yields the defaults.
func LoadQualityStandards(path string) (models.QualityStandards, error) {
	standards := models.DefaultQualityStandards()
	if path == "" {
		return standards, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quality standards %s: %w", path, err)
	}

	var overrides map[string]models.QualityStandard
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse quality standards %s: %w", path, err)
	}

	for key, standard := range overrides {
		metric, ok := models.ParseMetric(key)
		if !ok {
			return nil, fmt.Errorf("quality standards %s: unknown metric %q", path, key)
		}
		if standard.Max <= standard.Min {
			return nil, fmt.Errorf("quality standards %s: %s max must exceed min", path, key)
		}
		standards[metric] = standard
	}
	return standards, nil
}
