package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads check thresholds from a YAML or JSON file. Format is
// detected by extension, falling back to content sniffing. Keys absent
// from the file keep the documented defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("audit: read config: %w", err)
	}
	cfg, err := parseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("audit: parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	useJSON := strings.EqualFold(ext, ".json")
	if ext == "" {
		useJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}
	if useJSON {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	if cfg.MinHypotheses < 0 {
		return Config{}, fmt.Errorf("min_hypotheses must be >= 0, got %d", cfg.MinHypotheses)
	}
	if cfg.MinContradictionRatio < 0 || cfg.MinContradictionRatio > 1 {
		return Config{}, fmt.Errorf("min_contradiction_ratio must be within [0,1], got %v", cfg.MinContradictionRatio)
	}
	return cfg, nil
}
