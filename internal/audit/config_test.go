package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want Config
	}{
		{
			name: "yaml overrides one key",
			file: "audit.yaml",
			body: "min_hypotheses: 3\n",
			want: Config{MinHypotheses: 3, MinContradictionRatio: 0.1},
		},
		{
			name: "json overrides the ratio",
			file: "audit.json",
			body: `{"min_contradiction_ratio": 0.25}`,
			want: Config{MinHypotheses: 2, MinContradictionRatio: 0.25},
		},
		{
			name: "empty yaml keeps defaults",
			file: "audit.yml",
			body: "",
			want: DefaultConfig(),
		},
		{
			name: "json sniffed without extension",
			file: "auditcfg",
			body: `{"min_hypotheses": 4}`,
			want: Config{MinHypotheses: 4, MinContradictionRatio: 0.1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(writeConfig(t, tt.file, tt.body))
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"negative minimum", "audit.yaml", "min_hypotheses: -1\n"},
		{"ratio above one", "audit.yaml", "min_contradiction_ratio: 1.5\n"},
		{"broken yaml", "audit.yaml", "min_hypotheses: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.file, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
