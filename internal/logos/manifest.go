package logos

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest describes the output of the latest normalization run.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	SourceDir   string    `json:"sourceDir"`
	Size        int       `json:"size"`
	Canonical   bool      `json:"canonical"`
	Logos       []Entry   `json:"logos"`
	Skipped     []Skipped `json:"skipped"`
}

// Entry is one normalized logo.
type Entry struct {
	Key    string `json:"key"`
	File   string `json:"file"`
	Source string `json:"source"`
}

// Skipped is a source file that produced no output.
type Skipped struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// ReadManifest loads the manifest from outputDir.
func ReadManifest(outputDir string) (Manifest, error) {
	f, err := os.Open(ManifestPath(outputDir))
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func writeManifest(outputDir string, m Manifest) error {
	m.Version = 1
	if m.Logos == nil {
		m.Logos = []Entry{}
	}
	if m.Skipped == nil {
		m.Skipped = []Skipped{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(ManifestPath(outputDir), data)
}
