package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestName is the file written at the output root after every run.
const ManifestName = "composegen-manifest.json"

// Entry records one generated document.
type Entry struct {
	Source     string `json:"source"`     // relative to the source root
	Output     string `json:"output"`     // relative to the output root
	Identifier string `json:"identifier"` // entry function name
	Checksum   string `json:"checksum"`
	Cached     bool   `json:"cached,omitempty"` // true when reused from the cache
}

// Manifest summarizes a generation run.
type Manifest struct {
	SessionID   string    `json:"session_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Package     string    `json:"package"`
	Entries     []Entry   `json:"entries"`
}

// Write serializes the manifest to dir/ManifestName.
func (m *Manifest) Write(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest previously written to dir.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
