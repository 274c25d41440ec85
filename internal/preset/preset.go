package preset

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
)

// ManifestName is the file that marks a directory as a preset.
const ManifestName = "preset.md"

// Field is a free-form value a preset asks the user for. Values are
// substituted into the README template.
type Field struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Default string `yaml:"default"`
}

// Option is a boolean toggle a preset declares.
type Option struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Default bool   `yaml:"default"`
}

// Preset describes one scaffolding preset. The manifest is a markdown
// file with YAML frontmatter; the body is the README template.
type Preset struct {
	ID          string
	Label       string
	Description string
	Fields      []Field
	Options     []Option

	// ReadmeTemplate is the manifest body.
	ReadmeTemplate string
	// Path is the preset's directory.
	Path string
}

// manifestMatter is the frontmatter section of a preset manifest.
type manifestMatter struct {
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Fields      []Field  `yaml:"fields"`
	Options     []Option `yaml:"options"`
}

// Manager handles preset discovery and parsing
type Manager struct {
	fs         filesystem.FileSystem
	presetsDir string
}

// NewManager creates a new preset manager
func NewManager(fs filesystem.FileSystem, presetsDir string) *Manager {
	return &Manager{
		fs:         fs,
		presetsDir: presetsDir,
	}
}

// Discover scans the presets directory for preset manifests. Directories
// without a manifest are ignored; a malformed manifest skips that preset
// rather than failing discovery.
func (m *Manager) Discover() ([]*Preset, error) {
	if !m.fs.Exists(m.presetsDir) {
		return []*Preset{}, nil
	}

	entries, err := m.fs.ReadDir(m.presetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets directory: %w", err)
	}

	var presets []*Preset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifestPath := filepath.Join(m.presetsDir, entry.Name(), ManifestName)
		if !m.fs.Exists(manifestPath) {
			continue
		}

		preset, err := m.Read(entry.Name())
		if err != nil {
			fmt.Printf("Warning: failed to read preset %s: %v\n", entry.Name(), err)
			continue
		}

		presets = append(presets, preset)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].ID < presets[j].ID
	})

	return presets, nil
}

// Read loads a single preset by directory name.
func (m *Manager) Read(id string) (*Preset, error) {
	dir := filepath.Join(m.presetsDir, id)
	data, err := m.fs.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return m.Parse(id, dir, data)
}

// Parse parses preset manifest data.
func (m *Manager) Parse(id, dir string, data []byte) (*Preset, error) {
	var matter manifestMatter
	rest, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	label := matter.Label
	if label == "" {
		label = id
	}

	return &Preset{
		ID:             id,
		Label:          label,
		Description:    matter.Description,
		Fields:         matter.Fields,
		Options:        matter.Options,
		ReadmeTemplate: strings.TrimSpace(string(rest)),
		Path:           dir,
	}, nil
}
