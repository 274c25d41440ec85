package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
)

// FileName is the per-project configuration file searched in the working
// directory before falling back to the user config directory.
const FileName = "project-creator.yaml"

const userConfigSubdir = "project-creator"

// RepoRef points at the GitHub repository presets are pulled from.
type RepoRef struct {
	Owner string `yaml:"owner,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Ref   string `yaml:"ref,omitempty"`
}

// Config holds every tunable of the tool. The zero value is not usable;
// call Default and overlay a file on top via Load.
type Config struct {
	// Interpreter invokes the scaffolding script when the probe did not
	// resolve a working interpreter executable.
	Interpreter string `yaml:"interpreter,omitempty"`
	// Script is the path of the scaffolding script.
	Script string `yaml:"script,omitempty"`
	// PresetsDir is where preset manifests live. Empty means not yet
	// set up.
	PresetsDir string `yaml:"presets_dir,omitempty"`
	// PresetsRepo is the source for `presets pull`.
	PresetsRepo RepoRef `yaml:"presets_repo,omitempty"`
	// Probes overrides the candidate chain of a capability. Keys are the
	// capability names; values are ordered candidate command lines.
	Probes map[string][][]string `yaml:"probes,omitempty"`
}

// remediation hints shown when every candidate of a chain fails.
var hints = map[probe.Capability]string{
	probe.CapInterpreter:      "Python not found: install Python 3 and make sure python or python3 is on PATH",
	probe.CapPackageInstaller: "pip not found: install pip (python -m ensurepip --upgrade)",
	probe.CapVenvTool:         "no virtualenv support: pip install virtualenv, or use a Python build that ships the venv module",
}

// defaultChains are the documented detection commands; a config file can
// replace them per capability without a source change.
var defaultChains = map[probe.Capability][][]string{
	probe.CapInterpreter: {
		{"python", "--version"},
		{"python3", "--version"},
	},
	probe.CapPackageInstaller: {
		{"pip", "--version"},
		{"python", "-m", "pip", "--version"},
		{"python3", "-m", "pip", "--version"},
	},
	probe.CapVenvTool: {
		{"virtualenv", "--version"},
		{"python", "-m", "virtualenv", "--version"},
		{"python3", "-m", "virtualenv", "--version"},
		{"python", "-c", "import venv"},
		{"python3", "-c", "import venv"},
	},
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Interpreter: "python",
		Script:      "create_project.py",
		PresetsRepo: RepoRef{
			Owner: "vladcraftcom",
			Name:  "ai-project-template-presets",
			Ref:   "main",
		},
	}
}

// Load reads the configuration, overlaying a config file over the
// defaults. When explicitPath is empty the working directory is searched
// first, then the user config directory; a missing file is not an error.
func Load(fs filesystem.FileSystem, explicitPath string) (*Config, error) {
	cfg := Default()

	path := explicitPath
	if path == "" {
		found, err := findConfigFile(fs)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return cfg, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the user config directory, creating
// it if needed, and returns the written path.
func Save(fs filesystem.FileSystem, cfg *Config) (string, error) {
	base, err := fs.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}

	dir := filepath.Join(base, userConfigSubdir)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return path, nil
}

func findConfigFile(fs filesystem.FileSystem) (string, error) {
	cwd, err := fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	local := filepath.Join(cwd, FileName)
	if fs.Exists(local) {
		return local, nil
	}

	base, err := fs.UserConfigDir()
	if err != nil {
		// No user config directory on this system; defaults apply.
		return "", nil
	}

	global := filepath.Join(base, userConfigSubdir, FileName)
	if fs.Exists(global) {
		return global, nil
	}

	return "", nil
}

// Chains materializes the probe chains, applying per-capability
// overrides from the config file over the defaults.
func (c *Config) Chains() []probe.Chain {
	chains := make([]probe.Chain, 0, len(probe.Capabilities))
	for _, capability := range probe.Capabilities {
		candidates := defaultChains[capability]
		if override, ok := c.Probes[string(capability)]; ok && len(override) > 0 {
			candidates = override
		}
		chains = append(chains, probe.Chain{
			Capability: capability,
			Candidates: candidates,
			Hint:       hints[capability],
		})
	}
	return chains
}
