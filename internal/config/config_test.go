package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	require.Equal(t, "python", cfg.Interpreter)
	require.Equal(t, "create_project.py", cfg.Script)
	require.Empty(t, cfg.PresetsDir)
}

func TestLoad_LocalFileOverridesDefaults(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir("/workspace")
	fs.AddFile("/workspace/"+FileName, []byte(`
interpreter: python3
script: tools/scaffold.py
presets_dir: /data/presets
probes:
  interpreter:
    - [python3, --version]
`))

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	require.Equal(t, "python3", cfg.Interpreter)
	require.Equal(t, "tools/scaffold.py", cfg.Script)
	require.Equal(t, "/data/presets", cfg.PresetsDir)

	chains := cfg.Chains()
	require.Len(t, chains, 3)
	require.Equal(t, probe.CapInterpreter, chains[0].Capability)
	require.Equal(t, [][]string{{"python3", "--version"}}, chains[0].Candidates)
}

func TestLoad_FallsBackToUserConfigDir(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.SetUserConfigDir("/home/mock/.config")
	fs.AddFile(filepath.Join("/home/mock/.config", userConfigSubdir, FileName), []byte("presets_dir: /home/mock/presets\n"))

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	require.Equal(t, "/home/mock/presets", cfg.PresetsDir)
	// Unset keys stay at their defaults.
	require.Equal(t, "python", cfg.Interpreter)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := Load(fs, "/nope/config.yaml")
	require.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/"+FileName, []byte("probes: [unclosed"))

	_, err := Load(fs, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

func TestChains_DefaultsCoverAllCapabilities(t *testing.T) {
	chains := Default().Chains()
	require.Len(t, chains, 3)

	byCapability := make(map[probe.Capability]probe.Chain)
	for _, chain := range chains {
		byCapability[chain.Capability] = chain
		require.NotEmpty(t, chain.Hint)
		require.NotEmpty(t, chain.Candidates)
	}

	require.Equal(t, [][]string{
		{"python", "--version"},
		{"python3", "--version"},
	}, byCapability[probe.CapInterpreter].Candidates)
	require.Len(t, byCapability[probe.CapPackageInstaller].Candidates, 3)
	require.Len(t, byCapability[probe.CapVenvTool].Candidates, 5)
}

func TestSaveRoundTrips(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	cfg := Default()
	cfg.PresetsDir = "/data/presets"

	path, err := Save(fs, cfg)
	require.NoError(t, err)
	require.True(t, fs.Exists(path))

	loaded, err := Load(fs, path)
	require.NoError(t, err)
	require.Equal(t, cfg.PresetsDir, loaded.PresetsDir)
	require.Equal(t, cfg.PresetsRepo, loaded.PresetsRepo)
}
