package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladcraftcom/ai-project-template/internal/config"
	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
)

const cliTestManifest = `---
label: Python CLI
description: Command line tool with argparse
fields:
  - id: author
    label: Author
    default: unknown
---
# {{ .Name }}

Created {{ .Date }} by {{ .Fields.author }}.
`

// fakePuller records the pull it was asked for.
type fakePuller struct {
	dest string
	repo config.RepoRef
	err  error
}

func (f *fakePuller) Pull(_ context.Context, _ filesystem.FileSystem, destDir string, repo config.RepoRef) error {
	f.dest = destDir
	f.repo = repo
	return f.err
}

func presetsTestFS(t *testing.T) *filesystem.MockFileSystem {
	t.Helper()
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/project-creator.yaml", []byte("presets_dir: /presets\n"))
	fs.AddDir("/presets/python-cli")
	fs.AddFile("/presets/python-cli/preset.md", []byte(cliTestManifest))
	return fs
}

func TestPresetsList(t *testing.T) {
	cmd := NewPresetsCommand(presetsTestFS(t), &fakePuller{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"list"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "python-cli")
	require.Contains(t, out.String(), "Python CLI")
	require.Contains(t, out.String(), "Command line tool with argparse")
}

func TestPresetsList_NoneConfigured(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	cmd := NewPresetsCommand(fs, &fakePuller{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no presets directory configured")
}

func TestPresetsShow_RendersReadmePreview(t *testing.T) {
	cmd := NewPresetsCommand(presetsTestFS(t), &fakePuller{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"show", "python-cli"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Python CLI (python-cli)")
	require.Contains(t, out.String(), "Author (author, default \"unknown\")")
	require.Contains(t, out.String(), "# example")
	require.Contains(t, out.String(), "by unknown.")
}

func TestPresetsShow_UnknownID(t *testing.T) {
	cmd := NewPresetsCommand(presetsTestFS(t), &fakePuller{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"show", "nope"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load preset nope")
}

func TestPresetsPull(t *testing.T) {
	puller := &fakePuller{}
	cmd := NewPresetsCommand(presetsTestFS(t), puller)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"pull"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "/presets", puller.dest)
	require.Equal(t, "vladcraftcom", puller.repo.Owner)
	require.Contains(t, out.String(), "Presets updated from vladcraftcom/ai-project-template-presets")
}

func TestPresetsPull_Error(t *testing.T) {
	puller := &fakePuller{err: errors.New("rate limited")}
	cmd := NewPresetsCommand(presetsTestFS(t), puller)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"pull"})

	require.ErrorContains(t, cmd.Execute(), "rate limited")
}
