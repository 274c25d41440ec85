package preset

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/vladcraftcom/ai-project-template/internal/config"
	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
)

// Fetcher downloads preset bundles from a GitHub repository.
type Fetcher struct {
	gh   *github.Client
	http *http.Client
}

// NewFetcherFromEnv creates a Fetcher, authenticated when GH_TOKEN or
// GITHUB_TOKEN is set and anonymous otherwise. Presets repositories are
// typically public, so the anonymous client is fully functional.
func NewFetcherFromEnv() *Fetcher {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	if token == "" {
		return &Fetcher{gh: github.NewClient(nil), http: http.DefaultClient}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Fetcher{gh: github.NewClient(tc), http: tc}
}

// Pull downloads the repository tarball and unpacks it into destDir,
// replacing files that already exist there.
func (f *Fetcher) Pull(ctx context.Context, fs filesystem.FileSystem, destDir string, repo config.RepoRef) error {
	opts := &github.RepositoryContentGetOptions{Ref: repo.Ref}
	archiveURL, _, err := f.gh.Repositories.GetArchiveLink(ctx, repo.Owner, repo.Name, github.Tarball, opts, 3)
	if err != nil {
		return fmt.Errorf("failed to resolve archive link for %s/%s: %w", repo.Owner, repo.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build archive request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download presets archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download presets archive: HTTP %d", resp.StatusCode)
	}

	if err := extractTarball(fs, destDir, resp.Body); err != nil {
		return fmt.Errorf("failed to unpack presets archive: %w", err)
	}

	return nil
}

// extractTarball unpacks a gzipped tarball into destDir, stripping the
// top-level directory GitHub archives wrap their content in. Entries
// escaping destDir are rejected.
func extractTarball(fs filesystem.FileSystem, destDir string, r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		relPath := stripArchiveRoot(header.Name)
		if relPath == "" {
			continue
		}
		if strings.Contains(relPath, "..") {
			return fmt.Errorf("archive entry escapes destination: %s", header.Name)
		}

		target := filepath.Join(destDir, filepath.FromSlash(relPath))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create parent of %s: %w", target, err)
			}
			data, err := io.ReadAll(tr)
			if err != nil {
				return fmt.Errorf("failed to read %s from archive: %w", header.Name, err)
			}
			if err := fs.WriteFile(target, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
		}
	}
}

// stripArchiveRoot removes the "<repo>-<sha>/" prefix from an archive
// entry path.
func stripArchiveRoot(name string) string {
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		return name[idx+1:]
	}
	return ""
}
