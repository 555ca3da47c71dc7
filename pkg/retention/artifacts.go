package retention

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ArtifactFS is the filesystem access the artifact sweep needs: glob-style
// enumeration, modification-time inspection, and deletion of single files.
type ArtifactFS interface {
	Glob(pattern string) ([]string, error)
	Stat(path string) (fs.FileInfo, error)
	Remove(path string) error
}

// OSArtifactFS implements ArtifactFS against the real filesystem.
type OSArtifactFS struct{}

func (OSArtifactFS) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

func (OSArtifactFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSArtifactFS) Remove(path string) error {
	return os.Remove(path)
}
