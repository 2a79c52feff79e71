// Package scenes ships the sample RUBE scenes and resolves scene names to
// document bytes, preferring a file on disk over the embedded copy.
package scenes

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/rube/doc"
)

//go:embed samples/*.json samples/*.yaml
var SamplesFS embed.FS

// Load returns the document at name on disk or, failing that, the embedded
// sample of the same name. The extension may be omitted for samples.
func Load(name string) ([]byte, doc.Format, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, doc.FormatForPath(name), nil
	}
	return LoadSample(name)
}

// LoadSample reads an embedded sample, ignoring the disk.
func LoadSample(name string) ([]byte, doc.Format, error) {
	clean, err := resolveSample(name)
	if err != nil {
		return nil, 0, err
	}
	data, err := SamplesFS.ReadFile(clean)
	if err != nil {
		return nil, 0, fmt.Errorf("scenes: %s: %w", name, err)
	}
	return data, doc.FormatForPath(clean), nil
}

// Samples lists the embedded scene names without directory or extension.
func Samples() []string {
	entries, err := fs.ReadDir(SamplesFS, "samples")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsSceneFile(e.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func resolveSample(name string) (string, error) {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "scenes/")
	s = strings.TrimPrefix(s, "samples/")
	candidates := []string{path.Join("samples", s)}
	if path.Ext(s) == "" {
		candidates = candidates[:0]
		for _, ext := range sceneExts {
			candidates = append(candidates, path.Join("samples", s+ext))
		}
	}
	for _, candidate := range candidates {
		if _, err := fs.Stat(SamplesFS, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("scenes: no scene named %q", name)
}

var sceneExts = []string{".json", ".yaml", ".yml", ".toml"}

// IsSceneFile reports whether path has an extension doc can parse. RUBE's
// own .rube project files are not JSON and are ignored.
func IsSceneFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range sceneExts {
		if ext == e {
			return true
		}
	}
	return false
}
