package locate

import (
	"fmt"
	"os"
	"path/filepath"

	"echosynth-go/internal/types"
)

// Resolve turns a candidate audio path into an absolute path of an existing
// file. Lookup order: the candidate as given, then relative to the working
// directory, then under dataDir. No side effects.
func Resolve(candidate, dataDir string) (string, error) {
	if candidate == "" {
		return "", fmt.Errorf("empty audio path: %w", types.ErrFileNotFound)
	}
	tried := []string{candidate}
	if !filepath.IsAbs(candidate) {
		if wd, err := os.Getwd(); err == nil {
			tried = append(tried, filepath.Join(wd, candidate))
		}
		tried = append(tried, filepath.Join(dataDir, candidate))
	}
	for _, p := range tried {
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", p, err)
		}
		return abs, nil
	}
	return "", fmt.Errorf("audio file %q not found in any search location: %w", candidate, types.ErrFileNotFound)
}
