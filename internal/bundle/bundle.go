// Package bundle harmonises archives of dataset files: every dataset
// member is harmonised, every other member is copied through unchanged,
// and the result is re-archived.
package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v3"
	"github.com/spf13/afero"

	"github.com/ecmwf-projects/cgul/internal/dataset"
	"github.com/ecmwf-projects/cgul/internal/harmonise"
	"github.com/ecmwf-projects/cgul/internal/sysutil"
)

// IsBundle reports whether the path looks like a supported archive.
func IsBundle(path string) bool {
	lowered := strings.ToLower(path)
	for _, suffix := range []string{".tar.gz", ".tgz", ".zip", ".tar"} {
		if strings.HasSuffix(lowered, suffix) {
			return true
		}
	}
	return false
}

// MemberPlan lists the changes harmonising one dataset member of a bundle
// would make.
type MemberPlan struct {
	Path    string
	Changes []string
}

// Plan extracts the bundle at srcPath and returns, per dataset member, the
// changes harmonising it would make. Nothing is written.
func Plan(srcPath string, opts harmonise.Options) (plans []MemberPlan, err error) {
	tempDir, err := os.MkdirTemp("", "cgul-bundle-*")
	if err != nil {
		return
	}
	defer os.RemoveAll(tempDir)

	extractDir := filepath.Join(tempDir, "in")
	err = archiver.Unarchive(srcPath, extractDir)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", srcPath, err)
	}

	osFS := afero.NewOsFs()
	err = filepath.Walk(extractDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || !dataset.Supported(path) {
			return nil
		}

		relPath, relErr := filepath.Rel(extractDir, path)
		if relErr != nil {
			return relErr
		}
		ds, readErr := dataset.Read(osFS, path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", relPath, readErr)
		}
		changes, planErr := harmonise.Plan(ds, opts)
		if planErr != nil {
			return fmt.Errorf("planning %s: %w", relPath, planErr)
		}
		plans = append(plans, MemberPlan{Path: relPath, Changes: changes})
		return nil
	})
	return
}

// Harmonise extracts the bundle at srcPath, harmonises every dataset
// member, copies other members through unchanged and writes a new bundle
// to destPath. It returns the number of dataset members harmonised.
func Harmonise(
	cgulWriter io.Writer, srcPath, destPath string, opts harmonise.Options,
) (processed int, err error) {
	if _, err = os.Stat(destPath); err == nil {
		return 0, fmt.Errorf("%s already exists", destPath)
	}

	tempDir, err := os.MkdirTemp("", "cgul-bundle-*")
	if err != nil {
		return
	}
	defer os.RemoveAll(tempDir)

	extractDir := filepath.Join(tempDir, "in")
	outDir := filepath.Join(tempDir, "out")

	err = archiver.Unarchive(srcPath, extractDir)
	if err != nil {
		return 0, fmt.Errorf("extracting %s: %w", srcPath, err)
	}

	osFS := afero.NewOsFs()
	err = filepath.Walk(extractDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(extractDir, path)
		if relErr != nil {
			return relErr
		}
		outPath := filepath.Join(outDir, relPath)
		if mkErr := os.MkdirAll(filepath.Dir(outPath), 0755); mkErr != nil {
			return mkErr
		}

		if !dataset.Supported(path) {
			return sysutil.CopyFile(path, outPath)
		}

		ds, readErr := dataset.Read(osFS, path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", relPath, readErr)
		}
		harmonised, harmErr := harmonise.Harmonise(ds, opts)
		if harmErr != nil {
			return fmt.Errorf("harmonising %s: %w", relPath, harmErr)
		}
		if writeErr := dataset.Write(osFS, outPath, harmonised); writeErr != nil {
			return fmt.Errorf("writing %s: %w", relPath, writeErr)
		}

		fmt.Fprintf(cgulWriter, "✅ %s\n", relPath)
		processed++
		return nil
	})
	if err != nil {
		return
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return
	}
	sources := make([]string, 0, len(entries))
	for _, entry := range entries {
		sources = append(sources, filepath.Join(outDir, entry.Name()))
	}

	err = archiver.Archive(sources, destPath)
	if err != nil {
		return processed, fmt.Errorf("archiving %s: %w", destPath, err)
	}

	return
}
