package packager

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Directories never shipped: version control, editor state, caches, local
// virtual environments, test suites, packaging tooling and docs.
var excludedDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".idea":         true,
	".vscode":       true,
	"__pycache__":   true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	"tests":         true,
	"scripts":       true,
	"docs":          true,
}

var excludedFiles = map[string]bool{
	".DS_Store":  true,
	".gitignore": true,
	".env":       true,
}

var excludedSuffixes = []string{".pyc", ".pyo", ".zip"}

// archiveEpoch pins every entry's modification time so two archives of
// unchanged source are byte-identical; only the version label differs.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// buildArchive zips the source tree into dest, skipping the exclusion list
// and the artifact output directory itself. Returns the archive size.
func buildArchive(sourceDir, dest, outputDir string) (int64, error) {
	f, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	absOutput, _ := filepath.Abs(outputDir)

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			abs, _ := filepath.Abs(path)
			if excludedDirs[d.Name()] || abs == absOutput {
				return filepath.SkipDir
			}
			return nil
		}

		if skipFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header := &zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		}
		header.Modified = archiveEpoch
		header.SetMode(info.Mode())

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return 0, err
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}

	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func skipFile(name string) bool {
	if excludedFiles[name] {
		return true
	}
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
