// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ayoisaiah/selfremember/internal/osutil"
)

const (
	filesDir = "files"

	// QuotesFile is the path of the bundled quotes within Files.
	QuotesFile = filesDir + "/quotes.yml"
)

// Files holds the bundled defaults.
//
//go:embed files/*
var Files embed.FS

// CopyToDataDir writes every bundled file into dataDir. Files that already
// exist are left alone so user edits survive upgrades.
func CopyToDataDir(dataDir string) error {
	return fs.WalkDir(
		Files,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			stripped := strings.TrimPrefix(path, filesDir+"/")
			destPath := filepath.Join(dataDir, filepath.FromSlash(stripped))

			_, err = os.Stat(destPath)
			if err == nil || !errors.Is(err, os.ErrNotExist) {
				return err
			}

			b, err := Files.ReadFile(path)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, 0o644)
		},
	)
}
