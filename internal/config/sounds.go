package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/selfremember/internal/pathutil"
)

var soundExts = []string{".mp3", ".ogg", ".flac", ".wav"}

// ResolveSound turns a configured cue value into the path of a sound file.
// An empty result with a nil error means the cue uses the system beep, or
// is silenced when value is "off".
func ResolveSound(cue, value string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" || value == SoundOff {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(value))

	if ext != "" {
		if !slices.Contains(soundExts, ext) {
			return "", errInvalidSoundFormat.Fmt(value)
		}

		if _, err := os.Stat(value); err == nil {
			return value, nil
		}

		candidate := filepath.Join(pathutil.SoundsDir(), value)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		return "", errUnknownSound.Fmt(cue, value)
	}

	for _, e := range soundExts {
		candidate := filepath.Join(pathutil.SoundsDir(), value+e)

		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", errUnknownSound.Fmt(cue, value).Wrap(err)
		}
	}

	return "", errUnknownSound.Fmt(cue, value)
}

// SoundOpts lists the names of the sounds available in the sounds
// directory, in natural order.
func SoundOpts() []string {
	entries, err := os.ReadDir(pathutil.SoundsDir())
	if err != nil {
		return nil
	}

	var opts []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !slices.Contains(soundExts, ext) {
			continue
		}

		name := pathutil.StripExtension(e.Name())
		if !slices.Contains(opts, name) {
			opts = append(opts, name)
		}
	}

	slices.SortFunc(opts, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	return opts
}
