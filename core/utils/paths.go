package utils

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"packetgen/core/apperr"
)

// VersionPlaceholder is replaced by the selected version in path templates.
const VersionPlaceholder = "{version}"

// VersionedPath is a path resolved from a template.
type VersionedPath struct {
	// Path is the expanded path.
	Path string
	// Versioned reports whether the template referenced the version.
	Versioned bool
}

// ExpandVersion substitutes version into tmpl. param names the configuration
// key for error reporting. A template that needs a version fails with a
// configuration error when version is empty.
func ExpandVersion(param, tmpl, version string) (VersionedPath, error) {
	if tmpl == "" {
		return VersionedPath{}, apperr.Configuration(param, "path is not set")
	}
	if !strings.Contains(tmpl, VersionPlaceholder) {
		return VersionedPath{Path: tmpl}, nil
	}
	if version == "" {
		return VersionedPath{}, apperr.Configuration(param, "version is required by %q but not set", tmpl)
	}
	return VersionedPath{
		Path:      strings.ReplaceAll(tmpl, VersionPlaceholder, version),
		Versioned: true,
	}, nil
}

// CheckInput verifies that an input file can be opened. A missing file that was
// selected through the version is a configuration error, any other failure is
// a source read error.
func CheckInput(param string, p VersionedPath) error {
	f, err := os.Open(p.Path)
	if err == nil {
		info, statErr := f.Stat()
		f.Close()
		if statErr != nil {
			return apperr.SourceRead(p.Path, statErr)
		}
		if info.IsDir() {
			return apperr.SourceRead(p.Path, errors.New("is a directory"))
		}
		return nil
	}
	if p.Versioned && errors.Is(err, fs.ErrNotExist) {
		return apperr.Configuration(param, "versioned file %s does not exist", p.Path)
	}
	return apperr.SourceRead(p.Path, err)
}
