// Package pkg provides utilities shared by forgeguard commands.
package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultClaimSuffix is appended to a file path to form its claim marker.
const DefaultClaimSuffix = ".lock"

// FileClaimer grants exclusive, path-scoped claims backed by marker files. A marker
// left behind by a crashed process keeps its file claimed until it is removed by hand.
type FileClaimer interface {
	// Acquire creates the marker for path. It reports false without error when the
	// marker already exists.
	Acquire(path string) (bool, error)
	// Release removes the marker for path. Releasing an unclaimed path is a no-op.
	Release(path string) error
	// MarkerPath returns the marker location for path.
	MarkerPath(path string) string
	// Claimable reports whether path has one of the extensions this claimer serves.
	Claimable(path string) bool
	// ClaimedPath maps a marker location back to the claimed file. Names that only
	// share the suffix, such as yarn.lock, are not markers.
	ClaimedPath(marker string) (string, bool)
	// Orphans lists markers under the given roots whose claimed file exists.
	Orphans(roots []string) ([]string, error)
}

type fileClaimerImpl struct {
	suffix     string
	extensions []string

	closeMarker func(*os.File) error
}

// NewFileClaimer creates a FileClaimer whose markers are "<path><suffix>". Only files
// with one of extensions are treated as claimable; with no extensions every file is.
func NewFileClaimer(suffix string, extensions ...string) FileClaimer {
	if strings.TrimSpace(suffix) == "" {
		suffix = DefaultClaimSuffix
	}

	return &fileClaimerImpl{
		suffix:      suffix,
		extensions:  slices.Clone(extensions),
		closeMarker: (*os.File).Close,
	}
}

// Acquire implements FileClaimer.
func (c *fileClaimerImpl) Acquire(path string) (bool, error) {
	marker := c.MarkerPath(path)

	// O_EXCL makes the existence check and the creation a single operation.
	file, err := os.OpenFile(marker, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, fs.ErrExist) {
		slog.Debug("claim contended", "path", path, "marker", marker)
		return false, nil
	}

	if err != nil {
		slog.Error("failed to create claim marker", "path", path, "marker", marker, "error", err)
		return false, fmt.Errorf("failed to create claim marker: %w", err)
	}

	if err := c.closeMarker(file); err != nil {
		slog.Error("failed to close claim marker", "marker", marker, "error", err)

		// Do not leave a marker that no caller will release.
		if removeErr := os.Remove(marker); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			err = errors.Join(err, removeErr)
		}

		return false, fmt.Errorf("failed to close claim marker: %w", err)
	}

	slog.Debug("acquired claim", "path", path, "marker", marker)

	return true, nil
}

// Release implements FileClaimer.
func (c *fileClaimerImpl) Release(path string) error {
	marker := c.MarkerPath(path)

	if err := os.Remove(marker); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		slog.Error("failed to remove claim marker", "path", path, "marker", marker, "error", err)

		return fmt.Errorf("failed to remove claim marker: %w", err)
	}

	slog.Debug("released claim", "path", path, "marker", marker)

	return nil
}

// MarkerPath implements FileClaimer.
func (c *fileClaimerImpl) MarkerPath(path string) string {
	return path + c.suffix
}

// Claimable implements FileClaimer.
func (c *fileClaimerImpl) Claimable(path string) bool {
	if len(c.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)

	return slices.ContainsFunc(c.extensions, func(want string) bool {
		return strings.EqualFold(ext, want)
	})
}

// ClaimedPath implements FileClaimer.
func (c *fileClaimerImpl) ClaimedPath(marker string) (string, bool) {
	if !strings.HasSuffix(marker, c.suffix) || len(marker) == len(c.suffix) {
		return "", false
	}

	claimed := strings.TrimSuffix(marker, c.suffix)
	if !c.Claimable(claimed) {
		return "", false
	}

	return claimed, true
}

// Orphans implements FileClaimer.
func (c *fileClaimerImpl) Orphans(roots []string) ([]string, error) {
	var markers []string

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				return nil
			}

			claimed, ok := c.ClaimedPath(path)
			if !ok {
				return nil
			}

			if info, err := os.Stat(claimed); err != nil || !info.Mode().IsRegular() {
				slog.Debug("ignoring marker without claimed file", "marker", path)
				return nil
			}

			markers = append(markers, path)

			return nil
		})
		if err != nil {
			slog.Error("failed to scan for claim markers", "root", root, "error", err)
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	}

	return markers, nil
}
