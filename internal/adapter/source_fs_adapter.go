// Package adapter contains filesystem, parser and report-store adapters for forgeguard.
package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the pipelines rely
// on when scanning user projects. It hides direct `os` access so the pipeline logic
// can be tested against fakes.
type SourceFSAdapter interface {
	// FindFiles walks every root recursively and returns the files whose extension
	// matches one of extensions (case-insensitive). Paths matching any exclude
	// regular expression are dropped.
	FindFiles(ctx context.Context, roots []m.Path, extensions []string, exclude ...string) ([]m.Path, error)

	// Walk traverses root and everything below it, stopping when ctx is done.
	Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the contents of an existing file, keeping its permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// skippedDirs never contain hand-written sources: build output and tooling folders.
var skippedDirs = []string{".git", ".vs", "bin", "obj", "node_modules"}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// FindFiles returns matching files under roots in walk order, without duplicates.
func (a *LocalSourceFSAdapter) FindFiles(ctx context.Context, roots []m.Path, extensions []string, exclude ...string) ([]m.Path, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var files []m.Path

	seen := make(map[string]struct{})

	for _, root := range roots {
		if _, err := os.Stat(string(root)); err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		err := a.Walk(ctx, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != string(root) && slices.Contains(skippedDirs, info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if !hasExtension(path, extensions) || isExcluded(path, patterns) {
				return nil
			}

			clean := filepath.Clean(path)
			if _, dup := seen[clean]; dup {
				return nil
			}

			seen[clean] = struct{}{}
			files = append(files, m.Path(clean))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return files, nil
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		if strings.TrimSpace(expr) == "" {
			continue
		}

		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)

	return slices.ContainsFunc(extensions, func(want string) bool {
		return strings.EqualFold(ext, want)
	})
}

func isExcluded(path string, patterns []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)

	return slices.ContainsFunc(patterns, func(pattern *regexp.Regexp) bool {
		return pattern.MatchString(slashed)
	})
}

// Walk iterates over every file and directory under root.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(_ context.Context, path m.Path) ([]byte, error) {
	// #nosec G304 - paths come from discovery under operator-supplied roots
	return os.ReadFile(string(path))
}

// WriteFile overwrites the file at path, keeping its current permission bits.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	info, err := a.FileInfo(ctx, path)
	if err != nil {
		return err
	}

	return os.WriteFile(string(path), content, info.Mode().Perm())
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(_ context.Context, path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
