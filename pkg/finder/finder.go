// Package finder expands command line arguments into score files.
package finder

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// ScoreFinder is responsible for finding score files
type ScoreFinder interface {
	// FindScores expands files, directories and doublestar globs into the
	// score files they name. Directories keep only files accepted by match.
	FindScores(ctx context.Context, args []string, match func(path string) bool) ([]FileInfo, error)
}

// FileInfo represents information about a found score file
type FileInfo struct {
	Path     string
	Content  []byte
	FileType string
}

// DefaultFinder is the default implementation of ScoreFinder
type DefaultFinder struct {
	fs afero.Fs
}

// NewDefaultFinder creates a new DefaultFinder reading from fs
func NewDefaultFinder(fs afero.Fs) *DefaultFinder {
	return &DefaultFinder{fs: fs}
}

// FindScores implements ScoreFinder. Results are sorted and unique; a glob
// matching nothing or a missing path is an error.
func (f *DefaultFinder) FindScores(ctx context.Context, args []string, match func(path string) bool) ([]FileInfo, error) {
	seen := map[string]struct{}{}
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("finding scores: %w", err)
		}

		if isGlob(arg) {
			matches, err := f.glob(arg)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := f.fs.Stat(arg)
		if err != nil {
			return nil, errors.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		err = afero.Walk(f.fs, arg, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !info.IsDir() && match(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking %s: %w", arg, err)
		}
	}

	sort.Strings(paths)

	out := make([]FileInfo, 0, len(paths))
	for _, p := range paths {
		content, err := afero.ReadFile(f.fs, p)
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", p, err)
		}
		out = append(out, FileInfo{
			Path:     p,
			Content:  content,
			FileType: strings.TrimPrefix(filepath.Ext(p), "."),
		})
	}

	zerolog.Ctx(ctx).Debug().Int("args", len(args)).Int("files", len(out)).Msg("found scores")
	return out, nil
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

func (f *DefaultFinder) glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, errors.Errorf("invalid pattern %q", pattern)
	}

	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	fsys := f.fs
	if base != "." {
		fsys = afero.NewBasePathFs(f.fs, base)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(fsys), rest, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no files match %q", pattern)
	}

	if base != "." {
		for i, m := range matches {
			matches[i] = path.Join(base, m)
		}
	}
	return matches, nil
}
