// internal/repository/source.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dangerclosesec/clausecheck/internal/domain"
)

// SourceRepository gives the checker access to the program files of a run
type SourceRepository interface {
	// List returns the file names in checking order
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// FileSourceRepository reads programs from a single directory
type FileSourceRepository struct {
	dir       string
	pattern   string
	extension string
}

// NewFileSourceRepository creates a repository over dir. With an empty
// pattern the numbered files 1<ext>, 2<ext>, ... are listed until the first
// missing number; otherwise every regular file matching the glob is listed
// in lexical order.
func NewFileSourceRepository(dir, pattern, extension string) *FileSourceRepository {
	if extension == "" {
		extension = ".txt"
	}
	return &FileSourceRepository{dir: dir, pattern: pattern, extension: extension}
}

// Dir returns the directory the repository reads from
func (r *FileSourceRepository) Dir() string {
	return r.dir
}

// List returns the names of the files to check
func (r *FileSourceRepository) List(ctx context.Context) ([]string, error) {
	var (
		names []string
		err   error
	)
	if r.pattern == "" {
		names, err = r.listNumbered(ctx)
	} else {
		names, err = r.listGlob(ctx)
	}
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoInputFiles, r.dir)
	}
	return names, nil
}

func (r *FileSourceRepository) listNumbered(ctx context.Context) ([]string, error) {
	var names []string
	for i := 1; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := strconv.Itoa(i) + r.extension
		info, err := os.Stat(filepath.Join(r.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if info.IsDir() {
			break
		}
		names = append(names, name)
	}
	return names, nil
}

func (r *FileSourceRepository) listGlob(ctx context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, r.pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", domain.ErrInvalidInput, r.pattern, err)
	}
	sort.Strings(matches)

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, filepath.Base(match))
	}
	return names, nil
}

// Read returns the content of a file in the repository directory
func (r *FileSourceRepository) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: file name %q", domain.ErrInvalidInput, name)
	}

	content, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return content, nil
}
