// Package layoutfile reads and writes serialized layouts as JSON files.
package layoutfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	defaultValidateLimit = 8
)

// Read parses and validates the layout stored at path.
func Read(path string) (*entity.SerializedLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	layout, err := entity.ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return layout, nil
}

// Write stores layout at path as indented JSON, creating parent
// directories. The file is replaced atomically.
func Write(path string, layout *entity.SerializedLayout) error {
	if layout == nil {
		return fmt.Errorf("write layout file: nil layout")
	}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create layout dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".layout-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write layout file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close layout file: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod layout file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename layout file: %w", err)
	}
	return nil
}

// Result is the outcome of validating one file.
type Result struct {
	Path   string
	Groups int
	Panels int
	Err    error
}

// OK reports whether the file holds a valid layout.
func (r Result) OK() bool { return r.Err == nil }

// ValidateFiles reads every path concurrently, at most limit at a time.
// Results keep the order of paths. The returned error is only set when ctx
// is canceled; per-file failures are reported in each Result.
func ValidateFiles(ctx context.Context, paths []string, limit int) ([]Result, error) {
	log := logging.FromContext(ctx)
	if limit <= 0 {
		limit = defaultValidateLimit
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Result{Path: path}
			layout, err := Read(path)
			if err != nil {
				res.Err = err
			} else {
				res.Groups = layout.GroupCount()
				res.Panels = layout.PanelCount()
			}
			results[i] = res
			log.Debug().
				Str("path", path).
				Bool("valid", res.OK()).
				Msg("layout file checked")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("validate layout files: %w", err)
	}
	return results, nil
}
