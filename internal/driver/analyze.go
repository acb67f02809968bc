package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jsfront/internal/source"
)

// AnalyzeSource runs the pipeline over in-memory content.
func AnalyzeSource(name string, content []byte, opts Options) (*FileResult, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	fset := source.NewFileSet()
	id, err := fset.AddEncoded(name, content, p.opts.Encoding, source.FileVirtual)
	if err != nil {
		return p.loadFailure(name, fset, err), nil
	}
	return p.run(context.Background(), fset, fset.Get(id))
}

// AnalyzeFile runs the pipeline over one file on disk.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	path = cleanPath(path)
	fset := source.NewFileSet()
	p.emit(path, StageLoad, StatusQueued, time.Time{})
	id, err := fset.Load(path, p.opts.Encoding)
	if err != nil {
		return p.loadFailure(path, fset, err), nil
	}
	return p.run(ctx, fset, fset.Get(id))
}

// AnalyzeDir analyzes every matching file below dir.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	return AnalyzePaths(ctx, []string{dir}, opts)
}

// AnalyzePaths analyzes files and directories. Independent file pipelines
// run concurrently, at most opts.Jobs at a time; results keep the sorted
// path order.
func AnalyzePaths(ctx context.Context, paths []string, opts Options) (*DirResult, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	files, err := CollectFiles(paths, p.opts.Extensions)
	if err != nil {
		return nil, err
	}

	base := ""
	if len(paths) == 1 {
		if info, statErr := os.Stat(paths[0]); statErr == nil && info.IsDir() {
			base = paths[0]
		}
	}
	fileSet := source.NewFileSetWithBase(base)
	result := &DirResult{FileSet: fileSet, Files: make([]*FileResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	// FileSet заполняется до запуска воркеров и дальше только читается
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, loadErr := fileSet.Load(path, p.opts.Encoding)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = id
	}
	for _, path := range files {
		p.emit(path, StageLoad, StatusQueued, time.Time{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				result.Files[i] = p.loadFailure(path, fileSet, loadErr)
				return nil
			}
			res, err := p.run(gctx, fileSet, fileSet.Get(fileIDs[path]))
			if err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			result.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// CollectFiles expands directories into the files with one of the given
// extensions; explicitly named files are always kept. The result is sorted
// and free of duplicates.
func CollectFiles(paths []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, cleanPath(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				files = append(files, cleanPath(path))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// cleanPath matches the path form stored by source.FileSet.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
