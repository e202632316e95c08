// Package picker offers an interactive fuzzy file picker over the
// previewable files below a directory.
package picker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"texpeek/pkg/preview"
	"texpeek/pkg/texture"

	"github.com/ktr0731/go-fuzzyfinder"
)

// ErrAborted is returned when the user quits the picker without choosing.
var ErrAborted = fuzzyfinder.ErrAbort

// ListFiles walks dir for files texpeek can preview.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := texture.DetectKind(path); err == nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return files, nil
}

// Pick runs the fuzzy finder over the previewable files below dir. The
// preview window shows container metadata fetched on demand through the
// renderer.
func Pick(ctx context.Context, renderer *preview.Renderer, dir string) (string, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no previewable files (%s) under %s",
			strings.Join(texture.SupportedExtensions(), ", "), dir)
	}

	headers := make(map[int]texture.Header)

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			rel, relErr := filepath.Rel(dir, files[i])
			if relErr != nil {
				return files[i]
			}
			return rel
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			hdr, ok := headers[i]
			if !ok {
				h, hdrErr := renderer.Header(ctx, files[i])
				if hdrErr != nil {
					return fmt.Sprintf("unreadable: %v", hdrErr)
				}
				headers[i] = h
				hdr = h
			}
			return fmt.Sprintf("Size:   %d x %d\nFormat: %s\nLevels: %d\nLayers: %d\nFaces:  %d\nDepth:  %d",
				hdr.PixelWidth, hdr.PixelHeight, hdr.Format,
				hdr.LevelCount, hdr.LayerCount, hdr.FaceCount, hdr.PixelDepth)
		}),
	)
	if err != nil {
		return "", err
	}
	return files[idx], nil
}
