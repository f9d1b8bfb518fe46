package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FolderSupplier reads files with a given extension from a folder, handing
// out every file at most once per session.
type FolderSupplier struct {
	dir       string
	ext       string
	processed map[string]bool
}

func NewFolderSupplier(dir, ext string) *FolderSupplier {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &FolderSupplier{
		dir:       dir,
		ext:       ext,
		processed: make(map[string]bool),
	}
}

func (s *FolderSupplier) Dir() string {
	return s.dir
}

// Processed returns how many files were consumed so far.
func (s *FolderSupplier) Processed() int {
	return len(s.processed)
}

// Poll lists the folder once and reads every file not seen before, in name
// order. Files that fail to read are reported in the batch and retried on the
// next poll.
func (s *FolderSupplier) Poll(ctx context.Context) (Batch, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if s.ext != "" && !strings.HasSuffix(e.Name(), s.ext) {
			continue
		}
		if s.processed[e.Name()] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var batch Batch
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		path := filepath.Join(s.dir, name)
		lines, err := ReadLines(path)
		if err != nil {
			batch.Errors = append(batch.Errors, err)
			continue
		}

		batch.Items = append(batch.Items, Item{Name: path, Lines: lines})
		s.processed[name] = true
	}
	return batch, nil
}

// ReadLines returns the lines of a file without their terminators. "\n",
// "\r\n" and a lone "\r" all end a line. Empty lines are kept.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}
