package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	// Extensions is the list of snapshot file extensions (e.g., ".yaml", ".yml").
	Extensions []string

	// SkipHidden skips files and directories whose name starts with a dot.
	SkipHidden bool
}

// DefaultDiscoverOptions returns the options used when none are configured.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		Extensions: []string{".yaml", ".yml"},
		SkipHidden: true,
	}
}

// Discover returns the snapshot documents under root in lexical order.
// If root is a single file it is returned as-is, whatever its extension.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access bundle %q: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if opts.SkipHidden && path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !hasExtension(path, opts.Extensions) {
			return nil
		}

		// Symlinked snapshots are followed only when they point at a file.
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil || target.IsDir() {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk bundle %q: %w", root, err)
	}

	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
