// Package walk enumerates the regular files of a directory tree for
// recursive scanning, honoring .gitignore patterns and hidden-file
// filtering.
package walk

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Config controls the walk.
type Config struct {
	// Root is the directory to enumerate.
	Root string
	// IncludeHidden admits dot-files and dot-directories.
	IncludeHidden bool
	// MaxFileSize skips larger files when positive.
	MaxFileSize int64
}

// Files walks the tree under config.Root and invokes callback with the path
// of every eligible regular file, in walk order. A .gitignore at the root is
// honored when present. Symlinks are not followed.
func Files(config Config, callback func(path string) error) error {
	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	return filepath.Walk(config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != config.Root && !config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		if !config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}

		if config.MaxFileSize > 0 && info.Size() > config.MaxFileSize {
			return nil
		}

		if ignore != nil {
			relPath, err := filepath.Rel(config.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				return nil
			}
		}

		return callback(path)
	})
}

// isHidden reports dot-names, "." and ".." excluded.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
