package diff

import (
	"path/filepath"
	"strings"
)

// shouldExclude checks if a relative path matches any exclude pattern.
// Patterns support:
//   - Simple glob patterns applied to the basename: *.tmp, *.log
//   - Directory patterns: .git/, node_modules/
//   - Path patterns containing a separator: build/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	path := filepath.ToSlash(relativePath)
	base := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		pattern = filepath.ToSlash(pattern)

		// Directory pattern: matches the directory itself and anything under it
		if strings.HasSuffix(pattern, "/") {
			dir := strings.TrimSuffix(pattern, "/")
			if path == dir ||
				strings.HasPrefix(path, dir+"/") ||
				strings.Contains(path, "/"+dir+"/") ||
				base == dir {
				return true
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			// Pattern applies to the full relative path
			if matched, _ := filepath.Match(pattern, path); matched {
				return true
			}
			continue
		}

		// Pattern applies to the basename only
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
