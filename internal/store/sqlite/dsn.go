package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	Scheme    = "sqlite://"
	memoryDSN = ":memory:"
)

// parseDSN turns sqlite://path[?query] into the path modernc expects.
// Relative paths are anchored at the working directory.
func parseDSN(dsn string) (string, error) {
	rest, ok := strings.CutPrefix(dsn, Scheme)
	if !ok {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected %s", Scheme)
	}
	if rest == "" {
		return "", fmt.Errorf("sqlite DSN has no path")
	}
	if rest == memoryDSN {
		return memoryDSN, nil
	}

	path, query, _ := strings.Cut(rest, "?")
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	path = unescaped

	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
		path = "./" + path
	}
	if query != "" {
		return path + "?" + query, nil
	}
	return path, nil
}
