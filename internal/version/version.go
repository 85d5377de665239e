// Package version derives a normalized version token from an installer
// filename.
package version

import (
	"fmt"
	"regexp"

	"vmforge/internal/errors"
)

// The patterns are tried in order; the first one that matches anywhere in
// the filename wins, and within it the leftmost match is used. The last
// pattern covers timestamp-style tokens like "20240401T".
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`),
	regexp.MustCompile(`[0-9]+\.[0-9]+`),
	regexp.MustCompile(`[0-9]+T`),
}

// Extract returns the version token embedded in fileName.
func Extract(fileName string) (string, error) {
	for _, p := range patterns {
		if m := p.FindString(fileName); m != "" {
			return m, nil
		}
	}
	return "", errors.E("version-extract", errors.VersionNotFound,
		fmt.Errorf("no version token found in '%s'", fileName))
}
