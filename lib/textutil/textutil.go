package textutil

import (
	"path"
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// NormalizePath cleans a URL path or fragment path so that equivalent
// spellings ("/a//b/", "/a/./b") compare equal. An empty path cleans
// to "." which never matches a site's path allow-list, so bare-host
// URLs decline naturally.
func NormalizePath(p string) string {
	return path.Clean(p)
}
