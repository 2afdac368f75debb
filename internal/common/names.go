// Package common holds naming helpers shared by the analyzer and diagnostics.
package common

import (
	"path"
	"regexp"
	"strings"
)

// UnknownStr is the String() value of enum members without a name.
const UnknownStr = "unknown"

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias is the identifier a package path is usually imported as: its last
// element without a major version, so "gopkg.in/yaml.v3" and
// "example.com/yaml/v3" are both "yaml". Empty for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	dir, base := path.Split(pkgPath)
	if majorVersion.MatchString(base) && dir != "" {
		base = path.Base(dir)
	}

	if name, version, ok := strings.Cut(base, "."); ok && majorVersion.MatchString(version) {
		base = name
	}

	return base
}
