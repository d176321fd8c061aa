package toolchain

import (
	"path/filepath"
	"strings"
)

// InjectDependencyIncludeDirs appends one `<prefix>/include` directory per dependency
// install prefix, after the compiler-default dirs and in the listed order.
// prefixesRaw is a colon-separated list (typically taken from INCDIRS_DEPENDENCIES);
// an empty string means no dependencies and returns defaultDirs as is.
// Empty segments are skipped: a doubled or trailing colon is a scripting artifact,
// not a reason to fail a build.
// Whether a derived directory exists is not checked, a missing one simply
// yields no header matches at compile time.
func InjectDependencyIncludeDirs(defaultDirs []IncludeDirectory, prefixesRaw string, norm Normalizer) []IncludeDirectory {
	if prefixesRaw == "" {
		return defaultDirs
	}

	prefixes := strings.Split(prefixesRaw, ":")
	finalDirs := make([]IncludeDirectory, len(defaultDirs), len(defaultDirs)+len(prefixes))
	copy(finalDirs, defaultDirs)

	for _, prefix := range prefixes {
		if prefix = strings.TrimSpace(prefix); prefix == "" {
			logTc.Info(2, "skip empty dependency prefix segment")
			continue
		}
		finalDirs = append(finalDirs, norm.Normalize(filepath.Join(prefix, "include")))
	}
	return finalDirs
}
