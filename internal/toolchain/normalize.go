package toolchain

import (
	"path/filepath"
	"strings"
)

// IncludeDirectory is one header search path in canonical form: framework suffix stripped,
// cleaned, rewritten relative to the execution root when it lies beneath it.
// Escaping for the generated config happens once, in Literal(), so that normalization
// stays idempotent on Path.
type IncludeDirectory struct {
	Path string
}

// Literal returns the path escaped for embedding into a double-quoted string literal
// of the generated toolchain configuration.
func (dir IncludeDirectory) Literal() string {
	return EscapeLiteral(dir.Path)
}

// clang on macOS reports framework entries like "/Library/Frameworks (framework directory)"
const frameworkDirSuffix = " (framework directory)"

// Normalizer converts raw paths reported by a compiler to canonical form.
// ExecRoot is the build system's execution root; an empty ExecRoot disables
// the root-relative rewrite.
type Normalizer struct {
	ExecRoot string
}

func (n Normalizer) Normalize(rawPath string) IncludeDirectory {
	p := strings.TrimSpace(rawPath)
	p = strings.TrimSpace(strings.TrimSuffix(p, frameworkDirSuffix))
	p = filepath.Clean(p)
	if n.ExecRoot != "" && filepath.IsAbs(p) {
		if rel, err := filepath.Rel(filepath.Clean(n.ExecRoot), p); err == nil && !isOutsideRoot(rel) {
			p = rel
		}
	}
	return IncludeDirectory{Path: p}
}

func isOutsideRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EscapeLiteral escapes backslashes and double quotes, so that the path survives verbatim
// inside a double-quoted literal of the generated build-configuration syntax.
func EscapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// UnescapeLiteral is the exact inverse of EscapeLiteral.
func UnescapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
