package toolchain

import "time"

const DefaultProbeTimeout = 10 * time.Second

// Resolver runs the whole probe → parse → normalize → inject pipeline for one toolchain.
// It keeps no state between calls; several resolvers may run concurrently as long as
// each has its own instance (or they share a Runner, which is stateless too).
type Resolver struct {
	Runner       CompilerRunner
	ExecRoot     string
	ProbeTimeout time.Duration
}

// ResolveIncludeDirs returns the full ordered list of include directories for the compiler:
// its own default search path first (in the order the compiler reported it), then one
// `<prefix>/include` per dependency prefix from dependencyPrefixesRaw.
// Both groups go through the same normalization, and exact duplicates are dropped
// keeping the first (highest-precedence) occurrence.
func (r *Resolver) ResolveIncludeDirs(compilerPath string, baseFlags []string, language string, dependencyPrefixesRaw string) ([]IncludeDirectory, error) {
	diagnosticOutput, err := r.ProbeDefaultIncludeDirs(compilerPath, baseFlags, language)
	if err != nil {
		return nil, err
	}

	rawPaths, err := ExtractSearchList(diagnosticOutput)
	if err != nil {
		logTc.Error("no search list in probe output of", compilerPath)
		return nil, err
	}

	norm := Normalizer{ExecRoot: r.ExecRoot}
	defaultDirs := make([]IncludeDirectory, 0, len(rawPaths))
	for _, rawPath := range rawPaths {
		defaultDirs = append(defaultDirs, norm.Normalize(rawPath))
	}
	logTc.Info(1, "compiler", compilerPath, "reported", len(defaultDirs), "default include dirs")

	return dedupIncludeDirs(InjectDependencyIncludeDirs(defaultDirs, dependencyPrefixesRaw, norm)), nil
}

func dedupIncludeDirs(dirs []IncludeDirectory) []IncludeDirectory {
	seen := make(map[string]bool, len(dirs))
	deduped := dirs[:0]
	for _, dir := range dirs {
		if !seen[dir.Path] {
			seen[dir.Path] = true
			deduped = append(deduped, dir)
		}
	}
	return deduped
}
