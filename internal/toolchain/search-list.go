package toolchain

import "strings"

// Sentinels gcc and clang print around the default include search list
// when invoked with -Wp,-v (see ProbeDefaultIncludeDirs).
const (
	searchListStart = "#include <...> search starts here:"
	searchListEnd   = "End of search list."
)

// ExtractSearchList carves the search-list block out of the captured diagnostic output
// and returns the raw paths in the order the compiler printed them.
// A missing marker is fatal: without the block there is nothing to resolve,
// and its absence most likely means an unexpected compiler or output format.
func ExtractSearchList(diagnosticOutput string) ([]string, error) {
	begin := strings.Index(diagnosticOutput, searchListStart)
	if begin == -1 {
		return nil, &DelimiterNotFoundError{Marker: searchListStart, Output: diagnosticOutput}
	}
	rest := diagnosticOutput[begin+len(searchListStart):]
	end := strings.Index(rest, searchListEnd)
	if end == -1 {
		return nil, &DelimiterNotFoundError{Marker: searchListEnd, Output: diagnosticOutput}
	}

	lines := strings.Split(rest[:end], "\n")
	rawPaths := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			rawPaths = append(rawPaths, line)
		}
	}
	return rawPaths, nil
}
