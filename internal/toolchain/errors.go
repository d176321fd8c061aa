package toolchain

import "fmt"

// ProbeError means the compiler probe invocation itself failed: the binary could not be
// launched, timed out, or exited non-zero. Output keeps the captured diagnostic stream,
// since a human debugging this almost always needs the raw compiler text.
type ProbeError struct {
	Compiler string
	ExitCode int
	Output   string
	Err      error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probing %s failed: %v\ncaptured output:\n%s", e.Compiler, e.Err, e.Output)
	}
	return fmt.Sprintf("probing %s failed: exited with code %d\ncaptured output:\n%s", e.Compiler, e.ExitCode, e.Output)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// DelimiterNotFoundError means the diagnostic output has no search-list block bounded
// by the expected markers, which usually indicates a compiler-version/format mismatch.
type DelimiterNotFoundError struct {
	Marker string
	Output string
}

func (e *DelimiterNotFoundError) Error() string {
	return fmt.Sprintf("marker %q not found in compiler diagnostic output:\n%s", e.Marker, e.Output)
}
