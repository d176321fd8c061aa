package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeCompilerRunner plays back canned diagnostic output instead of launching a compiler.
type fakeCompilerRunner struct {
	stderr   string
	exitCode int
	err      error

	launches [][]string
}

func (f *fakeCompilerRunner) RunCompiler(_ context.Context, compilerPath string, args []string) ([]byte, []byte, int, error) {
	f.launches = append(f.launches, append([]string{compilerPath}, args...))
	if f.err != nil {
		return nil, nil, -1, f.err
	}
	return nil, []byte(f.stderr), f.exitCode, nil
}

func TestResolveIncludeDirsOrdering(t *testing.T) {
	runner := &fakeCompilerRunner{stderr: gccWpStderr}
	resolver := &Resolver{Runner: runner}

	dirs, err := resolver.ResolveIncludeDirs("/usr/bin/g++", nil, "c++", "/opt/zlib:/opt/ssl")
	require.NoError(t, err)
	require.Equal(t, dirList(
		"/usr/lib/gcc/x86_64-linux-gnu/12/include",
		"/usr/local/include",
		"/usr/include/x86_64-linux-gnu",
		"/usr/include",
		"/opt/zlib/include",
		"/opt/ssl/include",
	), dirs)
}

func TestResolveIncludeDirsProbeCommandLine(t *testing.T) {
	runner := &fakeCompilerRunner{stderr: gccWpStderr}
	resolver := &Resolver{Runner: runner}

	_, err := resolver.ResolveIncludeDirs("/usr/bin/gcc", []string{"-m64"}, "c", "")
	require.NoError(t, err)
	require.Len(t, runner.launches, 1)
	require.Equal(t,
		[]string{"/usr/bin/gcc", "-m64", "-Wp,-v", "-x", "c", os.DevNull, "-fsyntax-only"},
		runner.launches[0])
}

func TestResolveIncludeDirsDedupsKeepingFirst(t *testing.T) {
	runner := &fakeCompilerRunner{
		stderr: "#include <...> search starts here:\n /usr/include\n /opt/zlib/include\n /usr/include\nEnd of search list.\n",
	}
	resolver := &Resolver{Runner: runner}

	dirs, err := resolver.ResolveIncludeDirs("/usr/bin/g++", nil, "c++", "/opt/zlib")
	require.NoError(t, err)
	require.Equal(t, dirList("/usr/include", "/opt/zlib/include"), dirs)
}

func TestResolveIncludeDirsRewritesUnderExecRoot(t *testing.T) {
	runner := &fakeCompilerRunner{
		stderr: "#include <...> search starts here:\n /work/src/third_party/include\n /usr/include\nEnd of search list.\n",
	}
	resolver := &Resolver{Runner: runner, ExecRoot: "/work/src"}

	dirs, err := resolver.ResolveIncludeDirs("/usr/bin/g++", nil, "c++", "/work/src/deps/abc")
	require.NoError(t, err)
	require.Equal(t, dirList("third_party/include", "/usr/include", "deps/abc/include"), dirs)
}

func TestResolveIncludeDirsProbeExitNonZero(t *testing.T) {
	runner := &fakeCompilerRunner{stderr: "g++: error: unrecognized command-line option '-mbroken'", exitCode: 1}
	resolver := &Resolver{Runner: runner}

	_, err := resolver.ResolveIncludeDirs("/usr/bin/g++", []string{"-mbroken"}, "c++", "")
	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.Equal(t, 1, probeErr.ExitCode)
	require.Contains(t, probeErr.Output, "unrecognized command-line option")
}

// hangingCompilerRunner emulates a compiler that never answers within the probe timeout.
type hangingCompilerRunner struct{}

func (hangingCompilerRunner) RunCompiler(ctx context.Context, compilerPath string, _ []string) ([]byte, []byte, int, error) {
	<-ctx.Done()
	return nil, nil, -1, fmt.Errorf("%s: %w", compilerPath, ctx.Err())
}

func TestResolveIncludeDirsProbeTimeout(t *testing.T) {
	resolver := &Resolver{Runner: hangingCompilerRunner{}, ProbeTimeout: time.Millisecond}

	_, err := resolver.ResolveIncludeDirs("/usr/bin/g++", nil, "c++", "")
	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolveIncludeDirsSpawnErrorPropagates(t *testing.T) {
	spawnErr := errors.New("fork/exec /no/such/compiler: no such file or directory")
	resolver := &Resolver{Runner: &fakeCompilerRunner{err: spawnErr}}

	_, err := resolver.ResolveIncludeDirs("/no/such/compiler", nil, "c++", "")
	require.ErrorIs(t, err, spawnErr)
}

func TestResolveIncludeDirsDelimiterErrorCarriesOutput(t *testing.T) {
	runner := &fakeCompilerRunner{stderr: "#include <...> search starts here:\n /usr/include\n"}
	resolver := &Resolver{Runner: runner}

	_, err := resolver.ResolveIncludeDirs("/usr/bin/g++", nil, "c++", "")
	var delimErr *DelimiterNotFoundError
	require.ErrorAs(t, err, &delimErr)
	require.Contains(t, delimErr.Output, "/usr/include")
}

func TestSupportsFlag(t *testing.T) {
	supported := &fakeCompilerRunner{exitCode: 0}
	unsupported := &fakeCompilerRunner{stderr: "error: unrecognized command-line option", exitCode: 1}

	require.True(t, (&Resolver{Runner: supported}).SupportsFlag("/usr/bin/g++", "-std=c++17", "c++"))
	require.False(t, (&Resolver{Runner: unsupported}).SupportsFlag("/usr/bin/g++", "-std=c++77", "c++"))

	// the tried flag must be on the probe command line; the search-path dump
	// is not requested for a support probe
	require.Contains(t, supported.launches[0], "-std=c++17")
	require.NotContains(t, supported.launches[0], "-Wp,-v")
}
