package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// CompilerRunner abstracts launching a compiler binary, so that the resolution pipeline
// can be tested with canned diagnostic output instead of a real toolchain.
// err reports spawn/permission/timeout failures only; a compiler that was launched
// and exited non-zero reports through exitCode with a nil err.
type CompilerRunner interface {
	RunCompiler(ctx context.Context, compilerPath string, args []string) (stdout []byte, stderr []byte, exitCode int, err error)
}

type localCompilerRunner struct{}

// NewLocalCompilerRunner returns a CompilerRunner that executes the compiler on this machine.
func NewLocalCompilerRunner() CompilerRunner {
	return localCompilerRunner{}
}

func (localCompilerRunner) RunCompiler(ctx context.Context, compilerPath string, args []string) ([]byte, []byte, int, error) {
	compilerCommand := exec.CommandContext(ctx, compilerPath, args...)
	var compilerStdout, compilerStderr bytes.Buffer
	compilerCommand.Stdout = &compilerStdout
	compilerCommand.Stderr = &compilerStderr

	err := compilerCommand.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, -1, fmt.Errorf("%s: %w", compilerPath, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, nil, -1, err // spawn/permission error, there is no compiler output
		}
	}
	return compilerStdout.Bytes(), compilerStderr.Bytes(), compilerCommand.ProcessState.ExitCode(), nil
}

// probeArgs makes a command line that runs the compiler over the null device
// without compiling anything: syntax check only, no output.
func probeArgs(baseFlags []string, language string, extraFlags ...string) []string {
	args := make([]string, 0, len(baseFlags)+len(extraFlags)+4)
	args = append(args, baseFlags...)
	args = append(args, extraFlags...)
	return append(args, "-x", language, os.DevNull, "-fsyntax-only")
}

// ProbeDefaultIncludeDirs invokes the compiler so that it prints its default include search
// paths, and returns the captured diagnostic stream (stderr). The compiler is given
// Resolver.ProbeTimeout to answer; expiry is fatal and not retryable, since probing a fixed
// compiler binary is deterministic.
func (r *Resolver) ProbeDefaultIncludeDirs(compilerPath string, baseFlags []string, language string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.probeTimeout())
	defer cancel()

	// -Wp,-v makes the preprocessor print its default search paths to stderr
	args := probeArgs(baseFlags, language, "-Wp,-v")
	logTc.Info(1, "launch compiler probe", compilerPath, args)

	_, stderr, exitCode, err := r.Runner.RunCompiler(ctx, compilerPath, args)
	if err != nil {
		logTc.Error("compiler probe failed to run:", compilerPath, err)
		return "", &ProbeError{Compiler: compilerPath, ExitCode: -1, Output: string(stderr), Err: err}
	}
	if exitCode != 0 {
		// -fsyntax-only over the null device can't legitimately fail, so any non-zero
		// exit means the probe itself is broken (bad flags, unusable compiler)
		logTc.Error("compiler probe exited with code", exitCode, ":", compilerPath)
		return "", &ProbeError{Compiler: compilerPath, ExitCode: exitCode, Output: string(stderr)}
	}
	return string(stderr), nil
}

// SupportsFlag checks whether the compiler accepts the given command-line flag.
func (r *Resolver) SupportsFlag(compilerPath string, flag string, language string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), r.probeTimeout())
	defer cancel()

	_, _, exitCode, err := r.Runner.RunCompiler(ctx, compilerPath, probeArgs(nil, language, flag))
	return err == nil && exitCode == 0
}

func (r *Resolver) probeTimeout() time.Duration {
	if r.ProbeTimeout <= 0 {
		return DefaultProbeTimeout
	}
	return r.ProbeTimeout
}
