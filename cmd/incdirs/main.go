package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cbuildtools/incdirs/internal/common"
	"github.com/cbuildtools/incdirs/internal/emitter"
	"github.com/cbuildtools/incdirs/internal/toolchain"
)

func failedStart(err interface{}) {
	_, _ = fmt.Fprintln(os.Stderr, "[incdirs]", err)
	os.Exit(1)
}

func main() {
	showVersionAndExit := common.CmdEnvBool("Show version and exit.", false,
		"version", "")
	showVersionAndExitShort := common.CmdEnvBool("Show version and exit.", false,
		"v", "")
	manifestFileName := common.CmdEnvString("A YAML manifest listing the toolchains to configure.\nIf not set, -compiler must be given.", "",
		"manifest", "INCDIRS_MANIFEST")
	compilerPath := common.CmdEnvString("Path to a compiler executable to configure (single-toolchain mode).", "",
		"compiler", "INCDIRS_COMPILER")
	compilerFlags := common.CmdEnvString("Base compiler flags for probing, delimited by spaces.\nUsed in single-toolchain mode only.", "",
		"flags", "INCDIRS_FLAGS")
	language := common.CmdEnvString("Probe language: 'c' or 'c++'.\nUsed in single-toolchain mode only.", "c++",
		"language", "INCDIRS_LANGUAGE")
	execRoot := common.CmdEnvString("The build system's execution root.\nInclude dirs beneath it are emitted root-relative. Defaults to the current directory.", "",
		"exec-root", "INCDIRS_EXEC_ROOT")
	dependencyPrefixes := common.CmdEnvString("Dependency install prefixes — a list of absolute paths delimited by ':'.\nEach contributes its <prefix>/include after the compiler-default dirs.", "",
		"dependency-prefixes", "INCDIRS_DEPENDENCIES")
	outFileName := common.CmdEnvString("A file to write the generated toolchain config to, stdout by default.", "",
		"o", "")
	probeTimeoutSec := common.CmdEnvInt("Compiler probe timeout in seconds.", 10,
		"probe-timeout", "INCDIRS_PROBE_TIMEOUT")
	logFileName := common.CmdEnvString("A filename to log, nothing by default.\nErrors are duplicated to stderr always.", "",
		"log-filename", "INCDIRS_LOG_FILENAME")
	logVerbosity := common.CmdEnvInt("Logger verbosity level for INFO (-1 off, default 0, max 2).\nErrors are logged always.", 0,
		"log-verbosity", "INCDIRS_LOG_VERBOSITY")

	common.ParseCmdFlagsCombiningWithEnv()

	if *showVersionAndExit || *showVersionAndExitShort {
		fmt.Println(common.GetVersion())
		os.Exit(0)
	}

	if err := toolchain.MakeLoggerToolchain(*logFileName, *logVerbosity, *logFileName != "stderr"); err != nil {
		failedStart(err)
	}

	toolchains, err := collectToolchains(*manifestFileName, *compilerPath, *compilerFlags, *language)
	if err != nil {
		failedStart(err)
	}

	if *execRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			failedStart(err)
		}
		*execRoot = cwd
	}
	resolver := &toolchain.Resolver{
		Runner:       toolchain.NewLocalCompilerRunner(),
		ExecRoot:     *execRoot,
		ProbeTimeout: time.Duration(*probeTimeoutSec) * time.Second,
	}

	var generated bytes.Buffer
	for i, tc := range toolchains {
		prefixesRaw := tc.DependencyPrefixes
		if prefixesRaw == "" {
			prefixesRaw = *dependencyPrefixes
		}

		includeDirs, err := resolver.ResolveIncludeDirs(tc.Compiler, tc.BaseFlags, tc.Language, prefixesRaw)
		if err != nil {
			failedStart(err)
		}

		flags := append([]string{}, tc.BaseFlags...)
		for _, optFlag := range tc.OptionalFlags {
			if resolver.SupportsFlag(tc.Compiler, optFlag, tc.Language) {
				flags = append(flags, optFlag)
			}
		}

		if i > 0 {
			generated.WriteByte('\n')
		}
		err = emitter.EmitToolchainConfig(&generated, emitter.ToolchainConfig{
			Name:        tc.Name,
			Compiler:    tc.Compiler,
			Flags:       flags,
			IncludeDirs: includeDirs,
		})
		if err != nil {
			failedStart(err)
		}
	}

	if *outFileName == "" {
		_, _ = os.Stdout.Write(generated.Bytes())
		return
	}
	if err := common.MkdirForFile(*outFileName); err != nil {
		failedStart(err)
	}
	if err := os.WriteFile(*outFileName, generated.Bytes(), 0666); err != nil {
		failedStart(err)
	}
}

func collectToolchains(manifestFileName string, compilerPath string, compilerFlags string, language string) ([]toolchain.ToolchainSpec, error) {
	if manifestFileName != "" {
		manifest, err := toolchain.LoadManifest(manifestFileName)
		if err != nil {
			return nil, err
		}
		return manifest.Toolchains, nil
	}

	if compilerPath == "" {
		return nil, fmt.Errorf("nothing to configure: set either -manifest or -compiler")
	}
	if language != "c" && language != "c++" {
		return nil, fmt.Errorf("unsupported language %q (want c or c++)", language)
	}
	return []toolchain.ToolchainSpec{{
		Name:      filepath.Base(compilerPath),
		Compiler:  compilerPath,
		Language:  language,
		BaseFlags: strings.Fields(compilerFlags),
	}}, nil
}
