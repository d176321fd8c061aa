package emitter

import (
	"fmt"
	"io"

	"github.com/cbuildtools/incdirs/internal/toolchain"
)

// ToolchainConfig is everything one generated toolchain block needs.
// IncludeDirs must already be resolved and ordered (see toolchain.Resolver).
type ToolchainConfig struct {
	Name        string
	Compiler    string
	Flags       []string
	IncludeDirs []toolchain.IncludeDirectory
}

// EmitToolchainConfig writes one toolchain block of the generated build configuration.
// Every string goes through the same literal escaping as include paths do, so the
// consuming generator reconstructs the original text exactly.
func EmitToolchainConfig(w io.Writer, cfg ToolchainConfig) error {
	if _, err := fmt.Fprintf(w, "toolchain(%q) {\n", cfg.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  compiler = \"%s\"\n", toolchain.EscapeLiteral(cfg.Compiler)); err != nil {
		return err
	}
	if err := writeStringList(w, "flags", flagLiterals(cfg.Flags)); err != nil {
		return err
	}
	literals := make([]string, 0, len(cfg.IncludeDirs))
	for _, dir := range cfg.IncludeDirs {
		literals = append(literals, dir.Literal())
	}
	if err := writeStringList(w, "include_dirs", literals); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func flagLiterals(flags []string) []string {
	literals := make([]string, 0, len(flags))
	for _, flag := range flags {
		literals = append(literals, toolchain.EscapeLiteral(flag))
	}
	return literals
}

func writeStringList(w io.Writer, field string, literals []string) error {
	if len(literals) == 0 {
		_, err := fmt.Fprintf(w, "  %s = []\n", field)
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s = [\n", field); err != nil {
		return err
	}
	for _, literal := range literals {
		if _, err := fmt.Fprintf(w, "    \"%s\",\n", literal); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "  ]\n")
	return err
}
