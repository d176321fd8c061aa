package toolchain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ToolchainSpec describes one compiler to configure during workspace setup.
type ToolchainSpec struct {
	Name     string `yaml:"name"`
	Compiler string `yaml:"compiler"`
	// Language is what the probe feeds to -x; "c" or "c++", "c++" when omitted.
	Language  string   `yaml:"language,omitempty"`
	BaseFlags []string `yaml:"base_flags,omitempty"`
	// OptionalFlags are kept only if the compiler accepts them (see Resolver.SupportsFlag).
	OptionalFlags []string `yaml:"optional_flags,omitempty"`
	// DependencyPrefixes overrides the ambient colon-separated prefix list for this toolchain.
	DependencyPrefixes string `yaml:"dependency_prefixes,omitempty"`
}

// Manifest lists the toolchains of a workspace, one generated config block each.
type Manifest struct {
	Toolchains []ToolchainSpec `yaml:"toolchains"`
}

func LoadManifest(fileName string) (*Manifest, error) {
	contents, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %v", fileName, err)
	}
	if len(manifest.Toolchains) == 0 {
		return nil, fmt.Errorf("manifest %s lists no toolchains", fileName)
	}

	for i := range manifest.Toolchains {
		tc := &manifest.Toolchains[i]
		if tc.Name == "" {
			return nil, fmt.Errorf("manifest %s: toolchain #%d has no name", fileName, i+1)
		}
		if tc.Compiler == "" {
			return nil, fmt.Errorf("manifest %s: toolchain %s has no compiler", fileName, tc.Name)
		}
		switch tc.Language {
		case "":
			tc.Language = "c++"
		case "c", "c++":
		default:
			return nil, fmt.Errorf("manifest %s: toolchain %s has unsupported language %q (want c or c++)", fileName, tc.Name, tc.Language)
		}
	}
	return &manifest, nil
}
