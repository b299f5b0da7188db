package places

import (
	"fmt"

	"github.com/benmeehan/locality-agent/pkg/file"
)

// registryFile is the YAML layout of a registry override.
type registryFile struct {
	Default string  `yaml:"default"`
	Places  []Place `yaml:"places"`
}

// LoadRegistry reads a registry from a YAML file. An empty default keeps the builtin one.
func LoadRegistry(path string, fileClient file.FileOperations) (*Registry, error) {
	var rf registryFile
	if err := fileClient.ReadYamlFile(path, &rf); err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	if rf.Default == "" {
		rf.Default = DefaultPlace
	}

	r, err := NewRegistry(rf.Default, rf.Places)
	if err != nil {
		return nil, fmt.Errorf("invalid registry file %s: %w", path, err)
	}
	return r, nil
}
