package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// loadManifest reads and validates the YAML manifest, ensuring the presence of
// required top-level fields (name, description) and that every command entry
// has a non-empty command string.
func loadManifest(path string) (*manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mf := &manifest{}
	if err := yamlUnmarshal(b, mf); err != nil {
		return nil, err
	}
	if mf.Name == "" {
		return nil, errors.New("manifest.name is required")
	}
	if mf.Description == "" {
		return nil, errors.New("manifest.description is required")
	}
	for i, c := range mf.Commands {
		if strings.TrimSpace(c.Command) == "" {
			return nil, fmt.Errorf("commands[%d].command is required", i)
		}
	}
	return mf, nil
}
