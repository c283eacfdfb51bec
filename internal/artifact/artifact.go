// Package artifact stores run outputs as json files in a directory.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrNotFound = errors.New("not found")
	ErrNotDir   = errors.New("not a directory")
)

// Save writes the value as indented json into dir/name.
// The directory is created if it does not exist.
func Save(dir string, name string, value interface{}) error {
	info, err := os.Stat(dir)
	if err != nil {
		err := os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", dir, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("artifact path '%s': %w", dir, ErrNotDir)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode artifact '%s': %w", name, err)
	}

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("could not write artifact '%s': %w", p, err)
	}
	return nil
}

// Load reads dir/name into value.
func Load(dir string, name string, value interface{}) error {
	p := filepath.Join(dir, name)

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read artifact '%s' %s: %w", p, err.Error(), ErrNotFound)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not decode artifact '%s': %w", p, err)
	}
	return nil
}
