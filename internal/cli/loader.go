package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/semshot/semshot/internal/state"
)

// LoadStateFile reads a YAML or JSON state document and converts it to a
// state value. The format is chosen by extension; anything that is not
// .json is parsed as YAML (which subsumes JSON anyway for .yml/.yaml).
func LoadStateFile(path string) (state.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var generic any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		// UseNumber keeps large integers exact instead of round-tripping
		// through float64.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&generic); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	v, err := state.FromAny(generic)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return v, nil
}

// SpecNameFromPath derives the default specification name from a state
// file path: the base name without extensions.
func SpecNameFromPath(path string) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" {
			return base
		}
		base = strings.TrimSuffix(base, ext)
	}
}
