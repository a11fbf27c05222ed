package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/turnt/internal/ir"
)

// PathKey is the journal identity of a test path: absolute, cleaned and
// NFC-normalized.
func PathKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return norm.NFC.String(abs), nil
}

func marshalFlags(cfg ir.RunConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal flags: %w", err)
	}
	return string(data), nil
}

func unmarshalFlags(data string) (ir.RunConfig, error) {
	var cfg ir.RunConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return ir.RunConfig{}, fmt.Errorf("unmarshal flags: %w", err)
	}
	return cfg, nil
}

func marshalAnnotations(notes []string) (string, error) {
	if notes == nil {
		notes = []string{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", fmt.Errorf("marshal annotations: %w", err)
	}
	return string(data), nil
}

func unmarshalAnnotations(data string) ([]string, error) {
	var notes []string
	if err := json.Unmarshal([]byte(data), &notes); err != nil {
		return nil, fmt.Errorf("unmarshal annotations: %w", err)
	}
	return notes, nil
}
