package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// keySep joins nested key paths in the order index. It cannot appear in a
// TOML or YAML key that survives parsing into a path segment.
const keySep = "\x00"

// Document is a parsed configuration file together with the directory it
// was found in.
type Document struct {
	// Path is the configuration file, or "" when none was found.
	Path string

	// Dir is the directory commands run in and relative paths resolve
	// against.
	Dir string

	// Data is the decoded mapping. Never nil.
	Data map[string]any

	// order records the source order of the keys of every nested table,
	// indexed by the table's key path joined with keySep.
	order map[string][]string
}

// Found reports whether a configuration file was located.
func (d *Document) Found() bool {
	return d.Path != ""
}

// Keys returns the keys of m in source order. m is the table reached by
// following path from the document root. Keys the order index does not know
// about (which should not happen) are appended sorted.
func (d *Document) Keys(m map[string]any, path ...string) []string {
	hint := d.order[strings.Join(path, keySep)]
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range hint {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// decode parses raw according to the configuration file's extension:
// YAML for .yaml and .yml, TOML otherwise.
func decode(path string, raw []byte) (map[string]any, map[string][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(raw)
	default:
		return decodeTOML(raw)
	}
}

func decodeTOML(raw []byte) (map[string]any, map[string][]string, error) {
	data := map[string]any{}
	md, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(&data)
	if err != nil {
		return nil, nil, err
	}

	order := map[string][]string{}
	seen := map[string]bool{}
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		id := strings.Join(key, keySep)
		if seen[id] {
			continue
		}
		seen[id] = true
		parent := strings.Join(key[:len(key)-1], keySep)
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return data, order, nil
}

func decodeYAML(raw []byte) (map[string]any, map[string][]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, nil, err
	}

	data := map[string]any{}
	if root.Kind == 0 {
		// Empty document.
		return data, map[string][]string{}, nil
	}
	if err := root.Decode(&data); err != nil {
		return nil, nil, err
	}

	order := map[string][]string{}
	recordYAMLOrder(&root, nil, order)
	return data, order, nil
}

func recordYAMLOrder(n *yaml.Node, path []string, order map[string][]string) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			recordYAMLOrder(c, path, order)
		}
	case yaml.MappingNode:
		parent := strings.Join(path, keySep)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			order[parent] = append(order[parent], key)
			recordYAMLOrder(n.Content[i+1], append(slices.Clone(path), key), order)
		}
	}
}

// table asserts that v is a nested mapping.
func table(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %T", v)
	}
	return m, nil
}
