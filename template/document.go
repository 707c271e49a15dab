// Package template loads page layout documents, resolves their internal
// "$ref" references and exposes typed views for the render package.
//
// A document is a plain tree of map[string]any, []any and scalars. Numbers
// are normalised to float64 whatever the source format, so the same layout
// written as JSON, YAML or TOML decodes to equal trees.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/arcana/errors"
)

// ElementsKey is the section holding fixed-layout slots.
const ElementsKey = "elements"

// OrderKey lists the keys of a literal elements section in the order the
// source declares them. Decode sets it; go maps do not keep that order.
const OrderKey = "$order"

// Document is the root of a layout tree. Treat resolved documents as
// read-only: subtrees reached through the same $ref are shared.
type Document map[string]any

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Mark(
		errors.Newf("unsupported template format %q", filepath.Ext(path)),
		errors.ErrUnsupported,
	)
}

// Load reads and decodes the document at path without resolving it.
func Load(path string) (Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.Mark(err, errors.ErrNotFound), "template %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read template %s", path)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "template %s", path)
	}
	return doc, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (Document, error) {
	var raw map[string]any
	var order []string
	var err error
	switch format {
	case FormatJSON:
		if err = json.Unmarshal(data, &raw); err == nil {
			order = jsonSectionKeys(data, ElementsKey)
		}
	case FormatYAML:
		if err = yaml.Unmarshal(data, &raw); err == nil {
			order = yamlSectionKeys(data, ElementsKey)
		}
	case FormatTOML:
		var md toml.MetaData
		if md, err = toml.Decode(string(data), &raw); err == nil {
			order = tomlSectionKeys(md, ElementsKey)
		}
	default:
		return nil, errors.Mark(errors.Newf("unsupported template format %q", format), errors.ErrUnsupported)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", format)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	doc := Document(normalize(raw).(map[string]any))
	if len(order) > 0 {
		keys := make([]any, len(order))
		for i, k := range order {
			keys[i] = k
		}
		doc[OrderKey] = keys
	}
	return doc, nil
}

// jsonSectionKeys walks the top-level object of an already validated JSON
// document and returns the keys of section in source order.
func jsonSectionKeys(data []byte, section string) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		if key, _ := tok.(string); key != section {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
			continue
		}
		if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
			return nil
		}
		var keys []string
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil
			}
			key, _ := tok.(string)
			keys = append(keys, key)
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
		}
		return keys
	}
	return nil
}

func yamlSectionKeys(data []byte, section string) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return nil
	}
	node := yamlChild(root.Content[0], section)
	if node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := node.Content[i].Value; k != "<<" {
			keys = append(keys, k)
		}
	}
	return keys
}

func yamlChild(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// tomlSectionKeys relies on MetaData.Keys listing keys in source order.
func tomlSectionKeys(md toml.MetaData, section string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, k := range md.Keys() {
		if len(k) < 2 || k[0] != section || seen[k[1]] {
			continue
		}
		seen[k[1]] = true
		keys = append(keys, k[1])
	}
	return keys
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	}
	return v
}
