// Package display renders command results as JSON, YAML or terminal tables.
package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/teranos/arcana/errors"
)

// MarshalJSON marshals v with two-space indentation
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// MarshalYAML marshals v as a YAML document
func MarshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal encodes v in format (json or yaml)
func Marshal(v interface{}, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return MarshalJSON(v)
	case FormatYAML:
		return MarshalYAML(v)
	}
	return nil, errors.Mark(errors.Newf("unsupported output format %q", format), errors.ErrUnsupported)
}

// Write encodes v in format and writes it to w with a trailing newline
func Write(w io.Writer, v interface{}, format string) error {
	data, err := Marshal(v, format)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", format)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// OutputJSON marshals and prints JSON to w
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
