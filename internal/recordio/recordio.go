// Package recordio reads records from and writes values to YAML or JSON.
package recordio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/schemaver/internal/core/schema/record"
)

var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrNotARecord    = errors.New("document is not a record or a list of records")
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadJSON reads a single record or a list of records from JSON.
func LoadJSON(r io.Reader) ([]record.Record, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return toRecords(doc)
}

// LoadYAML reads a single record or a list of records from YAML.
func LoadYAML(r io.Reader) ([]record.Record, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return toRecords(doc)
}

// LoadFile reads records from path, choosing the decoder by extension.
func LoadFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recs []record.Record
	switch FormatForPath(path) {
	case FormatJSON:
		recs, err = LoadJSON(f)
	default:
		recs, err = LoadYAML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return recs, nil
}

// Write encodes v to w in the given format.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func toRecords(doc any) ([]record.Record, error) {
	switch d := doc.(type) {
	case map[string]any:
		return []record.Record{d}, nil
	case []any:
		out := make([]record.Record, 0, len(d))
		for i, item := range d {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("item %d: %w", i, ErrNotARecord)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, ErrNotARecord
	}
}
