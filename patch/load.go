package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-weathercfg/internal/marshaler"
)

// Format is the syntax of a patch file.
type Format int

const (
	// JSON patches may contain comments and trailing commas.
	JSON Format = iota
	YAML
)

// FormatOf picks the patch format from a file extension. Anything other than
// .yaml or .yml is read as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Load reads a patch file from fsys.
func Load(fsys afero.Fs, path string) (Patch, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("weathercfg: reading patch: %w", err)
	}
	p, err := Decode(bytes.NewReader(data), FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return p, nil
}

// Decode reads a patch document. Values keep the type the document gives
// them: in JSON, 80 is an int and 80.0 a float.
func Decode(r io.Reader, format Format) (Patch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("weathercfg: reading patch: %w", err)
	}

	var raw map[string]map[string]map[string]any
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("weathercfg: decoding YAML patch: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("weathercfg: decoding JSON patch: %w", err)
		}
	}

	p := make(Patch, len(raw))
	for sid, weathers := range raw {
		p[sid] = make(map[string]Fields, len(weathers))
		for name, fields := range weathers {
			out := make(Fields, len(fields))
			for field, v := range fields {
				val, err := marshaler.Value(v)
				if err != nil {
					return nil, fmt.Errorf("weathercfg: patch %s.%s.%s: %w", sid, name, field, err)
				}
				out[field] = val
			}
			p[sid][name] = out
		}
	}
	return p, nil
}
