package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

var (
	ErrType   = errors.New("doc: unexpected value type")
	ErrFormat = errors.New("doc: unknown document format")
)

// FormatForPath picks the document format from a file extension. Anything
// that is not yaml or toml is read as json, which is what RUBE exports.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Parse decodes a whole document. The root must be a mapping.
func Parse(data []byte, format Format) (Value, error) {
	var root any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&root); err != nil {
			return Value{}, fmt.Errorf("doc: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return Value{}, fmt.Errorf("doc: decode yaml: %w", err)
		}
	case FormatTOML:
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return Value{}, fmt.Errorf("doc: decode toml: %w", err)
		}
		root = table
	default:
		return Value{}, fmt.Errorf("%w: %v", ErrFormat, format)
	}

	v := Value{raw: normalize(root)}
	if !v.IsMap() {
		return Value{}, fmt.Errorf("%w: document root is %s, want mapping", ErrType, v.Kind())
	}
	return v, nil
}

// normalize rewrites yaml's map[any]any (produced for non-string keys) into
// map[string]any so every backend yields the same tree shape.
func normalize(x any) any {
	switch t := x.(type) {
	case map[string]any:
		for k, v := range t {
			t[k] = normalize(v)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[fmt.Sprint(k)] = normalize(v)
		}
		return out
	case []any:
		for i, v := range t {
			t[i] = normalize(v)
		}
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = normalize(v)
		}
		return out
	default:
		return x
	}
}
