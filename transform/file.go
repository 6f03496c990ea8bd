package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// File is the layout of the YAML configuration file. Absent keys leave the
// corresponding setting alone.
type File struct {
	IndentStep    *int     `json:"indentStep,omitempty"    yaml:"indentStep,omitempty"    jsonschema:"extra spaces before continuation lines of multi-line directives"`
	Derive        *bool    `json:"derive,omitempty"        yaml:"derive,omitempty"        jsonschema:"derive @min, @max, @range and @unit directives from comment text"`
	DocMarker     string   `json:"docMarker,omitempty"     yaml:"docMarker,omitempty"     jsonschema:"documentation directive marker, e.g. @doc"`
	ValueKey      string   `json:"valueKey,omitempty"      yaml:"valueKey,omitempty"      jsonschema:"name of the directive text argument"`
	Format        string   `json:"format,omitempty"        yaml:"format,omitempty"        jsonschema:"formatting parameter appended to directives"`
	GuardOpen     string   `json:"guardOpen,omitempty"     yaml:"guardOpen,omitempty"     jsonschema:"marker opening a transformed region"`
	GuardClose    string   `json:"guardClose,omitempty"    yaml:"guardClose,omitempty"    jsonschema:"marker closing a transformed region"`
	UnitSentinels []string `json:"unitSentinels,omitempty" yaml:"unitSentinels,omitempty" jsonschema:"units values that do not produce a @unit directive"`
}

var resolveSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	schema, err := Schema()
	if err != nil {
		return nil, err
	}

	return schema.Resolve(nil)
})

// Schema returns the JSON Schema of the configuration [File].
func Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring config schema: %w", err)
	}

	schema.Title = "idldoc configuration"

	return schema, nil
}

// ReadFile reads and parses the configuration file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// ParseFile validates data against [Schema] and decodes it. Empty data, or a
// document holding only comments, yields an empty [File].
func ParseFile(data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &File{}, nil
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// A document holding only comments.
	jsonData = bytes.TrimSpace(jsonData)
	if len(jsonData) == 0 || bytes.Equal(jsonData, []byte("null")) {
		return &File{}, nil
	}

	var instance any

	err = json.Unmarshal(jsonData, &instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	resolved, err := resolveSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err = resolved.Validate(instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var f File

	err = yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &f, nil
}
