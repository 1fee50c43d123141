// Package loader reads event-API specification documents from disk. YAML is
// the native format; JSON works too since YAML is a superset of it.
package loader

import (
	"fmt"
	"os"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eventline-labs/eventc/pkg/spec"
)

// LoadFile reads and decodes the specification document at path.
func LoadFile(path string) (*spec.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("specification file: %w", err)
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse specification %s: %w", path, err)
	}
	return decode(k)
}

// Parse decodes a specification document from raw YAML or JSON bytes.
func Parse(raw []byte) (*spec.Document, error) {
	m, err := yaml.Parser().Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse specification: %w", err)
	}
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, fmt.Errorf("load specification: %w", err)
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (*spec.Document, error) {
	var doc spec.Document
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook:       decodeSchemaRef,
			Result:           &doc,
		},
	}
	if err := k.UnmarshalWithConf("", &doc, conf); err != nil {
		return nil, fmt.Errorf("decode specification: %w", err)
	}
	return &doc, nil
}

var schemaRefType = reflect.TypeOf(spec.SchemaRef{})

// decodeSchemaRef decodes the payload/headers union: a plain string is a
// reference to a component schema by name, a mapping is an inline schema, and
// an absent field stays the zero (missing) ref.
func decodeSchemaRef(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != schemaRefType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return spec.ByName(v), nil
	case map[string]any:
		var inline spec.SchemaSpec
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "koanf",
			WeaklyTypedInput: true,
			Result:           &inline,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(v); err != nil {
			return nil, fmt.Errorf("inline schema: %w", err)
		}
		return spec.InlineRef(&inline), nil
	default:
		return data, nil
	}
}
