package cli

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"reflect"
	"strings"

	"sigs.k8s.io/yaml"

	"object-mapper/primitive"
)

var ErrInvalidShape = errors.New("invalid shape")

// Shape describes a struct type assembled at runtime, the target of `objmap map`.
//
//	fields:
//	  - name: FirstName
//	  - name: Born
//	    type: time
//	  - name: Parent
//	    type: "*object"
//	    fields:
//	      - name: FirstName
type Shape struct {
	Fields []FieldShape `json:"fields"`
}

// FieldShape is one field of a Shape. Type is a scalar name (see
// primitive.TypeByName), "object", "any", or one of those behind "*", "[]"
// or "map[string]" prefixes; it defaults to string.
type FieldShape struct {
	Name   string       `json:"name"`
	Type   string       `json:"type,omitempty"`
	Key    string       `json:"key,omitempty"`
	Fields []FieldShape `json:"fields,omitempty"`
}

// LoadShape reads a YAML or JSON shape file.
func LoadShape(path string) (*Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shape %s: %w", path, err)
	}

	return ParseShape(data)
}

// ParseShape decodes a shape document.
func ParseShape(data []byte) (*Shape, error) {
	var s Shape
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidShape)
	}

	return &s, nil
}

// Type builds the struct type of the shape. A field key becomes its tagKey
// tag, so source documents are matched on it first.
func (s *Shape) Type(tagKey string) (reflect.Type, error) {
	return structOf(s.Fields, tagKey, "")
}

func structOf(fields []FieldShape, tagKey, path string) (reflect.Type, error) {
	seen := make(map[string]struct{}, len(fields))
	res := make([]reflect.StructField, 0, len(fields))

	for _, f := range fields {
		name := path + f.Name
		if !token.IsIdentifier(f.Name) || !token.IsExported(f.Name) {
			return nil, fmt.Errorf("%w: %q is not an exported identifier", ErrInvalidShape, name)
		}

		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidShape, name)
		}
		seen[f.Name] = struct{}{}

		typ, err := typeOf(f.Type, f.Fields, tagKey, name+".")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		res = append(res, reflect.StructField{Name: f.Name, Type: typ, Tag: fieldTag(f, tagKey)})
	}

	return reflect.StructOf(res), nil
}

func typeOf(expr string, nested []FieldShape, tagKey, path string) (reflect.Type, error) {
	expr = strings.TrimSpace(expr)

	switch {
	case expr == "":
		return reflect.TypeFor[string](), nil
	case strings.HasPrefix(expr, "*"):
		elem, err := typeOf(expr[1:], nested, tagKey, path)
		if err != nil {
			return nil, err
		}

		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(expr, "[]"):
		elem, err := typeOf(expr[2:], nested, tagKey, path)
		if err != nil {
			return nil, err
		}

		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(expr, "map[string]"):
		elem, err := typeOf(expr[len("map[string]"):], nested, tagKey, path)
		if err != nil {
			return nil, err
		}

		return reflect.MapOf(reflect.TypeFor[string](), elem), nil
	case expr == "object":
		if len(nested) == 0 {
			return nil, fmt.Errorf("%w: object without fields", ErrInvalidShape)
		}

		return structOf(nested, tagKey, path)
	case expr == "any":
		return reflect.TypeFor[any](), nil
	}

	typ, err := primitive.TypeByName(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}

	return typ, nil
}

func fieldTag(f FieldShape, tagKey string) reflect.StructTag {
	key := f.Key
	if key == "" {
		key = f.Name
	}

	if tagKey == "json" || f.Key == "" {
		return reflect.StructTag(fmt.Sprintf("json:%q", key))
	}

	return reflect.StructTag(fmt.Sprintf("%s:%q json:%q", tagKey, f.Key, key))
}
