package schema

import (
	"bytes"
	"encoding/json"
)

const schemaDialect = "https://json-schema.org/draft/2020-12/schema"

// Document is the JSON Schema rendering of a Type. Properties preserve field
// declaration order, so two emissions of the same type are byte-identical.
type Document struct {
	Schema     string       `json:"$schema"`
	Title      string       `json:"title,omitempty"`
	Type       string       `json:"type"`
	Properties propertyList `json:"properties"`
	Required   []string     `json:"required,omitempty"`
}

type fieldSchema struct {
	Type             string       `json:"type,omitempty"`
	Description      string       `json:"description,omitempty"`
	Const            any          `json:"const,omitempty"`
	Enum             []string     `json:"enum,omitempty"`
	Default          any          `json:"default,omitempty"`
	Minimum          *float64     `json:"minimum,omitempty"`
	Maximum          *float64     `json:"maximum,omitempty"`
	ExclusiveMinimum *float64     `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64     `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64     `json:"multipleOf,omitempty"`
	MinLength        *int         `json:"minLength,omitempty"`
	MaxLength        *int         `json:"maxLength,omitempty"`
	Pattern          string       `json:"pattern,omitempty"`
	Format           string       `json:"format,omitempty"`
	Items            *fieldSchema `json:"items,omitempty"`
	Properties       propertyList `json:"properties,omitempty"`
	Required         []string     `json:"required,omitempty"`
}

type property struct {
	name   string
	schema *fieldSchema
}

// propertyList marshals as a JSON object whose keys appear in declaration
// order. encoding/json has no ordered map, so the object is built by hand.
type propertyList []property

func (p propertyList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(prop.schema)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document renders the type as a draft 2020-12 JSON Schema document.
func (t *Type) Document() *Document {
	props, required := emitFields(t)
	return &Document{
		Schema:     schemaDialect,
		Title:      t.name,
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Stringify renders the type's JSON Schema as a string. Pretty output uses two-space
// indentation; compact output has no insignificant whitespace.
func (t *Type) Stringify(pretty bool) (string, error) {
	doc := t.Document()
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSONSchema renders the schema of the instance's type. Instance values do
// not influence the emitted document.
func (i *Instance) JSONSchema() *Document { return i.typ.Document() }

func emitFields(t *Type) (propertyList, []string) {
	props := make(propertyList, 0, len(t.fields))
	var required []string
	for _, f := range t.fields {
		props = append(props, property{name: f.name, schema: emitField(f)})
		// Mirrors the validator: a defaulted field is never required.
		if !f.optional && !f.hasDefault {
			required = append(required, f.name)
		}
	}
	return props, required
}

func emitField(f *Field) *fieldSchema {
	s := &fieldSchema{Description: f.desc}
	if f.hasDefault {
		s.Default = exportValue(f.defaultValue)
	}
	switch f.kind {
	case KindBool:
		s.Type = "boolean"
	case KindInt:
		s.Type = "integer"
		emitNumeric(f, s)
	case KindFloat:
		s.Type = "number"
		emitNumeric(f, s)
	case KindString:
		s.Type = "string"
		s.MinLength = f.minLen
		s.MaxLength = f.maxLen
		s.Pattern = f.pattern
		s.Format = f.format
	case KindLiteral:
		s.Const = f.literal
	case KindEnum:
		s.Type = "string"
		s.Enum = f.values
	case KindNull:
		s.Type = "null"
	case KindArray:
		s.Type = "array"
		s.Items = emitField(f.items)
	case KindObject:
		s.Type = "object"
		s.Properties, s.Required = emitFields(f.object)
	}
	return s
}

func emitNumeric(f *Field, s *fieldSchema) {
	s.Minimum = f.min
	s.Maximum = f.max
	s.ExclusiveMinimum = f.exclMin
	s.ExclusiveMaximum = f.exclMax
	s.MultipleOf = f.multipleOf
}
