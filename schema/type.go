package schema

import "fmt"

// Type is an immutable, ordered collection of field descriptors. Field order
// is the declaration order and drives both validation reports and JSON Schema
// emission, so output stays deterministic across runs.
type Type struct {
	name   string
	fields []*Field
	index  map[string]int
}

// NewType builds a schema type from the given field descriptors. It rejects
// empty or duplicate field names and surfaces any builder misuse recorded on
// the descriptors.
func NewType(name string, fields ...*Field) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("schema: type name must not be empty")
	}
	t := &Type{
		name:   name,
		fields: make([]*Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("schema: type %q: nil field descriptor", name)
		}
		if f.err != nil {
			return nil, f.err
		}
		if f.name == "" {
			return nil, fmt.Errorf("schema: type %q: field name must not be empty", name)
		}
		if _, dup := t.index[f.name]; dup {
			return nil, fmt.Errorf("schema: type %q: duplicate field %q", name, f.name)
		}
		if err := checkDefault(f); err != nil {
			return nil, err
		}
		t.index[f.name] = len(t.fields)
		t.fields = append(t.fields, f)
	}
	return t, nil
}

// MustType is like NewType but panics on error. Intended for package-level
// schema declarations.
func MustType(name string, fields ...*Field) *Type {
	t, err := NewType(name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// checkDefault verifies a declared default is acceptable for its field, so a
// fresh instance can never start out of spec.
func checkDefault(f *Field) error {
	if !f.hasDefault {
		return nil
	}
	switch f.kind {
	case KindEnum:
		s, ok := f.defaultValue.(string)
		if !ok || !containsString(f.values, s) {
			return fmt.Errorf("schema: field %q: default %v is not a declared enum value", f.name, f.defaultValue)
		}
	case KindLiteral:
		if !literalEqual(f.defaultValue, f.literal) {
			return fmt.Errorf("schema: field %q: default %v does not match literal %v", f.name, f.defaultValue, f.literal)
		}
	}
	return nil
}

// Name returns the type name, used as the JSON Schema title.
func (t *Type) Name() string { return t.name }

// Fields returns the field descriptors in declaration order. The returned
// slice must not be modified.
func (t *Type) Fields() []*Field { return t.fields }

// Field looks up a descriptor by name.
func (t *Type) Field(name string) (*Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.fields[i], true
}

// New creates an instance holding every field's default value. Defaults are
// deep-copied so instances never alias each other.
func (t *Type) New() *Instance {
	inst := &Instance{typ: t, values: make([]any, len(t.fields))}
	for i, f := range t.fields {
		inst.values[i] = f.initialValue()
	}
	return inst
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
