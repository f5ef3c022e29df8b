package schema

// Instance is a concrete value of a Type: one slot per declared field,
// initialized from defaults and repopulated by Parse. Access goes through
// named getters rather than raw maps so undeclared fields are impossible.
type Instance struct {
	typ    *Type
	values []any
}

// Type returns the schema type this instance was created from.
func (i *Instance) Type() *Type { return i.typ }

// Get returns the current value of a field. The second result is false when
// the field is not declared on the type.
func (i *Instance) Get(name string) (any, bool) {
	idx, ok := i.typ.index[name]
	if !ok {
		return nil, false
	}
	return i.values[idx], true
}

// Set overwrites a field's value without validation. It returns false when
// the field is not declared. Callers that need guarantees should go through
// Parse instead.
func (i *Instance) Set(name string, v any) bool {
	idx, ok := i.typ.index[name]
	if !ok {
		return false
	}
	i.values[idx] = v
	return true
}

// GetString returns the field's value as a string, or "" when the field is
// undeclared or holds a different type.
func (i *Instance) GetString(name string) string {
	v, _ := i.Get(name)
	s, _ := v.(string)
	return s
}

// GetInt returns the field's value as an int64, coercing other numeric
// representations. It returns 0 when the field is undeclared or non-numeric.
func (i *Instance) GetInt(name string) int64 {
	v, _ := i.Get(name)
	n, _, ok := intValue(v)
	if !ok {
		return 0
	}
	return n
}

// GetFloat returns the field's value as a float64, or 0 when the field is
// undeclared or non-numeric.
func (i *Instance) GetFloat(name string) float64 {
	v, _ := i.Get(name)
	f, ok := floatValue(v)
	if !ok {
		return 0
	}
	return f
}

// GetBool returns the field's value as a bool, or false when the field is
// undeclared or not boolean.
func (i *Instance) GetBool(name string) bool {
	v, _ := i.Get(name)
	b, _ := v.(bool)
	return b
}

// GetSlice returns the field's value as a []any, or nil when the field is
// undeclared or not a list.
func (i *Instance) GetSlice(name string) []any {
	v, _ := i.Get(name)
	s, _ := v.([]any)
	return s
}

// Object returns the nested instance stored in an object field.
func (i *Instance) Object(name string) (*Instance, bool) {
	v, ok := i.Get(name)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Instance)
	return nested, ok
}

// Clone returns a deep copy of the instance. Nested instances and list
// values are copied, so mutating the clone never affects the original.
func (i *Instance) Clone() *Instance {
	out := &Instance{typ: i.typ, values: make([]any, len(i.values))}
	for idx, v := range i.values {
		out.values[idx] = deepCopyValue(v)
	}
	return out
}

// Values returns a snapshot of the instance as a plain map. Nested instances
// are rendered recursively, so the result is suitable for JSON encoding.
func (i *Instance) Values() map[string]any {
	out := make(map[string]any, len(i.typ.fields))
	for idx, f := range i.typ.fields {
		out[f.name] = exportValue(i.values[idx])
	}
	return out
}

func exportValue(v any) any {
	switch x := v.(type) {
	case *Instance:
		return x.Values()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = exportValue(e)
		}
		return out
	default:
		return v
	}
}

// Parse validates data against the instance's type and, only if every check
// passes, populates the instance from it. On failure the instance is left
// untouched and the returned error is a *ValidationError describing every
// violation found.
func (i *Instance) Parse(data map[string]any) error {
	if err := i.typ.Check(data); err != nil {
		return err
	}
	i.populate(data)
	return nil
}

// populate assumes data already validated. Absent optional fields keep their
// current value; present fields are normalized (ints to int64, floats to
// float64) and deep-copied before storage.
func (i *Instance) populate(data map[string]any) {
	for idx, f := range i.typ.fields {
		v, present := data[f.name]
		if !present {
			continue
		}
		if v == nil {
			// Only null fields store nil. An explicit null on an optional
			// field is tolerated by the validator but keeps the prior value.
			if f.kind == KindNull {
				i.values[idx] = nil
			}
			continue
		}
		i.values[idx] = convertValue(f, v)
	}
}

func convertValue(f *Field, v any) any {
	switch f.kind {
	case KindInt:
		n, _, _ := intValue(v)
		return n
	case KindFloat:
		fv, _ := floatValue(v)
		return fv
	case KindArray:
		items, _ := v.([]any)
		out := make([]any, len(items))
		for idx, e := range items {
			out[idx] = convertValue(f.items, e)
		}
		return out
	case KindObject:
		m, _ := v.(map[string]any)
		nested := f.object.New()
		nested.populate(m)
		return nested
	default:
		return deepCopyValue(v)
	}
}
