package schema

import (
	"fmt"
	"regexp"
)

// Kind is the closed set of field descriptor kinds. Validation, population,
// and JSON Schema emission each switch exhaustively over it.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindLiteral
	KindEnum
	KindNull
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindLiteral:
		return "literal"
	case KindEnum:
		return "enum"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Field is a single field descriptor: kind tag, default value, and the
// constraint set enforced during Validate. Constraints are stored at build
// time and only checked when data is validated.
//
// Field values are configured fluently:
//
//	schema.String("name").MinLen(1).Comment("display name")
//	schema.Int("age").Min(0).Optional()
//	schema.Enum("status", "active", "inactive").Default("active")
type Field struct {
	name string
	kind Kind

	desc     string
	optional bool

	hasDefault   bool
	defaultValue any

	// numeric constraints
	min, max           *float64
	exclMin, exclMax   *float64
	multipleOf         *float64

	// string constraints
	minLen, maxLen *int
	pattern        string
	patternRe      *regexp.Regexp
	format         string

	literal any
	values  []string
	items   *Field
	object  *Type

	// err records the first misuse of the builder; surfaced by NewType.
	err error
}

func newField(name string, kind Kind) *Field {
	return &Field{name: name, kind: kind}
}

// Bool declares a boolean field. Its zero value is false.
func Bool(name string) *Field { return newField(name, KindBool) }

// Int declares a whole-number field. Its zero value is 0.
func Int(name string) *Field { return newField(name, KindInt) }

// Float declares a finite-number field. Its zero value is 0.
func Float(name string) *Field { return newField(name, KindFloat) }

// String declares a text field. Its zero value is "".
func String(name string) *Field { return newField(name, KindString) }

// Literal declares a field that must equal the given constant. Its default
// value is the constant itself.
func Literal(name string, value any) *Field {
	f := newField(name, KindLiteral)
	f.literal = value
	return f
}

// Enum declares a field restricted to the given values. Its zero value is the
// first declared value.
func Enum(name string, values ...string) *Field {
	f := newField(name, KindEnum)
	if len(values) == 0 {
		f.fail("enum %q requires at least one value", name)
	}
	f.values = append([]string(nil), values...)
	return f
}

// Null declares a field whose value is always null.
func Null(name string) *Field { return newField(name, KindNull) }

// Array declares a homogeneous list field. items describes each element and
// may itself be an Object field for arrays of nested schemas. Its zero value
// is an empty list.
func Array(name string, items *Field) *Field {
	f := newField(name, KindArray)
	if items == nil {
		f.fail("array %q requires an items descriptor", name)
		return f
	}
	if items.err != nil {
		f.err = items.err
	}
	f.items = items
	return f
}

// Object declares a nested schema field. Its zero value is a fresh default
// instance of typ.
func Object(name string, typ *Type) *Field {
	f := newField(name, KindObject)
	if typ == nil {
		f.fail("object %q requires a schema type", name)
		return f
	}
	f.object = typ
	return f
}

// Name returns the declared field name.
func (f *Field) Name() string { return f.name }

// Kind returns the descriptor kind. It is immutable after creation.
func (f *Field) Kind() Kind { return f.kind }

// Comment attaches a human-readable description, emitted as JSON Schema
// "description".
func (f *Field) Comment(desc string) *Field {
	f.desc = desc
	return f
}

// Optional marks the field as not required in input data.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// Default sets the value a fresh instance starts with. Optional fields
// without a Default start at their kind's zero value.
func (f *Field) Default(v any) *Field {
	if f.kind == KindNull && v != nil {
		f.fail("null field %q cannot default to a non-null value", f.name)
		return f
	}
	f.hasDefault = true
	f.defaultValue = v
	return f
}

// Min sets the inclusive numeric minimum.
func (f *Field) Min(v float64) *Field {
	f.requireNumeric("Min")
	f.min = &v
	return f
}

// Max sets the inclusive numeric maximum.
func (f *Field) Max(v float64) *Field {
	f.requireNumeric("Max")
	f.max = &v
	return f
}

// ExclusiveMin sets the exclusive numeric minimum.
func (f *Field) ExclusiveMin(v float64) *Field {
	f.requireNumeric("ExclusiveMin")
	f.exclMin = &v
	return f
}

// ExclusiveMax sets the exclusive numeric maximum.
func (f *Field) ExclusiveMax(v float64) *Field {
	f.requireNumeric("ExclusiveMax")
	f.exclMax = &v
	return f
}

// MultipleOf requires the value to be a multiple of v.
func (f *Field) MultipleOf(v float64) *Field {
	f.requireNumeric("MultipleOf")
	if v <= 0 {
		f.fail("field %q: MultipleOf requires a positive factor", f.name)
		return f
	}
	f.multipleOf = &v
	return f
}

// MinLen sets the minimum string length in bytes.
func (f *Field) MinLen(n int) *Field {
	f.requireString("MinLen")
	f.minLen = &n
	return f
}

// MaxLen sets the maximum string length in bytes.
func (f *Field) MaxLen(n int) *Field {
	f.requireString("MaxLen")
	f.maxLen = &n
	return f
}

// Match requires string values to match the given regular expression.
func (f *Field) Match(pattern string) *Field {
	f.requireString("Match")
	re, err := regexp.Compile(pattern)
	if err != nil {
		f.fail("field %q: invalid pattern: %v", f.name, err)
		return f
	}
	f.pattern = pattern
	f.patternRe = re
	return f
}

// Format attaches a JSON Schema format annotation (e.g. "email"). It is
// emitted but not enforced during validation.
func (f *Field) Format(format string) *Field {
	f.requireString("Format")
	f.format = format
	return f
}

func (f *Field) requireNumeric(op string) {
	if f.kind != KindInt && f.kind != KindFloat {
		f.fail("field %q: %s applies to numeric fields, not %s", f.name, op, f.kind)
	}
}

func (f *Field) requireString(op string) {
	if f.kind != KindString {
		f.fail("field %q: %s applies to string fields, not %s", f.name, op, f.kind)
	}
}

func (f *Field) fail(format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf("schema: "+format, args...)
	}
}

// zeroValue returns the canonical empty value for the field's kind.
func (f *Field) zeroValue() any {
	switch f.kind {
	case KindBool:
		return false
	case KindInt:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindString:
		return ""
	case KindLiteral:
		return f.literal
	case KindEnum:
		if len(f.values) > 0 {
			return f.values[0]
		}
		return ""
	case KindNull:
		return nil
	case KindArray:
		return []any{}
	case KindObject:
		return f.object.New()
	default:
		return nil
	}
}

// initialValue resolves the starting value for a fresh instance:
// explicit default first, zero value otherwise. Defaults are copied so
// instances never share mutable state.
func (f *Field) initialValue() any {
	if !f.hasDefault {
		return f.zeroValue()
	}
	return deepCopyValue(f.defaultValue)
}

func deepCopyValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopyValue(e)
		}
		return out
	case *Instance:
		return x.Clone()
	default:
		return v
	}
}
