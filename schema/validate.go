package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// ErrorKind identifies which constraint a field value violated.
type ErrorKind string

const (
	ErrRequired         ErrorKind = "required"
	ErrType             ErrorKind = "type"
	ErrMinimum          ErrorKind = "minimum"
	ErrMaximum          ErrorKind = "maximum"
	ErrExclusiveMinimum ErrorKind = "exclusive_minimum"
	ErrExclusiveMaximum ErrorKind = "exclusive_maximum"
	ErrMultipleOf       ErrorKind = "multiple_of"
	ErrMinLength        ErrorKind = "min_length"
	ErrMaxLength        ErrorKind = "max_length"
	ErrPattern          ErrorKind = "pattern"
	ErrEnum             ErrorKind = "enum"
	ErrLiteral          ErrorKind = "literal"
)

// FieldError is a single violation found during validation. Path locates the
// offending value using dotted segments for objects and bracketed indexes for
// list elements, e.g. "address.tags[2]".
type FieldError struct {
	Path    string
	Kind    ErrorKind
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Result aggregates every violation found in one validation pass. Validation
// never stops at the first error; callers get the complete picture at once.
type Result struct {
	Valid  bool
	Errors []FieldError
}

// Validate checks data against the type without mutating anything. Every
// field is checked independently, so one bad field never masks another.
func (t *Type) Validate(data map[string]any) *Result {
	var errs []FieldError
	t.validateInto(data, "", &errs)
	return &Result{Valid: len(errs) == 0, Errors: errs}
}

// Check is the error-returning form of Validate. It returns nil when data is
// valid and a *ValidationError carrying the full violation list otherwise.
func (t *Type) Check(data map[string]any) error {
	res := t.Validate(data)
	if res.Valid {
		return nil
	}
	return &ValidationError{Type: t.name, Errors: res.Errors}
}

func (t *Type) validateInto(data map[string]any, prefix string, errs *[]FieldError) {
	for _, f := range t.fields {
		path := f.name
		if prefix != "" {
			path = prefix + "." + f.name
		}
		v, present := data[f.name]
		if !present {
			if !f.optional && !f.hasDefault {
				addError(errs, path, ErrRequired, "value is required")
			}
			continue
		}
		validateValue(f, v, path, errs)
	}
}

func validateValue(f *Field, v any, path string, errs *[]FieldError) {
	if v == nil {
		if f.kind == KindNull || f.optional {
			return
		}
		addError(errs, path, ErrType, fmt.Sprintf("expected %s, got null", f.kind))
		return
	}
	switch f.kind {
	case KindBool:
		if _, ok := v.(bool); !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected bool, got %T", v))
		}
	case KindInt:
		n, whole, ok := intValue(v)
		if !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected int, got %T", v))
			return
		}
		if !whole {
			addError(errs, path, ErrType, "expected a whole number")
			return
		}
		validateNumber(f, float64(n), path, errs)
	case KindFloat:
		fv, ok := floatValue(v)
		if !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected number, got %T", v))
			return
		}
		if math.IsNaN(fv) || math.IsInf(fv, 0) {
			addError(errs, path, ErrType, "expected a finite number")
			return
		}
		validateNumber(f, fv, path, errs)
	case KindString:
		s, ok := v.(string)
		if !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected string, got %T", v))
			return
		}
		validateString(f, s, path, errs)
	case KindLiteral:
		if !literalEqual(v, f.literal) {
			addError(errs, path, ErrLiteral, fmt.Sprintf("expected literal %v", f.literal))
		}
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected string, got %T", v))
			return
		}
		if !containsString(f.values, s) {
			addError(errs, path, ErrEnum, fmt.Sprintf("value %q is not one of %v", s, f.values))
		}
	case KindNull:
		addError(errs, path, ErrType, "expected null")
	case KindArray:
		items, ok := v.([]any)
		if !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected array, got %T", v))
			return
		}
		for idx, e := range items {
			validateValue(f.items, e, fmt.Sprintf("%s[%d]", path, idx), errs)
		}
	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			addError(errs, path, ErrType, fmt.Sprintf("expected object, got %T", v))
			return
		}
		f.object.validateInto(m, path, errs)
	}
}

func validateNumber(f *Field, v float64, path string, errs *[]FieldError) {
	if f.min != nil && v < *f.min {
		addError(errs, path, ErrMinimum, fmt.Sprintf("value %v is below minimum %v", v, *f.min))
	}
	if f.max != nil && v > *f.max {
		addError(errs, path, ErrMaximum, fmt.Sprintf("value %v is above maximum %v", v, *f.max))
	}
	if f.exclMin != nil && v <= *f.exclMin {
		addError(errs, path, ErrExclusiveMinimum, fmt.Sprintf("value %v must be greater than %v", v, *f.exclMin))
	}
	if f.exclMax != nil && v >= *f.exclMax {
		addError(errs, path, ErrExclusiveMaximum, fmt.Sprintf("value %v must be less than %v", v, *f.exclMax))
	}
	if f.multipleOf != nil {
		q := v / *f.multipleOf
		if q != math.Trunc(q) {
			addError(errs, path, ErrMultipleOf, fmt.Sprintf("value %v is not a multiple of %v", v, *f.multipleOf))
		}
	}
}

func validateString(f *Field, s string, path string, errs *[]FieldError) {
	if f.minLen != nil && len(s) < *f.minLen {
		addError(errs, path, ErrMinLength, fmt.Sprintf("length %d is below minimum %d", len(s), *f.minLen))
	}
	if f.maxLen != nil && len(s) > *f.maxLen {
		addError(errs, path, ErrMaxLength, fmt.Sprintf("length %d is above maximum %d", len(s), *f.maxLen))
	}
	if f.patternRe != nil && !f.patternRe.MatchString(s) {
		addError(errs, path, ErrPattern, fmt.Sprintf("value does not match pattern %q", f.pattern))
	}
}

func addError(errs *[]FieldError, path string, kind ErrorKind, msg string) {
	*errs = append(*errs, FieldError{Path: path, Kind: kind, Message: msg})
}

// intValue coerces the numeric representations produced by JSON decoding and
// by Go callers into an int64. The second result reports whether the value
// was a whole number.
func intValue(v any) (int64, bool, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true, true
	case int32:
		return int64(x), true, true
	case int64:
		return x, true, true
	case float64:
		if x == math.Trunc(x) {
			return int64(x), true, true
		}
		return 0, false, true
	case float32:
		f := float64(x)
		if f == math.Trunc(f) {
			return int64(f), true, true
		}
		return 0, false, true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true, true
		}
		if f, err := x.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true, true
		}
		return 0, false, true
	default:
		return 0, false, false
	}
}

func floatValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// literalEqual compares a candidate against a declared literal. Numeric
// literals compare by value so 1 and 1.0 are interchangeable.
func literalEqual(v, lit any) bool {
	if vf, ok := floatValue(v); ok {
		lf, ok2 := floatValue(lit)
		return ok2 && vf == lf
	}
	return v == lit
}
