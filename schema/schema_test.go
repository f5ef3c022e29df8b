package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personType(t *testing.T) *Type {
	t.Helper()
	typ, err := NewType("Person",
		String("name").MinLen(1).Comment("display name"),
		Int("age").Min(0).Max(150),
		Enum("status", "active", "inactive").Default("active"),
		Bool("admin").Optional(),
	)
	require.NoError(t, err)
	return typ
}

func TestNewInstanceDefaults(t *testing.T) {
	p := personType(t).New()

	assert.Equal(t, "", p.GetString("name"))
	assert.Equal(t, int64(0), p.GetInt("age"))
	assert.Equal(t, "active", p.GetString("status"))
	assert.False(t, p.GetBool("admin"))
}

func TestNewTypeRejectsDuplicateFields(t *testing.T) {
	_, err := NewType("Bad", String("x"), Int("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field")
}

func TestNewTypeRejectsBuilderMisuse(t *testing.T) {
	_, err := NewType("Bad", Int("n").MinLen(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MinLen")

	_, err = NewType("Bad", String("s").Match("("))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern")

	_, err = NewType("Bad", Enum("e", "a", "b").Default("c"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enum")
}

func TestParsePopulates(t *testing.T) {
	p := personType(t).New()
	err := p.Parse(map[string]any{
		"name":   "Ada",
		"age":    float64(36), // as produced by encoding/json
		"status": "inactive",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.GetString("name"))
	assert.Equal(t, int64(36), p.GetInt("age"))
	assert.Equal(t, "inactive", p.GetString("status"))
	assert.False(t, p.GetBool("admin"), "absent optional field keeps its value")
}

func TestParseIsAtomic(t *testing.T) {
	p := personType(t).New()
	require.NoError(t, p.Parse(map[string]any{"name": "Ada", "age": 36}))

	err := p.Parse(map[string]any{"name": "", "age": 200})
	require.Error(t, err)

	// failed parse must not touch the instance
	assert.Equal(t, "Ada", p.GetString("name"))
	assert.Equal(t, int64(36), p.GetInt("age"))
}

func TestValidateReportsEveryViolation(t *testing.T) {
	res := personType(t).Validate(map[string]any{
		"name":   "",
		"age":    200,
		"status": "unknown",
	})
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 3)

	kinds := map[string]ErrorKind{}
	for _, fe := range res.Errors {
		kinds[fe.Path] = fe.Kind
	}
	assert.Equal(t, ErrMinLength, kinds["name"])
	assert.Equal(t, ErrMaximum, kinds["age"])
	assert.Equal(t, ErrEnum, kinds["status"])
}

func TestCheck(t *testing.T) {
	typ := personType(t)

	require.NoError(t, typ.Check(map[string]any{"name": "Ada", "age": 36}))

	err := typ.Check(map[string]any{"name": "", "age": -1})
	require.Error(t, err)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Person", verr.Type)
	assert.Len(t, verr.Errors, 2)
}

func TestValidateRequired(t *testing.T) {
	res := personType(t).Validate(map[string]any{"name": "Ada"})
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "age", res.Errors[0].Path)
	assert.Equal(t, ErrRequired, res.Errors[0].Kind)
}

func TestValidateTypeMismatch(t *testing.T) {
	res := personType(t).Validate(map[string]any{
		"name": 42,
		"age":  "old",
	})
	require.False(t, res.Valid)

	byPath := map[string]FieldError{}
	for _, fe := range res.Errors {
		byPath[fe.Path] = fe
	}
	assert.Equal(t, ErrType, byPath["name"].Kind)
	assert.Equal(t, ErrType, byPath["age"].Kind)
}

func TestValidateWholeNumbers(t *testing.T) {
	typ := MustType("T", Int("n"))
	res := typ.Validate(map[string]any{"n": 1.5})
	require.False(t, res.Valid)
	assert.Equal(t, ErrType, res.Errors[0].Kind)

	// 3.0 from a JSON decode is a valid int
	assert.True(t, typ.Validate(map[string]any{"n": 3.0}).Valid)
}

func TestNumericConstraints(t *testing.T) {
	typ := MustType("T",
		Float("a").ExclusiveMin(0).ExclusiveMax(1),
		Int("b").MultipleOf(5),
	)

	res := typ.Validate(map[string]any{"a": 0.0, "b": 7})
	require.False(t, res.Valid)
	kinds := map[string]ErrorKind{}
	for _, fe := range res.Errors {
		kinds[fe.Path] = fe.Kind
	}
	assert.Equal(t, ErrExclusiveMinimum, kinds["a"])
	assert.Equal(t, ErrMultipleOf, kinds["b"])

	res = typ.Validate(map[string]any{"a": 1.0, "b": 10})
	require.False(t, res.Valid)
	assert.Equal(t, ErrExclusiveMaximum, res.Errors[0].Kind)

	assert.True(t, typ.Validate(map[string]any{"a": 0.5, "b": 15}).Valid)
}

func TestLiteralField(t *testing.T) {
	typ := MustType("Event", Literal("kind", "message"), String("body"))

	inst := typ.New()
	assert.Equal(t, "message", inst.GetString("kind"), "literal is its own default")

	res := typ.Validate(map[string]any{"kind": "other", "body": "hi"})
	require.False(t, res.Valid)
	assert.Equal(t, ErrLiteral, res.Errors[0].Kind)

	assert.True(t, typ.Validate(map[string]any{"kind": "message", "body": "hi"}).Valid)
}

func TestLiteralNumericEquivalence(t *testing.T) {
	typ := MustType("V", Literal("version", 1))
	assert.True(t, typ.Validate(map[string]any{"version": 1.0}).Valid)
	assert.False(t, typ.Validate(map[string]any{"version": 2}).Valid)
}

func TestPatternConstraint(t *testing.T) {
	typ := MustType("T", String("email").Match(`^[^@\s]+@[^@\s]+$`).Format("email"))

	assert.True(t, typ.Validate(map[string]any{"email": "a@b.example"}).Valid)

	res := typ.Validate(map[string]any{"email": "nope"})
	require.False(t, res.Valid)
	assert.Equal(t, ErrPattern, res.Errors[0].Kind)
}

func TestNullField(t *testing.T) {
	typ := MustType("T", Null("nothing"))

	assert.True(t, typ.Validate(map[string]any{"nothing": nil}).Valid)

	res := typ.Validate(map[string]any{"nothing": "something"})
	require.False(t, res.Valid)
	assert.Equal(t, ErrType, res.Errors[0].Kind)
}

func TestParseNullOnOptionalKeepsValue(t *testing.T) {
	typ := MustType("T",
		String("name"),
		String("nick").Optional().Default("zed"),
	)

	inst := typ.New()
	require.NoError(t, inst.Parse(map[string]any{"name": "Ada", "nick": nil}))
	assert.Equal(t, "Ada", inst.GetString("name"))
	assert.Equal(t, "zed", inst.GetString("nick"))

	// A null field, by contrast, does store nil.
	nt := MustType("T", Null("nothing").Optional())
	ni := nt.New()
	require.NoError(t, ni.Parse(map[string]any{"nothing": nil}))
	v, ok := ni.Get("nothing")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestArrayValidationPaths(t *testing.T) {
	typ := MustType("T", Array("tags", String("tag").MinLen(1)))

	res := typ.Validate(map[string]any{"tags": []any{"ok", "", 3}})
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "tags[1]", res.Errors[0].Path)
	assert.Equal(t, ErrMinLength, res.Errors[0].Kind)
	assert.Equal(t, "tags[2]", res.Errors[1].Path)
	assert.Equal(t, ErrType, res.Errors[1].Kind)
}

func TestNestedObjectValidationPaths(t *testing.T) {
	addr := MustType("Address",
		String("city").MinLen(1),
		String("zip").Match(`^\d{5}$`),
	)
	typ := MustType("Person", String("name"), Object("address", addr))

	res := typ.Validate(map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "", "zip": "abc"},
	})
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "address.city", res.Errors[0].Path)
	assert.Equal(t, "address.zip", res.Errors[1].Path)
}

func TestNestedObjectParse(t *testing.T) {
	addr := MustType("Address", String("city"))
	typ := MustType("Person", String("name"), Object("address", addr))

	p := typ.New()
	require.NoError(t, p.Parse(map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London"},
	}))

	nested, ok := p.Object("address")
	require.True(t, ok)
	assert.Equal(t, "London", nested.GetString("city"))
}

func TestParseDeepCopiesInput(t *testing.T) {
	typ := MustType("T", Array("tags", String("tag")))
	in := map[string]any{"tags": []any{"a", "b"}}

	inst := typ.New()
	require.NoError(t, inst.Parse(in))

	in["tags"].([]any)[0] = "mutated"
	assert.Equal(t, "a", inst.GetSlice("tags")[0], "instance must not alias caller data")
}

func TestDefaultsAreNotShared(t *testing.T) {
	typ := MustType("T", Array("tags", String("tag")).Default([]any{"x"}))

	a := typ.New()
	b := typ.New()
	a.GetSlice("tags")[0] = "changed"

	assert.Equal(t, "x", b.GetSlice("tags")[0], "instances must not share default slices")
}

func TestSetAndGetUndeclared(t *testing.T) {
	p := personType(t).New()

	_, ok := p.Get("missing")
	assert.False(t, ok)
	assert.False(t, p.Set("missing", 1))

	assert.True(t, p.Set("name", "Grace"))
	assert.Equal(t, "Grace", p.GetString("name"))
}

func TestValuesSnapshot(t *testing.T) {
	addr := MustType("Address", String("city"))
	typ := MustType("Person", String("name"), Object("address", addr))

	p := typ.New()
	require.NoError(t, p.Parse(map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London"},
	}))

	vals := p.Values()
	assert.Equal(t, "Ada", vals["name"])
	assert.Equal(t, map[string]any{"city": "London"}, vals["address"])
}

func TestValidationErrorMessage(t *testing.T) {
	p := personType(t).New()
	err := p.Parse(map[string]any{"name": "", "age": -1})
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Person", ve.Type)
	assert.Contains(t, err.Error(), "validation error")
	assert.Contains(t, err.Error(), "name:")
}

func TestJSONSchemaDocument(t *testing.T) {
	out, err := personType(t).Stringify(false)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "https://json-schema.org/draft/2020-12/schema", doc["$schema"])
	assert.Equal(t, "Person", doc["title"])
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []any{"name", "age"}, doc["required"])

	props := doc["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, float64(1), name["minLength"])
	assert.Equal(t, "display name", name["description"])

	status := props["status"].(map[string]any)
	assert.Equal(t, []any{"active", "inactive"}, status["enum"])
	assert.Equal(t, "active", status["default"])
}

func TestJSONSchemaRequiredSkipsDefaulted(t *testing.T) {
	typ := MustType("P",
		String("name"),
		Enum("status", "a", "b").Default("a"),
	)

	// Validation accepts the defaulted field missing, so emission must not
	// demand it either.
	require.True(t, typ.Validate(map[string]any{"name": "x"}).Valid)
	assert.Equal(t, []string{"name"}, typ.Document().Required)
}

func TestJSONSchemaEmitsZeroDefaults(t *testing.T) {
	typ := MustType("P",
		Bool("admin").Default(false),
		Int("count").Default(0),
		String("note").Default(""),
	)

	out, err := typ.Stringify(false)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	props := doc["properties"].(map[string]any)
	assert.Equal(t, false, props["admin"].(map[string]any)["default"])
	assert.Equal(t, float64(0), props["count"].(map[string]any)["default"])
	assert.Equal(t, "", props["note"].(map[string]any)["default"])
}

func TestJSONSchemaPreservesFieldOrder(t *testing.T) {
	out, err := personType(t).Stringify(false)
	require.NoError(t, err)

	iName := strings.Index(out, `"name"`)
	iAge := strings.Index(out, `"age"`)
	iStatus := strings.Index(out, `"status"`)
	iAdmin := strings.Index(out, `"admin"`)
	assert.True(t, iName < iAge && iAge < iStatus && iStatus < iAdmin,
		"properties must keep declaration order: %s", out)
}

func TestJSONSchemaDeterministic(t *testing.T) {
	typ := personType(t)
	a, err := typ.Stringify(true)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		b, err := typ.Stringify(true)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestJSONSchemaNested(t *testing.T) {
	addr := MustType("Address", String("city"), String("zip").Optional())
	typ := MustType("Person",
		String("name"),
		Object("address", addr),
		Array("scores", Int("score").Min(0)),
		Literal("kind", "person"),
		Null("unused").Optional(),
	)

	out, err := typ.Stringify(false)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	props := doc["properties"].(map[string]any)

	address := props["address"].(map[string]any)
	assert.Equal(t, "object", address["type"])
	assert.Equal(t, []any{"city"}, address["required"])

	scores := props["scores"].(map[string]any)
	assert.Equal(t, "array", scores["type"])
	items := scores["items"].(map[string]any)
	assert.Equal(t, "integer", items["type"])
	assert.Equal(t, float64(0), items["minimum"])

	kind := props["kind"].(map[string]any)
	assert.Equal(t, "person", kind["const"])

	unused := props["unused"].(map[string]any)
	assert.Equal(t, "null", unused["type"])
}

func TestStringifyPretty(t *testing.T) {
	out, err := personType(t).Stringify(true)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"$schema\"")
}

func TestInstanceClone(t *testing.T) {
	addr := MustType("Address", String("city"))
	typ := MustType("Person", String("name"), Object("address", addr))

	p := typ.New()
	require.NoError(t, p.Parse(map[string]any{
		"name":    "Ada",
		"address": map[string]any{"city": "London"},
	}))

	c := p.Clone()
	nested, _ := c.Object("address")
	nested.Set("city", "Paris")

	orig, _ := p.Object("address")
	assert.Equal(t, "London", orig.GetString("city"))
}
