// Package schema provides declarative data schemas: ordered field
// descriptors with constraints, default-initialized instances, fail-soft
// validation that reports every violation at once, and deterministic JSON
// Schema (draft 2020-12) emission.
//
// A schema is declared once, usually at package level, and reused:
//
//	var person = schema.MustType("Person",
//		schema.String("name").MinLen(1),
//		schema.Int("age").Min(0).Max(150),
//		schema.Enum("status", "active", "inactive").Default("active"),
//	)
//
//	p := person.New()
//	if err := p.Parse(data); err != nil {
//		// err is a *schema.ValidationError listing every violation
//	}
//
// Parse is atomic: the instance is only written to when the whole input
// passes validation. Emitted JSON Schema documents preserve field
// declaration order, so output is stable across runs and suitable for
// structured-output constraints sent to model providers.
package schema
