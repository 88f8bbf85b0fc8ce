package ltx

import (
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"xrf/xrerr"
)

// FieldKind is the value type a schema declares for a field, per
// spec §4.3: "integer, float, boolean, string, enum-of-literal, tuple,
// vector, section-reference".
type FieldKind int

const (
	KindInteger FieldKind = iota
	KindFloat
	KindBoolean
	KindString
	KindEnum
	KindTuple
	KindVector
	KindSectionRef
)

// FieldRule is one field's schema declaration.
type FieldRule struct {
	Kind       FieldKind
	Optional   bool
	Literals   []string // populated for KindEnum
	TupleArity int      // populated for KindTuple
}

// Schema is a compiled field-rule set for one section kind, keyed by
// the schema section's own name (the value a data section's "$schema"
// key references).
type Schema struct {
	Name   string
	Strict bool
	Fields map[string]FieldRule
}

// wildcardField lets a schema declare "any other field is permitted"
// without enumerating it, per spec §4.3's "*" wildcard.
const wildcardField = "*"

// schemaRefField is the per-section key naming which schema a data
// section must validate against.
const schemaRefField = "$schema"

const strictField = "$strict"

// CompileSchemas compiles every section of doc into a Schema keyed by
// section name. Meta keys ($strict) are consumed; every other key is
// treated as a field declaration. path is used only for error messages.
func CompileSchemas(doc *Document, path string) (map[string]*Schema, error) {
	out := make(map[string]*Schema, len(doc.order))
	var errs error

	for _, name := range doc.order {
		if name == generalSection {
			continue
		}
		sec := doc.sections[name]
		schema := &Schema{Name: name, Fields: make(map[string]FieldRule)}

		if v, ok := sec.Get(strictField); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = multierr.Append(errs, xrerr.SchemaError(path, name, strictField, "not a boolean: "+v))
				continue
			}
			schema.Strict = b
		}

		for _, key := range sec.keys {
			if key == strictField {
				continue
			}
			value, _ := sec.Get(key)
			rule, err := parseFieldRule(value)
			if err != nil {
				errs = multierr.Append(errs, xrerr.SchemaError(path, name, key, err.Error()))
				continue
			}
			schema.Fields[key] = rule
		}
		out[name] = schema
	}
	return out, errs
}

func parseFieldRule(value string) (FieldRule, error) {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	head := parts[0]
	rule := FieldRule{}

	for _, tok := range parts[1:] {
		if tok == "optional" {
			rule.Optional = true
		}
	}

	switch {
	case head == "integer":
		rule.Kind = KindInteger
	case head == "float":
		rule.Kind = KindFloat
	case head == "boolean":
		rule.Kind = KindBoolean
	case head == "string":
		rule.Kind = KindString
	case head == "vector":
		rule.Kind = KindVector
	case head == "section_ref":
		rule.Kind = KindSectionRef
	case strings.HasPrefix(head, "tuple:"):
		rule.Kind = KindTuple
		arity, err := strconv.Atoi(strings.TrimPrefix(head, "tuple:"))
		if err != nil {
			return rule, xrerr.New(xrerr.SchemaViolation, "malformed tuple arity: "+head)
		}
		rule.TupleArity = arity
	case strings.HasPrefix(head, "enum:"):
		rule.Kind = KindEnum
		for _, lit := range strings.Split(strings.TrimPrefix(head, "enum:"), "|") {
			rule.Literals = append(rule.Literals, strings.TrimSpace(lit))
		}
	default:
		return rule, xrerr.New(xrerr.SchemaViolation, "unknown field kind: "+head)
	}
	return rule, nil
}

// Validate checks every non-general section of doc against schemas,
// keyed by each section's "$schema" field. Every violation found is
// collected (via multierr) rather than stopping at the first; path is
// used only for error messages.
func Validate(doc *Document, schemas map[string]*Schema, path string) error {
	var errs error
	for _, name := range doc.order {
		if name == generalSection {
			continue
		}
		sec := doc.sections[name]
		schemaName, ok := sec.Get(schemaRefField)
		if !ok {
			continue
		}
		schema, ok := schemas[schemaName]
		if !ok {
			errs = multierr.Append(errs, xrerr.SchemaError(path, name, wildcardField,
				"required schema '"+schemaName+"' definition not found"))
			continue
		}
		errs = multierr.Append(errs, validateSection(path, doc, sec, schema))
	}
	return errs
}

func validateSection(path string, doc *Document, sec *Section, schema *Schema) error {
	var errs error
	_, hasWildcard := schema.Fields[wildcardField]

	for _, key := range sec.keys {
		if key == schemaRefField {
			continue
		}
		rule, ok := schema.Fields[key]
		if !ok {
			if schema.Strict && !hasWildcard {
				errs = multierr.Append(errs, xrerr.SchemaError(path, sec.Name, key, "unknown field"))
			}
			continue
		}
		value, _ := sec.Get(key)
		if err := checkValue(doc, rule, value); err != nil {
			errs = multierr.Append(errs, xrerr.SchemaError(path, sec.Name, key, err.Error()))
		}
	}

	if schema.Strict {
		for field, rule := range schema.Fields {
			if field == wildcardField || rule.Optional {
				continue
			}
			if !sec.Has(field) {
				errs = multierr.Append(errs, xrerr.SchemaError(path, sec.Name, field, "required field was not provided"))
			}
		}
	}
	return errs
}

func checkValue(doc *Document, rule FieldRule, value string) error {
	switch rule.Kind {
	case KindInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return xrerr.New(xrerr.SchemaViolation, "not an integer: "+value)
		}
	case KindFloat:
		if _, err := strconv.ParseFloat(value, 32); err != nil {
			return xrerr.New(xrerr.SchemaViolation, "not a float: "+value)
		}
	case KindBoolean:
		if value != "0" && value != "1" && value != "true" && value != "false" {
			return xrerr.New(xrerr.SchemaViolation, "not a boolean: "+value)
		}
	case KindVector:
		parts := strings.Split(value, ",")
		if len(parts) != 3 {
			return xrerr.New(xrerr.SchemaViolation, "vector requires 3 components: "+value)
		}
		for _, p := range parts {
			if _, err := strconv.ParseFloat(strings.TrimSpace(p), 32); err != nil {
				return xrerr.New(xrerr.SchemaViolation, "vector component not a float: "+p)
			}
		}
	case KindTuple:
		parts := strings.Split(value, ",")
		if len(parts) != rule.TupleArity {
			return xrerr.New(xrerr.SchemaViolation, "tuple arity mismatch: "+value)
		}
	case KindEnum:
		for _, lit := range rule.Literals {
			if value == lit {
				return nil
			}
		}
		return xrerr.New(xrerr.SchemaViolation, "not one of the allowed literals: "+value)
	case KindSectionRef:
		if _, ok := doc.Section(value); !ok {
			return xrerr.New(xrerr.SchemaViolation, "references unknown section: "+value)
		}
	case KindString:
		// any string accepted
	}
	return nil
}
