package dcflags

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
)

// Field describes one field of the target record type: its identifier, scalar
// type, optional default, and the flag and environment variable names derived
// from it. Fields are usually produced by reflection over a struct, but can
// be authored directly and assembled with NewSchema.
type Field struct {
	// Name is the field identifier in snake_case. Derived from the struct
	// field name unless overridden with the `name:` tag key.
	Name string
	// Type is the declared scalar type. Pointer-to-scalar marks the field
	// optional.
	Type reflect.Type
	// HasDefault reports whether the field declares a default. Boolean
	// fields always have one (false unless declared otherwise).
	HasDefault bool
	// Default is the raw string form of the declared default.
	Default string
	// Usage is extra help text shown after the type/env/default annotations.
	Usage string
	// EnvName is the derived environment variable name, e.g. "OUTPUT".
	EnvName string
	// FlagName is the derived flag name without leading dashes, e.g.
	// "workers" for --workers.
	FlagName string

	index        int // struct field index, -1 for hand-authored fields
	optional     bool
	elemType     reflect.Type // Type with any pointer stripped
	defaultValue reflect.Value
}

// Schema is the ordered, immutable set of fields derived from one record
// type. Build one with SchemaOf or NewSchema; field order follows declaration
// order and determines help enumeration, not resolution precedence.
type Schema struct {
	fields []Field
	byFlag map[string]int
	byEnv  map[string]int
	target reflect.Type // nil for hand-authored schemas
}

// Fields returns a copy of the schema's fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// SchemaOf builds a Schema by reflecting over the exported fields of a struct
// (or pointer to struct). Options affecting name derivation (WithEnvPrefix,
// WithUnderscoreToDash) are honored.
func SchemaOf(target any, opts ...Option) (*Schema, error) {
	p := New(opts...)
	return p.schemaOf(target)
}

// NewSchema assembles a Schema from hand-authored field descriptors,
// deriving any env or flag names left empty. It validates the same
// invariants as the reflection path.
func NewSchema(fields []Field, opts ...Option) (*Schema, error) {
	p := New(opts...)
	schema := &Schema{
		byFlag: make(map[string]int),
		byEnv:  make(map[string]int),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, configErr("", "field descriptor with empty name")
		}
		f.index = -1
		if err := p.finishField(schema, &f); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

func (p *Parser) schemaOf(target any) (*Schema, error) {
	if target == nil {
		return nil, &ConfigurationError{Err: errors.New("target cannot be nil")}
	}
	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &ConfigurationError{Err: errors.New("target must be a struct or pointer to struct")}
	}
	schema := &Schema{
		byFlag: make(map[string]int),
		byEnv:  make(map[string]int),
		target: t,
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, err := parseFieldTag(sf.Tag.Get("dcflags"))
		if err != nil {
			return nil, &ConfigurationError{Field: sf.Name, Err: err}
		}
		if tag.Skip {
			continue
		}
		f := Field{
			Name:       tag.Name,
			Type:       sf.Type,
			HasDefault: tag.HasDefault,
			Default:    tag.DefaultValue,
			Usage:      tag.Usage,
			EnvName:    tag.EnvName,
			FlagName:   tag.FlagName,
			index:      i,
		}
		if f.Name == "" {
			f.Name = snakeCase(sf.Name)
		}
		if err := p.finishField(schema, &f); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// finishField derives names, validates the type and default, and appends the
// field to the schema.
func (p *Parser) finishField(schema *Schema, f *Field) error {
	if f.Type == nil {
		return configErr(f.Name, "missing type")
	}
	f.elemType = f.Type
	if f.Type.Kind() == reflect.Pointer {
		f.optional = true
		f.elemType = f.Type.Elem()
	}
	if !supportedType(f.elemType) {
		if f.elemType.Kind() == reflect.Struct {
			return configErr(f.Name, "nested struct fields are not supported")
		}
		return configErr(f.Name, "unsupported type %s", typeName(f.Type))
	}
	if f.EnvName == "" {
		f.EnvName = envName(f.Name)
	}
	f.EnvName = p.envPrefix + f.EnvName
	if f.FlagName == "" {
		f.FlagName = f.Name
		if p.underscoreToDash {
			f.FlagName = strings.ReplaceAll(f.FlagName, "_", "-")
		}
	}
	if f.FlagName == "help" || f.FlagName == "h" {
		return configErr(f.Name, "flag name %q is reserved", f.FlagName)
	}

	// Booleans are never required: an absent flag simply means "not set".
	if f.elemType.Kind() == reflect.Bool && !f.HasDefault && !f.optional {
		f.HasDefault = true
		f.Default = "false"
	}
	if f.HasDefault {
		v, err := coerce(f.Default, f.elemType)
		if err != nil {
			return configErr(f.Name, "default %q: %v", f.Default, err)
		}
		f.defaultValue = v
	}

	if prev, ok := schema.byFlag[f.FlagName]; ok {
		return configErr(f.Name, "flag --%s collides with field %s", f.FlagName, schema.fields[prev].Name)
	}
	if prev, ok := schema.byEnv[f.EnvName]; ok {
		return configErr(f.Name, "environment variable %s collides with field %s", f.EnvName, schema.fields[prev].Name)
	}
	schema.byFlag[f.FlagName] = len(schema.fields)
	schema.byEnv[f.EnvName] = len(schema.fields)
	schema.fields = append(schema.fields, *f)
	return nil
}

// snakeCase converts a Go field name to its snake_case identifier:
// "Output" -> "output", "WorkersCount" -> "workers_count",
// "HTTPPort" -> "http_port".
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// envName uppercases a field name and replaces anything outside [A-Z0-9]
// with underscores. The mapping is documented as stable: consumers may rely
// on it without consulting generated help.
func envName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
