package dcflags

import (
	"reflect"
	"strings"
)

// ResolvedValue is the outcome of resolving a single field: the raw source
// string (empty for bare boolean flags and defaults), the coerced value, and
// where it came from.
type ResolvedValue struct {
	Field      Field
	Raw        string
	Value      any
	Provenance Provenance

	value reflect.Value
}

// resolveAll resolves every schema field against the scanned command-line
// values and the environment, in schema order. Precedence per field is
// flag > env > default; one field resolving from the command line does not
// stop another from resolving via environment. All violations found during
// the pass (unrecognized tokens, missing required fields, values that fail
// to coerce) are collected into a single UsageError.
func (p *Parser) resolveAll(schema *Schema, scan scanResult) ([]ResolvedValue, *UsageError) {
	// A syntax error is forgiven when a later occurrence of the same flag
	// supplied a value, consistent with later-occurrence-wins.
	var syntax []ValueError
	for _, ve := range scan.syntax {
		if _, ok := scan.values[strings.TrimPrefix(ve.Argument, "--")]; ok {
			continue
		}
		syntax = append(syntax, ve)
	}
	usageErr := &UsageError{
		Program:      p.programName(),
		Unrecognized: scan.unrecognized,
		Invalid:      syntax,
		Status:       1,
	}
	if len(scan.unrecognized) > 0 {
		usageErr.Status = 2
	}

	resolved := make([]ResolvedValue, 0, len(schema.fields))
	for _, field := range schema.fields {
		rv := ResolvedValue{Field: field, Provenance: ProvenanceUnset}

		if arg, ok := scan.values[field.FlagName]; ok {
			rv.Provenance = ProvenanceFlag
			rv.Raw = arg.raw
			if !arg.explicit {
				// Bare boolean flag: presence alone means true.
				rv.value = reflect.ValueOf(true).Convert(field.elemType)
			} else {
				v, err := coerce(arg.raw, field.elemType)
				if err != nil {
					usageErr.Invalid = append(usageErr.Invalid, ValueError{
						Argument: "--" + field.FlagName,
						Type:     typeName(field.elemType),
						Raw:      arg.raw,
						Err:      err,
					})
					continue
				}
				rv.value = v
			}
		} else if raw, ok := p.lookupEnv(field.EnvName); ok && raw != "" {
			rv.Provenance = ProvenanceEnv
			rv.Raw = raw
			v, err := coerce(raw, field.elemType)
			if err != nil {
				usageErr.Invalid = append(usageErr.Invalid, ValueError{
					Argument: "$" + field.EnvName,
					Type:     typeName(field.elemType),
					Raw:      raw,
					Err:      err,
				})
				continue
			}
			rv.value = v
		} else if field.HasDefault {
			rv.Provenance = ProvenanceDefault
			rv.value = field.defaultValue
		} else if !field.optional {
			if !scan.syntaxFlags[field.FlagName] {
				usageErr.Missing = append(usageErr.Missing,
					"--"+field.FlagName+"/$"+field.EnvName)
			}
			continue
		}

		if rv.value.IsValid() {
			rv.Value = rv.value.Interface()
		}
		resolved = append(resolved, rv)
	}

	if usageErr.Has() {
		return nil, usageErr
	}
	return resolved, nil
}

// populate copies resolved values into the target struct. Assignment happens
// on a scratch copy first so a caller never observes a partially populated
// struct when resolution fails elsewhere.
func populate(target reflect.Value, schema *Schema, resolved []ResolvedValue) {
	scratch := reflect.New(schema.target).Elem()
	scratch.Set(target)
	for _, rv := range resolved {
		if !rv.value.IsValid() {
			continue
		}
		dst := scratch.Field(rv.Field.index)
		if rv.Field.optional {
			ptr := reflect.New(rv.Field.elemType)
			ptr.Elem().Set(rv.value)
			dst.Set(ptr)
			continue
		}
		dst.Set(rv.value)
	}
	target.Set(scratch)
}
