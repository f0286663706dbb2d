package dcflags

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeDurationType = reflect.TypeOf(time.Duration(0))

// coerce converts a raw string into a value of the scalar target type.
// Booleans cannot fail: the empty string and false-like tokens coerce to
// false, everything else to true.
func coerce(raw string, targetType reflect.Type) (reflect.Value, error) {
	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(targetType), nil
	case reflect.Bool:
		return reflect.ValueOf(coerceBool(raw)).Convert(targetType), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if targetType == timeDurationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("parse duration: %w", err)
			}
			return reflect.ValueOf(d), nil
		}
		v, err := strconv.ParseInt(raw, 10, targetType.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse int: %w", err)
		}
		return reflect.ValueOf(v).Convert(targetType), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, targetType.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse uint: %w", err)
		}
		return reflect.ValueOf(v).Convert(targetType), nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, targetType.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parse float: %w", err)
		}
		return reflect.ValueOf(v).Convert(targetType), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported type %s", targetType)
	}
}

// coerceBool recognizes the false-like tokens "", "0", "false", "f", "no",
// "n", and "off" (case-insensitive); any other non-empty string is true.
func coerceBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "0", "false", "f", "no", "n", "off":
		return false
	default:
		return true
	}
}

// boolToken reports whether tok is an explicit boolean literal. Only these
// tokens are consumed as the value of a bare boolean flag on the command
// line; anything else is left in place so `--verbose output.txt` does not
// swallow a stray token.
func boolToken(tok string) bool {
	switch strings.ToLower(tok) {
	case "y", "yes", "t", "true", "on", "1",
		"n", "no", "f", "false", "off", "0":
		return true
	default:
		return false
	}
}

// supportedType reports whether t can be coerced from a string. Pointer
// types are validated against their element type by the schema builder
// before calling this.
func supportedType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// typeName renders the display name of a field type for help and error
// messages, e.g. "int", "string", "time.Duration".
func typeName(t reflect.Type) string {
	return t.String()
}
