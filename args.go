package dcflags

import (
	"errors"
	"reflect"
	"strings"
)

// argValue records one flag occurrence found on the command line.
type argValue struct {
	raw string
	// explicit is false only for a bare boolean flag with no value token.
	explicit bool
}

// scanResult is the outcome of one pass over the command-line tokens.
type scanResult struct {
	// values maps flag name to the winning (last) occurrence.
	values map[string]argValue
	// unrecognized collects tokens that matched no flag, in order.
	unrecognized []string
	// syntax collects flags that were missing their value token; such flags
	// are not additionally reported as missing-required.
	syntax      []ValueError
	syntaxFlags map[string]bool
	help        bool
}

// scanArgs walks the raw tokens once, matching them against the schema's
// flags. It accepts `--name value` and `--name=value`; booleans additionally
// accept a bare `--name`, consuming a following token as the explicit value
// only when that token is a boolean literal. A following flag token (`--`
// prefixed, or `-h`) is never taken as a value. `--` ends flag parsing.
// Later occurrences of the same flag win.
func scanArgs(args []string, schema *Schema) scanResult {
	res := scanResult{values: make(map[string]argValue)}
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			res.unrecognized = append(res.unrecognized, args[i+1:]...)
			break
		}
		if tok == "-h" || tok == "--help" {
			res.help = true
			continue
		}
		if !strings.HasPrefix(tok, "--") {
			res.unrecognized = append(res.unrecognized, tok)
			continue
		}

		name, value, hasValue := strings.Cut(tok[2:], "=")
		idx, ok := schema.byFlag[name]
		if !ok {
			res.unrecognized = append(res.unrecognized, tok)
			continue
		}
		field := schema.fields[idx]

		if hasValue {
			res.values[name] = argValue{raw: value, explicit: true}
			continue
		}
		if field.elemType.Kind() == reflect.Bool {
			// Tri-state: bare flag, or an explicit boolean literal next.
			if i+1 < len(args) && boolToken(args[i+1]) {
				res.values[name] = argValue{raw: args[i+1], explicit: true}
				i++
				continue
			}
			res.values[name] = argValue{}
			continue
		}
		if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") || args[i+1] == "-h" {
			res.syntax = append(res.syntax, ValueError{
				Argument: "--" + name,
				Err:      errors.New("expected one argument"),
			})
			if res.syntaxFlags == nil {
				res.syntaxFlags = make(map[string]bool)
			}
			res.syntaxFlags[name] = true
			continue
		}
		res.values[name] = argValue{raw: args[i+1], explicit: true}
		i++
	}
	return res
}
