package dcflags

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fieldTag holds the per-field overrides declared in a `dcflags` struct tag.
type fieldTag struct {
	Name         string
	EnvName      string
	FlagName     string
	Usage        string
	DefaultValue string
	HasDefault   bool
	Skip         bool
}

// parseFieldTag parses a `dcflags:"..."` tag value. Tags are whitespace
// separated key:value pairs; values may be single or double quoted to embed
// spaces (useful for usage text and string defaults). The literal tag "-"
// excludes the field from the schema.
func parseFieldTag(raw string) (fieldTag, error) {
	if raw == "" {
		return fieldTag{}, nil
	}
	if raw == "-" {
		return fieldTag{Skip: true}, nil
	}
	var (
		tag        fieldTag
		keyBuilder strings.Builder
		valBuilder strings.Builder
		currentKey string
		state      = stateKey
		quote      rune
		escape     bool
	)

	commit := func() error {
		if currentKey == "" {
			return fmt.Errorf("dcflags: missing key before value %q", valBuilder.String())
		}
		value := valBuilder.String()
		valBuilder.Reset()
		if err := tag.assign(currentKey, value); err != nil {
			return err
		}
		currentKey = ""
		state = stateKey
		return nil
	}

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size

		switch state {
		case stateKey:
			if unicode.IsSpace(r) {
				continue
			}
			if r == ':' {
				currentKey = strings.ToLower(strings.TrimSpace(keyBuilder.String()))
				if currentKey == "" {
					return fieldTag{}, fmt.Errorf("dcflags: empty tag key")
				}
				keyBuilder.Reset()
				state = statePreValue
				continue
			}
			keyBuilder.WriteRune(r)

		case statePreValue:
			if unicode.IsSpace(r) {
				continue
			}
			if r == '"' || r == '\'' {
				quote = r
				state = stateValueQuoted
				continue
			}
			valBuilder.WriteRune(r)
			state = stateValue

		case stateValue:
			if unicode.IsSpace(r) {
				if err := commit(); err != nil {
					return fieldTag{}, err
				}
				continue
			}
			valBuilder.WriteRune(r)

		case stateValueQuoted:
			if escape {
				valBuilder.WriteRune(r)
				escape = false
				continue
			}
			if r == '\\' {
				escape = true
				continue
			}
			if r == quote {
				quote = 0
				if err := commit(); err != nil {
					return fieldTag{}, err
				}
				continue
			}
			valBuilder.WriteRune(r)
		}
	}

	switch state {
	case stateKey:
		if keyBuilder.Len() != 0 {
			return fieldTag{}, fmt.Errorf("dcflags: dangling key %q", keyBuilder.String())
		}
	case statePreValue:
		return fieldTag{}, fmt.Errorf("dcflags: key %q missing value", currentKey)
	case stateValue:
		if err := commit(); err != nil {
			return fieldTag{}, err
		}
	case stateValueQuoted:
		return fieldTag{}, fmt.Errorf("dcflags: unterminated quoted value for key %q", currentKey)
	}

	return tag, nil
}

func (t *fieldTag) assign(key, value string) error {
	switch key {
	case "name":
		t.Name = value
	case "env":
		t.EnvName = value
	case "flag":
		t.FlagName = strings.TrimLeft(value, "-")
	case "usage", "help":
		t.Usage = value
	case "default":
		t.DefaultValue = value
		t.HasDefault = true
	default:
		return fmt.Errorf("unknown dcflags tag key %q", key)
	}
	return nil
}

const (
	stateKey = iota
	statePreValue
	stateValue
	stateValueQuoted
)
