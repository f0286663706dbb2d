package dcflags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
)

// EnvLookupFunc describes how to look up environment variables. Override
// with WithEnvLookup when resolution should not read ambient process state.
type EnvLookupFunc func(string) (string, bool)

// Parser populates configuration structs from command-line arguments and
// environment variables. A Parser holds no state across calls; distinct
// Parsers may be used concurrently.
type Parser struct {
	program          string
	description      string
	envPrefix        string
	underscoreToDash bool
	args             []string
	argsSet          bool
	envLookup        EnvLookupFunc
	stdout           io.Writer
	stderr           io.Writer
	exit             func(int)
}

// New constructs a Parser with optional functional options.
func New(opts ...Option) *Parser {
	p := &Parser{
		underscoreToDash: true,
		envLookup:        os.LookupEnv,
		stdout:           os.Stdout,
		stderr:           os.Stderr,
		exit:             os.Exit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse populates the struct pointed to by target. Values are resolved per
// field with precedence command line > environment > declared default; raw
// strings are coerced to the field's type.
//
// On failure target is left untouched and the error is one of:
//   - *ConfigurationError: the struct definition itself is defective,
//   - *UsageError: the invocation was missing required fields, carried
//     malformed values, or included unrecognized arguments,
//   - *HelpRequested (matches ErrHelp): -h/--help was given.
func (p *Parser) Parse(target any) error {
	if target == nil {
		return &ConfigurationError{Err: errors.New("target cannot be nil")}
	}
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return &ConfigurationError{Err: errors.New("target must be a non-nil pointer to a struct")}
	}
	if value.Elem().Kind() != reflect.Struct {
		return &ConfigurationError{Err: errors.New("target must point to a struct")}
	}
	schema, err := p.schemaOf(target)
	if err != nil {
		return err
	}
	resolved, err2 := p.resolve(schema)
	if err2 != nil {
		return err2
	}
	populate(value.Elem(), schema, resolved)
	return nil
}

// Resolve resolves a hand-authored schema against the command line and
// environment, returning one ResolvedValue per schema field in order. This
// is the untyped counterpart of Parse for callers that author field
// descriptors directly instead of reflecting over a struct.
func (p *Parser) Resolve(schema *Schema) ([]ResolvedValue, error) {
	return p.resolve(schema)
}

func (p *Parser) resolve(schema *Schema) ([]ResolvedValue, error) {
	scan := scanArgs(p.arguments(), schema)
	if scan.help {
		return nil, &HelpRequested{Help: p.renderHelp(schema)}
	}
	resolved, usageErr := p.resolveAll(schema, scan)
	if usageErr != nil {
		usageErr.Usage = p.renderUsage(schema)
		return nil, usageErr
	}
	return resolved, nil
}

// MustParse is the terminating embedding of Parse: usage failures print the
// usage line plus an error line to the error output and exit non-zero,
// -h/--help prints help and exits zero, and a defective struct definition
// panics (it is a programming error, not bad input).
func (p *Parser) MustParse(target any) {
	err := p.Parse(target)
	if err == nil {
		return
	}
	var help *HelpRequested
	if errors.As(err, &help) {
		fmt.Fprint(p.stdout, help.Help)
		p.exit(0)
		return
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprint(p.stderr, usage.Usage)
		fmt.Fprintln(p.stderr, usage.Error())
		p.exit(usage.Status)
		return
	}
	panic(err)
}

// Parse populates target from the live process arguments and environment
// using a one-off Parser.
func Parse(target any, opts ...Option) error {
	return New(opts...).Parse(target)
}

// MustParse is the package-level terminating variant of Parse.
func MustParse(target any, opts ...Option) {
	New(opts...).MustParse(target)
}

func (p *Parser) arguments() []string {
	if p.argsSet {
		return p.args
	}
	return os.Args[1:]
}

func (p *Parser) lookupEnv(key string) (string, bool) {
	return p.envLookup(key)
}

func (p *Parser) programName() string {
	if p.program != "" {
		return p.program
	}
	if len(os.Args) > 0 && os.Args[0] != "" {
		return filepath.Base(os.Args[0])
	}
	return "program"
}
