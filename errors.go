package dcflags

import (
	"errors"
	"fmt"
	"strings"
)

// Provenance identifies where a resolved field value was obtained from.
type Provenance string

const (
	ProvenanceFlag    Provenance = "flag"
	ProvenanceEnv     Provenance = "env"
	ProvenanceDefault Provenance = "default"
	// ProvenanceUnset marks optional fields for which no source supplied a
	// value (pointer fields left nil).
	ProvenanceUnset Provenance = "unset"
)

// ErrHelp is reported by Parse when -h or --help was given. The concrete
// error is a *HelpRequested carrying the rendered help text; match with
// errors.Is(err, ErrHelp).
var ErrHelp = errors.New("dcflags: help requested")

// HelpRequested is returned by Parse when help was requested. It is not a
// failure: MustParse prints Help to stdout and exits zero.
type HelpRequested struct {
	Help string
}

// Error implements the error interface.
func (h *HelpRequested) Error() string { return ErrHelp.Error() }

// Is reports ErrHelp equivalence for errors.Is.
func (h *HelpRequested) Is(target error) bool { return target == ErrHelp }

// ConfigurationError reports a defect in the record type definition itself:
// an unsupported field type, a malformed tag, a default that does not parse,
// or two fields deriving the same flag or environment variable name. It is
// raised while building the schema, before any input is read.
type ConfigurationError struct {
	// Field names the offending struct field (or descriptor), empty when the
	// target as a whole is unusable.
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("dcflags: %v", e.Err)
	}
	return fmt.Sprintf("dcflags: field %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error { return e.Err }

func configErr(field string, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Err: fmt.Errorf(format, args...)}
}

// ValueError describes one argument whose raw value could not be coerced to
// its field's type, or a flag that was not followed by the value it needs.
type ValueError struct {
	// Argument is the reference shown to the user: "--workers" when the value
	// came from the command line, "$WORKERS" when it came from the
	// environment.
	Argument string
	Type     string
	Raw      string
	Err      error
}

// Error implements the error interface, matching the usage-error line format:
// "argument --workers: invalid int value: 'abc'".
func (v ValueError) Error() string {
	if v.Type == "" {
		return fmt.Sprintf("argument %s: %v", v.Argument, v.Err)
	}
	return fmt.Sprintf("argument %s: invalid %s value: '%s'", v.Argument, v.Type, v.Raw)
}

// UsageError reports that the process invocation did not satisfy the schema:
// required fields were left unresolved, values failed to coerce, or tokens
// matched no known flag. All violations found in one resolution pass are
// collected before reporting.
type UsageError struct {
	Program string
	// Usage is the rendered usage line, printed above the error by MustParse.
	Usage string
	// Missing lists required-but-unresolved fields in schema order, each in
	// "--flag/$ENV" form.
	Missing []string
	// Invalid lists values that could not be coerced, in schema order.
	Invalid []ValueError
	// Unrecognized lists command-line tokens that matched no flag.
	Unrecognized []string
	// Status is the suggested process exit status.
	Status int
}

// Error implements the error interface.
func (u *UsageError) Error() string {
	var parts []string
	if len(u.Unrecognized) > 0 {
		parts = append(parts, "unrecognized arguments: "+strings.Join(u.Unrecognized, " "))
	}
	if len(u.Missing) > 0 {
		parts = append(parts, "the following arguments are required: "+strings.Join(u.Missing, ", "))
	}
	for _, v := range u.Invalid {
		parts = append(parts, v.Error())
	}
	if len(parts) == 0 {
		parts = append(parts, "invalid arguments")
	}
	return fmt.Sprintf("%s: error: %s", u.Program, strings.Join(parts, "; "))
}

// Has reports whether the error carries any violation.
func (u *UsageError) Has() bool {
	return u != nil && (len(u.Missing) > 0 || len(u.Invalid) > 0 || len(u.Unrecognized) > 0)
}
