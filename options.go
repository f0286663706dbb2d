package dcflags

import "io"

// Option configures a Parser.
type Option func(*Parser)

// WithProgram sets the program name used in usage and error lines. Defaults
// to the basename of os.Args[0].
func WithProgram(name string) Option {
	return func(p *Parser) {
		p.program = name
	}
}

// WithDescription sets a free-form description printed between the usage
// line and the option list in help output.
func WithDescription(text string) Option {
	return func(p *Parser) {
		p.description = text
	}
}

// WithEnvPrefix prepends a prefix to every derived environment variable
// name, e.g. WithEnvPrefix("MYAPP_") maps the field "output" to
// $MYAPP_OUTPUT.
func WithEnvPrefix(prefix string) Option {
	return func(p *Parser) {
		p.envPrefix = prefix
	}
}

// WithUnderscoreToDash controls whether underscores in field names become
// dashes in flag names (on by default: "workers_count" -> --workers-count).
func WithUnderscoreToDash(enabled bool) Option {
	return func(p *Parser) {
		p.underscoreToDash = enabled
	}
}

// WithArgs overrides the command-line tokens to parse. By default the live
// process arguments (os.Args[1:]) are used.
func WithArgs(args []string) Option {
	return func(p *Parser) {
		p.args = args
		p.argsSet = true
	}
}

// WithEnvLookup overrides the environment variable lookup strategy. Pass a
// lookup over a snapshot map to keep resolution independent of ambient
// process state.
func WithEnvLookup(fn EnvLookupFunc) Option {
	return func(p *Parser) {
		if fn != nil {
			p.envLookup = fn
		}
	}
}

// WithEnvMap is shorthand for WithEnvLookup over a fixed map.
func WithEnvMap(env map[string]string) Option {
	return WithEnvLookup(func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
}

// WithOutput overrides the writer used for help text (defaults to stdout).
func WithOutput(w io.Writer) Option {
	return func(p *Parser) {
		if w != nil {
			p.stdout = w
		}
	}
}

// WithErrorOutput overrides the writer used for usage errors (defaults to
// stderr).
func WithErrorOutput(w io.Writer) Option {
	return func(p *Parser) {
		if w != nil {
			p.stderr = w
		}
	}
}

// WithExitFunc overrides how MustParse terminates the process (defaults to
// os.Exit).
func WithExitFunc(fn func(int)) Option {
	return func(p *Parser) {
		if fn != nil {
			p.exit = fn
		}
	}
}
