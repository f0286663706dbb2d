// Package dcflags instantiates configuration structs from command line
// arguments and environment variables. Each exported field of the struct
// becomes a --flag and an environment variable; values are resolved with
// precedence command line > environment > declared default and coerced to
// the field's type. Missing required fields and malformed values are
// reported together the way a standard CLI usage failure would be, and
// -h/--help prints a generated help message enumerating every field's type,
// environment variable, and default.
//
// Example:
//
//	type Config struct {
//	    Output  string `dcflags:"usage:'where to write results'"`
//	    Workers int    `dcflags:"default:1"`
//	    Verbose bool
//	}
//
//	var cfg Config
//	dcflags.MustParse(&cfg)
//
// Running the program as `prog --output=new.txt --verbose --workers 3`
// yields Config{Output: "new.txt", Workers: 3, Verbose: true}. With an empty
// command line, $OUTPUT, $WORKERS, and $VERBOSE are consulted before the
// declared defaults; an unset $OUTPUT is then a usage error since the field
// declares no default.
package dcflags
