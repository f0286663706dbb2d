package dcflags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type helpConfig struct {
	Output  string  `dcflags:"usage:'where to write results'"`
	Workers int     `dcflags:"default:1"`
	Rate    float64 `dcflags:"default:1.5"`
	Verbose bool
}

func helpFor(t *testing.T, target any, opts ...Option) string {
	t.Helper()
	p := New(opts...)
	schema, err := p.schemaOf(target)
	require.NoError(t, err)
	return p.renderHelp(schema)
}

func TestRenderUsageLine(t *testing.T) {
	p := New(WithProgram("prog"))
	schema, err := p.schemaOf(&helpConfig{})
	require.NoError(t, err)

	usage := p.renderUsage(schema)
	first := strings.SplitN(usage, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(first, "usage: prog [-h]"), "got %q", first)
	assert.Contains(t, usage, "[--output OUTPUT]")
	assert.Contains(t, usage, "[--workers WORKERS]")
	// Booleans advertise the optional-value convention.
	assert.Contains(t, usage, "[--verbose [VERBOSE]]")
}

func TestRenderUsageWrapsLongLines(t *testing.T) {
	type wide struct {
		AlphaLongOption   string `dcflags:"default:a"`
		BravoLongOption   string `dcflags:"default:b"`
		CharlieLongOption string `dcflags:"default:c"`
		DeltaLongOption   string `dcflags:"default:d"`
		EchoLongOption    string `dcflags:"default:e"`
	}
	p := New(WithProgram("prog"))
	schema, err := p.schemaOf(&wide{})
	require.NoError(t, err)

	usage := p.renderUsage(schema)
	lines := strings.Split(strings.TrimRight(usage, "\n"), "\n")
	require.Greater(t, len(lines), 1, "expected wrapped usage, got %q", usage)
	indent := strings.Repeat(" ", len("usage: prog "))
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, indent), "continuation %q not indented", line)
	}
}

func TestRenderHelpEnumeratesFieldsInOrder(t *testing.T) {
	help := helpFor(t, &helpConfig{}, WithProgram("prog"))

	assert.Contains(t, help, "options:")
	assert.Contains(t, help, "-h, --help")
	assert.Contains(t, help, "type: string, env: $OUTPUT")
	assert.Contains(t, help, "type: int, env: $WORKERS, default: 1")
	assert.Contains(t, help, "type: float64, env: $RATE, default: 1.5")
	assert.Contains(t, help, "type: bool, env: $VERBOSE, default: false")
	assert.Contains(t, help, "where to write results")

	// Declaration order is enumeration order.
	iOutput := strings.Index(help, "--output")
	iWorkers := strings.Index(help, "--workers")
	iVerbose := strings.Index(help, "--verbose")
	assert.Less(t, iOutput, iWorkers)
	assert.Less(t, iWorkers, iVerbose)
}

func TestRenderHelpShowsDescription(t *testing.T) {
	help := helpFor(t, &helpConfig{},
		WithProgram("prog"),
		WithDescription("Frobnicates inputs into outputs."),
	)
	assert.Contains(t, help, "Frobnicates inputs into outputs.")
}

func TestRenderHelpIndependentOfProcessState(t *testing.T) {
	// Help enumerates the schema regardless of args or environment.
	withArgs := helpFor(t, &helpConfig{},
		WithProgram("prog"),
		WithArgs([]string{"--workers=9"}),
		WithEnvMap(map[string]string{"OUTPUT": "x"}),
	)
	plain := helpFor(t, &helpConfig{}, WithProgram("prog"))
	assert.Equal(t, plain, withArgs)
}

func TestRenderHelpEnvPrefixShown(t *testing.T) {
	// No usage text: the annotation must fit the help column so the env name
	// stays on one line.
	type prefixed struct {
		Output string
	}
	help := helpFor(t, &prefixed{}, WithProgram("prog"), WithEnvPrefix("MYAPP_"))
	assert.Contains(t, help, "type: string, env: $MYAPP_OUTPUT")
}

func TestRenderHelpLongAnnotationWraps(t *testing.T) {
	help := helpFor(t, &helpConfig{}, WithProgram("prog"), WithEnvPrefix("MYAPP_"))
	assert.Contains(t, help, "$MYAPP_OUTPUT")
	for _, line := range strings.Split(strings.TrimRight(help, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), helpWidth+2, "line too wide: %q", line)
	}
}

func TestWriteOptionLongInvocationBreaksLine(t *testing.T) {
	var b strings.Builder
	writeOption(&b, "--a-particularly-long-flag-name VALUE", "help text")
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  --a-particularly-long-flag-name VALUE", lines[0])
	assert.Equal(t, strings.Repeat(" ", helpColumn)+"help text", lines[1])
}
