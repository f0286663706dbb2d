package dcflags

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const (
	helpWidth    = 78
	helpColumn   = 24
	maxActionLen = helpColumn - 3
)

// flagFragment renders a flag with its value placeholder, e.g.
// "--output OUTPUT" or "--verbose [VERBOSE]". Boolean flags show an optional
// placeholder to signal the bare-flag convention.
func flagFragment(f Field) string {
	metavar := envName(f.FlagName)
	if f.elemType.Kind() == reflect.Bool {
		return fmt.Sprintf("--%s [%s]", f.FlagName, metavar)
	}
	return fmt.Sprintf("--%s %s", f.FlagName, metavar)
}

// renderUsage renders the one-line (wrapped) usage summary listing every flag
// in schema order.
func (p *Parser) renderUsage(schema *Schema) string {
	prefix := "usage: " + p.programName() + " "
	fragments := []string{"[-h]"}
	for _, f := range schema.fields {
		fragments = append(fragments, "["+flagFragment(f)+"]")
	}

	var b strings.Builder
	indent := strings.Repeat(" ", len(prefix))
	line := prefix
	for _, frag := range fragments {
		if len(line)+len(frag) > helpWidth && strings.TrimSpace(line) != "" {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
			line = indent
		}
		line += frag + " "
	}
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteByte('\n')
	return b.String()
}

// renderHelp renders the full help text: usage line, description, and one
// entry per field enumerating its type, environment variable, and default.
func (p *Parser) renderHelp(schema *Schema) string {
	var b strings.Builder
	b.WriteString(p.renderUsage(schema))

	if p.description != "" {
		b.WriteByte('\n')
		b.WriteString(wordwrap.WrapString(p.description, helpWidth))
		b.WriteByte('\n')
	}

	b.WriteString("\noptions:\n")
	writeOption(&b, "-h, --help", "show this help message and exit")
	for _, f := range schema.fields {
		writeOption(&b, flagFragment(f), fieldHelp(f))
	}
	return b.String()
}

// fieldHelp renders the annotation text for one field, e.g.
// "type: int, env: $WORKERS, default: 1".
func fieldHelp(f Field) string {
	text := fmt.Sprintf("type: %s, env: $%s", typeName(f.elemType), f.EnvName)
	if f.HasDefault {
		text += fmt.Sprintf(", default: %v", f.defaultValue.Interface())
	}
	if f.Usage != "" {
		text = f.Usage + " (" + text + ")"
	}
	return text
}

// writeOption lays out one two-column help entry, moving the help text to
// its own line when the invocation is too wide for the first column.
func writeOption(b *strings.Builder, invocation, help string) {
	indent := strings.Repeat(" ", helpColumn)
	wrapped := strings.Split(wordwrap.WrapString(help, uint(helpWidth-helpColumn)), "\n")

	if len(invocation) > maxActionLen {
		fmt.Fprintf(b, "  %s\n", invocation)
		for _, line := range wrapped {
			b.WriteString(indent)
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return
	}
	fmt.Fprintf(b, "  %-*s%s\n", helpColumn-2, invocation, wrapped[0])
	for _, line := range wrapped[1:] {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
