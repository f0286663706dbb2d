package dcflags

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveHandAuthoredSchema(t *testing.T) {
	schema, err := NewSchema([]Field{
		{Name: "output", Type: reflect.TypeOf("")},
		{Name: "workers", Type: reflect.TypeOf(0), HasDefault: true, Default: "1"},
		{Name: "verbose", Type: reflect.TypeOf(false)},
	})
	require.NoError(t, err)

	p := New(
		WithArgs([]string{"--output=new.txt", "--verbose"}),
		WithEnvMap(map[string]string{"WORKERS": "3"}),
	)
	resolved, err := p.Resolve(schema)
	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.Equal(t, "output", resolved[0].Field.Name)
	assert.Equal(t, "new.txt", resolved[0].Value)
	assert.Equal(t, ProvenanceFlag, resolved[0].Provenance)

	assert.Equal(t, 3, resolved[1].Value)
	assert.Equal(t, ProvenanceEnv, resolved[1].Provenance)
	assert.Equal(t, "3", resolved[1].Raw)

	assert.Equal(t, true, resolved[2].Value)
	assert.Equal(t, ProvenanceFlag, resolved[2].Provenance)
	assert.Empty(t, resolved[2].Raw)
}

func TestResolveDefaultProvenance(t *testing.T) {
	schema, err := NewSchema([]Field{
		{Name: "workers", Type: reflect.TypeOf(0), HasDefault: true, Default: "1"},
	})
	require.NoError(t, err)

	p := New(WithArgs(nil), WithEnvLookup(emptyEnv))
	resolved, err := p.Resolve(schema)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, 1, resolved[0].Value)
	assert.Equal(t, ProvenanceDefault, resolved[0].Provenance)
}

func TestResolveOptionalUnsetProvenance(t *testing.T) {
	schema, err := NewSchema([]Field{
		{Name: "retries", Type: reflect.TypeOf((*int)(nil))},
	})
	require.NoError(t, err)

	p := New(WithArgs(nil), WithEnvLookup(emptyEnv))
	resolved, err := p.Resolve(schema)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, ProvenanceUnset, resolved[0].Provenance)
	assert.Nil(t, resolved[0].Value)
}

func TestResolveMissingRequired(t *testing.T) {
	schema, err := NewSchema([]Field{
		{Name: "output", Type: reflect.TypeOf("")},
	})
	require.NoError(t, err)

	p := New(WithArgs(nil), WithEnvLookup(emptyEnv), WithProgram("prog"))
	_, err = p.Resolve(schema)
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"--output/$OUTPUT"}, ue.Missing)
	assert.NotEmpty(t, ue.Usage)
}

func TestResolveHelp(t *testing.T) {
	schema, err := NewSchema([]Field{
		{Name: "output", Type: reflect.TypeOf("")},
	})
	require.NoError(t, err)

	p := New(WithArgs([]string{"-h"}), WithEnvLookup(emptyEnv), WithProgram("prog"))
	_, err = p.Resolve(schema)
	var help *HelpRequested
	require.ErrorAs(t, err, &help)
	assert.Contains(t, help.Help, "--output OUTPUT")
}

func TestResolveIsAPureFunctionOfItsInputs(t *testing.T) {
	schema, err := NewSchema([]Field{
		{Name: "output", Type: reflect.TypeOf("")},
		{Name: "workers", Type: reflect.TypeOf(0), HasDefault: true, Default: "1"},
	})
	require.NoError(t, err)

	p := New(
		WithArgs([]string{"--output=a.txt"}),
		WithEnvMap(map[string]string{"WORKERS": "2"}),
	)
	first, err := p.Resolve(schema)
	require.NoError(t, err)
	second, err := p.Resolve(schema)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Value, second[i].Value)
		assert.Equal(t, first[i].Provenance, second[i].Provenance)
		assert.Equal(t, first[i].Raw, second[i].Raw)
	}
}
