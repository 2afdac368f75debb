package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/internal/cli/log"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := New()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

const strictProfile = `
version: "1"
categories: [safe_number, text_number]
`

func TestKinds(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "kinds")
	require.NoError(t, err)

	assert.Contains(t, stdout, "decimal.Decimal")
	assert.Contains(t, stdout, "time.Duration")
	assert.Contains(t, stdout, "textual_bool")
	assert.NotContains(t, stdout, "false")
}

func TestKindsProfile(t *testing.T) {
	t.Parallel()

	profile := writeFile(t, "profile.yaml", strictProfile)

	stdout, _, err := execute(t, "--profile", profile, "kinds")
	require.NoError(t, err)

	assert.Contains(t, stdout, "true")
	assert.Contains(t, stdout, "false")
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  bool
	}{
		{
			name:     "int",
			args:     []string{"coerce", "--kind", "int", "--", "42", "-7"},
			contains: []string{"42", "-7"},
		},
		{
			name:     "prefixed int",
			args:     []string{"coerce", "--kind", "int", "0x1F", "0b11"},
			contains: []string{"31", "3"},
		},
		{
			name:     "rune",
			args:     []string{"coerce", "--kind", "rune", "A"},
			contains: []string{"65"},
		},
		{
			name:     "duration",
			args:     []string{"coerce", "--kind", "duration", "2h45m"},
			contains: []string{"2h45m0s"},
		},
		{
			name:     "bool",
			args:     []string{"coerce", "--kind", "bool", "yes", "off"},
			contains: []string{"true", "false"},
		},
		{
			name:     "decimal",
			args:     []string{"coerce", "--kind", "decimal", "19.99"},
			contains: []string{"19.99"},
		},
		{
			name:     "failure",
			args:     []string{"coerce", "--kind", "int", "42", "many"},
			contains: []string{"many", "no_resolver"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, tt.args...)
			if tt.wantErr {
				assert.ErrorIs(t, err, errCoerce)
			} else {
				require.NoError(t, err)
			}

			for _, s := range tt.contains {
				assert.Contains(t, stdout, s)
			}
		})
	}
}

func TestCoerceProfile(t *testing.T) {
	t.Parallel()

	profile := writeFile(t, "profile.yaml", strictProfile)

	_, _, err := execute(t, "--profile", profile, "coerce", "--kind", "int", "12")
	require.NoError(t, err)

	stdout, _, err := execute(t, "--profile", profile, "coerce", "--kind", "bool", "yes")
	require.ErrorIs(t, err, errCoerce)
	assert.Contains(t, stdout, "not allowed")
}

func TestCoerceUnknownKind(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "coerce", "--kind", "complex", "1")
	assert.Error(t, err)
}

const people = `
- first_name: Ibrahim
  age: 42
  born: "1982-04-01T10:00:00Z"
  tags: [a, b]
  parent:
    firstName: Salah
- first_name: Fadel
  nickname: MF
`

func TestMap(t *testing.T) {
	t.Parallel()

	shape := writeFile(t, "shape.yaml", personShape)
	docs := writeFile(t, "people.yaml", people)

	stdout, _, err := execute(t, "map", "--shape", shape, "-o", OutputJSON, docs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))

	assert.Equal(t, "Ibrahim", first["first_name"])
	assert.InDelta(t, 42, first["Age"], 0)
	assert.Equal(t, "1982-04-01T10:00:00Z", first["Born"])
	assert.Equal(t, []any{"a", "b"}, first["Tags"])
	assert.Equal(t, map[string]any{"FirstName": "Salah"}, first["Parent"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "Fadel", second["first_name"])
	assert.Nil(t, second["Parent"])
}

func TestMapOutputs(t *testing.T) {
	t.Parallel()

	shape := writeFile(t, "shape.yaml", personShape)
	docs := writeFile(t, "people.yaml", people)

	tests := []struct {
		output   string
		contains []string
	}{
		{OutputTable, []string{"people.yaml[0]", "people.yaml[1]", "Ibrahim", "FirstName"}},
		{OutputYAML, []string{"first_name: Ibrahim", "first_name: Fadel"}},
		{OutputDump, []string{"Ibrahim", "Salah"}},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "map", "--shape", shape, "-o", tt.output, docs)
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, stdout, s)
			}
		})
	}
}

func TestMapFailures(t *testing.T) {
	t.Parallel()

	shape := writeFile(t, "shape.yaml", personShape)
	docs := writeFile(t, "mixed.json", `[{"first_name": "Ibrahim"}, 42]`)

	stdout, stderr, err := execute(t, "map", "--shape", shape, "-o", OutputJSON, docs)
	require.ErrorIs(t, err, errUnmapped)

	assert.Contains(t, stdout, "Ibrahim")
	assert.Contains(t, stderr, "mixed.json[1]")
	assert.Contains(t, stderr, "no_resolver")
}

func TestMapErrors(t *testing.T) {
	t.Parallel()

	shape := writeFile(t, "shape.yaml", personShape)
	docs := writeFile(t, "people.yaml", people)

	tests := []struct {
		name string
		args []string
	}{
		{"missing shape flag", []string{"map", docs}},
		{"missing shape file", []string{"map", "--shape", shape + ".missing", docs}},
		{"missing document", []string{"map", "--shape", shape, docs + ".missing"}},
		{"unknown output", []string{"map", "--shape", shape, "-o", "xml", docs}},
		{"no documents", []string{"map", "--shape", shape}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMapDebugLogging(t *testing.T) {
	t.Parallel()

	shape := writeFile(t, "shape.yaml", personShape)
	docs := writeFile(t, "person.yaml", "first_name: Ibrahim\n")

	_, stderr, err := execute(t, "--"+log.LevelFlagName, log.LevelDebug, "--"+log.FormatFlagName, log.FormatJSON,
		"map", "--shape", shape, docs)
	require.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"resolved"`)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "describe", "object-mapper/internal/fixture", "Customer")
	require.NoError(t, err)

	assert.Contains(t, stdout, "object-mapper/internal/fixture.Customer")
	assert.Contains(t, stdout, "Email")
	assert.Contains(t, stdout, "Orders()")
	assert.Contains(t, stdout, "NewCustomer(id uint, email string) (*Customer, error)")
	assert.Contains(t, stdout, `mapper.WithConstructor(fixture.NewCustomer, "id", "email")`)
}

func TestDescribeYAML(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "describe", "-o", OutputYAML, "object-mapper/internal/fixture", "Order")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Name: Lines")
	assert.Contains(t, stdout, "Kind: sequence")
	assert.Contains(t, stdout, "Type: decimal.Decimal")
}

func TestDescribeStructs(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "describe", "object-mapper/internal/fixture")
	require.NoError(t, err)

	for _, name := range []string{"Person", "Customer", "Order", "StoreOrder"} {
		assert.Contains(t, stdout, name)
	}
}

func TestDescribeUnknownType(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "describe", "object-mapper/internal/fixture", "Missing")
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.yaml")

	stdout, _, err := execute(t, "profile", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	stdout, _, err = execute(t, "--profile", path, "profile", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, `version: "1"`)
	assert.Contains(t, stdout, "- all")
	assert.Contains(t, stdout, "tag: map")
}

func TestProfileInvalid(t *testing.T) {
	t.Parallel()

	profile := writeFile(t, "profile.yaml", "version: \"1\"\ncategories: [everything]\n")

	_, _, err := execute(t, "--profile", profile, "profile", "show")
	assert.Error(t, err)
}
