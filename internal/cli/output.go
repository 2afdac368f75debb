package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"
)

const (
	OutputFlagName = "output"

	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputDump  = "dump"
)

// newTable returns a borderless table writing to w on Render.
func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(header)

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)

	return t
}

// mapped is one input document and what it was mapped to.
type mapped struct {
	Source string
	Value  any
}

func encodeMapped(w io.Writer, output string, results []mapped) error {
	var (
		data []byte
		err  error
	)

	switch output {
	case OutputJSON:
		data, err = encodeNDJSON(results)
	case OutputYAML:
		data, err = encodeYAML(results)
	case OutputTable:
		data = encodeMappedTable(results)
	case OutputDump:
		data = []byte(spew.Sdump(values(results)...))
	default:
		err = fmt.Errorf("unknown output format: %q", output)
	}

	if err != nil {
		return fmt.Errorf("encoding results as %q failed: %w", output, err)
	}

	_, err = w.Write(data)

	return err
}

func values(results []mapped) []any {
	res := make([]any, len(results))
	for i, r := range results {
		res[i] = r.Value
	}

	return res
}

func encodeNDJSON(results []mapped) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	for _, r := range results {
		if err := encoder.Encode(r.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", r.Source, err)
		}
	}

	return buf.Bytes(), nil
}

func encodeYAML(results []mapped) ([]byte, error) {
	if len(results) == 1 {
		return yaml.Marshal(results[0].Value)
	}

	return yaml.Marshal(values(results))
}

// encodeMappedTable lists the top level fields of every result.
func encodeMappedTable(results []mapped) []byte {
	var buf bytes.Buffer

	t := newTable(&buf, table.Row{"Source", "Field", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})

	for _, r := range results {
		rv := reflect.ValueOf(r.Value)
		for rv.Kind() == reflect.Ptr && !rv.IsNil() {
			rv = rv.Elem()
		}

		if rv.Kind() != reflect.Struct {
			t.AppendRow(table.Row{r.Source, "", fmt.Sprint(r.Value)})
			continue
		}

		for i := range rv.NumField() {
			t.AppendRow(table.Row{r.Source, rv.Type().Field(i).Name, display(rv.Field(i))})
		}
	}

	t.Render()

	return buf.Bytes()
}

func display(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "<nil>"
		}

		v = v.Elem()
	}

	return fmt.Sprintf("%v", v.Interface())
}
