package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"object-mapper/internal/analyze"
	"object-mapper/internal/cli/enum"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe PACKAGE [TYPE]",
		Short: "Show how the mapper sees a Go struct",
		Long: `Load the Go package matched by PACKAGE and list the fields, read-only
collections and constructors of struct TYPE as the object resolver binds them.
Without TYPE the exported structs of the package are listed.`,
		Example: `  objmap describe ./internal/fixture
  objmap describe ./internal/fixture Order
  objmap describe -o yaml object-mapper/internal/fixture Customer`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDescribe,

		DisableAutoGenTag: true,
	}

	enum.VarP(cmd.Flags(), OutputFlagName, "o", []string{OutputTable, OutputJSON, OutputYAML}, "output format")

	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	output, err := enum.Get(cmd.Flags(), OutputFlagName)
	if err != nil {
		return err
	}

	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}

	a := analyze.NewAnalyzer(profile.Tag, "")

	paths, err := a.Load(args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return listStructs(cmd.OutOrStdout(), a, paths)
	}

	var errs []error
	for _, path := range paths {
		desc, err := a.Describe(path, args[1])
		if err != nil {
			errs = append(errs, err)
			continue
		}

		return encodeDescription(cmd.OutOrStdout(), output, desc)
	}

	return errors.Join(errs...)
}

func listStructs(w io.Writer, a *analyze.Analyzer, paths []string) error {
	t := newTable(w, table.Row{"Package", "Struct"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})

	for _, path := range paths {
		names, err := a.Structs(path)
		if err != nil {
			return err
		}

		for _, name := range names {
			t.AppendRow(table.Row{path, name})
		}
	}

	t.Render()

	return nil
}

func encodeDescription(w io.Writer, output string, desc *analyze.Description) error {
	var (
		data []byte
		err  error
	)

	switch output {
	case OutputJSON:
		data, err = json.MarshalIndent(desc, "", "  ")
		data = append(data, '\n')
	case OutputYAML:
		data, err = yaml.Marshal(desc)
	case OutputTable:
		data = describeTable(desc)
	default:
		err = fmt.Errorf("unknown output format: %q", output)
	}

	if err != nil {
		return fmt.Errorf("encoding description as %q failed: %w", output, err)
	}

	_, err = w.Write(data)

	return err
}

func describeTable(desc *analyze.Description) []byte {
	var sb strings.Builder

	sb.WriteString(desc.ID.String() + "\n\n")

	fields := newTable(&sb, table.Row{"Field", "Type", "Kind", "Tag", "Promoted"})
	for _, f := range desc.Fields {
		fields.AppendRow(table.Row{f.Name, f.Type, f.Kind, string(f.Tag), f.Promoted})
	}
	fields.Render()

	if len(desc.Getters) > 0 {
		sb.WriteString("\n")

		getters := newTable(&sb, table.Row{"Collection", "Element"})
		for _, g := range desc.Getters {
			getters.AppendRow(table.Row{g.Name + "()", g.Elem})
		}
		getters.Render()
	}

	if len(desc.Constructors) > 0 {
		sb.WriteString("\n")

		ctors := newTable(&sb, table.Row{"Constructor", "Option"})
		for _, c := range desc.Constructors {
			ctors.AppendRow(table.Row{c.Signature(), c.Option(desc.ID.Alias())})
		}
		ctors.Render()
	}

	return []byte(sb.String())
}
