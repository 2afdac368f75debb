package cli

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"object-mapper/internal/cli/enum"
	"object-mapper/mapper"
)

const ShapeFlagName = "shape"

var errUnmapped = errors.New("some documents could not be mapped")

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map --shape SHAPE FILE...",
		Short: "Map YAML or JSON documents onto a declared struct shape",
		Long: `Decode every FILE as YAML (JSON is accepted as well) and map it onto the
struct declared by the shape file. A file holding a top level list is mapped
element by element. Diagnostics of documents that cannot be mapped are written
to stderr.`,
		Example: `  objmap map --shape person.yaml people.yaml
  objmap map --shape order.yaml -o json orders/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMap,

		DisableAutoGenTag: true,
	}

	cmd.Flags().String(ShapeFlagName, "", "shape file declaring the target struct")
	_ = cmd.MarkFlagRequired(ShapeFlagName)
	enum.VarP(cmd.Flags(), OutputFlagName, "o",
		[]string{OutputTable, OutputJSON, OutputYAML, OutputDump}, "output format")

	return cmd
}

func runMap(cmd *cobra.Command, args []string) error {
	shapePath, err := cmd.Flags().GetString(ShapeFlagName)
	if err != nil {
		return err
	}

	output, err := enum.Get(cmd.Flags(), OutputFlagName)
	if err != nil {
		return err
	}

	m, profile, err := newMapper(cmd)
	if err != nil {
		return err
	}

	shape, err := LoadShape(shapePath)
	if err != nil {
		return err
	}

	typ, err := shape.Type(profile.Tag)
	if err != nil {
		return err
	}

	sources, docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	results, err := m.MapAll(cmd.Context(), docs, reflect.PointerTo(typ))
	if err != nil {
		return err
	}

	var out []mapped

	failed := 0
	for i, res := range results {
		if v, ok := res.Get(); ok {
			out = append(out, mapped{Source: sources[i], Value: v})
			continue
		}

		failed++

		reportDiagnostics(cmd, m, sources[i], docs[i], typ)
	}

	if err := encodeMapped(cmd.OutOrStdout(), output, out); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errUnmapped, failed, len(docs))
	}

	return nil
}

// reportDiagnostics maps doc once more to explain why it failed.
func reportDiagnostics(cmd *cobra.Command, m *mapper.Mapper, source string, doc any, typ reflect.Type) {
	_, diags := m.Explain(doc, reflect.PointerTo(typ))
	for _, d := range diags.All() {
		cmd.PrintErrf("%s: %s: %s\n", source, d.Severity, d)
	}
}

// readDocuments decodes every file; the elements of a top level list become
// separate documents named "file[i]".
func readDocuments(paths []string) ([]string, []any, error) {
	var (
		sources []string
		docs    []any
	)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}

		list, ok := doc.([]any)
		if !ok {
			sources = append(sources, path)
			docs = append(docs, doc)

			continue
		}

		for i, item := range list {
			sources = append(sources, path+"["+strconv.Itoa(i)+"]")
			docs = append(docs, item)
		}
	}

	return sources, docs, nil
}
