package cli

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"object-mapper/primitive"
)

const KindFlagName = "kind"

var errCoerce = errors.New("some values could not be coerced")

func newCoerceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coerce --kind KIND [--] VALUE...",
		Short: "Convert textual values to a scalar type",
		Long: `Convert every VALUE to the scalar type named by --kind (see "objmap kinds")
using the conversion categories of the active profile. Integers may carry a
0x, 0o or 0b prefix. Negative values go after "--" so they are not read as flags.`,
		Example: `  objmap coerce --kind int 42 0x1F
  objmap coerce --kind int -- 42 -7
  objmap coerce --kind rune A
  objmap coerce --kind duration 2h45m
  objmap --profile strict.yaml coerce --kind bool yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCoerce,

		DisableAutoGenTag: true,
	}

	cmd.Flags().String(KindFlagName, "string", "scalar type name to convert to")

	return cmd
}

func runCoerce(cmd *cobra.Command, args []string) error {
	kind, err := cmd.Flags().GetString(KindFlagName)
	if err != nil {
		return err
	}

	target, err := primitive.TypeByName(kind)
	if err != nil {
		return err
	}

	m, _, err := newMapper(cmd)
	if err != nil {
		return err
	}

	t := newTable(cmd.OutOrStdout(), table.Row{"Value", "Result", "Error"})

	failed := 0
	for _, arg := range args {
		res, diags := m.Explain(arg, target)

		if v, ok := res.Get(); ok {
			t.AppendRow(table.Row{arg, fmt.Sprint(v), ""})
			continue
		}

		failed++

		msg := "not mapped"
		if err := diags.Error(); err != nil {
			msg = err.Error()
		}

		t.AppendRow(table.Row{arg, "", msg})
	}

	t.Render()

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errCoerce, failed, len(args))
	}

	return nil
}
