package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"object-mapper/node"
	"object-mapper/primitive"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the scalar types and the conversion categories",
		Long: `List the scalar type names accepted by coerce and by shape files, then every
conversion category with whether the active profile enables it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile(cmd)
			if err != nil {
				return err
			}

			allowed, err := profile.Allowed()
			if err != nil {
				return err
			}

			kinds := newTable(cmd.OutOrStdout(), table.Row{"Name", "Go Type", "Kind"})
			for _, name := range primitive.TypeNames() {
				typ, _ := primitive.TypeByName(name)
				kinds.AppendRow(table.Row{name, node.TypeName(typ), primitive.FromReflectType(typ).Name()})
			}
			kinds.Render()

			fmt.Fprintln(cmd.OutOrStdout())

			categories := newTable(cmd.OutOrStdout(), table.Row{"Category", "Enabled", "Conversions"})
			for _, name := range primitive.CategoryNames() {
				c, _ := primitive.ParseCategory(name)
				categories.AppendRow(table.Row{name, allowed.Has(c), conversions(c)})
			}
			categories.Render()

			return nil
		},
		DisableAutoGenTag: true,
	}
}

// conversions renders the kind pairs of a category, e.g. "int->string".
func conversions(c primitive.CategoryEnum) string {
	pairs := c.Pairs()

	res := make([]string, 0, len(pairs))
	for pair := range pairs {
		res = append(res, pair.From.Name()+"->"+pair.To.Name())
	}

	slices.Sort(res)

	const shown = 4
	if len(res) > shown {
		res = append(res[:shown], "...")
	}

	return strings.Join(res, ", ")
}
