package cli

import (
	"github.com/spf13/cobra"

	"object-mapper/options"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and create mapping profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},

		DisableAutoGenTag: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active profile with its defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProfile(cmd)
			if err != nil {
				return err
			}

			data, err := options.Marshal(p)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
		DisableAutoGenTag: true,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init FILE",
		Short: "Write the default profile to FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.WriteFile(options.Default(), args[0]); err != nil {
				return err
			}

			cmd.Printf("profile written to %s\n", args[0])

			return nil
		},
		DisableAutoGenTag: true,
	})

	return cmd
}
